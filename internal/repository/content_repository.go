package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencyhub/community-service/internal/domain"
)

// AnnouncementRepository encapsulates announcement persistence.
type AnnouncementRepository interface {
	Create(ctx context.Context, announcement *domain.Announcement) error
	List(ctx context.Context) ([]domain.Announcement, error)
	GetActive(ctx context.Context) (*domain.Announcement, error)
	DeactivateAll(ctx context.Context) error
	Delete(ctx context.Context, id string) error
}

type announcementRepository struct {
	pool *pgxpool.Pool
}

// NewAnnouncementRepository instantiates repository.
func NewAnnouncementRepository(pool *pgxpool.Pool) AnnouncementRepository {
	return &announcementRepository{pool: pool}
}

func (r *announcementRepository) Create(ctx context.Context, announcement *domain.Announcement) error {
	const query = `
        INSERT INTO announcements (content, is_active, created_by)
        VALUES ($1, $2, $3)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		announcement.Content,
		announcement.IsActive,
		announcement.CreatedBy,
	).Scan(&announcement.ID, &announcement.CreatedAt)
}

func (r *announcementRepository) List(ctx context.Context) ([]domain.Announcement, error) {
	const query = `
        SELECT id, content, is_active, created_by, created_at
        FROM announcements ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Announcement
	for rows.Next() {
		var a domain.Announcement
		if err := rows.Scan(&a.ID, &a.Content, &a.IsActive, &a.CreatedBy, &a.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, rows.Err()
}

func (r *announcementRepository) GetActive(ctx context.Context) (*domain.Announcement, error) {
	const query = `
        SELECT id, content, is_active, created_by, created_at
        FROM announcements WHERE is_active LIMIT 1`

	var a domain.Announcement
	if err := r.pool.QueryRow(ctx, query).Scan(&a.ID, &a.Content, &a.IsActive, &a.CreatedBy, &a.CreatedAt); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *announcementRepository) DeactivateAll(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, `UPDATE announcements SET is_active=FALSE WHERE is_active`)
	return err
}

func (r *announcementRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM announcements WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// SettingRepository provides access to the generic key/value settings rows.
type SettingRepository interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type settingRepository struct {
	pool *pgxpool.Pool
}

// NewSettingRepository instantiates repository.
func NewSettingRepository(pool *pgxpool.Pool) SettingRepository {
	return &settingRepository{pool: pool}
}

func (r *settingRepository) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := r.pool.QueryRow(ctx, `SELECT value FROM settings WHERE key=$1`, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		return "", false, err
	}
	return value, true, nil
}

func (r *settingRepository) Set(ctx context.Context, key, value string) error {
	const query = `
        INSERT INTO settings (key, value) VALUES ($1, $2)
        ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value`
	_, err := r.pool.Exec(ctx, query, key, value)
	return err
}

// VipAppRepository encapsulates VIP app persistence.
type VipAppRepository interface {
	Create(ctx context.Context, app *domain.VipApp) error
	List(ctx context.Context) ([]domain.VipApp, error)
	Delete(ctx context.Context, id string) error
}

type vipAppRepository struct {
	pool *pgxpool.Pool
}

// NewVipAppRepository instantiates repository.
func NewVipAppRepository(pool *pgxpool.Pool) VipAppRepository {
	return &vipAppRepository{pool: pool}
}

func (r *vipAppRepository) Create(ctx context.Context, app *domain.VipApp) error {
	const query = `
        INSERT INTO vip_apps (name, description, image_url, download_url, version, size)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		app.Name,
		app.Description,
		app.ImageURL,
		app.DownloadURL,
		app.Version,
		app.Size,
	).Scan(&app.ID, &app.CreatedAt)
}

func (r *vipAppRepository) List(ctx context.Context) ([]domain.VipApp, error) {
	const query = `
        SELECT id, name, description, image_url, download_url, version, size, created_at
        FROM vip_apps ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.VipApp
	for rows.Next() {
		var app domain.VipApp
		if err := rows.Scan(
			&app.ID,
			&app.Name,
			&app.Description,
			&app.ImageURL,
			&app.DownloadURL,
			&app.Version,
			&app.Size,
			&app.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, app)
	}
	return result, rows.Err()
}

func (r *vipAppRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM vip_apps WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
