package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencyhub/community-service/internal/domain"
)

// BannerRepository encapsulates banner persistence.
type BannerRepository interface {
	Create(ctx context.Context, banner *domain.Banner) error
	Update(ctx context.Context, banner *domain.Banner) error
	GetByID(ctx context.Context, id string) (*domain.Banner, error)
	List(ctx context.Context) ([]domain.Banner, error)
	ListActive(ctx context.Context) ([]domain.Banner, error)
	MaxDisplayOrder(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}

type bannerRepository struct {
	pool *pgxpool.Pool
}

// NewBannerRepository instantiates repository.
func NewBannerRepository(pool *pgxpool.Pool) BannerRepository {
	return &bannerRepository{pool: pool}
}

const bannerColumns = `id, title, description, image_url, cta_label, cta_url,
        animation_type, is_active, display_order, created_by, created_at`

func (r *bannerRepository) Create(ctx context.Context, banner *domain.Banner) error {
	const query = `
        INSERT INTO banners (title, description, image_url, cta_label, cta_url,
            animation_type, is_active, display_order, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		banner.Title,
		banner.Description,
		banner.ImageURL,
		banner.CTALabel,
		banner.CTAURL,
		banner.AnimationType,
		banner.IsActive,
		banner.DisplayOrder,
		banner.CreatedBy,
	).Scan(&banner.ID, &banner.CreatedAt)
}

func (r *bannerRepository) Update(ctx context.Context, banner *domain.Banner) error {
	const query = `
        UPDATE banners SET title=$1, description=$2, image_url=$3, cta_label=$4, cta_url=$5,
            animation_type=$6, is_active=$7, display_order=$8
        WHERE id=$9`

	cmd, err := r.pool.Exec(ctx, query,
		banner.Title,
		banner.Description,
		banner.ImageURL,
		banner.CTALabel,
		banner.CTAURL,
		banner.AnimationType,
		banner.IsActive,
		banner.DisplayOrder,
		banner.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bannerRepository) GetByID(ctx context.Context, id string) (*domain.Banner, error) {
	const query = `SELECT ` + bannerColumns + ` FROM banners WHERE id=$1`

	var banner domain.Banner
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&banner.ID,
		&banner.Title,
		&banner.Description,
		&banner.ImageURL,
		&banner.CTALabel,
		&banner.CTAURL,
		&banner.AnimationType,
		&banner.IsActive,
		&banner.DisplayOrder,
		&banner.CreatedBy,
		&banner.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &banner, nil
}

func (r *bannerRepository) List(ctx context.Context) ([]domain.Banner, error) {
	const query = `SELECT ` + bannerColumns + ` FROM banners ORDER BY display_order ASC`
	return r.queryMany(ctx, query)
}

func (r *bannerRepository) ListActive(ctx context.Context) ([]domain.Banner, error) {
	const query = `SELECT ` + bannerColumns + ` FROM banners WHERE is_active ORDER BY display_order ASC`
	return r.queryMany(ctx, query)
}

func (r *bannerRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.Banner, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Banner
	for rows.Next() {
		var banner domain.Banner
		if err := rows.Scan(
			&banner.ID,
			&banner.Title,
			&banner.Description,
			&banner.ImageURL,
			&banner.CTALabel,
			&banner.CTAURL,
			&banner.AnimationType,
			&banner.IsActive,
			&banner.DisplayOrder,
			&banner.CreatedBy,
			&banner.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, banner)
	}
	return result, rows.Err()
}

func (r *bannerRepository) MaxDisplayOrder(ctx context.Context) (int, error) {
	var max int
	err := r.pool.QueryRow(ctx, `SELECT COALESCE(MAX(display_order), 0) FROM banners`).Scan(&max)
	return max, err
}

func (r *bannerRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM banners WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
