package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/agencyhub/community-service/internal/domain"
)

// EmbeddedSiteRepository encapsulates embedded site persistence.
type EmbeddedSiteRepository interface {
	Create(ctx context.Context, site *domain.EmbeddedSite) error
	Update(ctx context.Context, site *domain.EmbeddedSite) error
	GetByID(ctx context.Context, id string) (*domain.EmbeddedSite, error)
	List(ctx context.Context) ([]domain.EmbeddedSite, error)
	ListActive(ctx context.Context) ([]domain.EmbeddedSite, error)
	Delete(ctx context.Context, id string) error
}

type embeddedSiteRepository struct {
	pool *pgxpool.Pool
}

// NewEmbeddedSiteRepository instantiates repository.
func NewEmbeddedSiteRepository(pool *pgxpool.Pool) EmbeddedSiteRepository {
	return &embeddedSiteRepository{pool: pool}
}

const embeddedSiteColumns = `id, name, description, category, url, image_url,
        is_active, display_order, created_by, created_at`

func (r *embeddedSiteRepository) Create(ctx context.Context, site *domain.EmbeddedSite) error {
	const query = `
        INSERT INTO embedded_sites (name, description, category, url, image_url,
            is_active, display_order, created_by)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
        RETURNING id, created_at`

	return r.pool.QueryRow(ctx, query,
		site.Name,
		site.Description,
		site.Category,
		site.URL,
		site.ImageURL,
		site.IsActive,
		site.DisplayOrder,
		site.CreatedBy,
	).Scan(&site.ID, &site.CreatedAt)
}

func (r *embeddedSiteRepository) Update(ctx context.Context, site *domain.EmbeddedSite) error {
	const query = `
        UPDATE embedded_sites SET name=$1, description=$2, category=$3, url=$4,
            image_url=$5, is_active=$6, display_order=$7
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		site.Name,
		site.Description,
		site.Category,
		site.URL,
		site.ImageURL,
		site.IsActive,
		site.DisplayOrder,
		site.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *embeddedSiteRepository) GetByID(ctx context.Context, id string) (*domain.EmbeddedSite, error) {
	const query = `SELECT ` + embeddedSiteColumns + ` FROM embedded_sites WHERE id=$1`

	var site domain.EmbeddedSite
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&site.ID,
		&site.Name,
		&site.Description,
		&site.Category,
		&site.URL,
		&site.ImageURL,
		&site.IsActive,
		&site.DisplayOrder,
		&site.CreatedBy,
		&site.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &site, nil
}

func (r *embeddedSiteRepository) List(ctx context.Context) ([]domain.EmbeddedSite, error) {
	const query = `SELECT ` + embeddedSiteColumns + ` FROM embedded_sites ORDER BY display_order ASC`
	return r.queryMany(ctx, query)
}

func (r *embeddedSiteRepository) ListActive(ctx context.Context) ([]domain.EmbeddedSite, error) {
	const query = `SELECT ` + embeddedSiteColumns + ` FROM embedded_sites WHERE is_active ORDER BY display_order ASC`
	return r.queryMany(ctx, query)
}

func (r *embeddedSiteRepository) queryMany(ctx context.Context, query string, args ...any) ([]domain.EmbeddedSite, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.EmbeddedSite
	for rows.Next() {
		var site domain.EmbeddedSite
		if err := rows.Scan(
			&site.ID,
			&site.Name,
			&site.Description,
			&site.Category,
			&site.URL,
			&site.ImageURL,
			&site.IsActive,
			&site.DisplayOrder,
			&site.CreatedBy,
			&site.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, site)
	}
	return result, rows.Err()
}

func (r *embeddedSiteRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM embedded_sites WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
