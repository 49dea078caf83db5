package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

type ImageRepository struct {
	pool *pgxpool.Pool
}

func NewImageRepository(pool *pgxpool.Pool) *ImageRepository {
	return &ImageRepository{pool: pool}
}

func (r *ImageRepository) Create(ctx context.Context, img *entity.Image) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO images (user_id, url, object_path, content_type, width, height)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text, created_at
	`, img.UserID, img.URL, img.ObjectPath, img.ContentType, img.Width, img.Height)
	return row.Scan(&img.ID, &img.CreatedAt)
}

var _ repository.ImageRepository = (*ImageRepository)(nil)
