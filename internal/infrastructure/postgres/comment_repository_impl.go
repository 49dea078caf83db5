package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*entity.Comment, error) {
	c := &entity.Comment{}
	row := r.pool.QueryRow(ctx, `
		SELECT key::text, id, user_id, text, date
		FROM comments
		WHERE id = $1
	`, id)
	if err := row.Scan(&c.Key, &c.ID, &c.UserID, &c.Text, &c.Date); err != nil {
		return nil, mapErr(err)
	}
	return c, nil
}

func (r *CommentRepository) Save(ctx context.Context, c *entity.Comment) error {
	if c.Key == "" {
		row := r.pool.QueryRow(ctx, `
			INSERT INTO comments (id, user_id, text, date)
			VALUES ($1, $2, $3, $4)
			RETURNING key::text
		`, c.ID, c.UserID, c.Text, c.Date)
		return mapErr(row.Scan(&c.Key))
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE comments
		SET id = $1, user_id = $2, text = $3, date = $4
		WHERE key = $5::uuid
	`, c.ID, c.UserID, c.Text, c.Date, c.Key)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

var _ repository.CommentRepository = (*CommentRepository)(nil)
