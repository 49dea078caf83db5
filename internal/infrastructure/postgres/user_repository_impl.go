package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, user_name, is_admin, password_hash, date)
		VALUES ($1, $2, $3, $4, $5, COALESCE($6, now()))
		RETURNING id::text, date
	`, u.FirstName, u.LastName, u.UserName, u.IsAdmin, u.Password, nullTime(u.Date))
	return mapErr(row.Scan(&u.ID, &u.Date))
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE id = $1::uuid`, id)
}

func (r *UserRepository) GetByUserName(ctx context.Context, userName string) (*entity.User, error) {
	return r.getOne(ctx, `WHERE user_name = $1`, userName)
}

func (r *UserRepository) getOne(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id::text, first_name, last_name, user_name, is_admin, password_hash, date
		FROM users
		`+where, arg)
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.UserName, &u.IsAdmin,
		&u.Password, &u.Date); err != nil {
		return nil, mapErr(err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
