package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

const alertColumns = `key::text, id, type, title, body, end_date`

type AlertRepository struct {
	pool *pgxpool.Pool
}

func NewAlertRepository(pool *pgxpool.Pool) *AlertRepository {
	return &AlertRepository{pool: pool}
}

func (r *AlertRepository) FindByID(ctx context.Context, id string) (*entity.Alert, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+alertColumns+` FROM alerts WHERE id = $1`, id)
	a, err := scanAlert(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return a, nil
}

func (r *AlertRepository) FindActive(ctx context.Context, now time.Time) ([]entity.Alert, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+alertColumns+`
		FROM alerts
		WHERE end_date > $1
		ORDER BY end_date
	`, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Alert, 0)
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *AlertRepository) Save(ctx context.Context, a *entity.Alert) error {
	if a.Key == "" {
		row := r.pool.QueryRow(ctx, `
			INSERT INTO alerts (id, type, title, body, end_date)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING key::text
		`, a.ID, a.Type, a.Title, a.Body, a.EndDate)
		return mapErr(row.Scan(&a.Key))
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE alerts
		SET id = $1, type = $2, title = $3, body = $4, end_date = $5
		WHERE key = $6::uuid
	`, a.ID, a.Type, a.Title, a.Body, a.EndDate, a.Key)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanAlert(row pgx.Row) (*entity.Alert, error) {
	a := &entity.Alert{}
	if err := row.Scan(&a.Key, &a.ID, &a.Type, &a.Title, &a.Body, &a.EndDate); err != nil {
		return nil, err
	}
	return a, nil
}

var _ repository.AlertRepository = (*AlertRepository)(nil)
