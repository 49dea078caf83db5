package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

const eventColumns = `key::text, id, date, time, team, users, title, description, comments`

type EventRepository struct {
	pool *pgxpool.Pool
}

func NewEventRepository(pool *pgxpool.Pool) *EventRepository {
	return &EventRepository{pool: pool}
}

func (r *EventRepository) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, id)
	e, err := scanEvent(row)
	if err != nil {
		return nil, mapErr(err)
	}
	return e, nil
}

func (r *EventRepository) FindBetween(ctx context.Context, from, to time.Time) ([]entity.Event, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+eventColumns+`
		FROM events
		WHERE date >= $1 AND date < $2
		ORDER BY date
	`, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]entity.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *e)
	}
	return out, rows.Err()
}

func (r *EventRepository) Save(ctx context.Context, e *entity.Event) error {
	if e.Key == "" {
		row := r.pool.QueryRow(ctx, `
			INSERT INTO events (id, date, time, team, users, title, description, comments)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING key::text
		`, e.ID, e.Date, e.Time, e.Team, nonNil(e.Users), e.Title, e.Description, nonNil(e.Comments))
		return mapErr(row.Scan(&e.Key))
	}
	res, err := r.pool.Exec(ctx, `
		UPDATE events
		SET id = $1, date = $2, time = $3, team = $4, users = $5,
		    title = $6, description = $7, comments = $8
		WHERE key = $9::uuid
	`, e.ID, e.Date, e.Time, e.Team, nonNil(e.Users), e.Title, e.Description, nonNil(e.Comments), e.Key)
	if err != nil {
		return mapErr(err)
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanEvent(row pgx.Row) (*entity.Event, error) {
	e := &entity.Event{}
	if err := row.Scan(&e.Key, &e.ID, &e.Date, &e.Time, &e.Team, &e.Users,
		&e.Title, &e.Description, &e.Comments); err != nil {
		return nil, err
	}
	return e, nil
}

var _ repository.EventRepository = (*EventRepository)(nil)
