package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

const changeControlReturning = `date, user_count, event_count, alert_count, comment_count`

type ChangeControlRepository struct {
	pool *pgxpool.Pool
}

func NewChangeControlRepository(pool *pgxpool.Pool) *ChangeControlRepository {
	return &ChangeControlRepository{pool: pool}
}

func (r *ChangeControlRepository) Get(ctx context.Context) (*entity.ChangeControl, error) {
	cc := &entity.ChangeControl{}
	row := r.pool.QueryRow(ctx, `SELECT `+changeControlReturning+` FROM change_control WHERE singleton`)
	if err := row.Scan(&cc.Date, &cc.UserCount, &cc.EventCount, &cc.AlertCount, &cc.CommentCount); err != nil {
		return nil, mapErr(err)
	}
	return cc, nil
}

// Increment upserts the singleton row in one statement so concurrent bumps
// never lose an increment.
func (r *ChangeControlRepository) Increment(ctx context.Context, k entity.Kind, at time.Time) (*entity.ChangeControl, error) {
	col, err := counterColumn(k)
	if err != nil {
		return nil, err
	}
	q := fmt.Sprintf(`
		INSERT INTO change_control AS cc (singleton, date, %[1]s)
		VALUES (TRUE, $1, 1)
		ON CONFLICT (singleton) DO UPDATE
		SET %[1]s = cc.%[1]s + 1, date = EXCLUDED.date
		RETURNING %[2]s
	`, col, changeControlReturning)

	cc := &entity.ChangeControl{}
	row := r.pool.QueryRow(ctx, q, at)
	if err := row.Scan(&cc.Date, &cc.UserCount, &cc.EventCount, &cc.AlertCount, &cc.CommentCount); err != nil {
		return nil, mapErr(err)
	}
	return cc, nil
}

func counterColumn(k entity.Kind) (string, error) {
	switch k {
	case entity.KindUser:
		return "user_count", nil
	case entity.KindEvent:
		return "event_count", nil
	case entity.KindAlert:
		return "alert_count", nil
	case entity.KindComment:
		return "comment_count", nil
	default:
		return "", fmt.Errorf("invalid update type: %s", k)
	}
}

var _ repository.ChangeControlRepository = (*ChangeControlRepository)(nil)
