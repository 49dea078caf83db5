package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

const (
	uniqueViolation           = "23505"
	invalidTextRepresentation = "22P02"
)

// Store serves every repository from one pgx pool.
type Store struct {
	pool *pgxpool.Pool
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

func (s *Store) Users() repository.UserRepository                  { return NewUserRepository(s.pool) }
func (s *Store) Alerts() repository.AlertRepository                { return NewAlertRepository(s.pool) }
func (s *Store) Events() repository.EventRepository                { return NewEventRepository(s.pool) }
func (s *Store) Comments() repository.CommentRepository            { return NewCommentRepository(s.pool) }
func (s *Store) ChangeControl() repository.ChangeControlRepository { return NewChangeControlRepository(s.pool) }
func (s *Store) Images() repository.ImageRepository                { return NewImageRepository(s.pool) }

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

// mapErr translates driver errors into repository sentinels.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return errors.Join(repository.ErrDuplicate, err)
		case invalidTextRepresentation:
			// a key that is not a uuid cannot name a stored row
			return errors.Join(repository.ErrNotFound, err)
		}
	}
	return err
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

var _ repository.Store = (*Store)(nil)
