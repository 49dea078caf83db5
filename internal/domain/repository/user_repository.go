package repository

import (
	"context"
	"errors"
	"time"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
)

var (
	// ErrNotFound is returned when no record matches the lookup.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a unique key.
	ErrDuplicate = errors.New("duplicate key")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(ctx context.Context, u *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUserName(ctx context.Context, userName string) (*entity.User, error)
}

// AlertRepository stores alerts keyed by their business id.
type AlertRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Alert, error)
	// FindActive returns alerts whose end date is after now.
	FindActive(ctx context.Context, now time.Time) ([]entity.Alert, error)
	// Save inserts a when Key is empty, otherwise replaces the stored record.
	Save(ctx context.Context, a *entity.Alert) error
}

// EventRepository stores events keyed by their business id.
type EventRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Event, error)
	// FindBetween returns events with from <= date < to, ordered by date.
	FindBetween(ctx context.Context, from, to time.Time) ([]entity.Event, error)
	Save(ctx context.Context, e *entity.Event) error
}

type CommentRepository interface {
	FindByID(ctx context.Context, id string) (*entity.Comment, error)
	Save(ctx context.Context, c *entity.Comment) error
}

// ChangeControlRepository reads and bumps the change-control singleton.
type ChangeControlRepository interface {
	Get(ctx context.Context) (*entity.ChangeControl, error)
	// Increment atomically bumps the counter of k and sets the date to at,
	// creating the record if absent. It returns the updated record.
	Increment(ctx context.Context, k entity.Kind, at time.Time) (*entity.ChangeControl, error)
}

type ImageRepository interface {
	Create(ctx context.Context, img *entity.Image) error
}

// Store gives access to every repository of one persistence backend.
type Store interface {
	Users() UserRepository
	Alerts() AlertRepository
	Events() EventRepository
	Comments() CommentRepository
	ChangeControl() ChangeControlRepository
	Images() ImageRepository
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
