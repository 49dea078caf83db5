// Package memory implements the repositories in process. It backs tests and
// STORE_DRIVER=memory local runs; data is lost on restart.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

type Store struct {
	mu       sync.RWMutex
	users    map[string]entity.User
	alerts   map[string]entity.Alert
	events   map[string]entity.Event
	comments map[string]entity.Comment
	images   map[string]entity.Image
	cc       *entity.ChangeControl

	// failIncrement, when set, is returned by ChangeControl().Increment.
	failIncrement error
}

func NewStore() *Store {
	return &Store{
		users:    map[string]entity.User{},
		alerts:   map[string]entity.Alert{},
		events:   map[string]entity.Event{},
		comments: map[string]entity.Comment{},
		images:   map[string]entity.Image{},
	}
}

// FailIncrements makes every later change-control increment return err.
func (s *Store) FailIncrements(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failIncrement = err
}

func (s *Store) Users() repository.UserRepository                  { return userRepo{s} }
func (s *Store) Alerts() repository.AlertRepository                { return alertRepo{s} }
func (s *Store) Events() repository.EventRepository                { return eventRepo{s} }
func (s *Store) Comments() repository.CommentRepository            { return commentRepo{s} }
func (s *Store) ChangeControl() repository.ChangeControlRepository { return changeControlRepo{s} }
func (s *Store) Images() repository.ImageRepository                { return imageRepo{s} }
func (s *Store) Ping(context.Context) error                        { return nil }
func (s *Store) Close(context.Context) error                       { return nil }

type userRepo struct{ s *Store }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.UserName == u.UserName {
			return repository.ErrDuplicate
		}
	}
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Date.IsZero() {
		u.Date = time.Now()
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &u, nil
}

func (r userRepo) GetByUserName(_ context.Context, userName string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if u.UserName == userName {
			return &u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type alertRepo struct{ s *Store }

func (r alertRepo) FindByID(_ context.Context, id string) (*entity.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, a := range r.s.alerts {
		if a.ID == id {
			return &a, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r alertRepo) FindActive(_ context.Context, now time.Time) ([]entity.Alert, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Alert, 0)
	for _, a := range r.s.alerts {
		if a.ActiveAt(now) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EndDate.Before(out[j].EndDate) })
	return out, nil
}

func (r alertRepo) Save(_ context.Context, a *entity.Alert) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, existing := range r.s.alerts {
		if existing.ID == a.ID && key != a.Key {
			return repository.ErrDuplicate
		}
	}
	if a.Key == "" {
		a.Key = uuid.NewString()
	} else if _, ok := r.s.alerts[a.Key]; !ok {
		return repository.ErrNotFound
	}
	r.s.alerts[a.Key] = *a
	return nil
}

type eventRepo struct{ s *Store }

func (r eventRepo) FindByID(_ context.Context, id string) (*entity.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.events {
		if e.ID == id {
			return cloneEvent(e), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r eventRepo) FindBetween(_ context.Context, from, to time.Time) ([]entity.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.Event, 0)
	for _, e := range r.s.events {
		if !e.Date.Before(from) && e.Date.Before(to) {
			out = append(out, *cloneEvent(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r eventRepo) Save(_ context.Context, e *entity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, existing := range r.s.events {
		if existing.ID == e.ID && key != e.Key {
			return repository.ErrDuplicate
		}
	}
	if e.Key == "" {
		e.Key = uuid.NewString()
	} else if _, ok := r.s.events[e.Key]; !ok {
		return repository.ErrNotFound
	}
	r.s.events[e.Key] = *cloneEvent(*e)
	return nil
}

func cloneEvent(e entity.Event) *entity.Event {
	e.Users = slices.Clone(e.Users)
	e.Comments = slices.Clone(e.Comments)
	return &e
}

type commentRepo struct{ s *Store }

func (r commentRepo) FindByID(_ context.Context, id string) (*entity.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, c := range r.s.comments {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r commentRepo) Save(_ context.Context, c *entity.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for key, existing := range r.s.comments {
		if existing.ID == c.ID && key != c.Key {
			return repository.ErrDuplicate
		}
	}
	if c.Key == "" {
		c.Key = uuid.NewString()
	} else if _, ok := r.s.comments[c.Key]; !ok {
		return repository.ErrNotFound
	}
	r.s.comments[c.Key] = *c
	return nil
}

type changeControlRepo struct{ s *Store }

func (r changeControlRepo) Get(context.Context) (*entity.ChangeControl, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.cc == nil {
		return nil, repository.ErrNotFound
	}
	cc := *r.s.cc
	return &cc, nil
}

func (r changeControlRepo) Increment(_ context.Context, k entity.Kind, at time.Time) (*entity.ChangeControl, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failIncrement != nil {
		return nil, r.s.failIncrement
	}
	next := entity.ChangeControl{}
	if r.s.cc != nil {
		next = *r.s.cc
	}
	if err := next.Apply(k, at); err != nil {
		return nil, err
	}
	r.s.cc = &next
	out := next
	return &out, nil
}

type imageRepo struct{ s *Store }

func (r imageRepo) Create(_ context.Context, img *entity.Image) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if img.ID == "" {
		img.ID = uuid.NewString()
	}
	if img.CreatedAt.IsZero() {
		img.CreatedAt = time.Now()
	}
	r.s.images[img.ID] = *img
	return nil
}

// ImageRecords returns a snapshot of the stored image records.
func (s *Store) ImageRecords() []entity.Image {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Image, 0, len(s.images))
	for _, img := range s.images {
		out = append(out, img)
	}
	return out
}

var _ repository.Store = (*Store)(nil)
