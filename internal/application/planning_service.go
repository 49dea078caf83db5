package application

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
	"github.com/oksasatya/planning-backend/pkg/helpers"
	"github.com/oksasatya/planning-backend/pkg/validation"
)

// StartupBundle is everything a client loads when it opens.
type StartupBundle struct {
	User       *entity.User   `json:"user"`
	Alerts     []entity.Alert `json:"alerts"`
	Events     []entity.Event `json:"events"`
	UserEvents []entity.Event `json:"user_events"`
}

// PlanningService serves the startup bundle and the event, alert and comment
// upserts. Every successful upsert bumps change control once for its kind.
type PlanningService struct {
	Store    repository.Store
	Tracker  *ChangeControl
	Search   *EventSearch
	Notifier *AlertNotifier
	Logger   *logrus.Logger

	now func() time.Time
}

func NewPlanningService(store repository.Store, tracker *ChangeControl, search *EventSearch, notifier *AlertNotifier, logger *logrus.Logger) *PlanningService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &PlanningService{
		Store:    store,
		Tracker:  tracker,
		Search:   search,
		Notifier: notifier,
		Logger:   logger,
		now:      time.Now,
	}
}

func (s *PlanningService) clock() time.Time {
	if s.now == nil {
		return time.Now()
	}
	return s.now()
}

// Startup loads the user, the active alerts, the events of the next two
// months and the subset of those events the user takes part in.
func (s *PlanningService) Startup(ctx context.Context, userName string) (*StartupBundle, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, ErrMissingField
	}
	u, err := s.Store.Users().GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	now := s.clock()
	from, to := entity.StartupWindow(now)

	var (
		alerts []entity.Alert
		events []entity.Event
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if alerts, err = s.Store.Alerts().FindActive(gctx, now); err != nil {
			return fmt.Errorf("load alerts: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if events, err = s.Store.Events().FindBetween(gctx, from, to); err != nil {
			return fmt.Errorf("load events: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	userEvents := make([]entity.Event, 0)
	for _, e := range events {
		if e.HasUser(u.UserName) {
			userEvents = append(userEvents, e)
		}
	}
	return &StartupBundle{User: u, Alerts: alerts, Events: events, UserEvents: userEvents}, nil
}

// UpsertEvent merges in into the event with the same id, or creates it.
// It reports whether a new event was created.
func (s *PlanningService) UpsertEvent(ctx context.Context, in *validation.EventInput) (bool, error) {
	repo := s.Store.Events()
	e, err := repo.FindByID(ctx, in.ID)
	created := errors.Is(err, repository.ErrNotFound)
	if err != nil && !created {
		return false, fmt.Errorf("find event: %w", err)
	}
	if created {
		e = &entity.Event{ID: in.ID, Team: entity.DefaultTeam, Users: []string{}, Comments: []string{}}
	}
	mergeEvent(e, in)
	if err := repo.Save(ctx, e); err != nil {
		return false, fmt.Errorf("save event: %w", err)
	}
	s.Tracker.BumpAsync(entity.KindEvent)
	s.Search.IndexEvent(ctx, e)
	return created, nil
}

func mergeEvent(e *entity.Event, in *validation.EventInput) {
	if in.Date != nil {
		e.Date = in.Date.Time
	}
	if in.Time != nil {
		e.Time = *in.Time
	}
	if in.Team != nil {
		e.Team = *in.Team
	}
	if in.Users != nil {
		e.Users = slices.Clone(*in.Users)
	}
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.Comments != nil {
		e.Comments = slices.Clone(*in.Comments)
	}
}

// UpsertAlert merges in into the alert with the same id, or creates it and
// queues the new-alert notification.
func (s *PlanningService) UpsertAlert(ctx context.Context, in *validation.AlertInput) (bool, error) {
	repo := s.Store.Alerts()
	a, err := repo.FindByID(ctx, in.ID)
	created := errors.Is(err, repository.ErrNotFound)
	if err != nil && !created {
		return false, fmt.Errorf("find alert: %w", err)
	}
	if created {
		a = &entity.Alert{ID: in.ID}
	}
	if in.Type != nil {
		a.Type = *in.Type
	}
	if in.Title != nil {
		a.Title = *in.Title
	}
	if in.Body != nil {
		a.Body = *in.Body
	}
	if in.EndDate != nil {
		a.EndDate = in.EndDate.Time
	}
	if err := repo.Save(ctx, a); err != nil {
		return false, fmt.Errorf("save alert: %w", err)
	}
	s.Tracker.BumpAsync(entity.KindAlert)
	if created {
		s.Notifier.NotifyAlert(ctx, a)
	}
	return created, nil
}

// UpsertComment merges in into the comment with the same id, or creates it
// dated now unless the payload carries a date.
func (s *PlanningService) UpsertComment(ctx context.Context, in *validation.CommentInput) (bool, error) {
	repo := s.Store.Comments()
	c, err := repo.FindByID(ctx, in.ID)
	created := errors.Is(err, repository.ErrNotFound)
	if err != nil && !created {
		return false, fmt.Errorf("find comment: %w", err)
	}
	if created {
		c = &entity.Comment{ID: in.ID, Date: s.clock()}
	}
	c.UserID = in.UserID
	c.Text = in.Text
	if in.Date != nil {
		c.Date = in.Date.Time
	}
	if err := repo.Save(ctx, c); err != nil {
		return false, fmt.Errorf("save comment: %w", err)
	}
	s.Tracker.BumpAsync(entity.KindComment)
	return created, nil
}
