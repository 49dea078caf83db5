package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

func TestUsers_UniqueUserName(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	u := &entity.User{UserName: "alice", Password: "hash"}
	require.NoError(t, s.Users().Create(ctx, u))
	assert.NotEmpty(t, u.ID)
	assert.False(t, u.Date.IsZero())

	err := s.Users().Create(ctx, &entity.User{UserName: "alice"})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	got, err := s.Users().GetByUserName(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = s.Users().GetByID(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestEvents_SaveInsertsThenReplaces(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now()

	e := &entity.Event{ID: "e1", Date: now.Add(time.Hour), Users: []string{"alice"}}
	require.NoError(t, s.Events().Save(ctx, e))
	require.NotEmpty(t, e.Key)

	e.Title = "Training"
	require.NoError(t, s.Events().Save(ctx, e))

	got, err := s.Events().FindByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Training", got.Title)
	assert.Equal(t, e.Key, got.Key)

	// returned slices are copies
	got.Users[0] = "mallory"
	again, err := s.Events().FindByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, []string{"alice"}, again.Users)

	err = s.Events().Save(ctx, &entity.Event{ID: "e1", Date: now})
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func TestEvents_FindBetweenIsHalfOpen(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 2, 0)

	for id, d := range map[string]time.Time{
		"before": from.Add(-time.Second),
		"start":  from,
		"inside": from.AddDate(0, 1, 0),
		"end":    to,
	} {
		require.NoError(t, s.Events().Save(ctx, &entity.Event{ID: id, Date: d}))
	}

	got, err := s.Events().FindBetween(ctx, from, to)
	require.NoError(t, err)
	ids := make([]string, 0, len(got))
	for _, e := range got {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"start", "inside"}, ids)
}

func TestAlerts_FindActive(t *testing.T) {
	s := NewStore()
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, s.Alerts().Save(ctx, &entity.Alert{ID: "past", EndDate: now.Add(-time.Minute)}))
	require.NoError(t, s.Alerts().Save(ctx, &entity.Alert{ID: "now", EndDate: now}))
	require.NoError(t, s.Alerts().Save(ctx, &entity.Alert{ID: "future", EndDate: now.Add(time.Hour)}))

	got, err := s.Alerts().FindActive(ctx, now)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "future", got[0].ID)
}

func TestChangeControl_IncrementCreatesAndIsAtomic(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	_, err := s.ChangeControl().Get(ctx)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.ChangeControl().Increment(ctx, entity.KindEvent, time.Now())
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	cc, err := s.ChangeControl().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(50), cc.EventCount)
	assert.Zero(t, cc.UserCount)

	_, err = s.ChangeControl().Increment(ctx, entity.Kind(0), time.Now())
	assert.Error(t, err)
}
