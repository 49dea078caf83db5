package application

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/infrastructure/memory"
	"github.com/oksasatya/planning-backend/pkg/mailer"
	mailtpl "github.com/oksasatya/planning-backend/pkg/mailer/templates"
	"github.com/oksasatya/planning-backend/pkg/validation"
)

var testNow = time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func vt(t time.Time) *validation.Time { return &validation.Time{Time: t} }

type planningFixture struct {
	svc     *PlanningService
	store   *memory.Store
	tracker *ChangeControl
	mail    *fakePublisher
}

func newPlanning(t *testing.T) *planningFixture {
	t.Helper()
	store := memory.NewStore()
	tracker := newTracker(store, nil)
	mail := &fakePublisher{}
	notifier := NewAlertNotifier(mail, "emails", []string{"staff@example.org"}, "Planning", nil)
	svc := NewPlanningService(store, tracker, NewEventSearch(nil, "", nil), notifier, nil)
	svc.now = func() time.Time { return testNow }
	return &planningFixture{svc: svc, store: store, tracker: tracker, mail: mail}
}

func (f *planningFixture) counters(t *testing.T) entity.ChangeControl {
	t.Helper()
	f.tracker.Wait()
	cc, err := f.store.ChangeControl().Get(context.Background())
	if err != nil {
		return entity.ChangeControl{}
	}
	return *cc
}

func TestStartup_FiltersByWindowAndUser(t *testing.T) {
	f := newPlanning(t)
	ctx := context.Background()
	require.NoError(t, f.store.Users().Create(ctx, &entity.User{UserName: "alice", Password: "x"}))

	events := []*entity.Event{
		{ID: "past", Date: testNow.Add(-time.Hour), Users: []string{"alice"}},
		{ID: "soon", Date: testNow.Add(24 * time.Hour), Users: []string{"alice", "bob"}},
		{ID: "other", Date: testNow.AddDate(0, 1, 0), Users: []string{"bob"}},
		{ID: "edge", Date: testNow.AddDate(0, 2, 0), Users: []string{"alice"}},
	}
	for _, e := range events {
		require.NoError(t, f.store.Events().Save(ctx, e))
	}
	alerts := []*entity.Alert{
		{ID: "expired", EndDate: testNow},
		{ID: "live", EndDate: testNow.Add(time.Minute)},
	}
	for _, a := range alerts {
		require.NoError(t, f.store.Alerts().Save(ctx, a))
	}

	bundle, err := f.svc.Startup(ctx, " alice ")
	require.NoError(t, err)

	assert.Equal(t, "alice", bundle.User.UserName)
	require.Len(t, bundle.Alerts, 1)
	assert.Equal(t, "live", bundle.Alerts[0].ID)

	var ids []string
	for _, e := range bundle.Events {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{"soon", "other"}, ids)
	require.Len(t, bundle.UserEvents, 1)
	assert.Equal(t, "soon", bundle.UserEvents[0].ID)

	b, err := json.Marshal(bundle)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"user_events"`)
	assert.NotContains(t, string(b), `"password"`)
}

func TestStartup_Errors(t *testing.T) {
	f := newPlanning(t)

	_, err := f.svc.Startup(context.Background(), "")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = f.svc.Startup(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpsertEvent_CreateThenMerge(t *testing.T) {
	f := newPlanning(t)
	ctx := context.Background()
	date := testNow.Add(48 * time.Hour)

	created, err := f.svc.UpsertEvent(ctx, &validation.EventInput{
		ID:    "e1",
		Date:  vt(date),
		Title: strPtr("Training"),
		Users: &[]string{"alice"},
	})
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, int64(1), f.counters(t).EventCount)

	e, err := f.store.Events().FindByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultTeam, e.Team)
	assert.Equal(t, []string{}, e.Comments)

	created, err = f.svc.UpsertEvent(ctx, &validation.EventInput{
		ID:          "e1",
		Date:        vt(date),
		Description: strPtr("Bring shoes"),
	})
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, int64(2), f.counters(t).EventCount)

	e, err = f.store.Events().FindByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, "Training", e.Title, "absent fields keep their stored value")
	assert.Equal(t, "Bring shoes", e.Description)
	assert.Equal(t, []string{"alice"}, e.Users)
}

func TestUpsertEvent_IdempotentDoubleUpsert(t *testing.T) {
	f := newPlanning(t)
	ctx := context.Background()
	in := &validation.EventInput{ID: "e2", Date: vt(testNow.Add(time.Hour)), Team: strPtr("Blue")}

	_, err := f.svc.UpsertEvent(ctx, in)
	require.NoError(t, err)
	_, err = f.svc.UpsertEvent(ctx, in)
	require.NoError(t, err)

	events, err := f.store.Events().FindBetween(ctx, testNow, testNow.AddDate(0, 1, 0))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "Blue", events[0].Team)
	assert.Equal(t, int64(2), f.counters(t).EventCount, "a no-op upsert still bumps")
}

func TestUpsertAlert_NotifiesOnCreateOnly(t *testing.T) {
	f := newPlanning(t)
	ctx := context.Background()
	end := testNow.AddDate(0, 0, 7)

	created, err := f.svc.UpsertAlert(ctx, &validation.AlertInput{ID: "a1", Title: strPtr("Pool closed"), EndDate: vt(end)})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = f.svc.UpsertAlert(ctx, &validation.AlertInput{ID: "a1", Body: strPtr("All week"), EndDate: vt(end)})
	require.NoError(t, err)
	assert.False(t, created)

	a, err := f.store.Alerts().FindByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, "Pool closed", a.Title)
	assert.Equal(t, "All week", a.Body)
	assert.Equal(t, int64(2), f.counters(t).AlertCount)

	msgs := f.mail.messages()
	require.Len(t, msgs, 1)
	assert.Equal(t, "emails", msgs[0].Queue)
	var job mailer.EmailJob
	require.NoError(t, json.Unmarshal(msgs[0].Body, &job))
	assert.Equal(t, "staff@example.org", job.To)
	assert.Equal(t, mailtpl.AlertCreated, job.Template)
	assert.Equal(t, "Pool closed", job.Data["Title"])
}

func TestUpsertComment_DefaultsDate(t *testing.T) {
	f := newPlanning(t)
	ctx := context.Background()

	created, err := f.svc.UpsertComment(ctx, &validation.CommentInput{ID: "c1", UserID: "u1", Text: "hello"})
	require.NoError(t, err)
	assert.True(t, created)

	c, err := f.store.Comments().FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, testNow, c.Date)

	later := testNow.Add(time.Hour)
	_, err = f.svc.UpsertComment(ctx, &validation.CommentInput{ID: "c1", UserID: "u1", Text: "edited", Date: vt(later)})
	require.NoError(t, err)

	c, err = f.store.Comments().FindByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "edited", c.Text)
	assert.Equal(t, later, c.Date)
	assert.Equal(t, int64(2), f.counters(t).CommentCount)
}

func TestUpsert_BumpFailureIsSwallowed(t *testing.T) {
	f := newPlanning(t)
	ctx := context.Background()
	require.NoError(t, f.store.Events().Save(ctx, &entity.Event{ID: "seed", Date: testNow}))

	_, err := f.svc.UpsertEvent(ctx, &validation.EventInput{ID: "seed", Date: vt(testNow)})
	require.NoError(t, err)
	before := f.counters(t).EventCount

	f.store.FailIncrements(errBoom)
	_, err = f.svc.UpsertEvent(ctx, &validation.EventInput{ID: "seed", Date: vt(testNow)})
	require.NoError(t, err, "bump failures never reach the caller")
	f.tracker.Wait()
	f.store.FailIncrements(nil)
	assert.Equal(t, before, f.counters(t).EventCount)
}
