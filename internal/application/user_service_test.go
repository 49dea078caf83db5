package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/planning-backend/internal/infrastructure/memory"
	"github.com/oksasatya/planning-backend/pkg/helpers"
	"github.com/oksasatya/planning-backend/pkg/validation"
)

func boolPtr(b bool) *bool { return &b }

func newUserService(t *testing.T) (*UserService, *memory.Store, *ChangeControl) {
	t.Helper()
	store := memory.NewStore()
	tracker := newTracker(store, nil)
	svc := NewUserService(store.Users(), helpers.NewJWTManager("test-secret", time.Hour), tracker, nil)
	return svc, store, tracker
}

func signupInput(userName string) *validation.SignupInput {
	return &validation.SignupInput{
		FirstName: "Ada",
		LastName:  "Lovelace",
		UserName:  userName,
		IsAdmin:   boolPtr(false),
		Password:  "1234",
	}
}

func TestUserService_SignupHashesAndBumps(t *testing.T) {
	svc, store, tracker := newUserService(t)
	ctx := context.Background()

	u, err := svc.Signup(ctx, signupInput("ada"))
	require.NoError(t, err)
	tracker.Wait()

	stored, err := store.Users().GetByUserName(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, u.ID, stored.ID)
	assert.NotEqual(t, "1234", stored.Password)
	assert.True(t, helpers.CompareHashAndPassword(stored.Password, "1234"))
	assert.False(t, stored.Date.IsZero())

	cc, err := store.ChangeControl().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cc.UserCount)
}

func TestUserService_SignupKeepsGivenDate(t *testing.T) {
	svc, _, tracker := newUserService(t)
	in := signupInput("grace")
	date := time.Date(2020, 2, 2, 0, 0, 0, 0, time.UTC)
	in.Date = &validation.Time{Time: date}

	u, err := svc.Signup(context.Background(), in)
	require.NoError(t, err)
	tracker.Wait()
	assert.Equal(t, date, u.Date)
}

func TestUserService_SignupDuplicate(t *testing.T) {
	svc, store, tracker := newUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput("ada"))
	require.NoError(t, err)
	_, err = svc.Signup(ctx, signupInput("ada"))
	assert.ErrorIs(t, err, ErrUserExists)
	tracker.Wait()

	cc, err := store.ChangeControl().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), cc.UserCount, "failed signup must not bump")
}

func TestUserService_Login(t *testing.T) {
	svc, _, tracker := newUserService(t)
	ctx := context.Background()
	u, err := svc.Signup(ctx, signupInput("ada"))
	require.NoError(t, err)
	tracker.Wait()

	res, err := svc.Login(ctx, "ada", "1234")
	require.NoError(t, err)
	assert.Equal(t, "ada", res.UserName)
	assert.Equal(t, u.ID, res.ID)

	claims, err := svc.JWT.ParseToken(res.Token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, claims.UserID)

	_, err = svc.Login(ctx, "ada", "4321")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "bob", "1234")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
