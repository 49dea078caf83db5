package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(pgx.ErrNoRows), repository.ErrNotFound)
	assert.ErrorIs(t, mapErr(fmt.Errorf("scan: %w", pgx.ErrNoRows)), repository.ErrNotFound)

	dup := &pgconn.PgError{Code: uniqueViolation, ConstraintName: "users_user_name_key"}
	err := mapErr(dup)
	assert.ErrorIs(t, err, repository.ErrDuplicate)
	var pgErr *pgconn.PgError
	require.ErrorAs(t, err, &pgErr)
	assert.Equal(t, "users_user_name_key", pgErr.ConstraintName)

	badKey := &pgconn.PgError{Code: invalidTextRepresentation, Message: `invalid input syntax for type uuid: "e1"`}
	assert.ErrorIs(t, mapErr(badKey), repository.ErrNotFound)

	other := errors.New("connection reset")
	assert.Equal(t, other, mapErr(other))
}

func TestCounterColumn(t *testing.T) {
	want := map[entity.Kind]string{
		entity.KindUser:    "user_count",
		entity.KindEvent:   "event_count",
		entity.KindAlert:   "alert_count",
		entity.KindComment: "comment_count",
	}
	for _, k := range entity.Kinds {
		col, err := counterColumn(k)
		require.NoError(t, err)
		assert.Equal(t, want[k], col)
	}
	_, err := counterColumn(entity.Kind(0))
	assert.Error(t, err)
}

func TestNullTimeAndNonNil(t *testing.T) {
	assert.Nil(t, nullTime(time.Time{}))
	now := time.Now()
	require.NotNil(t, nullTime(now))
	assert.Equal(t, now, *nullTime(now))

	assert.Equal(t, []string{}, nonNil(nil))
	assert.Equal(t, []string{"a"}, nonNil([]string{"a"}))
}
