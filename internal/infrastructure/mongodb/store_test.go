package mongodb

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
)

func TestIncrementUpdate(t *testing.T) {
	at := time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)

	update, err := incrementUpdate(entity.KindComment, at)
	require.NoError(t, err)
	assert.Equal(t, bson.M{"commentCount": 1}, update["$inc"])
	assert.Equal(t, bson.M{"date": at}, update["$set"])

	_, err = incrementUpdate(entity.Kind(9), at)
	assert.Error(t, err)
}

func TestMapErr(t *testing.T) {
	assert.NoError(t, mapErr(nil))
	assert.ErrorIs(t, mapErr(mongo.ErrNoDocuments), repository.ErrNotFound)

	dup := mongo.WriteException{WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key"}}}
	assert.ErrorIs(t, mapErr(dup), repository.ErrDuplicate)

	other := errors.New("server selection timeout")
	assert.Equal(t, other, mapErr(other))
}

func TestNewKeyIsObjectIDHex(t *testing.T) {
	k := newKey()
	_, err := primitive.ObjectIDFromHex(k)
	assert.NoError(t, err)
	assert.NotEqual(t, k, newKey())
}
