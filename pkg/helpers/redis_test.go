package helpers

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	N int64 `json:"n"`
}

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestNewRedisClient_EmptyAddr(t *testing.T) {
	assert.Nil(t, NewRedisClient("", "", 0))
}

func TestRedisSetJSONIfNewer(t *testing.T) {
	mr, rdb := newTestRedis(t)
	ctx := context.Background()

	ok, err := RedisSetJSONIfNewer(ctx, rdb, "k", 2, snapshot{N: 2}, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = RedisSetJSONIfNewer(ctx, rdb, "k", 1, snapshot{N: 1}, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok, "older snapshot must not replace a newer one")

	var got snapshot
	found, err := RedisGetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(2), got.N)

	// the value expires, the watermark does not
	mr.FastForward(2 * time.Minute)
	found, err = RedisGetJSON(ctx, rdb, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	ok, err = RedisSetJSONIfNewer(ctx, rdb, "k", 1, snapshot{N: 1}, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = RedisSetJSONIfNewer(ctx, rdb, "k", 3, snapshot{N: 3}, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
	require.NoError(t, RedisDel(ctx, rdb, "k"))
	assert.False(t, mr.Exists("k"))
}
