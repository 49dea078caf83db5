package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient initializes a redis client. It returns nil when addr is
// empty so callers can treat Redis as optional.
func NewRedisClient(addr, password string, db int) *redis.Client {
	if addr == "" {
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func RedisGetJSON[T any](ctx context.Context, rdb *redis.Client, key string, dest *T) (bool, error) {
	res, err := rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(res, dest); err != nil {
		return false, err
	}
	return true, nil
}

// setIfNewerScript stores a versioned snapshot unless the watermark in
// KEYS[2] already records a higher version.
// KEYS[1]=value key, KEYS[2]=version key
// ARGV[1]=version, ARGV[2]=value, ARGV[3]=ttl in ms
var setIfNewerScript = redis.NewScript(`
local mark = tonumber(redis.call('GET', KEYS[2]) or '-1')
local v = tonumber(ARGV[1])
if v < mark then
  return 0
end
redis.call('SET', KEYS[2], ARGV[1])
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// RedisSetJSONIfNewer caches value under key only when version is not older
// than the last version written. The version watermark never expires, so a
// slow reader cannot put back a snapshot older than one already cached.
func RedisSetJSONIfNewer(ctx context.Context, rdb *redis.Client, key string, version int64, value interface{}, ttl time.Duration) (bool, error) {
	b, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	res, err := setIfNewerScript.Run(ctx, rdb, []string{key, key + ":version"}, version, b, ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return res == 1, nil
}

func RedisDel(ctx context.Context, rdb *redis.Client, key string) error {
	return rdb.Del(ctx, key).Err()
}
