package application

import (
	"context"
	"encoding/json"
	"errors"
	"expvar"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
	"github.com/oksasatya/planning-backend/pkg/helpers"
)

const (
	changeControlCacheKey = "changecontrol:current"
	defaultBumpTimeout    = 10 * time.Second
)

var bumpFailures = expvar.NewInt("changecontrol_bump_failures")

// BumpMessage is the queue payload asking a worker to bump one counter.
type BumpMessage struct {
	Kind        entity.Kind `json:"kind"`
	RequestedAt time.Time   `json:"requestedAt"`
}

// CheckResult answers a polling client.
type CheckResult struct {
	HasUpdate     bool                 `json:"hasUpdate"`
	ChangeControl entity.ChangeControl `json:"changeControl"`
}

// ChangeControl tracks the singleton change-control record. Bumps triggered
// by writes are detached from the request: their failures are logged and
// counted, never returned.
type ChangeControl struct {
	Repo      repository.ChangeControlRepository
	Redis     *redis.Client
	CacheTTL  time.Duration
	Publisher Publisher
	Queue     string
	Logger    *logrus.Logger
	Timeout   time.Duration

	wg  sync.WaitGroup
	now func() time.Time
}

func NewChangeControl(repo repository.ChangeControlRepository, rdb *redis.Client, cacheTTL time.Duration, pub Publisher, queue string, logger *logrus.Logger) *ChangeControl {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &ChangeControl{
		Repo:      repo,
		Redis:     rdb,
		CacheTTL:  cacheTTL,
		Publisher: pub,
		Queue:     queue,
		Logger:    logger,
		Timeout:   defaultBumpTimeout,
		now:       time.Now,
	}
}

// Bump increments the counter of kind and refreshes the record date. The
// returned record replaces the cached one.
func (c *ChangeControl) Bump(ctx context.Context, kind entity.Kind) (*entity.ChangeControl, error) {
	cc, err := c.Repo.Increment(ctx, kind, c.clock())
	if err != nil {
		return nil, fmt.Errorf("bump %s: %w", kind, err)
	}
	if c.cacheEnabled() {
		if _, err := helpers.RedisSetJSONIfNewer(ctx, c.Redis, changeControlCacheKey, cc.Version(), cc, c.CacheTTL); err != nil {
			c.Logger.WithError(err).Warn("changecontrol cache update failed; evicting")
			if err := helpers.RedisDel(ctx, c.Redis, changeControlCacheKey); err != nil {
				c.Logger.WithError(err).Warn("changecontrol cache invalidation failed")
			}
		}
	}
	return cc, nil
}

// BumpAsync schedules a bump and returns immediately. With a publisher the
// bump is queued for cmd/changecontrol_worker; if publishing fails, or there
// is no publisher, it is applied in process.
func (c *ChangeControl) BumpAsync(kind entity.Kind) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), c.bumpTimeout())
		defer cancel()

		if c.Publisher != nil {
			msg := BumpMessage{Kind: kind, RequestedAt: c.clock()}
			err := c.Publisher.PublishJSONTo(ctx, c.Queue, msg)
			if err == nil {
				return
			}
			c.Logger.WithError(err).WithField("kind", kind.String()).Warn("publish changecontrol bump failed; applying locally")
		}
		if _, err := c.Bump(ctx, kind); err != nil {
			bumpFailures.Add(1)
			c.Logger.WithError(err).WithField("kind", kind.String()).Error("changecontrol bump failed")
		}
	}()
}

// ErrBadBumpMessage marks a queued bump that can never succeed.
var ErrBadBumpMessage = errors.New("bad changecontrol message")

// HandleBumpMessage applies one queued BumpMessage. The record date is the
// time the bump is applied, so a backlog never moves it backwards.
func (c *ChangeControl) HandleBumpMessage(ctx context.Context, body []byte) error {
	var msg BumpMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return fmt.Errorf("%w: %v", ErrBadBumpMessage, err)
	}
	if !msg.Kind.Valid() {
		return fmt.Errorf("%w: missing kind", ErrBadBumpMessage)
	}
	_, err := c.Bump(ctx, msg.Kind)
	return err
}

// Wait blocks until every bump started by BumpAsync has finished.
func (c *ChangeControl) Wait() {
	c.wg.Wait()
}

// Check reports whether the record changed strictly after lastSeen.
func (c *ChangeControl) Check(ctx context.Context, lastSeen time.Time) (*CheckResult, error) {
	cc, err := c.current(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("load changecontrol: %w", err)
	}
	return &CheckResult{HasUpdate: cc.ChangedSince(lastSeen), ChangeControl: *cc}, nil
}

func (c *ChangeControl) cacheEnabled() bool {
	return c.Redis != nil && c.CacheTTL > 0
}

// current reads through the cache. A refill loses to any newer snapshot a
// concurrent Bump has cached in the meantime.
func (c *ChangeControl) current(ctx context.Context) (*entity.ChangeControl, error) {
	if c.cacheEnabled() {
		var cached entity.ChangeControl
		ok, err := helpers.RedisGetJSON(ctx, c.Redis, changeControlCacheKey, &cached)
		if err != nil {
			c.Logger.WithError(err).Warn("changecontrol cache read failed")
		} else if ok {
			return &cached, nil
		}
	}
	cc, err := c.Repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	if c.cacheEnabled() {
		if _, err := helpers.RedisSetJSONIfNewer(ctx, c.Redis, changeControlCacheKey, cc.Version(), cc, c.CacheTTL); err != nil {
			c.Logger.WithError(err).Warn("changecontrol cache write failed")
		}
	}
	return cc, nil
}

func (c *ChangeControl) clock() time.Time {
	if c.now == nil {
		return time.Now()
	}
	return c.now()
}

func (c *ChangeControl) bumpTimeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultBumpTimeout
	}
	return c.Timeout
}
