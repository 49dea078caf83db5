package container

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planning-backend/config"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
	"github.com/oksasatya/planning-backend/internal/infrastructure/memory"
	"github.com/oksasatya/planning-backend/internal/infrastructure/mongodb"
	pginfra "github.com/oksasatya/planning-backend/internal/infrastructure/postgres"
)

// OpenStore connects the persistence backend named by cfg.StoreDriver and
// prepares its schema: migrations for postgres, indexes for mongo.
func OpenStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repository.Store, error) {
	switch cfg.StoreDriver {
	case "postgres":
		pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return nil, err
		}
		if err := pginfra.RunMigrations(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrate: %w", err)
		}
		return pginfra.NewStore(pool), nil
	case "mongo", "mongodb":
		client, err := mongodb.NewClient(ctx, cfg.MongoURI)
		if err != nil {
			return nil, err
		}
		store := mongodb.NewStore(client, cfg.MongoDB)
		if err := store.EnsureIndexes(ctx); err != nil {
			_ = store.Close(ctx)
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		return store, nil
	case "memory":
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}
