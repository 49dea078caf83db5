package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/planning-backend/config"
	"github.com/oksasatya/planning-backend/internal/container"
	"github.com/oksasatya/planning-backend/internal/domain/entity"
	"github.com/oksasatya/planning-backend/internal/domain/repository"
	"github.com/oksasatya/planning-backend/pkg/helpers"
	"github.com/oksasatya/planning-backend/pkg/validation"
)

// seed creates the bootstrap admin account and the change-control record.
// Every account after the first is created through POST /inscription, which
// already needs a token.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := container.OpenStore(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to open %s store: %v", cfg.StoreDriver, err)
	}
	defer func() { _ = store.Close(context.Background()) }()

	in, err := adminInput(cfg)
	if err != nil {
		log.Fatalf("invalid seed account: %s", validation.FirstMessage(err))
	}

	users := store.Users()
	existing, err := users.GetByUserName(ctx, in.UserName)
	switch {
	case err == nil:
		logger.WithField("userName", existing.UserName).Info("seed user already present")
	case errors.Is(err, repository.ErrNotFound):
		hash, err := helpers.HashPassword(in.Password)
		if err != nil {
			log.Fatalf("failed to hash password: %v", err)
		}
		u := &entity.User{
			FirstName: in.FirstName,
			LastName:  in.LastName,
			UserName:  in.UserName,
			IsAdmin:   true,
			Password:  hash,
			Date:      time.Now(),
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("failed to seed user: %v", err)
		}
		logger.WithField("id", u.ID).WithField("userName", u.UserName).Info("seeded admin user")
	default:
		log.Fatalf("failed to look up seed user: %v", err)
	}

	cc, err := store.ChangeControl().Get(ctx)
	if errors.Is(err, repository.ErrNotFound) {
		cc, err = store.ChangeControl().Increment(ctx, entity.KindUser, time.Now())
	}
	if err != nil {
		log.Fatalf("failed to ensure changecontrol: %v", err)
	}
	logger.WithField("date", cc.Date).Info("changecontrol ready")
}

// adminInput holds the seed account to the rules POST /inscription applies,
// so the admin can log in through /connexion afterwards.
func adminInput(cfg *config.Config) (*validation.SignupInput, error) {
	isAdmin := true
	in := &validation.SignupInput{
		FirstName: cfg.SeedFirstName,
		LastName:  cfg.SeedLastName,
		UserName:  cfg.SeedUserName,
		IsAdmin:   &isAdmin,
		Password:  cfg.SeedPassword,
	}
	if err := validation.ValidateSignup(in); err != nil {
		return nil, err
	}
	return in, nil
}
