package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/planning-backend/internal/domain/entity"
	repo "github.com/oksasatya/planning-backend/internal/domain/repository"
	"github.com/oksasatya/planning-backend/pkg/helpers"
	"github.com/oksasatya/planning-backend/pkg/validation"
)

type UserService struct {
	Repo    repo.UserRepository
	JWT     *helpers.JWTManager
	Tracker *ChangeControl
	Logger  *logrus.Logger
}

func NewUserService(repo repo.UserRepository, jwt *helpers.JWTManager, tracker *ChangeControl, logger *logrus.Logger) *UserService {
	if logger == nil {
		logger = helpers.NopLogger()
	}
	return &UserService{Repo: repo, JWT: jwt, Tracker: tracker, Logger: logger}
}

// LoginResponse is returned by POST /connexion.
type LoginResponse struct {
	UserName string `json:"userName"`
	ID       string `json:"id"`
	Token    string `json:"token"`
}

// Signup stores a new account from a payload that passed
// validation.ValidateSignup.
func (s *UserService) Signup(ctx context.Context, in *validation.SignupInput) (*entity.User, error) {
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	u := &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		UserName:  in.UserName,
		IsAdmin:   *in.IsAdmin,
		Password:  hash,
		Date:      time.Now(),
	}
	if in.Date != nil {
		u.Date = in.Date.Time
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	s.Logger.WithField("user_id", u.ID).Info("user created")
	s.Tracker.BumpAsync(entity.KindUser)
	return u, nil
}

// Authenticate validates userName/password and returns the user without issuing a token.
func (s *UserService) Authenticate(ctx context.Context, userName, password string) (*entity.User, error) {
	u, err := s.Repo.GetByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

func (s *UserService) Login(ctx context.Context, userName, password string) (*LoginResponse, error) {
	u, err := s.Authenticate(ctx, userName, password)
	if err != nil {
		return nil, err
	}
	token, _, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		return nil, fmt.Errorf("generate token: %w", err)
	}
	return &LoginResponse{UserName: u.UserName, ID: u.ID, Token: token}, nil
}
