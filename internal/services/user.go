package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/arjohnson15/workoutapp/internal/auth"
	"github.com/arjohnson15/workoutapp/internal/store"
	"github.com/arjohnson15/workoutapp/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByUsername(ctx context.Context, username string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// TokenIssuer signs identity tokens.
type TokenIssuer interface {
	Issue(userID int, username string) (string, error)
}

// UserService encapsulates account use-cases.
type UserService struct {
	repo       UserRepository
	settings   SettingsRepository
	tokens     TokenIssuer
	bcryptCost int
	now        func() time.Time
}

func NewUserService(repo UserRepository, settings SettingsRepository, tokens TokenIssuer, bcryptCost int) *UserService {
	return &UserService{
		repo:       repo,
		settings:   settings,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		now:        time.Now,
	}
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

// Register creates an account and materializes its default settings.
// The two writes are independent: a settings failure is logged and the
// settings are created lazily on first access instead.
func (s *UserService) Register(ctx context.Context, username, password string) (types.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return types.User{}, ErrMissingCredentials
	}

	if _, err := s.repo.GetByUsername(ctx, username); err == nil {
		return types.User{}, store.ErrDuplicateUsername
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, fmt.Errorf("check username: %w", err)
	}

	hashed, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return types.User{}, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, types.User{
		Username:     username,
		PasswordHash: hashed,
		CreatedAt:    s.now().UTC(),
	})
	if err != nil {
		return types.User{}, err
	}

	if s.settings != nil {
		if _, err := s.settings.GetOrCreate(ctx, user.ID, types.DefaultSettings(user.ID)); err != nil {
			log.WithError(err).Warnf("create default settings for user %d", user.ID)
		}
	}
	return user, nil
}

// Login verifies the credentials and returns a signed token.
func (s *UserService) Login(ctx context.Context, username, password string) (string, types.User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", types.User{}, ErrInvalidCredentials
		}
		return "", types.User{}, err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", types.User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return "", types.User{}, err
	}
	return token, user, nil
}
