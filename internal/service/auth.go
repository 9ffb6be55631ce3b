package service

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/Skotchmaster/fanshop/internal/apperror"
	"github.com/Skotchmaster/fanshop/internal/events"
	"github.com/Skotchmaster/fanshop/internal/hash"
	"github.com/Skotchmaster/fanshop/internal/logging"
	"github.com/Skotchmaster/fanshop/internal/models"
	"github.com/Skotchmaster/fanshop/internal/repo"
	"github.com/Skotchmaster/fanshop/internal/tokens"
)

const msgInvalidCredentials = "invalid username or password"

type AuthService struct {
	Repo   *repo.GormRepo
	Tokens *tokens.Service
	Events events.Publisher
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	IsAdmin   bool
	UserID    string
}

func (s *AuthService) Register(ctx context.Context, username, password, email string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register", "username", username)

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return nil, apperror.NewInternal("internal server error", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: pwHash,
		Email:        email,
		Role:         models.RoleUser,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, user); err != nil {
		if errors.Is(err, repo.ErrUserAlreadyExist) {
			l.Warn("register_error", "status", 409, "reason", "user already exist")
			return nil, apperror.NewConflict("user already exists", err)
		}
		err = translate(err, "user not found")
		l.Warn("register_error", "reason", "cannot create user", "error", err)
		return nil, err
	}

	s.publish(ctx, events.NewEvent("user_registered", user.ID.String(), user.ID.String(), user.Username))
	l.Info("register_success", "user_id", user.ID)
	return user, nil
}

// Login answers unknown users and wrong passwords identically.
func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			hash.BurnCompare(password)
			l.Warn("login_failed", "status", 401, "reason", "unknown user")
			return nil, apperror.NewUnauthenticated(msgInvalidCredentials, nil)
		}
		l.Error("login_failed", "status", 500, "error", err)
		return nil, apperror.NewInternal("internal server error", err)
	}

	if !hash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "wrong password")
		return nil, apperror.NewUnauthenticated(msgInvalidCredentials, nil)
	}

	token, exp, err := s.Tokens.Issue(user.ID.String(), user.IsAdmin())
	if err != nil {
		l.Error("login_failed", "status", 500, "reason", "cannot sign token", "error", err)
		return nil, apperror.NewInternal("internal server error", err)
	}

	l.Info("login_success", "user_id", user.ID)
	return &LoginResult{
		Token:     token,
		ExpiresAt: exp,
		IsAdmin:   user.IsAdmin(),
		UserID:    user.ID.String(),
	}, nil
}

// EnsureAdmin makes sure the configured administrator exists with the admin
// role. An existing user keeps its password.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password, email string) error {
	l := logging.FromContext(ctx).With("svc", "auth.ensure_admin", "username", username)

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return err
	}
	created, err := s.Repo.EnsureAdmin(ctx, &models.User{
		Username:     username,
		PasswordHash: pwHash,
		Email:        email,
	})
	if err != nil {
		l.Error("ensure_admin_error", "error", err)
		return err
	}
	l.Info("ensure_admin_success", "created", created)
	return nil
}

func (s *AuthService) publish(ctx context.Context, ev events.Event) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Publish(ctx, events.TopicUsers, ev.ID, ev); err != nil {
		logging.FromContext(ctx).Error("kafka_publish_error", "topic", events.TopicUsers, "type", ev.Type, "error", err)
	}
}
