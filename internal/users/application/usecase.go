package application

import (
	"context"
	"strings"

	"go-shop/internal/users/domain"
	"go-shop/internal/users/ports"
	"go-shop/pkg/errors"
	"go-shop/pkg/logger"

	"go.uber.org/zap"
)

// UserUseCase handles account registration, login and the admin user
// listing
type UserUseCase struct {
	repo ports.UserRepository
	log  *logger.Logger
}

// NewUserUseCase creates a new user use case
func NewUserUseCase(repo ports.UserRepository, log *logger.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, log: log}
}

// RegisterInput represents a registration request
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates a customer account
func (uc *UserUseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	user, err := domain.NewUser(input.Name, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	if existing, err := uc.repo.GetByEmail(ctx, user.Email); err == nil && existing != nil {
		return nil, domain.ErrEmailTaken
	}

	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, errors.NewInternal("failed to create user", err)
	}

	uc.log.WithContext(ctx).Info("user registered",
		zap.Uint("user_id", user.ID),
	)

	return user, nil
}

// LoginInput represents a login request
type LoginInput struct {
	Email    string
	Password string
	Role     string
}

// Login verifies credentials and, when a role is given, that the
// account carries it. A bad email and a bad password are
// indistinguishable to the caller.
func (uc *UserUseCase) Login(ctx context.Context, input LoginInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))

	user, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.CheckPassword(input.Password) {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrAccountDisabled
	}
	if input.Role != "" && user.Role != input.Role {
		return nil, domain.ErrInvalidCredentials
	}

	uc.log.WithContext(ctx).Info("user logged in",
		zap.Uint("user_id", user.ID),
		zap.String("role", user.Role),
	)

	return user, nil
}

// ListUsers returns every account for the admin console
func (uc *UserUseCase) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return uc.repo.List(ctx)
}

// SetUserActive flips the account's enabled flag from the admin console
func (uc *UserUseCase) SetUserActive(ctx context.Context, id uint, active bool) error {
	if _, err := uc.repo.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.repo.SetActive(ctx, id, active); err != nil {
		return err
	}

	uc.log.WithContext(ctx).Info("user active flag changed",
		zap.Uint("user_id", id),
		zap.Bool("active", active),
	)

	return nil
}
