package ports

import (
	"context"

	"go-shop/internal/users/domain"
)

// UserRepository defines the interface for user persistence
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id uint) (*domain.User, error)
	SetActive(ctx context.Context, id uint, active bool) error
	List(ctx context.Context) ([]*domain.User, error)
}
