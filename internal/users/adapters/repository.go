package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go-shop/internal/users/domain"
	apperrors "go-shop/pkg/errors"
)

// UserModel is the GORM model for users
type UserModel struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"size:255;not null"`
	Email        string    `gorm:"size:255;not null;uniqueIndex"`
	PasswordHash string    `gorm:"size:255;not null"`
	Role         string    `gorm:"size:20;not null;default:'customer'"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (UserModel) TableName() string {
	return "users"
}

// PostgresUserRepository implements UserRepository using PostgreSQL
type PostgresUserRepository struct {
	db *gorm.DB
}

// NewPostgresUserRepository creates a new PostgreSQL user repository
func NewPostgresUserRepository(db *gorm.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// Migrate runs auto-migration for the user model
func (r *PostgresUserRepository) Migrate() error {
	return r.db.AutoMigrate(&UserModel{})
}

// Create creates a new user
func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	model := toModel(user)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return domain.ErrEmailTaken
		}
		return result.Error
	}

	user.ID = model.ID
	user.CreatedAt = model.CreatedAt
	user.UpdatedAt = model.UpdatedAt

	return nil
}

// GetByEmail retrieves a user by email
func (r *PostgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).Where("email = ?", email).First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("user", email)
		}
		return nil, apperrors.NewInternal("failed to get user", result.Error)
	}

	return toDomain(&model), nil
}

// GetByID retrieves a user by ID
func (r *PostgresUserRepository) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var model UserModel

	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewUserNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get user", result.Error)
	}

	return toDomain(&model), nil
}

// SetActive flips the account's enabled flag
func (r *PostgresUserRepository) SetActive(ctx context.Context, id uint, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return apperrors.NewInternal("failed to update user", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewPersistence("no changes made")
	}
	return nil
}

// List retrieves every user, newest first
func (r *PostgresUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var models []UserModel

	result := r.db.WithContext(ctx).Order("created_at DESC").Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to list users", result.Error)
	}

	users := make([]*domain.User, len(models))
	for i := range models {
		users[i] = toDomain(&models[i])
	}

	return users, nil
}

// toModel converts a domain entity to a GORM model
func toModel(user *domain.User) *UserModel {
	return &UserModel{
		ID:           user.ID,
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Role:         user.Role,
		IsActive:     user.IsActive,
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// toDomain converts a GORM model to a domain entity
func toDomain(model *UserModel) *domain.User {
	return &domain.User{
		ID:           model.ID,
		Name:         model.Name,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Role:         model.Role,
		IsActive:     model.IsActive,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}
