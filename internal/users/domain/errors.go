package domain

import "go-shop/pkg/errors"

// Domain-specific errors
var (
	ErrNameRequired       = errors.NewValidation("name is required", nil)
	ErrInvalidEmail       = errors.NewValidation("a valid email is required", nil)
	ErrPasswordTooShort   = errors.NewValidation("password must be at least 8 characters", nil)
	ErrEmailTaken         = errors.NewConflict("email already registered")
	ErrInvalidCredentials = errors.NewUnauthorized("invalid email or password")
	ErrAccountDisabled    = errors.NewUnauthorized("account is disabled")
)

// NewUserNotFound creates a not found error with the user ID
func NewUserNotFound(id uint) error {
	return errors.NewNotFound("user", id)
}
