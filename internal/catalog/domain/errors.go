package domain

import "go-shop/pkg/errors"

// Domain-specific errors
var (
	ErrNameRequired     = errors.NewValidation("name is required", nil)
	ErrInvalidPrice     = errors.NewValidation("price cannot be negative", nil)
	ErrInvalidDiscount  = errors.NewValidation("discount must be between 0 and the price", nil)
	ErrInvalidQuantity  = errors.NewValidation("quantity cannot be negative", nil)
	ErrCategoryRequired = errors.NewValidation("category_id is required", nil)
	ErrNoChanges        = errors.NewPersistence("no changes made")
)

// NewProductNotFound creates a not found error with the product ID
func NewProductNotFound(id uint) error {
	return errors.NewNotFound("product", id)
}

// NewCategoryNotFound creates a not found error with the category ID
func NewCategoryNotFound(id uint) error {
	return errors.NewNotFound("category", id)
}
