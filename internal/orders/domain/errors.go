package domain

import "go-shop/pkg/errors"

// Domain-specific errors
var (
	ErrProductIDRequired   = errors.NewValidation("product_id is required", nil)
	ErrUserIDRequired      = errors.NewValidation("user_id is required", nil)
	ErrInvalidQuantity     = errors.NewValidation("quantity must be greater than 0", nil)
	ErrInvalidPrice        = errors.NewValidation("price cannot be negative", nil)
	ErrInvalidStatus       = errors.NewValidation("unknown order status", nil)
	ErrStatusNotAllowed    = errors.NewValidation("customers may only cancel or return orders", nil)
	ErrRatingOutOfRange    = errors.NewValidation("rating must be between 1 and 5", nil)
	ErrCommentTooShort     = errors.NewValidation("comment must be at least 3 characters", nil)
	ErrCommentNotDelivered = errors.NewState("comments only allowed on delivered orders")
	ErrNoChanges           = errors.NewPersistence("no changes made")
)

// NewOrderNotFound creates a not found error with the order ID
func NewOrderNotFound(id uint) error {
	return errors.NewNotFound("order", id)
}

// NewProductNotFound creates a not found error with the product ID
func NewProductNotFound(id uint) error {
	return errors.NewNotFound("product", id)
}
