package domain

import "go-shop/pkg/errors"

// Domain-specific errors
var (
	ErrUserIDRequired    = errors.NewValidation("user_id is required", nil)
	ErrProductIDRequired = errors.NewValidation("product_id is required", nil)
	ErrInvalidQuantity   = errors.NewValidation("quantity must be greater than 0", nil)
	ErrAlreadyInWishlist = errors.NewConflict("product already in wishlist")
)

// NewLineNotFound creates a not found error with the cart line ID
func NewLineNotFound(id uint) error {
	return errors.NewNotFound("cart item", id)
}

// NewWishlistItemNotFound creates a not found error with the item ID
func NewWishlistItemNotFound(id uint) error {
	return errors.NewNotFound("wishlist item", id)
}
