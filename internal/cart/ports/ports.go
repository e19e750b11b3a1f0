package ports

import (
	"context"

	"go-shop/internal/cart/domain"
)

// CartRepository defines the interface for cart persistence
type CartRepository interface {
	Upsert(ctx context.Context, line *domain.CartLine) error
	Remove(ctx context.Context, userID, productID uint) error
	ListActive(ctx context.Context, userID uint) ([]*domain.CartView, error)
}

// WishlistRepository defines the interface for wishlist persistence
type WishlistRepository interface {
	Add(ctx context.Context, item *domain.WishlistItem) error
	Remove(ctx context.Context, userID, productID uint) error
	List(ctx context.Context, userID uint) ([]*domain.WishlistView, error)
	Exists(ctx context.Context, userID, productID uint) (bool, error)
}

// ProductChecker verifies a product exists and is purchasable before it
// enters a cart or wishlist
type ProductChecker interface {
	Exists(ctx context.Context, productID uint) error
}
