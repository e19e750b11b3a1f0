package application

import (
	"context"

	"go-shop/internal/cart/domain"
	"go-shop/internal/cart/ports"
	"go-shop/pkg/errors"
	"go-shop/pkg/logger"

	"go.uber.org/zap"
)

// CartUseCase manages a user's cart and wishlist
type CartUseCase struct {
	cart     ports.CartRepository
	wishlist ports.WishlistRepository
	products ports.ProductChecker
	log      *logger.Logger
}

// NewCartUseCase creates a new cart use case
func NewCartUseCase(
	cart ports.CartRepository,
	wishlist ports.WishlistRepository,
	products ports.ProductChecker,
	log *logger.Logger,
) *CartUseCase {
	return &CartUseCase{
		cart:     cart,
		wishlist: wishlist,
		products: products,
		log:      log,
	}
}

// AddToCartInput represents a cart addition
type AddToCartInput struct {
	UserID    uint
	ProductID uint
	Quantity  int
}

// AddToCart puts a product into the user's cart, replacing the quantity
// if the product is already there
func (uc *CartUseCase) AddToCart(ctx context.Context, input AddToCartInput) error {
	line, err := domain.NewCartLine(input.UserID, input.ProductID, input.Quantity)
	if err != nil {
		return err
	}

	if err := uc.products.Exists(ctx, input.ProductID); err != nil {
		return err
	}

	if err := uc.cart.Upsert(ctx, line); err != nil {
		return errors.NewInternal("failed to add to cart", err)
	}

	uc.log.WithContext(ctx).Info("cart line added",
		zap.Uint("user_id", input.UserID),
		zap.Uint("product_id", input.ProductID),
		zap.Int("quantity", input.Quantity),
	)

	return nil
}

// RemoveFromCart drops a product from the user's cart
func (uc *CartUseCase) RemoveFromCart(ctx context.Context, userID, productID uint) error {
	return uc.cart.Remove(ctx, userID, productID)
}

// GetCart returns the user's active cart lines with product facts
func (uc *CartUseCase) GetCart(ctx context.Context, userID uint) ([]*domain.CartView, error) {
	return uc.cart.ListActive(ctx, userID)
}

// AddToWishlist puts a product on the user's wishlist
func (uc *CartUseCase) AddToWishlist(ctx context.Context, userID, productID uint) error {
	if productID == 0 {
		return domain.ErrProductIDRequired
	}

	if err := uc.products.Exists(ctx, productID); err != nil {
		return err
	}

	exists, err := uc.wishlist.Exists(ctx, userID, productID)
	if err != nil {
		return err
	}
	if exists {
		return domain.ErrAlreadyInWishlist
	}

	item := &domain.WishlistItem{UserID: userID, ProductID: productID}
	if err := uc.wishlist.Add(ctx, item); err != nil {
		return errors.NewInternal("failed to add to wishlist", err)
	}

	uc.log.WithContext(ctx).Info("wishlist item added",
		zap.Uint("user_id", userID),
		zap.Uint("product_id", productID),
	)

	return nil
}

// RemoveFromWishlist drops a product from the user's wishlist
func (uc *CartUseCase) RemoveFromWishlist(ctx context.Context, userID, productID uint) error {
	return uc.wishlist.Remove(ctx, userID, productID)
}

// GetWishlist returns the user's wishlist with product facts
func (uc *CartUseCase) GetWishlist(ctx context.Context, userID uint) ([]*domain.WishlistView, error) {
	return uc.wishlist.List(ctx, userID)
}
