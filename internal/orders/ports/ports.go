package ports

import (
	"context"

	"go-shop/internal/orders/domain"
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	// Create creates a new order
	Create(ctx context.Context, order *domain.Order) error

	// GetByID retrieves an order by ID regardless of owner
	GetByID(ctx context.Context, id uint) (*domain.Order, error)

	// GetOwned retrieves an active order owned by the given user.
	// Missing, inactive and foreign orders are indistinguishable to
	// the caller: all return not found.
	GetOwned(ctx context.Context, id, userID uint) (*domain.Order, error)

	// UpdateStatus overwrites the stored status. A write that affects
	// zero rows returns domain.ErrNoChanges.
	UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error

	// SetActive flips the soft-delete flag
	SetActive(ctx context.Context, id uint, active bool) error

	// ListByUser retrieves the active orders of a user, newest first
	ListByUser(ctx context.Context, userID uint) ([]*domain.OrderSummary, error)

	// ListAll retrieves all orders for the admin console, newest first
	ListAll(ctx context.Context) ([]*domain.OrderSummary, error)
}

// RatingStore applies a rating to an order and folds it into the
// product aggregate in a single transaction
type RatingStore interface {
	// ApplyRating persists the order rating and the recomputed product
	// aggregate, returning the aggregate as stored
	ApplyRating(ctx context.Context, orderID uint, rating int) (domain.RatingAggregate, error)
}

// CommentRepository defines the interface for comment persistence
type CommentRepository interface {
	// Create inserts a new comment
	Create(ctx context.Context, comment *domain.Comment) error
}

// EventPublisher defines the interface for publishing lifecycle events
type EventPublisher interface {
	// PublishOrderPlaced publishes an order placed event
	PublishOrderPlaced(ctx context.Context, order *domain.Order) error

	// PublishStatusChanged publishes a status change event
	PublishStatusChanged(ctx context.Context, order *domain.Order, oldStatus, newStatus domain.OrderStatus, actor domain.Actor) error

	// PublishOrderRated publishes a rating event
	PublishOrderRated(ctx context.Context, order *domain.Order, rating int, average float64) error
}

// CartLine is the slice of a cart entry checkout needs
type CartLine struct {
	ID        uint
	ProductID uint
	Quantity  int
}

// CartReader gives checkout access to the customer's cart
type CartReader interface {
	// ActiveLines returns the user's active cart lines for the given
	// products
	ActiveLines(ctx context.Context, userID uint, productIDs []uint) ([]CartLine, error)

	// Deactivate soft-removes a cart line after checkout
	Deactivate(ctx context.Context, lineID uint) error
}

// ProductInfo is the catalog view checkout needs
type ProductInfo struct {
	ID       uint
	Name     string
	Price    float64
	Discount float64
	Stock    int
	IsActive bool
}

// ProductCatalog gives checkout access to product pricing and stock
type ProductCatalog interface {
	// Get retrieves a product by ID
	Get(ctx context.Context, productID uint) (*ProductInfo, error)

	// DecrementStock reduces stock by the ordered quantity
	DecrementStock(ctx context.Context, productID uint, quantity int) error
}
