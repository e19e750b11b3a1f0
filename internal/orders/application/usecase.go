package application

import (
	"context"

	"go-shop/internal/orders/domain"
	"go-shop/internal/orders/ports"
	"go-shop/pkg/errors"
	"go-shop/pkg/logger"

	"go.uber.org/zap"
)

// OrderUseCase is the order lifecycle manager: it validates and applies
// status transitions, keeps rating changes consistent with the product
// aggregate, gates comments on delivery and turns cart lines into
// orders at checkout.
type OrderUseCase struct {
	repo      ports.OrderRepository
	ratings   ports.RatingStore
	comments  ports.CommentRepository
	cart      ports.CartReader
	catalog   ports.ProductCatalog
	publisher ports.EventPublisher
	log       *logger.Logger
}

// NewOrderUseCase creates a new order use case
func NewOrderUseCase(
	repo ports.OrderRepository,
	ratings ports.RatingStore,
	comments ports.CommentRepository,
	cart ports.CartReader,
	catalog ports.ProductCatalog,
	publisher ports.EventPublisher,
	log *logger.Logger,
) *OrderUseCase {
	return &OrderUseCase{
		repo:      repo,
		ratings:   ratings,
		comments:  comments,
		cart:      cart,
		catalog:   catalog,
		publisher: publisher,
		log:       log,
	}
}

// UpdateStatusInput represents a customer-side status change request
type UpdateStatusInput struct {
	OrderID uint
	UserID  uint
	Status  string
}

// UpdateStatusAsCustomer applies a status change on behalf of the
// order's owner. Customers may only cancel or return; the allow-list is
// checked before any read or write, and ownership failures surface as
// not found.
func (uc *OrderUseCase) UpdateStatusAsCustomer(ctx context.Context, input UpdateStatusInput) error {
	status, err := domain.ParseStatus(input.Status)
	if err != nil {
		return err
	}
	if !status.CustomerSettable() {
		return domain.ErrStatusNotAllowed
	}

	order, err := uc.repo.GetOwned(ctx, input.OrderID, input.UserID)
	if err != nil {
		return err
	}

	oldStatus := order.Status
	if err := uc.repo.UpdateStatus(ctx, order.ID, status); err != nil {
		return err
	}

	uc.publishStatusChanged(ctx, order, oldStatus, status, domain.ActorCustomer)

	uc.log.WithContext(ctx).Info("order status updated",
		zap.Uint("order_id", order.ID),
		zap.String("old_status", string(oldStatus)),
		zap.String("new_status", string(status)),
		zap.String("actor", string(domain.ActorCustomer)),
	)

	return nil
}

// AdminUpdateInput represents an admin-side order change. Status and
// IsActive are both optional; at least one must be present.
type AdminUpdateInput struct {
	OrderID  uint
	Status   *string
	IsActive *bool
}

// UpdateStatusAsAdmin applies an order change from the admin console.
// Any enum value is accepted on any existing order; there is no
// ownership check and no previous-state guard.
func (uc *OrderUseCase) UpdateStatusAsAdmin(ctx context.Context, input AdminUpdateInput) error {
	if input.Status == nil && input.IsActive == nil {
		return errors.NewValidation("nothing to update", nil)
	}

	order, err := uc.repo.GetByID(ctx, input.OrderID)
	if err != nil {
		return err
	}

	if input.Status != nil {
		status, err := domain.ParseStatus(*input.Status)
		if err != nil {
			return err
		}

		oldStatus := order.Status
		if err := uc.repo.UpdateStatus(ctx, order.ID, status); err != nil {
			return err
		}

		uc.publishStatusChanged(ctx, order, oldStatus, status, domain.ActorAdmin)

		uc.log.WithContext(ctx).Info("order status updated",
			zap.Uint("order_id", order.ID),
			zap.String("old_status", string(oldStatus)),
			zap.String("new_status", string(status)),
			zap.String("actor", string(domain.ActorAdmin)),
		)
	}

	if input.IsActive != nil {
		if err := uc.repo.SetActive(ctx, order.ID, *input.IsActive); err != nil {
			return err
		}
	}

	return nil
}

// RatingInput represents a rating submission
type RatingInput struct {
	OrderID uint
	UserID  uint
	Rating  int
}

// RatingOutput reports the aggregate as stored after the submission
type RatingOutput struct {
	Aggregate domain.RatingAggregate
}

// SubmitRating records a rating on an order and recomputes the product
// aggregate. Validation happens before any read; the aggregate
// recompute itself is transactional in the store.
func (uc *OrderUseCase) SubmitRating(ctx context.Context, input RatingInput) (*RatingOutput, error) {
	if err := domain.ValidateRating(input.Rating); err != nil {
		return nil, err
	}

	order, err := uc.repo.GetOwned(ctx, input.OrderID, input.UserID)
	if err != nil {
		return nil, err
	}

	aggregate, err := uc.ratings.ApplyRating(ctx, order.ID, input.Rating)
	if err != nil {
		return nil, err
	}

	if uc.publisher != nil {
		if err := uc.publisher.PublishOrderRated(ctx, order, input.Rating, aggregate.AverageRating); err != nil {
			uc.log.WithContext(ctx).Error("failed to publish order rated event",
				zap.Error(err),
				zap.Uint("order_id", order.ID),
			)
		}
	}

	uc.log.WithContext(ctx).Info("order rated",
		zap.Uint("order_id", order.ID),
		zap.Uint("product_id", order.ProductID),
		zap.Int("rating", input.Rating),
		zap.Float64("average_rating", aggregate.AverageRating),
	)

	return &RatingOutput{Aggregate: aggregate}, nil
}

// CommentInput represents a comment submission
type CommentInput struct {
	OrderID uint
	UserID  uint
	Text    string
}

// AddComment attaches a comment to a delivered order. Non-delivered
// orders are rejected with a state error callers can branch on.
func (uc *OrderUseCase) AddComment(ctx context.Context, input CommentInput) (*domain.Comment, error) {
	order, err := uc.repo.GetOwned(ctx, input.OrderID, input.UserID)
	if err != nil {
		return nil, err
	}

	comment, err := domain.NewComment(order, input.UserID, input.Text)
	if err != nil {
		return nil, err
	}

	if err := uc.comments.Create(ctx, comment); err != nil {
		return nil, errors.NewInternal("failed to create comment", err)
	}

	uc.log.WithContext(ctx).Info("comment added",
		zap.Uint("order_id", order.ID),
		zap.Uint("product_id", order.ProductID),
		zap.Uint("comment_id", comment.ID),
	)

	return comment, nil
}

// CheckoutInput represents a checkout request
type CheckoutInput struct {
	UserID     uint
	ProductIDs []uint
}

// CheckoutOutput lists the orders created by a checkout
type CheckoutOutput struct {
	Orders []*domain.Order
}

// Checkout turns the user's active cart lines for the given products
// into pending orders, snapshotting price minus discount per line.
// Stock is verified for every line before anything is written.
func (uc *OrderUseCase) Checkout(ctx context.Context, input CheckoutInput) (*CheckoutOutput, error) {
	if len(input.ProductIDs) == 0 {
		return nil, errors.NewValidation("no products selected", nil)
	}

	lines, err := uc.cart.ActiveLines(ctx, input.UserID, input.ProductIDs)
	if err != nil {
		return nil, err
	}
	if len(lines) != len(input.ProductIDs) {
		return nil, errors.NewValidation("one or more products are not in your cart", nil)
	}

	// Verify stock for the whole checkout before the first write
	products := make(map[uint]*ports.ProductInfo, len(lines))
	for _, line := range lines {
		product, err := uc.catalog.Get(ctx, line.ProductID)
		if err != nil {
			return nil, err
		}
		if !product.IsActive {
			return nil, domain.NewProductNotFound(line.ProductID)
		}
		if line.Quantity > product.Stock {
			return nil, errors.NewValidation("not enough stock for "+product.Name, nil)
		}
		products[line.ProductID] = product
	}

	orders := make([]*domain.Order, 0, len(lines))
	for _, line := range lines {
		product := products[line.ProductID]

		order, err := domain.NewOrder(product.ID, input.UserID, product.Price-product.Discount, line.Quantity)
		if err != nil {
			return nil, err
		}

		if err := uc.repo.Create(ctx, order); err != nil {
			return nil, errors.NewInternal("failed to create order", err)
		}
		if err := uc.catalog.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
			return nil, err
		}
		if err := uc.cart.Deactivate(ctx, line.ID); err != nil {
			return nil, err
		}

		if uc.publisher != nil {
			if err := uc.publisher.PublishOrderPlaced(ctx, order); err != nil {
				uc.log.WithContext(ctx).Error("failed to publish order placed event",
					zap.Error(err),
					zap.Uint("order_id", order.ID),
				)
			}
		}

		orders = append(orders, order)
	}

	uc.log.WithContext(ctx).Info("checkout completed",
		zap.Uint("user_id", input.UserID),
		zap.Int("orders", len(orders)),
	)

	return &CheckoutOutput{Orders: orders}, nil
}

// ListOrders retrieves the active orders of a user
func (uc *OrderUseCase) ListOrders(ctx context.Context, userID uint) ([]*domain.OrderSummary, error) {
	return uc.repo.ListByUser(ctx, userID)
}

// ListAllOrders retrieves every order for the admin console
func (uc *OrderUseCase) ListAllOrders(ctx context.Context) ([]*domain.OrderSummary, error) {
	return uc.repo.ListAll(ctx)
}

func (uc *OrderUseCase) publishStatusChanged(ctx context.Context, order *domain.Order, oldStatus, newStatus domain.OrderStatus, actor domain.Actor) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.PublishStatusChanged(ctx, order, oldStatus, newStatus, actor); err != nil {
		uc.log.WithContext(ctx).Error("failed to publish status changed event",
			zap.Error(err),
			zap.Uint("order_id", order.ID),
		)
	}
}
