package domain

import (
	"time"
)

// OrderStatus represents the status of an order.
//
// The intended forward path is
// Pending -> Processing -> Shipped -> Delivered -> Returned -> Refunded -> Cancelled
// with Failed -> On Hold -> Pending as the recovery path, but the path
// is advisory: the admin console may overwrite any status with any
// other. Only customer-side updates are constrained (see
// CustomerSettable).
type OrderStatus string

const (
	StatusPending    OrderStatus = "Pending"
	StatusProcessing OrderStatus = "Processing"
	StatusShipped    OrderStatus = "Shipped"
	StatusDelivered  OrderStatus = "Delivered"
	StatusCancelled  OrderStatus = "Cancelled"
	StatusRefunded   OrderStatus = "Refunded"
	StatusFailed     OrderStatus = "Failed"
	StatusOnHold     OrderStatus = "On Hold"
	StatusReturned   OrderStatus = "Returned"
)

var allStatuses = []OrderStatus{
	StatusPending, StatusProcessing, StatusShipped, StatusDelivered,
	StatusCancelled, StatusRefunded, StatusFailed, StatusOnHold,
	StatusReturned,
}

// ParseStatus converts a raw string into an OrderStatus
func ParseStatus(s string) (OrderStatus, error) {
	for _, status := range allStatuses {
		if string(status) == s {
			return status, nil
		}
	}
	return "", ErrInvalidStatus
}

// CustomerSettable reports whether a customer may set this status on
// their own order. Everything else is reserved for the admin console.
func (s OrderStatus) CustomerSettable() bool {
	return s == StatusCancelled || s == StatusReturned
}

// Actor identifies who is driving a lifecycle change
type Actor string

const (
	ActorCustomer Actor = "customer"
	ActorAdmin    Actor = "admin"
)

// Order represents the order domain entity. Price is a snapshot of
// (product price - discount) taken at checkout and never changes
// afterwards. Orders are soft-removed via IsActive, never deleted.
type Order struct {
	ID        uint
	ProductID uint
	UserID    uint
	Status    OrderStatus
	Rating    int // 0 means not yet rated
	Price     float64
	Quantity  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the order entity
func (o *Order) Validate() error {
	if o.ProductID == 0 {
		return ErrProductIDRequired
	}
	if o.UserID == 0 {
		return ErrUserIDRequired
	}
	if o.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if o.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// NewOrder creates a new pending order with validation
func NewOrder(productID, userID uint, price float64, quantity int) (*Order, error) {
	order := &Order{
		ProductID: productID,
		UserID:    userID,
		Status:    StatusPending,
		Rating:    0,
		Price:     price,
		Quantity:  quantity,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := order.Validate(); err != nil {
		return nil, err
	}

	return order, nil
}

// CanComment reports whether a comment may be attached to this order.
// Comments are only allowed once the order has been delivered.
func (o *Order) CanComment() error {
	if o.Status != StatusDelivered {
		return ErrCommentNotDelivered
	}
	return nil
}

// ValidateRating checks a submitted rating value
func ValidateRating(rating int) error {
	if rating < 1 || rating > 5 {
		return ErrRatingOutOfRange
	}
	return nil
}

// RatingAggregate is the per-product running rating state stored
// redundantly on the product row for fast reads
type RatingAggregate struct {
	SumRating         int
	NumberOfUsersRate int
	AverageRating     float64
}

// Apply folds one rating submission into the aggregate. A zero
// oldRating means this order has never been rated, so the submission
// counts as a new voter; otherwise it replaces the previous value and
// the voter count stays put.
func (a RatingAggregate) Apply(oldRating, newRating int) RatingAggregate {
	if oldRating == 0 {
		a.SumRating += newRating
		a.NumberOfUsersRate++
	} else {
		a.SumRating += newRating - oldRating
	}

	if a.NumberOfUsersRate > 0 {
		a.AverageRating = float64(a.SumRating) / float64(a.NumberOfUsersRate)
	} else {
		a.AverageRating = 0
	}
	return a
}

// OrderSummary pairs an order with the product name for listings
type OrderSummary struct {
	Order
	ProductName string
}

// MinCommentLen is the minimum accepted comment length
const MinCommentLen = 3

// Comment is a customer comment on a delivered order
type Comment struct {
	ID        uint
	OrderID   uint
	ProductID uint
	UserID    uint
	Text      string
	IsActive  bool
	CreatedAt time.Time
}

// NewComment creates a comment for a delivered order
func NewComment(order *Order, userID uint, text string) (*Comment, error) {
	if len(text) < MinCommentLen {
		return nil, ErrCommentTooShort
	}
	if err := order.CanComment(); err != nil {
		return nil, err
	}

	return &Comment{
		OrderID:   order.ID,
		ProductID: order.ProductID,
		UserID:    userID,
		Text:      text,
		IsActive:  true,
		CreatedAt: time.Now(),
	}, nil
}
