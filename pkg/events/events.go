package events

import "time"

// Exchange carrying all order lifecycle events
const ExchangeOrders = "orders.events"

// Routing keys
const (
	RoutingKeyOrderPlaced        = "order.placed"
	RoutingKeyOrderStatusChanged = "order.status_changed"
	RoutingKeyOrderRated         = "order.rated"
)

// OrderPlacedEvent is published once per order created at checkout
type OrderPlacedEvent struct {
	Version   string             `json:"version"`
	EventType string             `json:"event_type"`
	Timestamp time.Time          `json:"timestamp"`
	TraceID   string             `json:"trace_id"`
	Payload   OrderPlacedPayload `json:"payload"`
}

// OrderPlacedPayload contains the order snapshot at placement time
type OrderPlacedPayload struct {
	OrderID   uint      `json:"order_id"`
	ProductID uint      `json:"product_id"`
	UserID    uint      `json:"user_id"`
	Price     float64   `json:"price"`
	Quantity  int       `json:"quantity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// NewOrderPlacedEvent creates a new OrderPlacedEvent
func NewOrderPlacedEvent(orderID, productID, userID uint, price float64, quantity int, status string, createdAt time.Time, traceID string) *OrderPlacedEvent {
	return &OrderPlacedEvent{
		Version:   "1.0",
		EventType: "order.placed",
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: OrderPlacedPayload{
			OrderID:   orderID,
			ProductID: productID,
			UserID:    userID,
			Price:     price,
			Quantity:  quantity,
			Status:    status,
			CreatedAt: createdAt,
		},
	}
}

// OrderStatusChangedEvent is published on every status overwrite
type OrderStatusChangedEvent struct {
	Version   string                    `json:"version"`
	EventType string                    `json:"event_type"`
	Timestamp time.Time                 `json:"timestamp"`
	TraceID   string                    `json:"trace_id"`
	Payload   OrderStatusChangedPayload `json:"payload"`
}

// OrderStatusChangedPayload records the transition and who applied it
type OrderStatusChangedPayload struct {
	OrderID   uint   `json:"order_id"`
	ProductID uint   `json:"product_id"`
	UserID    uint   `json:"user_id"`
	OldStatus string `json:"old_status"`
	NewStatus string `json:"new_status"`
	Actor     string `json:"actor"` // customer | admin
}

// NewOrderStatusChangedEvent creates a new OrderStatusChangedEvent
func NewOrderStatusChangedEvent(orderID, productID, userID uint, oldStatus, newStatus, actor, traceID string) *OrderStatusChangedEvent {
	return &OrderStatusChangedEvent{
		Version:   "1.0",
		EventType: "order.status_changed",
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: OrderStatusChangedPayload{
			OrderID:   orderID,
			ProductID: productID,
			UserID:    userID,
			OldStatus: oldStatus,
			NewStatus: newStatus,
			Actor:     actor,
		},
	}
}

// OrderRatedEvent is published after a rating submission succeeds
type OrderRatedEvent struct {
	Version   string            `json:"version"`
	EventType string            `json:"event_type"`
	Timestamp time.Time         `json:"timestamp"`
	TraceID   string            `json:"trace_id"`
	Payload   OrderRatedPayload `json:"payload"`
}

// OrderRatedPayload records the rating and the resulting aggregate
type OrderRatedPayload struct {
	OrderID       uint    `json:"order_id"`
	ProductID     uint    `json:"product_id"`
	UserID        uint    `json:"user_id"`
	Rating        int     `json:"rating"`
	AverageRating float64 `json:"average_rating"`
}

// NewOrderRatedEvent creates a new OrderRatedEvent
func NewOrderRatedEvent(orderID, productID, userID uint, rating int, averageRating float64, traceID string) *OrderRatedEvent {
	return &OrderRatedEvent{
		Version:   "1.0",
		EventType: "order.rated",
		Timestamp: time.Now(),
		TraceID:   traceID,
		Payload: OrderRatedPayload{
			OrderID:       orderID,
			ProductID:     productID,
			UserID:        userID,
			Rating:        rating,
			AverageRating: averageRating,
		},
	}
}
