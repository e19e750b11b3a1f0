package adapters

import (
	"context"

	"go-shop/internal/orders/domain"
	"go-shop/pkg/events"
	"go-shop/pkg/logger"
	"go-shop/pkg/rabbitmq"
)

// RabbitMQPublisher implements EventPublisher using RabbitMQ
type RabbitMQPublisher struct {
	publisher *rabbitmq.Publisher
	log       *logger.Logger
}

// NewRabbitMQPublisher creates a new RabbitMQ event publisher
func NewRabbitMQPublisher(publisher *rabbitmq.Publisher, log *logger.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		publisher: publisher,
		log:       log,
	}
}

// PublishOrderPlaced publishes an order placed event
func (p *RabbitMQPublisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	traceID := logger.GetTraceID(ctx)

	event := events.NewOrderPlacedEvent(
		order.ID,
		order.ProductID,
		order.UserID,
		order.Price,
		order.Quantity,
		string(order.Status),
		order.CreatedAt,
		traceID,
	)

	return p.publisher.Publish(ctx, events.RoutingKeyOrderPlaced, event)
}

// PublishStatusChanged publishes a status change event
func (p *RabbitMQPublisher) PublishStatusChanged(ctx context.Context, order *domain.Order, oldStatus, newStatus domain.OrderStatus, actor domain.Actor) error {
	traceID := logger.GetTraceID(ctx)

	event := events.NewOrderStatusChangedEvent(
		order.ID,
		order.ProductID,
		order.UserID,
		string(oldStatus),
		string(newStatus),
		string(actor),
		traceID,
	)

	return p.publisher.Publish(ctx, events.RoutingKeyOrderStatusChanged, event)
}

// PublishOrderRated publishes a rating event
func (p *RabbitMQPublisher) PublishOrderRated(ctx context.Context, order *domain.Order, rating int, average float64) error {
	traceID := logger.GetTraceID(ctx)

	event := events.NewOrderRatedEvent(
		order.ID,
		order.ProductID,
		order.UserID,
		rating,
		average,
		traceID,
	)

	return p.publisher.Publish(ctx, events.RoutingKeyOrderRated, event)
}
