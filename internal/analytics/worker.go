package analytics

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"go-shop/pkg/clickhouse"
	"go-shop/pkg/events"
	"go-shop/pkg/logger"
)

// EventSink is where the worker lands decoded events. Satisfied by the
// ClickHouse client.
type EventSink interface {
	InsertOrderEvent(ctx context.Context, row clickhouse.OrderEventRow) error
}

// Worker decodes order lifecycle events off the queue and appends them
// to the analytics fact table
type Worker struct {
	sink EventSink
	log  *logger.Logger
}

// NewWorker creates a new analytics worker
func NewWorker(sink EventSink, log *logger.Logger) *Worker {
	return &Worker{sink: sink, log: log}
}

// Handle is the message handler wired into the queue consumer. Unknown
// routing keys are acked and skipped; decode failures are permanent and
// also skipped so a bad message cannot wedge the queue.
func (w *Worker) Handle(ctx context.Context, routingKey string, body []byte) error {
	row, err := decode(routingKey, body)
	if err != nil {
		w.log.WithContext(ctx).Warn("skipping undecodable event",
			zap.Error(err),
			zap.String("routing_key", routingKey),
		)
		return nil
	}
	if row == nil {
		w.log.WithContext(ctx).Debug("ignoring unknown routing key",
			zap.String("routing_key", routingKey),
		)
		return nil
	}

	if err := w.sink.InsertOrderEvent(ctx, *row); err != nil {
		return fmt.Errorf("failed to store event: %w", err)
	}

	w.log.WithContext(ctx).Info("event stored",
		zap.String("event_type", row.EventType),
		zap.Uint("order_id", row.OrderID),
	)

	return nil
}

func decode(routingKey string, body []byte) (*clickhouse.OrderEventRow, error) {
	switch routingKey {
	case events.RoutingKeyOrderPlaced:
		var event events.OrderPlacedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return nil, err
		}
		return &clickhouse.OrderEventRow{
			OrderID:   event.Payload.OrderID,
			ProductID: event.Payload.ProductID,
			UserID:    event.Payload.UserID,
			EventType: event.EventType,
			NewStatus: event.Payload.Status,
			Price:     event.Payload.Price,
			Quantity:  int32(event.Payload.Quantity),
			EventTime: event.Timestamp,
		}, nil

	case events.RoutingKeyOrderStatusChanged:
		var event events.OrderStatusChangedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return nil, err
		}
		return &clickhouse.OrderEventRow{
			OrderID:   event.Payload.OrderID,
			ProductID: event.Payload.ProductID,
			UserID:    event.Payload.UserID,
			EventType: event.EventType,
			OldStatus: event.Payload.OldStatus,
			NewStatus: event.Payload.NewStatus,
			Actor:     event.Payload.Actor,
			EventTime: event.Timestamp,
		}, nil

	case events.RoutingKeyOrderRated:
		var event events.OrderRatedEvent
		if err := json.Unmarshal(body, &event); err != nil {
			return nil, err
		}
		return &clickhouse.OrderEventRow{
			OrderID:   event.Payload.OrderID,
			ProductID: event.Payload.ProductID,
			UserID:    event.Payload.UserID,
			EventType: event.EventType,
			Rating:    int32(event.Payload.Rating),
			EventTime: event.Timestamp,
		}, nil
	}

	return nil, nil
}
