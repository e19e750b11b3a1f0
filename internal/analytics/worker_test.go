package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-shop/pkg/clickhouse"
	"go-shop/pkg/events"
	"go-shop/pkg/logger"
)

type fakeSink struct {
	rows []clickhouse.OrderEventRow
	err  error
}

func (s *fakeSink) InsertOrderEvent(ctx context.Context, row clickhouse.OrderEventRow) error {
	if s.err != nil {
		return s.err
	}
	s.rows = append(s.rows, row)
	return nil
}

func newTestWorker() (*Worker, *fakeSink) {
	sink := &fakeSink{}
	return NewWorker(sink, logger.New("test", "error")), sink
}

func TestHandle_OrderPlaced(t *testing.T) {
	worker, sink := newTestWorker()

	event := events.NewOrderPlacedEvent(42, 7, 1, 39.90, 2, "Pending", time.Now(), "trace-1")
	body, err := json.Marshal(event)
	require.NoError(t, err)

	err = worker.Handle(context.Background(), events.RoutingKeyOrderPlaced, body)
	require.NoError(t, err)

	require.Len(t, sink.rows, 1)
	row := sink.rows[0]
	assert.Equal(t, uint(42), row.OrderID)
	assert.Equal(t, uint(7), row.ProductID)
	assert.Equal(t, "order.placed", row.EventType)
	assert.Equal(t, "Pending", row.NewStatus)
	assert.Equal(t, 39.90, row.Price)
	assert.Equal(t, int32(2), row.Quantity)
}

func TestHandle_StatusChanged(t *testing.T) {
	worker, sink := newTestWorker()

	event := events.NewOrderStatusChangedEvent(42, 7, 1, "Pending", "Cancelled", "customer", "trace-2")
	body, err := json.Marshal(event)
	require.NoError(t, err)

	err = worker.Handle(context.Background(), events.RoutingKeyOrderStatusChanged, body)
	require.NoError(t, err)

	require.Len(t, sink.rows, 1)
	row := sink.rows[0]
	assert.Equal(t, "Pending", row.OldStatus)
	assert.Equal(t, "Cancelled", row.NewStatus)
	assert.Equal(t, "customer", row.Actor)
}

func TestHandle_OrderRated(t *testing.T) {
	worker, sink := newTestWorker()

	event := events.NewOrderRatedEvent(42, 7, 1, 5, 4.5, "trace-3")
	body, err := json.Marshal(event)
	require.NoError(t, err)

	err = worker.Handle(context.Background(), events.RoutingKeyOrderRated, body)
	require.NoError(t, err)

	require.Len(t, sink.rows, 1)
	assert.Equal(t, int32(5), sink.rows[0].Rating)
}

func TestHandle_UnknownRoutingKey(t *testing.T) {
	worker, sink := newTestWorker()

	err := worker.Handle(context.Background(), "order.archived", []byte(`{}`))
	require.NoError(t, err)
	assert.Empty(t, sink.rows)
}

func TestHandle_BadPayloadSkipped(t *testing.T) {
	// A permanently broken message must not be retried forever.
	worker, sink := newTestWorker()

	err := worker.Handle(context.Background(), events.RoutingKeyOrderPlaced, []byte(`{not json`))
	require.NoError(t, err)
	assert.Empty(t, sink.rows)
}

func TestHandle_SinkFailurePropagates(t *testing.T) {
	// A storage failure is transient; the consumer requeues on error.
	worker, sink := newTestWorker()
	sink.err = errors.New("connection refused")

	event := events.NewOrderRatedEvent(42, 7, 1, 5, 4.5, "trace-4")
	body, err := json.Marshal(event)
	require.NoError(t, err)

	err = worker.Handle(context.Background(), events.RoutingKeyOrderRated, body)
	assert.Error(t, err)
}
