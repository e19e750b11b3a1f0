package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config holds ClickHouse connection settings
type Config struct {
	Addr     string
	Database string
	Username string
	Password string
}

// Client wraps a ClickHouse connection for the analytics worker
type Client struct {
	conn     driver.Conn
	database string
}

// NewClient opens and pings a ClickHouse connection
func NewClient(cfg Config) (*Client, error) {
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{cfg.Addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		MaxOpenConns: 10,
		MaxIdleConns: 5,
		DialTimeout:  time.Second * 30,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to ClickHouse: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := conn.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping ClickHouse: %w", err)
	}

	return &Client{
		conn:     conn,
		database: cfg.Database,
	}, nil
}

// Close closes the connection
func (c *Client) Close() error {
	return c.conn.Close()
}

// OrderEventRow is one row of the order_events fact table
type OrderEventRow struct {
	OrderID   uint
	ProductID uint
	UserID    uint
	EventType string
	OldStatus string
	NewStatus string
	Actor     string
	Rating    int32
	Price     float64
	Quantity  int32
	EventTime time.Time
}

// InsertOrderEvent appends one lifecycle event to the fact table
func (c *Client) InsertOrderEvent(ctx context.Context, row OrderEventRow) error {
	query := fmt.Sprintf(`
		INSERT INTO %s.order_events (
			order_id, product_id, user_id, event_type,
			old_status, new_status, actor, rating,
			price, quantity, event_time
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, c.database)

	return c.conn.Exec(ctx, query,
		row.OrderID,
		row.ProductID,
		row.UserID,
		row.EventType,
		row.OldStatus,
		row.NewStatus,
		row.Actor,
		row.Rating,
		row.Price,
		row.Quantity,
		row.EventTime,
	)
}

// CountOrderEvents returns the number of stored events for an order,
// used by health probes and tests against a live cluster
func (c *Client) CountOrderEvents(ctx context.Context, orderID uint) (uint64, error) {
	query := fmt.Sprintf(`
		SELECT count() FROM %s.order_events WHERE order_id = ?
	`, c.database)

	var count uint64
	row := c.conn.QueryRow(ctx, query, orderID)
	if err := row.Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
