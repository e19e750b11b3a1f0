package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-shop/pkg/errors"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{
		"Pending", "Processing", "Shipped", "Delivered", "Cancelled",
		"Refunded", "Failed", "On Hold", "Returned",
	} {
		status, err := ParseStatus(s)
		require.NoError(t, err, s)
		assert.Equal(t, OrderStatus(s), status)
	}

	for _, s := range []string{"", "pending", "DELIVERED", "On hold", "Lost"} {
		_, err := ParseStatus(s)
		assert.Error(t, err, s)
	}
}

func TestCustomerSettable(t *testing.T) {
	assert.True(t, StatusCancelled.CustomerSettable())
	assert.True(t, StatusReturned.CustomerSettable())

	for _, status := range []OrderStatus{
		StatusPending, StatusProcessing, StatusShipped, StatusDelivered,
		StatusRefunded, StatusFailed, StatusOnHold,
	} {
		assert.False(t, status.CustomerSettable(), string(status))
	}
}

func TestNewOrder(t *testing.T) {
	order, err := NewOrder(7, 1, 39.90, 2)
	require.NoError(t, err)

	assert.Equal(t, StatusPending, order.Status)
	assert.Equal(t, 0, order.Rating)
	assert.True(t, order.IsActive)
	assert.Equal(t, 39.90, order.Price)
}

func TestNewOrder_Invalid(t *testing.T) {
	tests := []struct {
		name      string
		productID uint
		userID    uint
		price     float64
		quantity  int
	}{
		{"missing product", 0, 1, 10, 1},
		{"missing user", 7, 0, 10, 1},
		{"zero quantity", 7, 1, 10, 0},
		{"negative quantity", 7, 1, 10, -1},
		{"negative price", 7, 1, -1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewOrder(tt.productID, tt.userID, tt.price, tt.quantity)
			assert.Error(t, err)
		})
	}
}

func TestRatingAggregate_FirstRating(t *testing.T) {
	// A previously unrated order (oldRating 0) adds a voter.
	agg := RatingAggregate{}.Apply(0, 4)

	assert.Equal(t, 4, agg.SumRating)
	assert.Equal(t, 1, agg.NumberOfUsersRate)
	assert.Equal(t, 4.0, agg.AverageRating)
}

func TestRatingAggregate_ReplaceRating(t *testing.T) {
	// Re-rating replaces the old value without adding a voter:
	// sum 12, 3 voters, old 4, new 5 -> sum 13, still 3 voters.
	agg := RatingAggregate{SumRating: 12, NumberOfUsersRate: 3, AverageRating: 4}.Apply(4, 5)

	assert.Equal(t, 13, agg.SumRating)
	assert.Equal(t, 3, agg.NumberOfUsersRate)
	assert.InDelta(t, 13.0/3.0, agg.AverageRating, 1e-9)
}

func TestRatingAggregate_LowerRating(t *testing.T) {
	agg := RatingAggregate{SumRating: 10, NumberOfUsersRate: 2, AverageRating: 5}.Apply(5, 1)

	assert.Equal(t, 6, agg.SumRating)
	assert.Equal(t, 2, agg.NumberOfUsersRate)
	assert.Equal(t, 3.0, agg.AverageRating)
}

func TestRatingAggregate_Sequence(t *testing.T) {
	// Three distinct orders rate, then one of them re-rates.
	agg := RatingAggregate{}
	agg = agg.Apply(0, 5)
	agg = agg.Apply(0, 3)
	agg = agg.Apply(0, 4)

	require.Equal(t, 12, agg.SumRating)
	require.Equal(t, 3, agg.NumberOfUsersRate)
	require.Equal(t, 4.0, agg.AverageRating)

	agg = agg.Apply(4, 5)

	assert.Equal(t, 13, agg.SumRating)
	assert.Equal(t, 3, agg.NumberOfUsersRate)
	assert.InDelta(t, 13.0/3.0, agg.AverageRating, 1e-9)
}

func TestValidateRating(t *testing.T) {
	for _, rating := range []int{1, 2, 3, 4, 5} {
		assert.NoError(t, ValidateRating(rating))
	}
	for _, rating := range []int{0, -1, 6, 100} {
		assert.Error(t, ValidateRating(rating))
	}
}

func TestNewComment_Delivered(t *testing.T) {
	order := &Order{ID: 1, ProductID: 7, UserID: 1, Status: StatusDelivered}

	comment, err := NewComment(order, 1, "arrived in perfect shape")
	require.NoError(t, err)

	assert.Equal(t, uint(1), comment.OrderID)
	assert.Equal(t, uint(7), comment.ProductID)
	assert.True(t, comment.IsActive)
}

func TestNewComment_NotDelivered(t *testing.T) {
	for _, status := range []OrderStatus{
		StatusPending, StatusProcessing, StatusShipped, StatusCancelled,
		StatusRefunded, StatusFailed, StatusOnHold, StatusReturned,
	} {
		order := &Order{ID: 1, ProductID: 7, UserID: 1, Status: status}

		_, err := NewComment(order, 1, "arrived in perfect shape")
		require.Error(t, err, string(status))
		assert.True(t, errors.Is(err, errors.CodeState), string(status))
		assert.EqualError(t, err, "STATE_ERROR: comments only allowed on delivered orders")
	}
}

func TestNewComment_TooShort(t *testing.T) {
	order := &Order{ID: 1, ProductID: 7, UserID: 1, Status: StatusDelivered}

	_, err := NewComment(order, 1, "ok")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.CodeValidation))

	// Exactly the minimum passes.
	_, err = NewComment(order, 1, "ok!")
	assert.NoError(t, err)
}
