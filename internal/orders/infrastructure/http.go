package infrastructure

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-shop/internal/orders/application"
	"go-shop/internal/orders/domain"
	"go-shop/pkg/auth"
	"go-shop/pkg/errors"
)

// HTTPHandler handles storefront HTTP requests for orders
type HTTPHandler struct {
	useCase *application.OrderUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.OrderUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the customer-facing order routes
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/orders")
	{
		orders.POST("/checkout", h.Checkout)
		orders.GET("", h.ListOrders)
		orders.POST("/manage_orders", h.ManageOrder)
		orders.POST("/add_order_rating", h.AddOrderRating)
		orders.POST("/add_comment", h.AddComment)
	}
}

// CheckoutRequest is the request body for checkout
type CheckoutRequest struct {
	ProductIDs []uint `json:"product_ids" binding:"required,min=1"`
}

// ManageOrderRequest is the customer-facing status change body. Only
// Cancelled and Returned pass validation downstream.
type ManageOrderRequest struct {
	ID     uint   `json:"id" binding:"required"`
	Status string `json:"status" binding:"required"`
}

// AddOrderRatingRequest is the request body for rating an order
type AddOrderRatingRequest struct {
	OrderID uint `json:"order_id" binding:"required"`
	Rating  int  `json:"rating" binding:"required"`
}

// AddCommentRequest is the request body for commenting on an order
type AddCommentRequest struct {
	OrderID uint   `json:"order_id" binding:"required"`
	Comment string `json:"comment" binding:"required"`
}

// OrderResponse is the response body for order operations
type OrderResponse struct {
	ID          uint    `json:"id"`
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name,omitempty"`
	UserID      uint    `json:"user_id"`
	Status      string  `json:"status"`
	Rating      int     `json:"rating"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
}

// RatingResponse reports the product aggregate after a submission
type RatingResponse struct {
	SumRating         int     `json:"sum_rating"`
	NumberOfUsersRate int     `json:"number_of_users_rate"`
	AverageRating     float64 `json:"average_rating"`
}

// Checkout handles POST /orders/checkout
func (h *HTTPHandler) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.useCase.Checkout(c.Request.Context(), application.CheckoutInput{
		UserID:     auth.UserID(c),
		ProductIDs: req.ProductIDs,
	})
	if err != nil {
		c.Error(err)
		return
	}

	responses := make([]OrderResponse, len(output.Orders))
	for i, order := range output.Orders {
		responses[i] = toOrderResponse(order, "")
	}

	c.JSON(http.StatusCreated, errors.Envelope{
		Status:  true,
		Message: "Checkout success",
		Data:    responses,
	})
}

// ListOrders handles GET /orders
func (h *HTTPHandler) ListOrders(c *gin.Context) {
	summaries, err := h.useCase.ListOrders(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Orders fetched",
		Data:    toOrderResponses(summaries),
	})
}

// ManageOrder handles POST /orders/manage_orders
func (h *HTTPHandler) ManageOrder(c *gin.Context) {
	var req ManageOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	err := h.useCase.UpdateStatusAsCustomer(c.Request.Context(), application.UpdateStatusInput{
		OrderID: req.ID,
		UserID:  auth.UserID(c),
		Status:  req.Status,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Order status updated",
	})
}

// AddOrderRating handles POST /orders/add_order_rating
func (h *HTTPHandler) AddOrderRating(c *gin.Context) {
	var req AddOrderRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	output, err := h.useCase.SubmitRating(c.Request.Context(), application.RatingInput{
		OrderID: req.OrderID,
		UserID:  auth.UserID(c),
		Rating:  req.Rating,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Rating submitted",
		Data: RatingResponse{
			SumRating:         output.Aggregate.SumRating,
			NumberOfUsersRate: output.Aggregate.NumberOfUsersRate,
			AverageRating:     output.Aggregate.AverageRating,
		},
	})
}

// AddComment handles POST /orders/add_comment
func (h *HTTPHandler) AddComment(c *gin.Context) {
	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	comment, err := h.useCase.AddComment(c.Request.Context(), application.CommentInput{
		OrderID: req.OrderID,
		UserID:  auth.UserID(c),
		Text:    req.Comment,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, errors.Envelope{
		Status:  true,
		Message: "Comment added",
		Data: gin.H{
			"id":         comment.ID,
			"order_id":   comment.OrderID,
			"product_id": comment.ProductID,
			"comment":    comment.Text,
		},
	})
}

func toOrderResponse(order *domain.Order, productName string) OrderResponse {
	return OrderResponse{
		ID:          order.ID,
		ProductID:   order.ProductID,
		ProductName: productName,
		UserID:      order.UserID,
		Status:      string(order.Status),
		Rating:      order.Rating,
		Price:       order.Price,
		Quantity:    order.Quantity,
		IsActive:    order.IsActive,
		CreatedAt:   order.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}

func toOrderResponses(summaries []*domain.OrderSummary) []OrderResponse {
	responses := make([]OrderResponse, len(summaries))
	for i, summary := range summaries {
		responses[i] = toOrderResponse(&summary.Order, summary.ProductName)
	}
	return responses
}
