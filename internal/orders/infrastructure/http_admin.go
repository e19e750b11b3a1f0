package infrastructure

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"go-shop/internal/orders/application"
	"go-shop/pkg/errors"
)

// AdminHTTPHandler handles admin console HTTP requests for orders
type AdminHTTPHandler struct {
	useCase *application.OrderUseCase
}

// NewAdminHTTPHandler creates a new admin HTTP handler
func NewAdminHTTPHandler(useCase *application.OrderUseCase) *AdminHTTPHandler {
	return &AdminHTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the admin-facing order routes
func (h *AdminHTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	orders := r.Group("/admin/orders")
	{
		orders.GET("", h.ListOrders)
		orders.POST("/manage_orders", h.ManageOrder)
	}
}

// AdminManageOrderRequest is the admin-facing order change body.
// Status takes any enum value; is_active is 0 or 1. Either may be
// omitted, but not both.
type AdminManageOrderRequest struct {
	ID       uint    `json:"id" binding:"required"`
	Status   *string `json:"status"`
	IsActive *int    `json:"is_active"`
}

// ListOrders handles GET /admin/orders
func (h *AdminHTTPHandler) ListOrders(c *gin.Context) {
	summaries, err := h.useCase.ListAllOrders(c.Request.Context())
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

// ManageOrder handles POST /admin/orders/manage_orders
func (h *AdminHTTPHandler) ManageOrder(c *gin.Context) {
	var req AdminManageOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	input := application.AdminUpdateInput{
		OrderID: req.ID,
		Status:  req.Status,
	}
	if req.IsActive != nil {
		active := *req.IsActive != 0
		input.IsActive = &active
	}

	if err := h.useCase.UpdateStatusAsAdmin(c.Request.Context(), input); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Order updated",
	})
}
