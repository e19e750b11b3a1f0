package infrastructure

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-shop/internal/catalog/application"
	"go-shop/pkg/errors"
)

// AdminHTTPHandler handles admin console HTTP requests for the catalog
type AdminHTTPHandler struct {
	useCase *application.CatalogUseCase
}

// NewAdminHTTPHandler creates a new admin HTTP handler
func NewAdminHTTPHandler(useCase *application.CatalogUseCase) *AdminHTTPHandler {
	return &AdminHTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the admin-facing catalog routes
func (h *AdminHTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	products := r.Group("/admin/products")
	{
		products.POST("", h.CreateProduct)
		products.PUT("/:id", h.UpdateProduct)
		products.DELETE("/:id", h.DeleteProduct)
	}
}

// CreateProductRequest is the request body for creating a product
type CreateProductRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price" binding:"required"`
	Discount      float64 `json:"discount"`
	Quantity      int     `json:"quantity" binding:"required"`
	CategoryID    uint    `json:"category_id" binding:"required"`
	SubCategoryID uint    `json:"sub_category_id"`
}

// UpdateProductRequest is the request body for a partial product update
type UpdateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Discount    *float64 `json:"discount"`
	Quantity    *int     `json:"quantity"`
	IsActive    *int     `json:"is_active"`
}

// CreateProduct handles POST /admin/products
func (h *AdminHTTPHandler) CreateProduct(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	product, err := h.useCase.CreateProduct(c.Request.Context(), application.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		Discount:      req.Discount,
		Quantity:      req.Quantity,
		CategoryID:    req.CategoryID,
		SubCategoryID: req.SubCategoryID,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, errors.Envelope{
		Status:  true,
		Message: "Product created",
		Data:    toProductResponse(product),
	})
}

// UpdateProduct handles PUT /admin/products/:id
func (h *AdminHTTPHandler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid product id", nil))
		return
	}

	var req UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	input := application.UpdateProductInput{
		ProductID:   uint(id),
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Discount:    req.Discount,
		Quantity:    req.Quantity,
	}
	if req.IsActive != nil {
		active := *req.IsActive != 0
		input.IsActive = &active
	}

	product, err := h.useCase.UpdateProduct(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Product updated",
		Data:    toProductResponse(product),
	})
}

// DeleteProduct handles DELETE /admin/products/:id
func (h *AdminHTTPHandler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid product id", nil))
		return
	}

	if err := h.useCase.DeleteProduct(c.Request.Context(), uint(id)); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Product removed",
	})
}
