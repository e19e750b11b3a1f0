package infrastructure

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-shop/internal/cart/application"
	"go-shop/pkg/auth"
	"go-shop/pkg/errors"
)

// HTTPHandler handles storefront HTTP requests for cart and wishlist
type HTTPHandler struct {
	useCase *application.CartUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.CartUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the cart and wishlist routes
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	cart := r.Group("/cart")
	{
		cart.GET("", h.GetCart)
		cart.POST("", h.AddToCart)
		cart.DELETE("/:product_id", h.RemoveFromCart)
	}

	wishlist := r.Group("/wishlist")
	{
		wishlist.GET("", h.GetWishlist)
		wishlist.POST("", h.AddToWishlist)
		wishlist.DELETE("/:product_id", h.RemoveFromWishlist)
	}
}

// AddToCartRequest is the request body for adding to the cart
type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required"`
}

// AddToWishlistRequest is the request body for adding to the wishlist
type AddToWishlistRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// CartLineResponse is one cart line with product facts
type CartLineResponse struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
	Discount    float64 `json:"discount"`
	LineTotal   float64 `json:"line_total"`
}

// CartResponse is the whole cart with its total
type CartResponse struct {
	Items []CartLineResponse `json:"items"`
	Total float64            `json:"total"`
}

// WishlistItemResponse is one wishlist entry with product facts
type WishlistItemResponse struct {
	ProductID   uint    `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"`
}

// GetCart handles GET /cart
func (h *HTTPHandler) GetCart(c *gin.Context) {
	views, err := h.useCase.GetCart(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]CartLineResponse, len(views))
	var total float64
	for i, view := range views {
		items[i] = CartLineResponse{
			ProductID:   view.ProductID,
			ProductName: view.ProductName,
			Quantity:    view.Quantity,
			Price:       view.Price,
			Discount:    view.Discount,
			LineTotal:   view.LineTotal(),
		}
		total += view.LineTotal()
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Cart fetched",
		Data:    CartResponse{Items: items, Total: total},
	})
}

// AddToCart handles POST /cart
func (h *HTTPHandler) AddToCart(c *gin.Context) {
	var req AddToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	err := h.useCase.AddToCart(c.Request.Context(), application.AddToCartInput{
		UserID:    auth.UserID(c),
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Added to cart",
	})
}

// RemoveFromCart handles DELETE /cart/:product_id
func (h *HTTPHandler) RemoveFromCart(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid product id", nil))
		return
	}

	if err := h.useCase.RemoveFromCart(c.Request.Context(), auth.UserID(c), uint(productID)); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Removed from cart",
	})
}

// GetWishlist handles GET /wishlist
func (h *HTTPHandler) GetWishlist(c *gin.Context) {
	views, err := h.useCase.GetWishlist(c.Request.Context(), auth.UserID(c))
	if err != nil {
		c.Error(err)
		return
	}

	items := make([]WishlistItemResponse, len(views))
	for i, view := range views {
		items[i] = WishlistItemResponse{
			ProductID:   view.ProductID,
			ProductName: view.ProductName,
			Price:       view.Price,
		}
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Wishlist fetched",
		Data:    items,
	})
}

// AddToWishlist handles POST /wishlist
func (h *HTTPHandler) AddToWishlist(c *gin.Context) {
	var req AddToWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(errors.NewValidation("invalid request body", err.Error()))
		return
	}

	if err := h.useCase.AddToWishlist(c.Request.Context(), auth.UserID(c), req.ProductID); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Added to wishlist",
	})
}

// RemoveFromWishlist handles DELETE /wishlist/:product_id
func (h *HTTPHandler) RemoveFromWishlist(c *gin.Context) {
	productID, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid product id", nil))
		return
	}

	if err := h.useCase.RemoveFromWishlist(c.Request.Context(), auth.UserID(c), uint(productID)); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Removed from wishlist",
	})
}
