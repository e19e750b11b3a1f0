package infrastructure

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-shop/internal/catalog/application"
	"go-shop/internal/catalog/domain"
	"go-shop/pkg/errors"
)

// HTTPHandler handles storefront HTTP requests for the catalog
type HTTPHandler struct {
	useCase *application.CatalogUseCase
}

// NewHTTPHandler creates a new HTTP handler
func NewHTTPHandler(useCase *application.CatalogUseCase) *HTTPHandler {
	return &HTTPHandler{useCase: useCase}
}

// RegisterRoutes registers the public catalog routes
func (h *HTTPHandler) RegisterRoutes(r *gin.RouterGroup) {
	products := r.Group("/products")
	{
		products.GET("", h.ListProducts)
		products.GET("/:id", h.GetProduct)
	}

	categories := r.Group("/categories")
	{
		categories.GET("", h.ListCategories)
		categories.GET("/:id/sub_categories", h.ListSubCategories)
	}
}

// ProductResponse is the product listing payload
type ProductResponse struct {
	ID            uint    `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Price         float64 `json:"price"`
	Discount      float64 `json:"discount"`
	FinalPrice    float64 `json:"final_price"`
	Quantity      int     `json:"quantity"`
	CategoryID    uint    `json:"category_id"`
	SubCategoryID uint    `json:"sub_category_id,omitempty"`
	AverageRating float64 `json:"average_rating"`
	RatingCount   int     `json:"rating_count"`
}

// ProductListResponse wraps a product page with its pagination facts
type ProductListResponse struct {
	Products []ProductResponse `json:"products"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	PageSize int               `json:"page_size"`
}

// CommentResponse is one comment on the product page
type CommentResponse struct {
	ID        uint   `json:"id"`
	UserName  string `json:"user_name"`
	Comment   string `json:"comment"`
	CreatedAt string `json:"created_at"`
}

// ProductDetailResponse is the full product page payload
type ProductDetailResponse struct {
	ProductResponse
	CategoryName    string            `json:"category_name,omitempty"`
	SubCategoryName string            `json:"sub_category_name,omitempty"`
	SumRating       int               `json:"sum_rating"`
	Comments        []CommentResponse `json:"comments"`
}

// ListProducts handles GET /products
func (h *HTTPHandler) ListProducts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	categoryID, _ := strconv.ParseUint(c.Query("category_id"), 10, 32)

	output, err := h.useCase.ListProducts(c.Request.Context(), application.ListInput{
		Page:       page,
		PageSize:   pageSize,
		Search:     c.Query("search"),
		CategoryID: uint(categoryID),
	})
	if err != nil {
		c.Error(err)
		return
	}

	products := make([]ProductResponse, len(output.Products))
	for i, product := range output.Products {
		products[i] = toProductResponse(product)
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Products fetched",
		Data: ProductListResponse{
			Products: products,
			Total:    output.Total,
			Page:     output.Page,
			PageSize: output.PageSize,
		},
	})
}

// GetProduct handles GET /products/:id
func (h *HTTPHandler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid product id", nil))
		return
	}

	detail, err := h.useCase.GetProduct(c.Request.Context(), uint(id))
	if err != nil {
		c.Error(err)
		return
	}

	comments := make([]CommentResponse, len(detail.Comments))
	for i, comment := range detail.Comments {
		comments[i] = CommentResponse{
			ID:        comment.ID,
			UserName:  comment.UserName,
			Comment:   comment.Text,
			CreatedAt: comment.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Product fetched",
		Data: ProductDetailResponse{
			ProductResponse: toProductResponse(&detail.Product),
			CategoryName:    detail.CategoryName,
			SubCategoryName: detail.SubCategoryName,
			SumRating:       detail.SumRating,
			Comments:        comments,
		},
	})
}

// ListCategories handles GET /categories
func (h *HTTPHandler) ListCategories(c *gin.Context) {
	categories, err := h.useCase.ListCategories(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	data := make([]gin.H, len(categories))
	for i, category := range categories {
		data[i] = gin.H{"id": category.ID, "name": category.Name}
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Categories fetched",
		Data:    data,
	})
}

// ListSubCategories handles GET /categories/:id/sub_categories
func (h *HTTPHandler) ListSubCategories(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.Error(errors.NewValidation("invalid category id", nil))
		return
	}

	subs, err := h.useCase.ListSubCategories(c.Request.Context(), uint(id))
	if err != nil {
		c.Error(err)
		return
	}

	data := make([]gin.H, len(subs))
	for i, sub := range subs {
		data[i] = gin.H{"id": sub.ID, "name": sub.Name, "category_id": sub.CategoryID}
	}

	c.JSON(http.StatusOK, errors.Envelope{
		Status:  true,
		Message: "Sub-categories fetched",
		Data:    data,
	})
}

func toProductResponse(product *domain.Product) ProductResponse {
	return ProductResponse{
		ID:            product.ID,
		Name:          product.Name,
		Description:   product.Description,
		Price:         product.Price,
		Discount:      product.Discount,
		FinalPrice:    product.FinalPrice(),
		Quantity:      product.Quantity,
		CategoryID:    product.CategoryID,
		SubCategoryID: product.SubCategoryID,
		AverageRating: product.AverageRating,
		RatingCount:   product.NumberOfUsersRate,
	}
}
