package application

import (
	"context"

	"go-shop/internal/catalog/domain"
	"go-shop/internal/catalog/ports"
	"go-shop/pkg/errors"
	"go-shop/pkg/logger"

	"go.uber.org/zap"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// CatalogUseCase serves product browsing for the storefront and product
// management for the admin console
type CatalogUseCase struct {
	products   ports.ProductRepository
	categories ports.CategoryRepository
	comments   ports.CommentReader
	log        *logger.Logger
}

// NewCatalogUseCase creates a new catalog use case
func NewCatalogUseCase(
	products ports.ProductRepository,
	categories ports.CategoryRepository,
	comments ports.CommentReader,
	log *logger.Logger,
) *CatalogUseCase {
	return &CatalogUseCase{
		products:   products,
		categories: categories,
		comments:   comments,
		log:        log,
	}
}

// ListInput represents a product listing request
type ListInput struct {
	Page       int
	PageSize   int
	Search     string
	CategoryID uint
}

// ListOutput is a page of products with the total match count
type ListOutput struct {
	Products []*domain.Product
	Total    int64
	Page     int
	PageSize int
}

// ListProducts returns a page of active products, optionally filtered by
// a name search and a category
func (uc *CatalogUseCase) ListProducts(ctx context.Context, input ListInput) (*ListOutput, error) {
	page := input.Page
	if page < 1 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	products, total, err := uc.products.List(ctx, ports.ListFilter{
		Page:       page,
		PageSize:   pageSize,
		Search:     input.Search,
		CategoryID: input.CategoryID,
	})
	if err != nil {
		return nil, err
	}

	return &ListOutput{
		Products: products,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// GetProduct returns the full product page payload: the product, its
// category names and its active comments
func (uc *CatalogUseCase) GetProduct(ctx context.Context, id uint) (*domain.ProductDetail, error) {
	product, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !product.IsActive {
		return nil, domain.NewProductNotFound(id)
	}

	detail := &domain.ProductDetail{Product: *product}

	if category, err := uc.categories.GetCategory(ctx, product.CategoryID); err == nil {
		detail.CategoryName = category.Name
	}
	if product.SubCategoryID != 0 {
		subs, err := uc.categories.ListSubCategories(ctx, product.CategoryID)
		if err == nil {
			for _, sub := range subs {
				if sub.ID == product.SubCategoryID {
					detail.SubCategoryName = sub.Name
					break
				}
			}
		}
	}

	comments, err := uc.comments.ActiveByProduct(ctx, id)
	if err != nil {
		uc.log.WithContext(ctx).Error("failed to load product comments",
			zap.Error(err),
			zap.Uint("product_id", id),
		)
	} else {
		detail.Comments = comments
	}

	return detail, nil
}

// ListCategories returns the active categories
func (uc *CatalogUseCase) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return uc.categories.ListCategories(ctx)
}

// ListSubCategories returns the active sub-categories of a category
func (uc *CatalogUseCase) ListSubCategories(ctx context.Context, categoryID uint) ([]*domain.SubCategory, error) {
	return uc.categories.ListSubCategories(ctx, categoryID)
}

// CreateProductInput represents an admin product creation request
type CreateProductInput struct {
	Name          string
	Description   string
	Price         float64
	Discount      float64
	Quantity      int
	CategoryID    uint
	SubCategoryID uint
}

// CreateProduct adds a new product to the catalog
func (uc *CatalogUseCase) CreateProduct(ctx context.Context, input CreateProductInput) (*domain.Product, error) {
	if _, err := uc.categories.GetCategory(ctx, input.CategoryID); err != nil {
		return nil, err
	}

	product, err := domain.NewProduct(
		input.Name,
		input.Description,
		input.Price,
		input.Discount,
		input.Quantity,
		input.CategoryID,
		input.SubCategoryID,
	)
	if err != nil {
		return nil, err
	}

	if err := uc.products.Create(ctx, product); err != nil {
		return nil, errors.NewInternal("failed to create product", err)
	}

	uc.log.WithContext(ctx).Info("product created",
		zap.Uint("product_id", product.ID),
		zap.String("name", product.Name),
	)

	return product, nil
}

// UpdateProductInput represents an admin product update. All fields but
// the ID are optional; only the present ones are applied.
type UpdateProductInput struct {
	ProductID   uint
	Name        *string
	Description *string
	Price       *float64
	Discount    *float64
	Quantity    *int
	IsActive    *bool
}

// UpdateProduct applies a partial update to an existing product
func (uc *CatalogUseCase) UpdateProduct(ctx context.Context, input UpdateProductInput) (*domain.Product, error) {
	product, err := uc.products.GetByID(ctx, input.ProductID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	if input.Discount != nil {
		product.Discount = *input.Discount
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	if err := uc.products.Update(ctx, product); err != nil {
		return nil, err
	}

	uc.log.WithContext(ctx).Info("product updated",
		zap.Uint("product_id", product.ID),
	)

	return product, nil
}

// DeleteProduct soft-removes a product from the catalog
func (uc *CatalogUseCase) DeleteProduct(ctx context.Context, id uint) error {
	if _, err := uc.products.GetByID(ctx, id); err != nil {
		return err
	}

	if err := uc.products.SetActive(ctx, id, false); err != nil {
		return err
	}

	uc.log.WithContext(ctx).Info("product deactivated",
		zap.Uint("product_id", id),
	)

	return nil
}
