package ports

import (
	"context"

	"go-shop/internal/catalog/domain"
)

// ListFilter narrows and pages a product listing
type ListFilter struct {
	Page       int
	PageSize   int
	Search     string
	CategoryID uint
}

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	Update(ctx context.Context, product *domain.Product) error
	SetActive(ctx context.Context, id uint, active bool) error
	GetByID(ctx context.Context, id uint) (*domain.Product, error)
	List(ctx context.Context, filter ListFilter) ([]*domain.Product, int64, error)
}

// CategoryRepository defines read access to the category tree
type CategoryRepository interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	ListSubCategories(ctx context.Context, categoryID uint) ([]*domain.SubCategory, error)
	GetCategory(ctx context.Context, id uint) (*domain.Category, error)
}

// CommentReader fetches the active comments shown on a product page
type CommentReader interface {
	ActiveByProduct(ctx context.Context, productID uint) ([]domain.ProductComment, error)
}
