package application

import (
	"context"
	"testing"

	"go-shop/internal/catalog/domain"
	"go-shop/internal/catalog/ports"
	"go-shop/pkg/errors"
	"go-shop/pkg/logger"
)

// MockProductRepository is a mock implementation of ProductRepository
type MockProductRepository struct {
	products   map[uint]*domain.Product
	nextID     uint
	lastFilter ports.ListFilter
}

func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{products: make(map[uint]*domain.Product), nextID: 1}
}

func (m *MockProductRepository) Create(ctx context.Context, product *domain.Product) error {
	product.ID = m.nextID
	m.nextID++
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) Update(ctx context.Context, product *domain.Product) error {
	if _, ok := m.products[product.ID]; !ok {
		return domain.ErrNoChanges
	}
	m.products[product.ID] = product
	return nil
}

func (m *MockProductRepository) SetActive(ctx context.Context, id uint, active bool) error {
	product, ok := m.products[id]
	if !ok {
		return domain.ErrNoChanges
	}
	product.IsActive = active
	return nil
}

func (m *MockProductRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	product, ok := m.products[id]
	if !ok {
		return nil, domain.NewProductNotFound(id)
	}
	return product, nil
}

func (m *MockProductRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Product, int64, error) {
	m.lastFilter = filter
	var result []*domain.Product
	for _, product := range m.products {
		if product.IsActive {
			result = append(result, product)
		}
	}
	return result, int64(len(result)), nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository
type MockCategoryRepository struct {
	categories map[uint]*domain.Category
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var result []*domain.Category
	for _, category := range m.categories {
		result = append(result, category)
	}
	return result, nil
}

func (m *MockCategoryRepository) ListSubCategories(ctx context.Context, categoryID uint) ([]*domain.SubCategory, error) {
	return nil, nil
}

func (m *MockCategoryRepository) GetCategory(ctx context.Context, id uint) (*domain.Category, error) {
	category, ok := m.categories[id]
	if !ok {
		return nil, domain.NewCategoryNotFound(id)
	}
	return category, nil
}

// MockCommentReader is a mock implementation of CommentReader
type MockCommentReader struct {
	comments map[uint][]domain.ProductComment
}

func (m *MockCommentReader) ActiveByProduct(ctx context.Context, productID uint) ([]domain.ProductComment, error) {
	return m.comments[productID], nil
}

func newTestUseCase() (*CatalogUseCase, *MockProductRepository) {
	products := NewMockProductRepository()
	categories := &MockCategoryRepository{categories: map[uint]*domain.Category{
		3: {ID: 3, Name: "Peripherals", IsActive: true},
	}}
	comments := &MockCommentReader{comments: make(map[uint][]domain.ProductComment)}
	return NewCatalogUseCase(products, categories, comments, logger.New("test", "error")), products
}

func TestListProducts_ClampsPaging(t *testing.T) {
	useCase, repo := newTestUseCase()

	output, err := useCase.ListProducts(context.Background(), ListInput{Page: 0, PageSize: 500})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output.Page != 1 {
		t.Errorf("expected page clamped to 1, got %d", output.Page)
	}
	if output.PageSize != maxPageSize {
		t.Errorf("expected page size clamped to %d, got %d", maxPageSize, output.PageSize)
	}
	if repo.lastFilter.Page != 1 || repo.lastFilter.PageSize != maxPageSize {
		t.Errorf("expected clamped filter, got %+v", repo.lastFilter)
	}
}

func TestCreateProduct(t *testing.T) {
	useCase, repo := newTestUseCase()

	product, err := useCase.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Keyboard",
		Price:      50,
		Discount:   10,
		Quantity:   3,
		CategoryID: 3,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if !product.IsActive {
		t.Error("expected product to start active")
	}
	if product.FinalPrice() != 40 {
		t.Errorf("expected final price 40, got %f", product.FinalPrice())
	}
	if repo.products[product.ID] == nil {
		t.Error("expected product to be stored")
	}
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	useCase, repo := newTestUseCase()

	_, err := useCase.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Keyboard",
		Price:      50,
		Quantity:   3,
		CategoryID: 99,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
	if len(repo.products) != 0 {
		t.Error("expected no products stored")
	}
}

func TestCreateProduct_DiscountAbovePrice(t *testing.T) {
	useCase, _ := newTestUseCase()

	_, err := useCase.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Keyboard",
		Price:      50,
		Discount:   60,
		Quantity:   3,
		CategoryID: 3,
	})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateProduct_Partial(t *testing.T) {
	useCase, repo := newTestUseCase()

	created, err := useCase.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Keyboard",
		Price:      50,
		Quantity:   3,
		CategoryID: 3,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	price := 45.0
	updated, err := useCase.UpdateProduct(context.Background(), UpdateProductInput{
		ProductID: created.ID,
		Price:     &price,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if updated.Price != 45 {
		t.Errorf("expected price 45, got %f", updated.Price)
	}
	if updated.Name != "Keyboard" {
		t.Errorf("expected name untouched, got %s", updated.Name)
	}
	if repo.products[created.ID].Price != 45 {
		t.Errorf("expected stored price 45, got %f", repo.products[created.ID].Price)
	}
}

func TestDeleteProduct_SoftRemoves(t *testing.T) {
	useCase, repo := newTestUseCase()

	created, err := useCase.CreateProduct(context.Background(), CreateProductInput{
		Name:       "Keyboard",
		Price:      50,
		Quantity:   3,
		CategoryID: 3,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if err := useCase.DeleteProduct(context.Background(), created.ID); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// The row survives, the storefront just no longer serves it.
	if repo.products[created.ID] == nil {
		t.Fatal("expected product row to survive")
	}
	if repo.products[created.ID].IsActive {
		t.Error("expected product to be inactive")
	}

	if _, err := useCase.GetProduct(context.Background(), created.ID); err == nil {
		t.Fatal("expected inactive product to be hidden")
	} else if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}
