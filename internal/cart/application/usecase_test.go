package application

import (
	"context"
	"testing"

	"go-shop/internal/cart/domain"
	"go-shop/pkg/errors"
	"go-shop/pkg/logger"
)

// MockCartRepository is a mock implementation of CartRepository
type MockCartRepository struct {
	lines map[uint]map[uint]*domain.CartLine // userID -> productID -> line
}

func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{lines: make(map[uint]map[uint]*domain.CartLine)}
}

func (m *MockCartRepository) Upsert(ctx context.Context, line *domain.CartLine) error {
	if m.lines[line.UserID] == nil {
		m.lines[line.UserID] = make(map[uint]*domain.CartLine)
	}
	m.lines[line.UserID][line.ProductID] = line
	return nil
}

func (m *MockCartRepository) Remove(ctx context.Context, userID, productID uint) error {
	if _, ok := m.lines[userID][productID]; !ok {
		return domain.NewLineNotFound(productID)
	}
	delete(m.lines[userID], productID)
	return nil
}

func (m *MockCartRepository) ListActive(ctx context.Context, userID uint) ([]*domain.CartView, error) {
	var views []*domain.CartView
	for _, line := range m.lines[userID] {
		views = append(views, &domain.CartView{CartLine: *line})
	}
	return views, nil
}

// MockWishlistRepository is a mock implementation of WishlistRepository
type MockWishlistRepository struct {
	items map[uint]map[uint]*domain.WishlistItem
}

func NewMockWishlistRepository() *MockWishlistRepository {
	return &MockWishlistRepository{items: make(map[uint]map[uint]*domain.WishlistItem)}
}

func (m *MockWishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) error {
	if m.items[item.UserID] == nil {
		m.items[item.UserID] = make(map[uint]*domain.WishlistItem)
	}
	m.items[item.UserID][item.ProductID] = item
	return nil
}

func (m *MockWishlistRepository) Remove(ctx context.Context, userID, productID uint) error {
	if _, ok := m.items[userID][productID]; !ok {
		return domain.NewWishlistItemNotFound(productID)
	}
	delete(m.items[userID], productID)
	return nil
}

func (m *MockWishlistRepository) List(ctx context.Context, userID uint) ([]*domain.WishlistView, error) {
	var views []*domain.WishlistView
	for _, item := range m.items[userID] {
		views = append(views, &domain.WishlistView{WishlistItem: *item})
	}
	return views, nil
}

func (m *MockWishlistRepository) Exists(ctx context.Context, userID, productID uint) (bool, error) {
	_, ok := m.items[userID][productID]
	return ok, nil
}

// MockProductChecker is a mock implementation of ProductChecker
type MockProductChecker struct {
	known map[uint]bool
}

func (m *MockProductChecker) Exists(ctx context.Context, productID uint) error {
	if !m.known[productID] {
		return errors.NewNotFound("product", productID)
	}
	return nil
}

func newTestUseCase() (*CartUseCase, *MockCartRepository, *MockWishlistRepository) {
	cart := NewMockCartRepository()
	wishlist := NewMockWishlistRepository()
	checker := &MockProductChecker{known: map[uint]bool{7: true, 8: true}}
	return NewCartUseCase(cart, wishlist, checker, logger.New("test", "error")), cart, wishlist
}

func TestAddToCart(t *testing.T) {
	useCase, cart, _ := newTestUseCase()

	err := useCase.AddToCart(context.Background(), AddToCartInput{UserID: 1, ProductID: 7, Quantity: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	line := cart.lines[1][7]
	if line == nil {
		t.Fatal("expected cart line to exist")
	}
	if line.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", line.Quantity)
	}
}

func TestAddToCart_ReplacesQuantity(t *testing.T) {
	useCase, cart, _ := newTestUseCase()

	for _, quantity := range []int{2, 5} {
		err := useCase.AddToCart(context.Background(), AddToCartInput{UserID: 1, ProductID: 7, Quantity: quantity})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	}

	if got := cart.lines[1][7].Quantity; got != 5 {
		t.Errorf("expected quantity replaced with 5, got %d", got)
	}
}

func TestAddToCart_UnknownProduct(t *testing.T) {
	useCase, cart, _ := newTestUseCase()

	err := useCase.AddToCart(context.Background(), AddToCartInput{UserID: 1, ProductID: 99, Quantity: 1})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
	if len(cart.lines[1]) != 0 {
		t.Error("expected no cart lines")
	}
}

func TestAddToCart_InvalidQuantity(t *testing.T) {
	useCase, _, _ := newTestUseCase()

	err := useCase.AddToCart(context.Background(), AddToCartInput{UserID: 1, ProductID: 7, Quantity: 0})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestRemoveFromCart_NotFound(t *testing.T) {
	useCase, _, _ := newTestUseCase()

	err := useCase.RemoveFromCart(context.Background(), 1, 7)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestAddToWishlist(t *testing.T) {
	useCase, _, wishlist := newTestUseCase()

	if err := useCase.AddToWishlist(context.Background(), 1, 7); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if wishlist.items[1][7] == nil {
		t.Fatal("expected wishlist item to exist")
	}
}

func TestAddToWishlist_Duplicate(t *testing.T) {
	useCase, _, _ := newTestUseCase()

	if err := useCase.AddToWishlist(context.Background(), 1, 7); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	err := useCase.AddToWishlist(context.Background(), 1, 7)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeConflict) {
		t.Errorf("expected conflict error, got %v", err)
	}
}

func TestRemoveFromWishlist(t *testing.T) {
	useCase, _, wishlist := newTestUseCase()

	if err := useCase.AddToWishlist(context.Background(), 1, 7); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if err := useCase.RemoveFromWishlist(context.Background(), 1, 7); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(wishlist.items[1]) != 0 {
		t.Error("expected wishlist to be empty")
	}
}
