package application

import (
	"context"
	"testing"

	"go-shop/internal/orders/domain"
	"go-shop/internal/orders/ports"
	"go-shop/pkg/errors"
	"go-shop/pkg/logger"
)

// MockOrderRepository is a mock implementation of OrderRepository
type MockOrderRepository struct {
	orders       map[uint]*domain.Order
	productNames map[uint]string
	nextID       uint
	statusWrites int
}

func NewMockOrderRepository() *MockOrderRepository {
	return &MockOrderRepository{
		orders:       make(map[uint]*domain.Order),
		productNames: make(map[uint]string),
		nextID:       1,
	}
}

func (m *MockOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	order.ID = m.nextID
	m.nextID++
	m.orders[order.ID] = order
	return nil
}

func (m *MockOrderRepository) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok {
		return nil, domain.NewOrderNotFound(id)
	}
	return order, nil
}

func (m *MockOrderRepository) GetOwned(ctx context.Context, id, userID uint) (*domain.Order, error) {
	order, ok := m.orders[id]
	if !ok || order.UserID != userID || !order.IsActive {
		return nil, domain.NewOrderNotFound(id)
	}
	return order, nil
}

func (m *MockOrderRepository) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error {
	m.statusWrites++
	order, ok := m.orders[id]
	if !ok {
		return domain.ErrNoChanges
	}
	order.Status = status
	return nil
}

func (m *MockOrderRepository) SetActive(ctx context.Context, id uint, active bool) error {
	order, ok := m.orders[id]
	if !ok {
		return domain.ErrNoChanges
	}
	order.IsActive = active
	return nil
}

func (m *MockOrderRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.OrderSummary, error) {
	var result []*domain.OrderSummary
	for _, order := range m.orders {
		if order.UserID == userID && order.IsActive {
			result = append(result, &domain.OrderSummary{Order: *order, ProductName: m.productNames[order.ProductID]})
		}
	}
	return result, nil
}

func (m *MockOrderRepository) ListAll(ctx context.Context) ([]*domain.OrderSummary, error) {
	var result []*domain.OrderSummary
	for _, order := range m.orders {
		result = append(result, &domain.OrderSummary{Order: *order, ProductName: m.productNames[order.ProductID]})
	}
	return result, nil
}

// MockRatingStore folds ratings into in-memory aggregates keyed by
// product, mirroring the transactional store
type MockRatingStore struct {
	repo       *MockOrderRepository
	aggregates map[uint]domain.RatingAggregate
	applies    int
}

func NewMockRatingStore(repo *MockOrderRepository) *MockRatingStore {
	return &MockRatingStore{
		repo:       repo,
		aggregates: make(map[uint]domain.RatingAggregate),
	}
}

func (m *MockRatingStore) ApplyRating(ctx context.Context, orderID uint, rating int) (domain.RatingAggregate, error) {
	m.applies++
	order, ok := m.repo.orders[orderID]
	if !ok {
		return domain.RatingAggregate{}, domain.NewOrderNotFound(orderID)
	}

	aggregate := m.aggregates[order.ProductID].Apply(order.Rating, rating)
	m.aggregates[order.ProductID] = aggregate
	order.Rating = rating
	return aggregate, nil
}

// MockCommentRepository is a mock implementation of CommentRepository
type MockCommentRepository struct {
	comments []*domain.Comment
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	comment.ID = uint(len(m.comments) + 1)
	m.comments = append(m.comments, comment)
	return nil
}

// MockCartReader is a mock implementation of CartReader
type MockCartReader struct {
	lines       map[uint][]ports.CartLine
	deactivated []uint
}

func (m *MockCartReader) ActiveLines(ctx context.Context, userID uint, productIDs []uint) ([]ports.CartLine, error) {
	var result []ports.CartLine
	for _, line := range m.lines[userID] {
		for _, pid := range productIDs {
			if line.ProductID == pid {
				result = append(result, line)
			}
		}
	}
	return result, nil
}

func (m *MockCartReader) Deactivate(ctx context.Context, lineID uint) error {
	m.deactivated = append(m.deactivated, lineID)
	return nil
}

// MockProductCatalog is a mock implementation of ProductCatalog
type MockProductCatalog struct {
	products   map[uint]*ports.ProductInfo
	decrements int
}

func (m *MockProductCatalog) Get(ctx context.Context, productID uint) (*ports.ProductInfo, error) {
	product, ok := m.products[productID]
	if !ok {
		return nil, domain.NewProductNotFound(productID)
	}
	return product, nil
}

func (m *MockProductCatalog) DecrementStock(ctx context.Context, productID uint, quantity int) error {
	m.decrements++
	m.products[productID].Stock -= quantity
	return nil
}

// MockEventPublisher records published events
type MockEventPublisher struct {
	placed        int
	statusChanged int
	rated         int
}

func (m *MockEventPublisher) PublishOrderPlaced(ctx context.Context, order *domain.Order) error {
	m.placed++
	return nil
}

func (m *MockEventPublisher) PublishStatusChanged(ctx context.Context, order *domain.Order, oldStatus, newStatus domain.OrderStatus, actor domain.Actor) error {
	m.statusChanged++
	return nil
}

func (m *MockEventPublisher) PublishOrderRated(ctx context.Context, order *domain.Order, rating int, average float64) error {
	m.rated++
	return nil
}

type fixture struct {
	repo      *MockOrderRepository
	ratings   *MockRatingStore
	comments  *MockCommentRepository
	cart      *MockCartReader
	catalog   *MockProductCatalog
	publisher *MockEventPublisher
	useCase   *OrderUseCase
}

func newFixture() *fixture {
	repo := NewMockOrderRepository()
	ratings := NewMockRatingStore(repo)
	comments := &MockCommentRepository{}
	cart := &MockCartReader{lines: make(map[uint][]ports.CartLine)}
	catalog := &MockProductCatalog{products: make(map[uint]*ports.ProductInfo)}
	publisher := &MockEventPublisher{}
	log := logger.New("test", "error")

	return &fixture{
		repo:      repo,
		ratings:   ratings,
		comments:  comments,
		cart:      cart,
		catalog:   catalog,
		publisher: publisher,
		useCase:   NewOrderUseCase(repo, ratings, comments, cart, catalog, publisher, log),
	}
}

func (f *fixture) addOrder(id, productID, userID uint, status domain.OrderStatus, rating int) *domain.Order {
	order := &domain.Order{
		ID:        id,
		ProductID: productID,
		UserID:    userID,
		Status:    status,
		Rating:    rating,
		Price:     10,
		Quantity:  1,
		IsActive:  true,
	}
	f.repo.orders[id] = order
	if id >= f.repo.nextID {
		f.repo.nextID = id + 1
	}
	return order
}

func TestSubmitRating_FirstTime(t *testing.T) {
	// Arrange
	f := newFixture()
	f.addOrder(1, 7, 1, domain.StatusDelivered, 0)

	// Act
	output, err := f.useCase.SubmitRating(context.Background(), RatingInput{OrderID: 1, UserID: 1, Rating: 4})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output.Aggregate.SumRating != 4 {
		t.Errorf("expected sum 4, got %d", output.Aggregate.SumRating)
	}
	if output.Aggregate.NumberOfUsersRate != 1 {
		t.Errorf("expected count 1, got %d", output.Aggregate.NumberOfUsersRate)
	}
	if output.Aggregate.AverageRating != 4 {
		t.Errorf("expected average 4, got %f", output.Aggregate.AverageRating)
	}

	if f.repo.orders[1].Rating != 4 {
		t.Errorf("expected order rating 4, got %d", f.repo.orders[1].Rating)
	}

	if f.publisher.rated != 1 {
		t.Errorf("expected 1 rated event, got %d", f.publisher.rated)
	}
}

func TestSubmitRating_UpdateExisting(t *testing.T) {
	// Order #42 on product #7 with aggregate sum=12, count=3 and a
	// prior rating of 4; submitting 5 must yield sum=13, count=3,
	// average 13/3.
	f := newFixture()
	f.addOrder(42, 7, 1, domain.StatusDelivered, 4)
	f.ratings.aggregates[7] = domain.RatingAggregate{SumRating: 12, NumberOfUsersRate: 3, AverageRating: 4}

	output, err := f.useCase.SubmitRating(context.Background(), RatingInput{OrderID: 42, UserID: 1, Rating: 5})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if output.Aggregate.SumRating != 13 {
		t.Errorf("expected sum 13, got %d", output.Aggregate.SumRating)
	}
	if output.Aggregate.NumberOfUsersRate != 3 {
		t.Errorf("expected count unchanged at 3, got %d", output.Aggregate.NumberOfUsersRate)
	}
	if output.Aggregate.AverageRating != 13.0/3.0 {
		t.Errorf("expected average %f, got %f", 13.0/3.0, output.Aggregate.AverageRating)
	}

	if f.repo.orders[42].Rating != 5 {
		t.Errorf("expected order rating 5, got %d", f.repo.orders[42].Rating)
	}
}

func TestSubmitRating_OutOfRange(t *testing.T) {
	f := newFixture()
	f.addOrder(1, 7, 1, domain.StatusDelivered, 0)

	for _, rating := range []int{0, -1, 6} {
		_, err := f.useCase.SubmitRating(context.Background(), RatingInput{OrderID: 1, UserID: 1, Rating: rating})
		if err == nil {
			t.Fatalf("expected error for rating %d, got nil", rating)
		}
		if !errors.Is(err, errors.CodeValidation) {
			t.Errorf("expected validation error for rating %d, got %v", rating, err)
		}
	}

	// No mutation may have happened
	if f.ratings.applies != 0 {
		t.Errorf("expected no aggregate writes, got %d", f.ratings.applies)
	}
	if f.repo.orders[1].Rating != 0 {
		t.Errorf("expected order rating untouched, got %d", f.repo.orders[1].Rating)
	}
}

func TestSubmitRating_NotOwned(t *testing.T) {
	f := newFixture()
	f.addOrder(1, 7, 2, domain.StatusDelivered, 0) // owned by user 2

	_, err := f.useCase.SubmitRating(context.Background(), RatingInput{OrderID: 1, UserID: 1, Rating: 5})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
	if f.ratings.applies != 0 {
		t.Errorf("expected no aggregate writes, got %d", f.ratings.applies)
	}
}

func TestUpdateStatusAsCustomer_AllowListRejected(t *testing.T) {
	// A customer may not push an order forward; only Cancelled and
	// Returned are accepted, and the rejection happens before any
	// write.
	f := newFixture()
	f.addOrder(10, 7, 1, domain.StatusPending, 0)

	for _, status := range []string{"Shipped", "Delivered", "Processing", "Refunded", "Failed", "On Hold", "Pending"} {
		err := f.useCase.UpdateStatusAsCustomer(context.Background(), UpdateStatusInput{OrderID: 10, UserID: 1, Status: status})
		if err == nil {
			t.Fatalf("expected error for status %q, got nil", status)
		}
		if !errors.Is(err, errors.CodeValidation) {
			t.Errorf("expected validation error for status %q, got %v", status, err)
		}
	}

	if f.repo.statusWrites != 0 {
		t.Errorf("expected no status writes, got %d", f.repo.statusWrites)
	}
	if f.repo.orders[10].Status != domain.StatusPending {
		t.Errorf("expected status unchanged, got %s", f.repo.orders[10].Status)
	}
}

func TestUpdateStatusAsCustomer_CancelAccepted(t *testing.T) {
	f := newFixture()
	f.addOrder(10, 7, 1, domain.StatusPending, 0)

	err := f.useCase.UpdateStatusAsCustomer(context.Background(), UpdateStatusInput{OrderID: 10, UserID: 1, Status: "Cancelled"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if f.repo.orders[10].Status != domain.StatusCancelled {
		t.Errorf("expected status Cancelled, got %s", f.repo.orders[10].Status)
	}
	if f.publisher.statusChanged != 1 {
		t.Errorf("expected 1 status event, got %d", f.publisher.statusChanged)
	}
}

func TestUpdateStatusAsCustomer_ReturnAccepted(t *testing.T) {
	f := newFixture()
	f.addOrder(11, 7, 1, domain.StatusDelivered, 0)

	err := f.useCase.UpdateStatusAsCustomer(context.Background(), UpdateStatusInput{OrderID: 11, UserID: 1, Status: "Returned"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if f.repo.orders[11].Status != domain.StatusReturned {
		t.Errorf("expected status Returned, got %s", f.repo.orders[11].Status)
	}
}

func TestUpdateStatusAsCustomer_NotOwned(t *testing.T) {
	f := newFixture()
	f.addOrder(10, 7, 2, domain.StatusPending, 0) // owned by user 2

	err := f.useCase.UpdateStatusAsCustomer(context.Background(), UpdateStatusInput{OrderID: 10, UserID: 1, Status: "Cancelled"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
	if f.repo.statusWrites != 0 {
		t.Errorf("expected no status writes, got %d", f.repo.statusWrites)
	}
	if f.repo.orders[10].Status != domain.StatusPending {
		t.Errorf("expected status unchanged, got %s", f.repo.orders[10].Status)
	}
}

func TestUpdateStatusAsAdmin_AnyStatus(t *testing.T) {
	// The admin console may overwrite any status with any other; there
	// is no previous-state guard and no ownership check.
	f := newFixture()
	f.addOrder(1, 7, 2, domain.StatusDelivered, 0)

	status := "Pending"
	err := f.useCase.UpdateStatusAsAdmin(context.Background(), AdminUpdateInput{OrderID: 1, Status: &status})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if f.repo.orders[1].Status != domain.StatusPending {
		t.Errorf("expected status Pending, got %s", f.repo.orders[1].Status)
	}
}

func TestUpdateStatusAsAdmin_InvalidStatus(t *testing.T) {
	f := newFixture()
	f.addOrder(1, 7, 2, domain.StatusPending, 0)

	status := "Teleported"
	err := f.useCase.UpdateStatusAsAdmin(context.Background(), AdminUpdateInput{OrderID: 1, Status: &status})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusAsAdmin_ToggleActive(t *testing.T) {
	f := newFixture()
	f.addOrder(1, 7, 2, domain.StatusPending, 0)

	active := false
	err := f.useCase.UpdateStatusAsAdmin(context.Background(), AdminUpdateInput{OrderID: 1, IsActive: &active})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if f.repo.orders[1].IsActive {
		t.Error("expected order to be deactivated")
	}
}

func TestUpdateStatusAsAdmin_NothingToUpdate(t *testing.T) {
	f := newFixture()
	f.addOrder(1, 7, 2, domain.StatusPending, 0)

	err := f.useCase.UpdateStatusAsAdmin(context.Background(), AdminUpdateInput{OrderID: 1})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}

func TestUpdateStatusAsAdmin_NotFound(t *testing.T) {
	f := newFixture()

	status := "Shipped"
	err := f.useCase.UpdateStatusAsAdmin(context.Background(), AdminUpdateInput{OrderID: 99, Status: &status})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeNotFound) {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestAddComment_RejectedBeforeDelivery(t *testing.T) {
	f := newFixture()
	f.addOrder(1, 7, 1, domain.StatusShipped, 0)

	_, err := f.useCase.AddComment(context.Background(), CommentInput{OrderID: 1, UserID: 1, Text: "great product"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeState) {
		t.Errorf("expected state error, got %v", err)
	}
	if len(f.comments.comments) != 0 {
		t.Errorf("expected no comment rows, got %d", len(f.comments.comments))
	}
}

func TestAddComment_Delivered(t *testing.T) {
	f := newFixture()
	f.addOrder(1, 7, 1, domain.StatusDelivered, 0)

	comment, err := f.useCase.AddComment(context.Background(), CommentInput{OrderID: 1, UserID: 1, Text: "great product"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(f.comments.comments) != 1 {
		t.Fatalf("expected exactly one comment row, got %d", len(f.comments.comments))
	}
	if comment.ProductID != 7 {
		t.Errorf("expected comment on product 7, got %d", comment.ProductID)
	}
	if comment.UserID != 1 {
		t.Errorf("expected comment by user 1, got %d", comment.UserID)
	}
}

func TestAddComment_TooShort(t *testing.T) {
	f := newFixture()
	f.addOrder(1, 7, 1, domain.StatusDelivered, 0)

	_, err := f.useCase.AddComment(context.Background(), CommentInput{OrderID: 1, UserID: 1, Text: "ok"})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
	if len(f.comments.comments) != 0 {
		t.Errorf("expected no comment rows, got %d", len(f.comments.comments))
	}
}

func TestCheckout_Success(t *testing.T) {
	// Arrange
	f := newFixture()
	f.cart.lines[1] = []ports.CartLine{{ID: 5, ProductID: 7, Quantity: 2}}
	f.catalog.products[7] = &ports.ProductInfo{ID: 7, Name: "Keyboard", Price: 50, Discount: 10, Stock: 3, IsActive: true}

	// Act
	output, err := f.useCase.Checkout(context.Background(), CheckoutInput{UserID: 1, ProductIDs: []uint{7}})

	// Assert
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if len(output.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(output.Orders))
	}

	order := output.Orders[0]
	if order.Status != domain.StatusPending {
		t.Errorf("expected status Pending, got %s", order.Status)
	}
	if order.Price != 40 {
		t.Errorf("expected price snapshot 40, got %f", order.Price)
	}
	if order.Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", order.Quantity)
	}

	if f.catalog.products[7].Stock != 1 {
		t.Errorf("expected stock 1, got %d", f.catalog.products[7].Stock)
	}
	if len(f.cart.deactivated) != 1 || f.cart.deactivated[0] != 5 {
		t.Errorf("expected cart line 5 deactivated, got %v", f.cart.deactivated)
	}
	if f.publisher.placed != 1 {
		t.Errorf("expected 1 placed event, got %d", f.publisher.placed)
	}
}

func TestCheckout_InsufficientStock(t *testing.T) {
	f := newFixture()
	f.cart.lines[1] = []ports.CartLine{{ID: 5, ProductID: 7, Quantity: 5}}
	f.catalog.products[7] = &ports.ProductInfo{ID: 7, Name: "Keyboard", Price: 50, Stock: 3, IsActive: true}

	_, err := f.useCase.Checkout(context.Background(), CheckoutInput{UserID: 1, ProductIDs: []uint{7}})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}

	// The whole checkout is rejected before any write
	if len(f.repo.orders) != 0 {
		t.Errorf("expected no orders, got %d", len(f.repo.orders))
	}
	if f.catalog.decrements != 0 {
		t.Errorf("expected no stock writes, got %d", f.catalog.decrements)
	}
	if len(f.cart.deactivated) != 0 {
		t.Errorf("expected no cart writes, got %v", f.cart.deactivated)
	}
}

func TestCheckout_ProductNotInCart(t *testing.T) {
	f := newFixture()
	f.catalog.products[7] = &ports.ProductInfo{ID: 7, Name: "Keyboard", Price: 50, Stock: 3, IsActive: true}

	_, err := f.useCase.Checkout(context.Background(), CheckoutInput{UserID: 1, ProductIDs: []uint{7}})
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !errors.Is(err, errors.CodeValidation) {
		t.Errorf("expected validation error, got %v", err)
	}
}
