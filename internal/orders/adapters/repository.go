package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-shop/internal/orders/domain"
	apperrors "go-shop/pkg/errors"
)

// OrderModel is the GORM model for orders (persistence layer)
type OrderModel struct {
	ID        uint               `gorm:"primaryKey"`
	ProductID uint               `gorm:"index;not null"`
	UserID    uint               `gorm:"index;not null"`
	Status    domain.OrderStatus `gorm:"size:20;not null;default:'Pending'"`
	Rating    int                `gorm:"not null;default:0"`
	Price     float64            `gorm:"not null"`
	Quantity  int                `gorm:"not null"`
	IsActive  bool               `gorm:"not null;default:true"`
	CreatedAt time.Time          `gorm:"autoCreateTime"`
	UpdatedAt time.Time          `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// CommentModel is the GORM model for order comments
type CommentModel struct {
	ID        uint      `gorm:"primaryKey"`
	OrderID   uint      `gorm:"index;not null"`
	ProductID uint      `gorm:"index;not null"`
	UserID    uint      `gorm:"index;not null"`
	Text      string    `gorm:"column:comment;not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (CommentModel) TableName() string {
	return "comments"
}

// productAggregateModel maps just the rating columns of the products
// table, so the rating store can lock and update them without owning
// the full catalog model
type productAggregateModel struct {
	ID                uint    `gorm:"primaryKey"`
	SumRating         int     `gorm:"not null;default:0"`
	NumberOfUsersRate int     `gorm:"not null;default:0"`
	AverageRating     float64 `gorm:"not null;default:0"`
}

func (productAggregateModel) TableName() string {
	return "products"
}

// PostgresOrderRepository implements OrderRepository, RatingStore and
// CommentRepository using PostgreSQL
type PostgresOrderRepository struct {
	db *gorm.DB
}

// NewPostgresOrderRepository creates a new PostgreSQL order repository
func NewPostgresOrderRepository(db *gorm.DB) *PostgresOrderRepository {
	return &PostgresOrderRepository{db: db}
}

// Migrate runs auto-migration for the order model
func (r *PostgresOrderRepository) Migrate() error {
	return r.db.AutoMigrate(&OrderModel{})
}

// Create creates a new order
func (r *PostgresOrderRepository) Create(ctx context.Context, order *domain.Order) error {
	model := toModel(order)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	// Update domain entity with generated ID
	order.ID = model.ID
	order.CreatedAt = model.CreatedAt
	order.UpdatedAt = model.UpdatedAt

	return nil
}

// GetByID retrieves an order by ID regardless of owner
func (r *PostgresOrderRepository) GetByID(ctx context.Context, id uint) (*domain.Order, error) {
	var model OrderModel

	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewOrderNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get order", result.Error)
	}

	return toDomain(&model), nil
}

// GetOwned retrieves an active order owned by the given user
func (r *PostgresOrderRepository) GetOwned(ctx context.Context, id, userID uint) (*domain.Order, error) {
	var model OrderModel

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ? AND is_active = ?", id, userID, true).
		First(&model)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewOrderNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get order", result.Error)
	}

	return toDomain(&model), nil
}

// UpdateStatus overwrites the stored status. The caller has already
// checked existence, so zero affected rows means the write changed
// nothing and is reported as such, not as a missing order.
func (r *PostgresOrderRepository) UpdateStatus(ctx context.Context, id uint, status domain.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&OrderModel{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return apperrors.NewInternal("failed to update order status", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNoChanges
	}
	return nil
}

// SetActive flips the soft-delete flag
func (r *PostgresOrderRepository) SetActive(ctx context.Context, id uint, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&OrderModel{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return apperrors.NewInternal("failed to update order", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNoChanges
	}
	return nil
}

// ApplyRating persists the order rating and the recomputed product
// aggregate in one transaction, locking the product row so concurrent
// submissions cannot lose updates.
func (r *PostgresOrderRepository) ApplyRating(ctx context.Context, orderID uint, rating int) (domain.RatingAggregate, error) {
	var aggregate domain.RatingAggregate

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order OrderModel
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewOrderNotFound(orderID)
			}
			return apperrors.NewInternal("failed to get order", err)
		}

		var product productAggregateModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&product, order.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NewProductNotFound(order.ProductID)
			}
			return apperrors.NewInternal("failed to get product", err)
		}

		aggregate = domain.RatingAggregate{
			SumRating:         product.SumRating,
			NumberOfUsersRate: product.NumberOfUsersRate,
			AverageRating:     product.AverageRating,
		}.Apply(order.Rating, rating)

		if err := tx.Model(&order).Update("rating", rating).Error; err != nil {
			return apperrors.NewInternal("failed to update order rating", err)
		}

		updates := map[string]interface{}{
			"sum_rating":           aggregate.SumRating,
			"number_of_users_rate": aggregate.NumberOfUsersRate,
			"average_rating":       aggregate.AverageRating,
		}
		if err := tx.Model(&product).Updates(updates).Error; err != nil {
			return apperrors.NewInternal("failed to update product rating", err)
		}

		return nil
	})
	if err != nil {
		return domain.RatingAggregate{}, err
	}

	return aggregate, nil
}

// PostgresCommentRepository implements CommentRepository using
// PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgreSQL comment
// repository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// Migrate runs auto-migration for the comment model
func (r *PostgresCommentRepository) Migrate() error {
	return r.db.AutoMigrate(&CommentModel{})
}

// Create inserts a new comment
func (r *PostgresCommentRepository) Create(ctx context.Context, comment *domain.Comment) error {
	model := &CommentModel{
		OrderID:   comment.OrderID,
		ProductID: comment.ProductID,
		UserID:    comment.UserID,
		Text:      comment.Text,
		IsActive:  comment.IsActive,
		CreatedAt: comment.CreatedAt,
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return apperrors.NewInternal("failed to create comment", result.Error)
	}

	comment.ID = model.ID
	comment.CreatedAt = model.CreatedAt
	return nil
}

// ListByUser retrieves the active orders of a user, newest first
func (r *PostgresOrderRepository) ListByUser(ctx context.Context, userID uint) ([]*domain.OrderSummary, error) {
	return r.list(ctx, r.db.WithContext(ctx).Where("orders.user_id = ? AND orders.is_active = ?", userID, true))
}

// ListAll retrieves all orders for the admin console, newest first
func (r *PostgresOrderRepository) ListAll(ctx context.Context) ([]*domain.OrderSummary, error) {
	return r.list(ctx, r.db.WithContext(ctx))
}

type orderSummaryRow struct {
	OrderModel
	ProductName string
}

func (r *PostgresOrderRepository) list(ctx context.Context, query *gorm.DB) ([]*domain.OrderSummary, error) {
	var rows []orderSummaryRow

	result := query.
		Model(&OrderModel{}).
		Select("orders.*, products.name AS product_name").
		Joins("LEFT JOIN products ON products.id = orders.product_id").
		Order("orders.created_at DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to list orders", result.Error)
	}

	summaries := make([]*domain.OrderSummary, len(rows))
	for i, row := range rows {
		summaries[i] = &domain.OrderSummary{
			Order:       *toDomain(&row.OrderModel),
			ProductName: row.ProductName,
		}
	}

	return summaries, nil
}

// toModel converts a domain entity to a GORM model
func toModel(order *domain.Order) *OrderModel {
	return &OrderModel{
		ID:        order.ID,
		ProductID: order.ProductID,
		UserID:    order.UserID,
		Status:    order.Status,
		Rating:    order.Rating,
		Price:     order.Price,
		Quantity:  order.Quantity,
		IsActive:  order.IsActive,
		CreatedAt: order.CreatedAt,
		UpdatedAt: order.UpdatedAt,
	}
}

// toDomain converts a GORM model to a domain entity
func toDomain(model *OrderModel) *domain.Order {
	return &domain.Order{
		ID:        model.ID,
		ProductID: model.ProductID,
		UserID:    model.UserID,
		Status:    model.Status,
		Rating:    model.Rating,
		Price:     model.Price,
		Quantity:  model.Quantity,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
