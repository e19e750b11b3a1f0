package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"go-shop/internal/cart/domain"
	ordersports "go-shop/internal/orders/ports"
	apperrors "go-shop/pkg/errors"
)

// CartLineModel is the GORM model for cart lines
type CartLineModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_cart_user_product;not null"`
	ProductID uint      `gorm:"uniqueIndex:idx_cart_user_product;not null"`
	Quantity  int       `gorm:"not null"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (CartLineModel) TableName() string {
	return "cart_lines"
}

// WishlistItemModel is the GORM model for wishlist items
type WishlistItemModel struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"uniqueIndex:idx_wishlist_user_product;not null"`
	ProductID uint      `gorm:"uniqueIndex:idx_wishlist_user_product;not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

// TableName returns the table name for GORM
func (WishlistItemModel) TableName() string {
	return "wishlist_items"
}

// PostgresCartRepository implements CartRepository using PostgreSQL. It
// also serves the order checkout, which reads active lines and
// deactivates them once they become orders.
type PostgresCartRepository struct {
	db *gorm.DB
}

// NewPostgresCartRepository creates a new PostgreSQL cart repository
func NewPostgresCartRepository(db *gorm.DB) *PostgresCartRepository {
	return &PostgresCartRepository{db: db}
}

// Migrate runs auto-migration for the cart models
func (r *PostgresCartRepository) Migrate() error {
	return r.db.AutoMigrate(&CartLineModel{}, &WishlistItemModel{})
}

// Upsert inserts a cart line or replaces the quantity of an existing one
func (r *PostgresCartRepository) Upsert(ctx context.Context, line *domain.CartLine) error {
	model := &CartLineModel{
		UserID:    line.UserID,
		ProductID: line.ProductID,
		Quantity:  line.Quantity,
		IsActive:  true,
	}

	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{"quantity": line.Quantity, "is_active": true}),
		}).
		Create(model)
	if result.Error != nil {
		return result.Error
	}

	line.ID = model.ID
	return nil
}

// Remove drops a user's cart line for a product
func (r *PostgresCartRepository) Remove(ctx context.Context, userID, productID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&CartLineModel{})
	if result.Error != nil {
		return apperrors.NewInternal("failed to remove cart line", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewLineNotFound(productID)
	}
	return nil
}

type cartViewRow struct {
	CartLineModel
	ProductName string
	Price       float64
	Discount    float64
}

// ListActive retrieves the user's active cart lines with product facts
func (r *PostgresCartRepository) ListActive(ctx context.Context, userID uint) ([]*domain.CartView, error) {
	var rows []cartViewRow

	result := r.db.WithContext(ctx).
		Model(&CartLineModel{}).
		Select("cart_lines.*, products.name AS product_name, products.price, products.discount").
		Joins("LEFT JOIN products ON products.id = cart_lines.product_id").
		Where("cart_lines.user_id = ? AND cart_lines.is_active = ?", userID, true).
		Order("cart_lines.created_at").
		Find(&rows)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to list cart", result.Error)
	}

	views := make([]*domain.CartView, len(rows))
	for i, row := range rows {
		views[i] = &domain.CartView{
			CartLine:    toCartLineDomain(&row.CartLineModel),
			ProductName: row.ProductName,
			Price:       row.Price,
			Discount:    row.Discount,
		}
	}

	return views, nil
}

// ActiveLines implements the checkout-side read of the cart
func (r *PostgresCartRepository) ActiveLines(ctx context.Context, userID uint, productIDs []uint) ([]ordersports.CartLine, error) {
	var models []CartLineModel

	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id IN ? AND is_active = ?", userID, productIDs, true).
		Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to read cart", result.Error)
	}

	lines := make([]ordersports.CartLine, len(models))
	for i, model := range models {
		lines[i] = ordersports.CartLine{
			ID:        model.ID,
			ProductID: model.ProductID,
			Quantity:  model.Quantity,
		}
	}

	return lines, nil
}

// Deactivate retires a cart line that has become an order
func (r *PostgresCartRepository) Deactivate(ctx context.Context, lineID uint) error {
	result := r.db.WithContext(ctx).
		Model(&CartLineModel{}).
		Where("id = ?", lineID).
		Update("is_active", false)
	if result.Error != nil {
		return apperrors.NewInternal("failed to deactivate cart line", result.Error)
	}
	return nil
}

// PostgresWishlistRepository implements WishlistRepository using
// PostgreSQL
type PostgresWishlistRepository struct {
	db *gorm.DB
}

// NewPostgresWishlistRepository creates a new PostgreSQL wishlist
// repository
func NewPostgresWishlistRepository(db *gorm.DB) *PostgresWishlistRepository {
	return &PostgresWishlistRepository{db: db}
}

// Add inserts a wishlist item
func (r *PostgresWishlistRepository) Add(ctx context.Context, item *domain.WishlistItem) error {
	model := &WishlistItemModel{
		UserID:    item.UserID,
		ProductID: item.ProductID,
	}

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	item.ID = model.ID
	item.CreatedAt = model.CreatedAt
	return nil
}

// Remove drops a wishlist item
func (r *PostgresWishlistRepository) Remove(ctx context.Context, userID, productID uint) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&WishlistItemModel{})
	if result.Error != nil {
		return apperrors.NewInternal("failed to remove wishlist item", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewWishlistItemNotFound(productID)
	}
	return nil
}

type wishlistViewRow struct {
	WishlistItemModel
	ProductName string
	Price       float64
}

// List retrieves the user's wishlist with product facts
func (r *PostgresWishlistRepository) List(ctx context.Context, userID uint) ([]*domain.WishlistView, error) {
	var rows []wishlistViewRow

	result := r.db.WithContext(ctx).
		Model(&WishlistItemModel{}).
		Select("wishlist_items.*, products.name AS product_name, products.price").
		Joins("LEFT JOIN products ON products.id = wishlist_items.product_id").
		Where("wishlist_items.user_id = ?", userID).
		Order("wishlist_items.created_at DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to list wishlist", result.Error)
	}

	views := make([]*domain.WishlistView, len(rows))
	for i, row := range rows {
		views[i] = &domain.WishlistView{
			WishlistItem: domain.WishlistItem{
				ID:        row.ID,
				UserID:    row.UserID,
				ProductID: row.ProductID,
				CreatedAt: row.CreatedAt,
			},
			ProductName: row.ProductName,
			Price:       row.Price,
		}
	}

	return views, nil
}

// Exists reports whether the product is already on the user's wishlist
func (r *PostgresWishlistRepository) Exists(ctx context.Context, userID, productID uint) (bool, error) {
	var count int64

	result := r.db.WithContext(ctx).
		Model(&WishlistItemModel{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count)
	if result.Error != nil {
		return false, apperrors.NewInternal("failed to check wishlist", result.Error)
	}

	return count > 0, nil
}

// ProductCheckerAdapter checks product existence against the catalog
type ProductCheckerAdapter struct {
	catalog ordersports.ProductCatalog
}

// NewProductCheckerAdapter creates a new product checker
func NewProductCheckerAdapter(catalog ordersports.ProductCatalog) *ProductCheckerAdapter {
	return &ProductCheckerAdapter{catalog: catalog}
}

// Exists returns an error unless the product exists and is active
func (a *ProductCheckerAdapter) Exists(ctx context.Context, productID uint) error {
	product, err := a.catalog.Get(ctx, productID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return apperrors.NewNotFound("product", productID)
	}
	return nil
}

func toCartLineDomain(model *CartLineModel) domain.CartLine {
	return domain.CartLine{
		ID:        model.ID,
		UserID:    model.UserID,
		ProductID: model.ProductID,
		Quantity:  model.Quantity,
		IsActive:  model.IsActive,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
	}
}
