package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"go-shop/internal/catalog/domain"
	"go-shop/internal/catalog/ports"
	ordersports "go-shop/internal/orders/ports"
	apperrors "go-shop/pkg/errors"
)

// ProductModel is the GORM model for products. The rating columns are
// written by the order side inside its own transaction; the catalog
// never touches them.
type ProductModel struct {
	ID                uint      `gorm:"primaryKey"`
	Name              string    `gorm:"size:255;not null;index"`
	Description       string    `gorm:"type:text"`
	Price             float64   `gorm:"not null"`
	Discount          float64   `gorm:"not null;default:0"`
	Quantity          int       `gorm:"not null;default:0"`
	CategoryID        uint      `gorm:"index;not null"`
	SubCategoryID     uint      `gorm:"index"`
	SumRating         int       `gorm:"not null;default:0"`
	NumberOfUsersRate int       `gorm:"not null;default:0"`
	AverageRating     float64   `gorm:"not null;default:0"`
	IsActive          bool      `gorm:"not null;default:true"`
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// CategoryModel is the GORM model for categories
type CategoryModel struct {
	ID       uint   `gorm:"primaryKey"`
	Name     string `gorm:"size:255;not null;uniqueIndex"`
	IsActive bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (CategoryModel) TableName() string {
	return "categories"
}

// SubCategoryModel is the GORM model for sub-categories
type SubCategoryModel struct {
	ID         uint   `gorm:"primaryKey"`
	Name       string `gorm:"size:255;not null"`
	CategoryID uint   `gorm:"index;not null"`
	IsActive   bool   `gorm:"not null;default:true"`
}

// TableName returns the table name for GORM
func (SubCategoryModel) TableName() string {
	return "sub_categories"
}

// PostgresProductRepository implements ProductRepository using
// PostgreSQL. It doubles as the product catalog the order side depends
// on for checkout.
type PostgresProductRepository struct {
	db *gorm.DB
}

// NewPostgresProductRepository creates a new PostgreSQL product
// repository
func NewPostgresProductRepository(db *gorm.DB) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

// Migrate runs auto-migration for the catalog models
func (r *PostgresProductRepository) Migrate() error {
	return r.db.AutoMigrate(&CategoryModel{}, &SubCategoryModel{}, &ProductModel{})
}

// Create creates a new product
func (r *PostgresProductRepository) Create(ctx context.Context, product *domain.Product) error {
	model := toProductModel(product)

	result := r.db.WithContext(ctx).Create(model)
	if result.Error != nil {
		return result.Error
	}

	product.ID = model.ID
	product.CreatedAt = model.CreatedAt
	product.UpdatedAt = model.UpdatedAt

	return nil
}

// Update overwrites the editable columns of a product. The rating
// columns are excluded so a concurrent rating cannot be clobbered.
func (r *PostgresProductRepository) Update(ctx context.Context, product *domain.Product) error {
	updates := map[string]interface{}{
		"name":            product.Name,
		"description":     product.Description,
		"price":           product.Price,
		"discount":        product.Discount,
		"quantity":        product.Quantity,
		"category_id":     product.CategoryID,
		"sub_category_id": product.SubCategoryID,
		"is_active":       product.IsActive,
	}

	result := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Where("id = ?", product.ID).
		Updates(updates)
	if result.Error != nil {
		return apperrors.NewInternal("failed to update product", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNoChanges
	}
	return nil
}

// SetActive flips the soft-delete flag
func (r *PostgresProductRepository) SetActive(ctx context.Context, id uint, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Where("id = ?", id).
		Update("is_active", active)
	if result.Error != nil {
		return apperrors.NewInternal("failed to update product", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNoChanges
	}
	return nil
}

// GetByID retrieves a product by ID
func (r *PostgresProductRepository) GetByID(ctx context.Context, id uint) (*domain.Product, error) {
	var model ProductModel

	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewProductNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get product", result.Error)
	}

	return toProductDomain(&model), nil
}

// List retrieves a page of active products with the total match count
func (r *PostgresProductRepository) List(ctx context.Context, filter ports.ListFilter) ([]*domain.Product, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Where("is_active = ?", true)

	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, apperrors.NewInternal("failed to count products", err)
	}

	var models []ProductModel
	result := query.
		Order("created_at DESC").
		Offset((filter.Page - 1) * filter.PageSize).
		Limit(filter.PageSize).
		Find(&models)
	if result.Error != nil {
		return nil, 0, apperrors.NewInternal("failed to list products", result.Error)
	}

	products := make([]*domain.Product, len(models))
	for i := range models {
		products[i] = toProductDomain(&models[i])
	}

	return products, total, nil
}

// Get implements the product lookup the order checkout depends on
func (r *PostgresProductRepository) Get(ctx context.Context, productID uint) (*ordersports.ProductInfo, error) {
	product, err := r.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return &ordersports.ProductInfo{
		ID:       product.ID,
		Name:     product.Name,
		Price:    product.Price,
		Discount: product.Discount,
		Stock:    product.Quantity,
		IsActive: product.IsActive,
	}, nil
}

// DecrementStock atomically subtracts sold quantity, refusing to go
// below zero
func (r *PostgresProductRepository) DecrementStock(ctx context.Context, productID uint, quantity int) error {
	result := r.db.WithContext(ctx).
		Model(&ProductModel{}).
		Where("id = ? AND quantity >= ?", productID, quantity).
		Update("quantity", gorm.Expr("quantity - ?", quantity))
	if result.Error != nil {
		return apperrors.NewInternal("failed to decrement stock", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NewValidation("not enough stock", nil)
	}
	return nil
}

// PostgresCategoryRepository implements CategoryRepository using
// PostgreSQL
type PostgresCategoryRepository struct {
	db *gorm.DB
}

// NewPostgresCategoryRepository creates a new PostgreSQL category
// repository
func NewPostgresCategoryRepository(db *gorm.DB) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

// ListCategories retrieves the active categories
func (r *PostgresCategoryRepository) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var models []CategoryModel

	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name").
		Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to list categories", result.Error)
	}

	categories := make([]*domain.Category, len(models))
	for i, model := range models {
		categories[i] = &domain.Category{ID: model.ID, Name: model.Name, IsActive: model.IsActive}
	}

	return categories, nil
}

// ListSubCategories retrieves the active sub-categories of a category
func (r *PostgresCategoryRepository) ListSubCategories(ctx context.Context, categoryID uint) ([]*domain.SubCategory, error) {
	var models []SubCategoryModel

	result := r.db.WithContext(ctx).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("name").
		Find(&models)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to list sub-categories", result.Error)
	}

	subs := make([]*domain.SubCategory, len(models))
	for i, model := range models {
		subs[i] = &domain.SubCategory{
			ID:         model.ID,
			Name:       model.Name,
			CategoryID: model.CategoryID,
			IsActive:   model.IsActive,
		}
	}

	return subs, nil
}

// GetCategory retrieves a category by ID
func (r *PostgresCategoryRepository) GetCategory(ctx context.Context, id uint) (*domain.Category, error) {
	var model CategoryModel

	result := r.db.WithContext(ctx).First(&model, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domain.NewCategoryNotFound(id)
		}
		return nil, apperrors.NewInternal("failed to get category", result.Error)
	}

	return &domain.Category{ID: model.ID, Name: model.Name, IsActive: model.IsActive}, nil
}

// PostgresCommentReader reads active product comments with the author
// name joined in
type PostgresCommentReader struct {
	db *gorm.DB
}

// NewPostgresCommentReader creates a new PostgreSQL comment reader
func NewPostgresCommentReader(db *gorm.DB) *PostgresCommentReader {
	return &PostgresCommentReader{db: db}
}

type productCommentRow struct {
	ID        uint
	UserName  string
	Comment   string
	CreatedAt time.Time
}

// ActiveByProduct retrieves the active comments on a product, newest
// first
func (r *PostgresCommentReader) ActiveByProduct(ctx context.Context, productID uint) ([]domain.ProductComment, error) {
	var rows []productCommentRow

	result := r.db.WithContext(ctx).
		Table("comments").
		Select("comments.id, users.name AS user_name, comments.comment, comments.created_at").
		Joins("LEFT JOIN users ON users.id = comments.user_id").
		Where("comments.product_id = ? AND comments.is_active = ?", productID, true).
		Order("comments.created_at DESC").
		Find(&rows)
	if result.Error != nil {
		return nil, apperrors.NewInternal("failed to list comments", result.Error)
	}

	comments := make([]domain.ProductComment, len(rows))
	for i, row := range rows {
		comments[i] = domain.ProductComment{
			ID:        row.ID,
			UserName:  row.UserName,
			Text:      row.Comment,
			CreatedAt: row.CreatedAt,
		}
	}

	return comments, nil
}

// toProductModel converts a domain entity to a GORM model
func toProductModel(product *domain.Product) *ProductModel {
	return &ProductModel{
		ID:                product.ID,
		Name:              product.Name,
		Description:       product.Description,
		Price:             product.Price,
		Discount:          product.Discount,
		Quantity:          product.Quantity,
		CategoryID:        product.CategoryID,
		SubCategoryID:     product.SubCategoryID,
		SumRating:         product.SumRating,
		NumberOfUsersRate: product.NumberOfUsersRate,
		AverageRating:     product.AverageRating,
		IsActive:          product.IsActive,
		CreatedAt:         product.CreatedAt,
		UpdatedAt:         product.UpdatedAt,
	}
}

// toProductDomain converts a GORM model to a domain entity
func toProductDomain(model *ProductModel) *domain.Product {
	return &domain.Product{
		ID:                model.ID,
		Name:              model.Name,
		Description:       model.Description,
		Price:             model.Price,
		Discount:          model.Discount,
		Quantity:          model.Quantity,
		CategoryID:        model.CategoryID,
		SubCategoryID:     model.SubCategoryID,
		SumRating:         model.SumRating,
		NumberOfUsersRate: model.NumberOfUsersRate,
		AverageRating:     model.AverageRating,
		IsActive:          model.IsActive,
		CreatedAt:         model.CreatedAt,
		UpdatedAt:         model.UpdatedAt,
	}
}
