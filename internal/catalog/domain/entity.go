package domain

import (
	"time"
)

// Product represents a catalog product. The rating columns are a
// denormalized aggregate maintained by the order lifecycle; the catalog
// only ever reads them.
type Product struct {
	ID                uint
	Name              string
	Description       string
	Price             float64
	Discount          float64
	Quantity          int
	CategoryID        uint
	SubCategoryID     uint
	SumRating         int
	NumberOfUsersRate int
	AverageRating     float64
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Validate validates the product entity
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	if p.Discount < 0 || p.Discount > p.Price {
		return ErrInvalidDiscount
	}
	if p.Quantity < 0 {
		return ErrInvalidQuantity
	}
	if p.CategoryID == 0 {
		return ErrCategoryRequired
	}
	return nil
}

// NewProduct creates a new active product with validation
func NewProduct(name, description string, price, discount float64, quantity int, categoryID, subCategoryID uint) (*Product, error) {
	product := &Product{
		Name:          name,
		Description:   description,
		Price:         price,
		Discount:      discount,
		Quantity:      quantity,
		CategoryID:    categoryID,
		SubCategoryID: subCategoryID,
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if err := product.Validate(); err != nil {
		return nil, err
	}

	return product, nil
}

// FinalPrice returns the price after discount
func (p *Product) FinalPrice() float64 {
	return p.Price - p.Discount
}

// Category groups products for browsing
type Category struct {
	ID       uint
	Name     string
	IsActive bool
}

// SubCategory refines a category
type SubCategory struct {
	ID         uint
	Name       string
	CategoryID uint
	IsActive   bool
}

// ProductComment is a customer comment shown on the product page
type ProductComment struct {
	ID        uint
	UserName  string
	Text      string
	CreatedAt time.Time
}

// ProductDetail is the full product page payload
type ProductDetail struct {
	Product
	CategoryName    string
	SubCategoryName string
	Comments        []ProductComment
}
