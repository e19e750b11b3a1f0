package domain

import (
	"time"
)

// CartLine is one product in a user's cart. Checkout deactivates lines
// rather than deleting them.
type CartLine struct {
	ID        uint
	UserID    uint
	ProductID uint
	Quantity  int
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the cart line
func (l *CartLine) Validate() error {
	if l.UserID == 0 {
		return ErrUserIDRequired
	}
	if l.ProductID == 0 {
		return ErrProductIDRequired
	}
	if l.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// NewCartLine creates a new active cart line with validation
func NewCartLine(userID, productID uint, quantity int) (*CartLine, error) {
	line := &CartLine{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
		IsActive:  true,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := line.Validate(); err != nil {
		return nil, err
	}

	return line, nil
}

// WishlistItem marks a product a user wants to come back to
type WishlistItem struct {
	ID        uint
	UserID    uint
	ProductID uint
	CreatedAt time.Time
}

// CartView pairs a cart line with product facts for display
type CartView struct {
	CartLine
	ProductName string
	Price       float64
	Discount    float64
}

// LineTotal returns the discounted line total
func (v *CartView) LineTotal() float64 {
	return (v.Price - v.Discount) * float64(v.Quantity)
}

// WishlistView pairs a wishlist item with product facts for display
type WishlistView struct {
	WishlistItem
	ProductName string
	Price       float64
}
