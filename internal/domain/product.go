package domain

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrDiscountNotBelowOriginal = errors.New("original price must exceed price")
	ErrEmptyCategory            = errors.New("category must not be empty")
)

// Product represents a product in the catalog
type Product struct {
	ID            string    `json:"id" bson:"-" db:"id"`
	Name          string    `json:"name" bson:"name" db:"name"`
	Description   string    `json:"description" bson:"description" db:"description"`
	Price         float64   `json:"price" bson:"price" db:"price"`
	OriginalPrice *float64  `json:"originalPrice,omitempty" bson:"originalPrice,omitempty" db:"original_price"`
	Category      string    `json:"category" bson:"category" db:"category"`
	Image         string    `json:"image" bson:"image" db:"image"`
	Images        []string  `json:"images" bson:"images" db:"images"`
	InStock       bool      `json:"inStock" bson:"inStock" db:"in_stock"`
	StockQuantity int       `json:"stockQuantity" bson:"stockQuantity" db:"stock_quantity"`
	Rating        *float64  `json:"rating,omitempty" bson:"rating,omitempty" db:"rating"`
	Reviews       *int      `json:"reviews,omitempty" bson:"reviews,omitempty" db:"reviews"`
	Tags          []string  `json:"tags" bson:"tags" db:"tags"`
	Slug          string    `json:"slug" bson:"slug" db:"slug"`
	CreatedAt     time.Time `json:"createdAt" bson:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updatedAt" db:"updated_at"`
}

// Available is the quantity a cart may hold. A product flagged out of stock
// has nothing available regardless of its stock counter.
func (p *Product) Available() int {
	if !p.InStock || p.StockQuantity < 0 {
		return 0
	}
	return p.StockQuantity
}

// HasDiscount reports whether the product carries a strike-through price.
func (p *Product) HasDiscount() bool {
	return p.OriginalPrice != nil && *p.OriginalPrice > p.Price
}

// Normalize trims text fields and lowercases the slug.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Category = strings.TrimSpace(p.Category)
	p.Slug = NormalizeSlug(p.Slug)
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
}

// CheckInvariants validates the cross-field rules struct tags cannot express.
func (p *Product) CheckInvariants() error {
	if strings.TrimSpace(p.Category) == "" {
		return ErrEmptyCategory
	}
	if p.OriginalPrice != nil && *p.OriginalPrice <= p.Price {
		return ErrDiscountNotBelowOriginal
	}
	return nil
}

// NormalizeSlug lowercases and trims a slug so lookups are case-insensitive.
func NormalizeSlug(slug string) string {
	return strings.ToLower(strings.TrimSpace(slug))
}
