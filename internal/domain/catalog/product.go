package catalog

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Condition represents the physical condition of a listed product
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionUsed        Condition = "used"
	ConditionRefurbished Condition = "refurbished"
)

// IsValid checks if the condition is a known value
func (c Condition) IsValid() bool {
	switch c {
	case ConditionNew, ConditionUsed, ConditionRefurbished:
		return true
	}
	return false
}

// Product represents a listing in the marketplace catalog.
// It is the aggregate root for catalog operations.
type Product struct {
	shared.BaseEntity
	Title       string          `gorm:"type:varchar(200);not null;index"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0"`
	Category    string          `gorm:"type:varchar(50);not null;index"`
	Images      string          `gorm:"type:text"` // JSON array of image URLs
	SellerID    uuid.UUID       `gorm:"type:uuid;index"`
	SellerName  string          `gorm:"type:varchar(100)"`
	Stock       int             `gorm:"not null;default:0"`
	Condition   Condition       `gorm:"type:varchar(20);not null;default:'new'"`
	Rating      float64         `gorm:"not null;default:0"`
	ReviewCount int             `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product listing
func NewProduct(title, description, category string, price valueobject.Money, stock int, condition Condition, sellerID uuid.UUID, sellerName string) (*Product, error) {
	if strings.TrimSpace(title) == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Product stock cannot be negative")
	}
	if condition == "" {
		condition = ConditionNew
	}
	if !condition.IsValid() {
		return nil, shared.NewDomainError("INVALID_CONDITION", "Unknown product condition")
	}

	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Title:       title,
		Description: description,
		Price:       price.Amount(),
		Category:    category,
		Images:      "[]",
		SellerID:    sellerID,
		SellerName:  sellerName,
		Stock:       stock,
		Condition:   condition,
	}, nil
}

// Update updates the product's listing information
func (p *Product) Update(title, description, category string, price valueobject.Money, condition Condition) error {
	if strings.TrimSpace(title) == "" {
		return shared.NewDomainError("INVALID_TITLE", "Product title cannot be empty")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if !condition.IsValid() {
		return shared.NewDomainError("INVALID_CONDITION", "Unknown product condition")
	}

	p.Title = title
	p.Description = description
	p.Category = category
	p.Price = price.Amount()
	p.Condition = condition
	p.UpdatedAt = time.Now()

	return nil
}

// SetImages replaces the product's image URL list
func (p *Product) SetImages(urls []string) error {
	if urls == nil {
		urls = []string{}
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return shared.NewDomainError("INVALID_IMAGES", "Image list cannot be serialized")
	}
	p.Images = string(data)
	p.UpdatedAt = time.Now()
	return nil
}

// ImageURLs returns the product's image URL list
func (p *Product) ImageURLs() []string {
	if p.Images == "" {
		return []string{}
	}
	var urls []string
	if err := json.Unmarshal([]byte(p.Images), &urls); err != nil {
		return []string{}
	}
	return urls
}

// AdjustStock changes the stock level by delta
// The resulting stock must not go negative
func (p *Product) AdjustStock(delta int) error {
	next := p.Stock + delta
	if next < 0 {
		return shared.ErrInsufficientStock
	}
	p.Stock = next
	p.UpdatedAt = time.Now()
	return nil
}

// SetStock sets the stock level to an absolute value
func (p *Product) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Product stock cannot be negative")
	}
	p.Stock = stock
	p.UpdatedAt = time.Now()
	return nil
}

// InStock returns true if at least qty units are available
func (p *Product) InStock(qty int) bool {
	return qty > 0 && qty <= p.Stock
}

// PriceMoney returns the unit price as a Money value object
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoneyPKR(p.Price)
}

// RecordReview updates the aggregate rating with a new review score
func (p *Product) RecordReview(score float64) error {
	if score < 0 || score > 5 {
		return shared.NewDomainError("INVALID_RATING", "Review score must be between 0 and 5")
	}
	total := p.Rating*float64(p.ReviewCount) + score
	p.ReviewCount++
	p.Rating = total / float64(p.ReviewCount)
	p.UpdatedAt = time.Now()
	return nil
}
