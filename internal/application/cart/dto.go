package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/cart"
	"github.com/shopspring/decimal"
)

// AddItemRequest adds a quantity of a product to the cart
type AddItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
}

// UpdateItemRequest sets the quantity of an existing cart line.
// A quantity of zero removes the line.
type UpdateItemRequest struct {
	Quantity int `json:"quantity" binding:"min=0"`
}

// ItemResponse represents a cart line in API responses
type ItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Image     string          `json:"image,omitempty"`
	Stock     int             `json:"stock"`
	Quantity  int             `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// CartResponse represents the cart in API responses
type CartResponse struct {
	Items     []ItemResponse  `json:"items"`
	Count     int             `json:"count"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Currency  string          `json:"currency"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// ToCartResponse converts a domain cart to its response form
func ToCartResponse(c *cart.Cart) *CartResponse {
	items := make([]ItemResponse, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, ItemResponse{
			ProductID: line.ProductID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice,
			Image:     line.Image,
			Stock:     line.Stock,
			Quantity:  line.Quantity,
			LineTotal: line.LineTotal(),
		})
	}
	subtotal := c.Subtotal()
	return &CartResponse{
		Items:     items,
		Count:     c.Count(),
		Subtotal:  subtotal.Amount(),
		Currency:  string(subtotal.Currency()),
		UpdatedAt: c.UpdatedAt,
	}
}
