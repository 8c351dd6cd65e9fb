package cart

import (
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/catalog"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Item is a line in the cart: a product snapshot plus a quantity.
// The snapshot carries what the cart needs to render and total itself
// without a catalog round-trip; stock is refreshed on each mutation.
type Item struct {
	ProductID uuid.UUID       `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Image     string          `json:"image,omitempty"`
	Stock     int             `json:"stock"`
	Quantity  int             `json:"quantity"`
}

// LineTotal returns unit price * quantity
func (i Item) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is the per-user cart aggregate. Items keep insertion order and
// every quantity stays within [1, stock]; a failed mutation leaves the
// cart exactly as it was.
type Cart struct {
	UserID    uuid.UUID `json:"user_id"`
	Items     []Item    `json:"items"`
	UpdatedAt time.Time `json:"updated_at"`
}

// New creates an empty cart for the given user
func New(userID uuid.UUID) *Cart {
	return &Cart{
		UserID:    userID,
		Items:     make([]Item, 0),
		UpdatedAt: time.Now(),
	}
}

// AddItem adds qty units of the product, merging with an existing line
// for the same product. The merged quantity must not exceed stock;
// otherwise the cart is left unchanged and ErrInsufficientStock returned.
func (c *Cart) AddItem(product *catalog.Product, qty int) error {
	if qty <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}

	for idx, item := range c.Items {
		if item.ProductID == product.ID {
			merged := item.Quantity + qty
			if merged > product.Stock {
				return shared.ErrInsufficientStock
			}
			c.Items[idx].Quantity = merged
			c.Items[idx].Stock = product.Stock
			c.Items[idx].UnitPrice = product.Price
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	if qty > product.Stock {
		return shared.ErrInsufficientStock
	}

	image := ""
	if urls := product.ImageURLs(); len(urls) > 0 {
		image = urls[0]
	}
	c.Items = append(c.Items, Item{
		ProductID: product.ID,
		Title:     product.Title,
		UnitPrice: product.Price,
		Image:     image,
		Stock:     product.Stock,
		Quantity:  qty,
	})
	c.UpdatedAt = time.Now()
	return nil
}

// RemoveItem removes the line for the given product.
// Removing an absent product is a no-op.
func (c *Cart) RemoveItem(productID uuid.UUID) {
	for idx, item := range c.Items {
		if item.ProductID == productID {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.UpdatedAt = time.Now()
			return
		}
	}
}

// UpdateItemQuantity sets the line quantity for the given product.
// A quantity of zero or less removes the line. A quantity above the
// current stock is rejected and the line is left unchanged.
func (c *Cart) UpdateItemQuantity(productID uuid.UUID, qty int, stock int) error {
	if qty <= 0 {
		c.RemoveItem(productID)
		return nil
	}

	for idx, item := range c.Items {
		if item.ProductID == productID {
			if qty > stock {
				return shared.ErrInsufficientStock
			}
			c.Items[idx].Quantity = qty
			c.Items[idx].Stock = stock
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return shared.ErrNotFound
}

// Clear removes all items from the cart
func (c *Cart) Clear() {
	c.Items = make([]Item, 0)
	c.UpdatedAt = time.Now()
}

// IsEmpty returns true when the cart has no items
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// Count returns the total number of units across all lines
func (c *Cart) Count() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// Subtotal returns the sum of all line totals
func (c *Cart) Subtotal() valueobject.Money {
	sum := decimal.Zero
	for _, item := range c.Items {
		sum = sum.Add(item.LineTotal())
	}
	return valueobject.NewMoneyPKR(sum)
}

// Find returns the line for the given product, or nil when absent
func (c *Cart) Find(productID uuid.UUID) *Item {
	for idx := range c.Items {
		if c.Items[idx].ProductID == productID {
			return &c.Items[idx]
		}
	}
	return nil
}
