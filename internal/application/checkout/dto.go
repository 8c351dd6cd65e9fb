package checkout

import (
	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/order"
	"github.com/shopspring/decimal"
)

// CheckoutRequest captures everything needed to place an order
type CheckoutRequest struct {
	PaymentMethod string `json:"payment_method" binding:"required"`
	Address       string `json:"address" binding:"required,min=1,max=200"`
	City          string `json:"city" binding:"required,min=1,max=100"`
	PostalCode    string `json:"postal_code" binding:"required,min=1,max=20"`
	Phone         string `json:"phone" binding:"required,min=1,max=30"`
}

// QuoteResponse is a priced preview of the current cart
type QuoteResponse struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
	Currency string          `json:"currency"`
}

// ToQuoteResponse converts a domain quote to its response form
func ToQuoteResponse(q order.Quote) *QuoteResponse {
	return &QuoteResponse{
		Subtotal: q.Subtotal.Amount(),
		Tax:      q.Tax.Amount(),
		Shipping: q.Shipping.Amount(),
		Total:    q.Total.Amount(),
		Currency: string(q.Total.Currency()),
	}
}

// CheckoutResponse is returned after a successful checkout
type CheckoutResponse struct {
	OrderID     uuid.UUID       `json:"order_id"`
	OrderNumber string          `json:"order_number"`
	Status      string          `json:"status"`
	Total       decimal.Decimal `json:"total"`
	Currency    string          `json:"currency"`
	PaymentRef  string          `json:"payment_ref"`
}
