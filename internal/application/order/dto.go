package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/order"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ListOrdersRequest captures the order listing filters
type ListOrdersRequest struct {
	Status   string `form:"status" binding:"omitempty,oneof=pending paid shipped delivered cancelled"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// CancelOrderRequest carries an optional cancellation reason
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=200"`
}

// ItemResponse represents an order line in API responses
type ItemResponse struct {
	ProductID uuid.UUID       `json:"product_id"`
	Title     string          `json:"title"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	Amount    decimal.Decimal `json:"amount"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID            uuid.UUID       `json:"id"`
	OrderNumber   string          `json:"order_number"`
	BuyerID       uuid.UUID       `json:"buyer_id"`
	BuyerName     string          `json:"buyer_name"`
	Items         []ItemResponse  `json:"items"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	Tax           decimal.Decimal `json:"tax"`
	ShippingFee   decimal.Decimal `json:"shipping_fee"`
	Total         decimal.Decimal `json:"total"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	PaymentStatus string          `json:"payment_status"`
	PaymentRef    string          `json:"payment_ref,omitempty"`
	Address       string          `json:"address"`
	City          string          `json:"city"`
	PostalCode    string          `json:"postal_code"`
	Phone         string          `json:"phone"`
	Status        string          `json:"status"`
	CancelReason  string          `json:"cancel_reason,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	PaidAt        *time.Time      `json:"paid_at,omitempty"`
	ShippedAt     *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt   *time.Time      `json:"delivered_at,omitempty"`
	CancelledAt   *time.Time      `json:"cancelled_at,omitempty"`
}

// OrderPageResponse is a paginated order listing
type OrderPageResponse struct {
	Items      []OrderResponse `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// ToOrderResponse converts a domain order to its response form
func ToOrderResponse(o *order.Order) *OrderResponse {
	items := make([]ItemResponse, 0, len(o.Items))
	for _, line := range o.Items {
		items = append(items, ItemResponse{
			ProductID: line.ProductID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Amount:    line.Amount,
		})
	}
	return &OrderResponse{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		BuyerID:       o.BuyerID,
		BuyerName:     o.BuyerName,
		Items:         items,
		Subtotal:      o.Subtotal,
		Tax:           o.Tax,
		ShippingFee:   o.ShippingFee,
		Total:         o.Total,
		Currency:      o.Currency,
		PaymentMethod: o.PaymentMethod,
		PaymentStatus: string(o.PaymentStatus),
		PaymentRef:    o.PaymentRef,
		Address:       o.ShippingInfo.Address,
		City:          o.ShippingInfo.City,
		PostalCode:    o.ShippingInfo.PostalCode,
		Phone:         o.ShippingInfo.Phone,
		Status:        o.Status.String(),
		CancelReason:  o.CancelReason,
		CreatedAt:     o.CreatedAt,
		PaidAt:        o.PaidAt,
		ShippedAt:     o.ShippedAt,
		DeliveredAt:   o.DeliveredAt,
		CancelledAt:   o.CancelledAt,
	}
}

// ToOrderPageResponse converts a paginated domain result
func ToOrderPageResponse(page shared.Paginated[order.Order]) *OrderPageResponse {
	items := make([]OrderResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, *ToOrderResponse(&page.Items[i]))
	}
	return &OrderPageResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
