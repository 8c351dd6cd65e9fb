package order

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/cart"
	"github.com/motormarket/backend/internal/domain/shared"
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Status represents the fulfillment status of an order
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusShipped   Status = "shipped"
	StatusDelivered Status = "delivered"
	StatusCancelled Status = "cancelled"
)

// IsValid checks if the status is a known value
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of the status
func (s Status) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s Status) CanTransitionTo(target Status) bool {
	switch s {
	case StatusPending:
		return target == StatusPaid || target == StatusCancelled
	case StatusPaid:
		return target == StatusShipped || target == StatusCancelled
	case StatusShipped:
		return target == StatusDelivered
	case StatusDelivered, StatusCancelled:
		return false // Terminal states
	}
	return false
}

// PaymentStatus represents the payment outcome recorded on the order
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// ShippingDetails holds the delivery address captured at checkout.
// All four fields are required.
type ShippingDetails struct {
	Address    string `json:"address" gorm:"type:varchar(200);not null"`
	City       string `json:"city" gorm:"type:varchar(100);not null"`
	PostalCode string `json:"postal_code" gorm:"type:varchar(20);not null"`
	Phone      string `json:"phone" gorm:"type:varchar(30);not null"`
}

// Validate checks that every shipping field is present
func (d ShippingDetails) Validate() error {
	if strings.TrimSpace(d.Address) == "" ||
		strings.TrimSpace(d.City) == "" ||
		strings.TrimSpace(d.PostalCode) == "" ||
		strings.TrimSpace(d.Phone) == "" {
		return shared.NewDomainError("VALIDATION_ERROR", "All shipping fields are required")
	}
	return nil
}

// Item is an immutable line snapshot taken from the cart at checkout
type Item struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index;not null"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null"`
	Title     string          `gorm:"type:varchar(200);not null"`
	UnitPrice decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Quantity  int             `gorm:"not null"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	CreatedAt time.Time
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "order_items"
}

// Order is the append-only record produced by a successful checkout
type Order struct {
	shared.BaseEntity
	OrderNumber   string          `gorm:"type:varchar(50);not null;uniqueIndex"`
	BuyerID       uuid.UUID       `gorm:"type:uuid;index;not null"`
	BuyerName     string          `gorm:"type:varchar(100)"`
	Items         []Item          `gorm:"foreignKey:OrderID"`
	Subtotal      decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Tax           decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	ShippingFee   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total         decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Currency      string          `gorm:"type:varchar(3);not null;default:'PKR'"`
	PaymentMethod string          `gorm:"type:varchar(30);not null"`
	PaymentStatus PaymentStatus   `gorm:"type:varchar(20);not null;default:'pending'"`
	PaymentRef    string          `gorm:"type:varchar(100)"`
	ShippingInfo  ShippingDetails `gorm:"embedded;embeddedPrefix:ship_"`
	Status        Status          `gorm:"type:varchar(20);not null;default:'pending'"`
	CancelReason  string          `gorm:"type:varchar(200)"`
	PaidAt        *time.Time
	ShippedAt     *time.Time
	DeliveredAt   *time.Time
	CancelledAt   *time.Time
}

// TableName returns the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// GenerateOrderNumber produces a time-based order number
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("MM-%s-%d", now.Format("20060102"), now.UnixNano()%1000000)
}

// NewFromCart builds an order from the cart contents, the priced quote
// and the captured shipping details. The order starts pending with a
// pending payment.
func NewFromCart(c *cart.Cart, quote Quote, buyerName, paymentMethod string, shipping ShippingDetails) (*Order, error) {
	if c.IsEmpty() {
		return nil, shared.NewDomainError("EMPTY_CART", "Cannot create an order from an empty cart")
	}
	if paymentMethod == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Payment method is required")
	}
	if err := shipping.Validate(); err != nil {
		return nil, err
	}

	now := time.Now()
	o := &Order{
		BaseEntity:    shared.NewBaseEntity(),
		OrderNumber:   GenerateOrderNumber(now),
		BuyerID:       c.UserID,
		BuyerName:     buyerName,
		Subtotal:      quote.Subtotal.Amount(),
		Tax:           quote.Tax.Amount(),
		ShippingFee:   quote.Shipping.Amount(),
		Total:         quote.Total.Amount(),
		Currency:      string(quote.Total.Currency()),
		PaymentMethod: paymentMethod,
		PaymentStatus: PaymentStatusPending,
		ShippingInfo:  shipping,
		Status:        StatusPending,
	}

	o.Items = make([]Item, 0, len(c.Items))
	for _, line := range c.Items {
		o.Items = append(o.Items, Item{
			ID:        uuid.New(),
			OrderID:   o.ID,
			ProductID: line.ProductID,
			Title:     line.Title,
			UnitPrice: line.UnitPrice,
			Quantity:  line.Quantity,
			Amount:    line.LineTotal(),
			CreatedAt: now,
		})
	}
	return o, nil
}

// MarkPaid records a successful payment and moves the order to paid
func (o *Order) MarkPaid(paymentRef string) error {
	if !o.Status.CanTransitionTo(StatusPaid) {
		return shared.ErrInvalidState
	}
	now := time.Now()
	o.Status = StatusPaid
	o.PaymentStatus = PaymentStatusCompleted
	o.PaymentRef = paymentRef
	o.PaidAt = &now
	o.UpdatedAt = now
	return nil
}

// Ship moves a paid order to shipped
func (o *Order) Ship() error {
	if !o.Status.CanTransitionTo(StatusShipped) {
		return shared.ErrInvalidState
	}
	now := time.Now()
	o.Status = StatusShipped
	o.ShippedAt = &now
	o.UpdatedAt = now
	return nil
}

// Deliver moves a shipped order to delivered
func (o *Order) Deliver() error {
	if !o.Status.CanTransitionTo(StatusDelivered) {
		return shared.ErrInvalidState
	}
	now := time.Now()
	o.Status = StatusDelivered
	o.DeliveredAt = &now
	o.UpdatedAt = now
	return nil
}

// Cancel cancels a pending or paid order
func (o *Order) Cancel(reason string) error {
	if !o.Status.CanTransitionTo(StatusCancelled) {
		return shared.ErrInvalidState
	}
	now := time.Now()
	o.Status = StatusCancelled
	o.CancelReason = reason
	o.CancelledAt = &now
	o.UpdatedAt = now
	return nil
}

// TotalMoney returns the order total as a Money value object
func (o *Order) TotalMoney() valueobject.Money {
	m, _ := valueobject.NewMoney(o.Total, valueobject.Currency(o.Currency))
	return m
}
