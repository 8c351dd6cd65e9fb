package payment

import (
	"context"
	"errors"

	"github.com/motormarket/backend/internal/domain/shared/valueobject"
)

// Method identifies a supported payment method
type Method string

const (
	MethodEasypaisa Method = "easypaisa"
	MethodJazzcash  Method = "jazzcash"
	MethodStripe    Method = "stripe"
	MethodPayeer    Method = "payeer"
	MethodWWallet   Method = "wwallet"
)

// Methods lists all supported payment methods
func Methods() []Method {
	return []Method{MethodEasypaisa, MethodJazzcash, MethodStripe, MethodPayeer, MethodWWallet}
}

// IsValid checks if the method is supported
func (m Method) IsValid() bool {
	switch m {
	case MethodEasypaisa, MethodJazzcash, MethodStripe, MethodPayeer, MethodWWallet:
		return true
	}
	return false
}

// Gateway errors
var (
	ErrPaymentDeclined = errors.New("payment declined")
	ErrUnknownMethod   = errors.New("unknown payment method")
)

// Receipt is the gateway's confirmation of a successful charge
type Receipt struct {
	TransactionID string
	Method        Method
	Amount        valueobject.Money
}

// Gateway charges a payment method for an amount. Implementations must
// honor ctx cancellation and deadlines; a declined charge returns
// ErrPaymentDeclined.
type Gateway interface {
	Charge(ctx context.Context, method Method, amount valueobject.Money) (*Receipt, error)
}
