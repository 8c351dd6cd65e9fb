package order

import (
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PricingPolicy computes order totals from a cart subtotal.
// Shipping is free only when the subtotal strictly exceeds the
// free-shipping threshold; a subtotal equal to the threshold still
// pays the flat fee.
type PricingPolicy struct {
	TaxRate               decimal.Decimal // e.g. 0.08 for 8%
	FreeShippingThreshold decimal.Decimal
	FlatShippingFee       decimal.Decimal
	Currency              valueobject.Currency
}

// DefaultPricingPolicy returns the marketplace defaults:
// 8% tax, free shipping above 10000, 500 flat fee otherwise, PKR.
func DefaultPricingPolicy() PricingPolicy {
	return PricingPolicy{
		TaxRate:               decimal.NewFromFloat(0.08),
		FreeShippingThreshold: decimal.NewFromInt(10000),
		FlatShippingFee:       decimal.NewFromInt(500),
		Currency:              valueobject.PKR,
	}
}

// Quote is the result of pricing a cart subtotal
type Quote struct {
	Subtotal valueobject.Money `json:"subtotal"`
	Tax      valueobject.Money `json:"tax"`
	Shipping valueobject.Money `json:"shipping"`
	Total    valueobject.Money `json:"total"`
}

// Quote prices the given subtotal. Pure function of the policy.
func (p PricingPolicy) Quote(subtotal decimal.Decimal) Quote {
	tax := subtotal.Mul(p.TaxRate).Round(2)

	shipping := p.FlatShippingFee
	if subtotal.GreaterThan(p.FreeShippingThreshold) {
		shipping = decimal.Zero
	}

	total := subtotal.Add(tax).Add(shipping)

	mk := func(d decimal.Decimal) valueobject.Money {
		m, _ := valueobject.NewMoney(d, p.Currency)
		return m
	}
	return Quote{
		Subtotal: mk(subtotal),
		Tax:      mk(tax),
		Shipping: mk(shipping),
		Total:    mk(total),
	}
}
