package order

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestQuoteBelowThreshold(t *testing.T) {
	policy := DefaultPricingPolicy()

	q := policy.Quote(decimal.NewFromInt(100))
	assert.Equal(t, "100.00", q.Subtotal.StringFixed(2))
	assert.Equal(t, "8.00", q.Tax.StringFixed(2))
	assert.Equal(t, "500.00", q.Shipping.StringFixed(2))
	assert.Equal(t, "608.00", q.Total.StringFixed(2))
}

func TestQuoteFreeShippingBoundary(t *testing.T) {
	policy := DefaultPricingPolicy()

	// at the threshold shipping is still charged
	at := policy.Quote(decimal.NewFromInt(10000))
	assert.Equal(t, "500.00", at.Shipping.StringFixed(2))

	// strictly above it is free
	above := policy.Quote(decimal.NewFromFloat(10000.01))
	assert.True(t, above.Shipping.IsZero())
}

func TestQuoteZeroSubtotal(t *testing.T) {
	q := DefaultPricingPolicy().Quote(decimal.Zero)
	assert.True(t, q.Subtotal.IsZero())
	assert.True(t, q.Tax.IsZero())
	assert.Equal(t, "500.00", q.Shipping.StringFixed(2))
	assert.Equal(t, "500.00", q.Total.StringFixed(2))
}

func TestQuoteTaxRounding(t *testing.T) {
	q := DefaultPricingPolicy().Quote(decimal.NewFromFloat(91.98))
	// 91.98 * 0.08 = 7.3584 -> 7.36
	assert.Equal(t, "7.36", q.Tax.StringFixed(2))
	assert.Equal(t, "599.34", q.Total.StringFixed(2))
}

func TestQuoteCustomPolicy(t *testing.T) {
	policy := PricingPolicy{
		TaxRate:               decimal.NewFromFloat(0.10),
		FreeShippingThreshold: decimal.NewFromInt(50),
		FlatShippingFee:       decimal.NewFromInt(10),
		Currency:              "USD",
	}

	q := policy.Quote(decimal.NewFromInt(60))
	assert.Equal(t, "6.00", q.Tax.StringFixed(2))
	assert.True(t, q.Shipping.IsZero())
	assert.Equal(t, "USD", string(q.Total.Currency()))
}
