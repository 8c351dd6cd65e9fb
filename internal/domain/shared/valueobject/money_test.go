package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	m, err := NewMoneyFromString("45.99", PKR)
	require.NoError(t, err)
	assert.Equal(t, "45.99", m.StringFixed(2))
	assert.Equal(t, PKR, m.Currency())

	_, err = NewMoney(decimal.NewFromInt(10), "")
	assert.Error(t, err)

	_, err = NewMoneyFromString("not-a-number", PKR)
	assert.Error(t, err)
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyPKRFromFloat(45.99)

	sum := a.MustAdd(a)
	assert.Equal(t, "91.98", sum.StringFixed(2))

	doubled := a.MultiplyByInt(2)
	assert.True(t, sum.Equals(doubled))

	diff, err := sum.Subtract(a)
	require.NoError(t, err)
	assert.True(t, diff.Equals(a))
}

func TestMoneyCurrencyMismatch(t *testing.T) {
	pkr := NewMoneyPKRFromFloat(100)
	usd, err := NewMoneyFromFloat(100, USD)
	require.NoError(t, err)

	_, err = pkr.Add(usd)
	assert.Error(t, err)

	_, err = pkr.GreaterThan(usd)
	assert.Error(t, err)

	assert.Panics(t, func() { pkr.MustAdd(usd) })
}

func TestMoneyComparisons(t *testing.T) {
	small := NewMoneyPKRFromFloat(9999.99)
	threshold := NewMoneyPKRFromFloat(10000)

	gt, err := threshold.GreaterThan(small)
	require.NoError(t, err)
	assert.True(t, gt)

	gt, err = threshold.GreaterThan(threshold)
	require.NoError(t, err)
	assert.False(t, gt)

	assert.True(t, ZeroPKR().IsZero())
	assert.True(t, threshold.IsPositive())
}

func TestMoneyPercentage(t *testing.T) {
	subtotal := NewMoneyPKRFromFloat(100)
	tax := subtotal.CalculatePercentage(decimal.NewFromInt(8))
	assert.Equal(t, "8.00", tax.StringFixed(2))
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyPKRFromFloat(1299.99)

	data, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Money
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, m.Equals(decoded))
}

func TestMoneyJSONDefaultCurrency(t *testing.T) {
	var m Money
	require.NoError(t, json.Unmarshal([]byte(`{"amount":"500"}`), &m))
	assert.Equal(t, DefaultCurrency, m.Currency())
	assert.Equal(t, "500.00", m.StringFixed(2))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("599.99"))
	assert.Equal(t, "599.99", m.StringFixed(2))
	assert.Equal(t, DefaultCurrency, m.Currency())

	require.NoError(t, m.Scan(nil))
	assert.True(t, m.IsZero())

	assert.Error(t, m.Scan(struct{}{}))
}
