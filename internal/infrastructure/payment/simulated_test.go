package payment

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/motormarket/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeAlwaysApproves(t *testing.T) {
	g := NewSimulatedGateway(1.0, WithLatency(0), WithRand(rand.New(rand.NewSource(1))))
	amount := valueobject.NewMoneyPKRFromFloat(599.34)

	receipt, err := g.Charge(context.Background(), MethodEasypaisa, amount)
	require.NoError(t, err)
	assert.NotEmpty(t, receipt.TransactionID)
	assert.Equal(t, MethodEasypaisa, receipt.Method)
	assert.True(t, amount.Equals(receipt.Amount))
}

func TestChargeAlwaysDeclines(t *testing.T) {
	g := NewSimulatedGateway(0.0, WithLatency(0), WithRand(rand.New(rand.NewSource(1))))

	_, err := g.Charge(context.Background(), MethodJazzcash, valueobject.NewMoneyPKRFromFloat(100))
	assert.ErrorIs(t, err, ErrPaymentDeclined)
}

func TestChargeUnknownMethod(t *testing.T) {
	g := NewSimulatedGateway(1.0, WithLatency(0))

	_, err := g.Charge(context.Background(), Method("bitcoin"), valueobject.NewMoneyPKRFromFloat(100))
	assert.ErrorIs(t, err, ErrUnknownMethod)
}

func TestChargeHonorsContextDeadline(t *testing.T) {
	g := NewSimulatedGateway(1.0, WithLatency(5*time.Second))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := g.Charge(ctx, MethodStripe, valueobject.NewMoneyPKRFromFloat(100))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestMethodRegistry(t *testing.T) {
	for _, m := range Methods() {
		assert.True(t, m.IsValid(), string(m))
	}
	assert.False(t, Method("paypal").IsValid())
}

func TestApprovalRateIsDeterministicWithSeed(t *testing.T) {
	run := func() []bool {
		g := NewSimulatedGateway(0.9, WithLatency(0), WithRand(rand.New(rand.NewSource(42))))
		outcomes := make([]bool, 20)
		for i := range outcomes {
			_, err := g.Charge(context.Background(), MethodPayeer, valueobject.NewMoneyPKRFromFloat(10))
			outcomes[i] = err == nil
		}
		return outcomes
	}
	assert.Equal(t, run(), run())
}
