package payment

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/motormarket/backend/internal/domain/shared/valueobject"
)

// SimulatedGateway approves charges with a configurable probability
// after a configurable artificial delay. The rand source is injectable
// so tests are deterministic.
type SimulatedGateway struct {
	successRate float64
	latency     time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// SimulatedOption configures a SimulatedGateway
type SimulatedOption func(*SimulatedGateway)

// WithLatency sets the artificial processing delay
func WithLatency(d time.Duration) SimulatedOption {
	return func(g *SimulatedGateway) {
		g.latency = d
	}
}

// WithRand sets the random source used for approval decisions
func WithRand(rng *rand.Rand) SimulatedOption {
	return func(g *SimulatedGateway) {
		g.rng = rng
	}
}

// NewSimulatedGateway creates a simulated gateway. successRate is the
// approval probability in [0, 1].
func NewSimulatedGateway(successRate float64, opts ...SimulatedOption) *SimulatedGateway {
	g := &SimulatedGateway{
		successRate: successRate,
		latency:     2 * time.Second,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Charge implements Gateway. The artificial delay is context-aware so a
// caller's deadline cuts it short.
func (g *SimulatedGateway) Charge(ctx context.Context, method Method, amount valueobject.Money) (*Receipt, error) {
	if !method.IsValid() {
		return nil, ErrUnknownMethod
	}

	if g.latency > 0 {
		timer := time.NewTimer(g.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	g.mu.Lock()
	approved := g.rng.Float64() < g.successRate
	g.mu.Unlock()

	if !approved {
		return nil, ErrPaymentDeclined
	}

	return &Receipt{
		TransactionID: "sim_" + uuid.New().String(),
		Method:        method,
		Amount:        amount,
	}, nil
}

// Ensure SimulatedGateway implements Gateway
var _ Gateway = (*SimulatedGateway)(nil)
