// Package payment fakes the external payment collaborator: a fixed
// processing delay followed by a pseudo-random outcome.
package payment

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/geministore/storefront/internal/checkout/app"
)

type MockProcessor struct {
	rate  float64
	delay time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewMockProcessor builds a processor that succeeds with probability
// rate after delay. A zero seed derives one from the clock; tests pass
// an explicit seed or pin rate to 0 or 1.
func NewMockProcessor(rate float64, delay time.Duration, seed int64) *MockProcessor {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &MockProcessor{
		rate:  rate,
		delay: delay,
		rng:   rand.New(rand.NewSource(seed)),
	}
}

// Process always resolves once started; the context is accepted for
// interface symmetry but an in-flight attempt cannot be cancelled.
func (m *MockProcessor) Process(ctx context.Context, amount decimal.Decimal) error {
	timer := time.NewTimer(m.delay)
	defer timer.Stop()
	<-timer.C

	m.mu.Lock()
	ok := m.rng.Float64() < m.rate
	m.mu.Unlock()

	if !ok {
		return app.ErrPaymentDeclined
	}
	return nil
}
