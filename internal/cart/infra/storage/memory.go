package storage

import (
	"context"
	"sync"

	"github.com/geministore/storefront/internal/cart/domain"
)

// MemoryStore implements the same port as FileStore without touching
// disk. Used by tests and by consumers that opt out of persistence.
type MemoryStore struct {
	mu     sync.Mutex
	cart   domain.Cart
	events []domain.Event
	saves  int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) LoadCart(ctx context.Context) (domain.Cart, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.cart.Clone(), nil
}

func (m *MemoryStore) SaveCart(ctx context.Context, c domain.Cart) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cart = c.Clone()
	m.saves++
	return nil
}

func (m *MemoryStore) AppendEvent(ctx context.Context, ev domain.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	if len(m.events) > maxEvents {
		m.events = m.events[len(m.events)-maxEvents:]
	}
	return nil
}

func (m *MemoryStore) Events(ctx context.Context) ([]domain.Event, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domain.Event, len(m.events))
	copy(out, m.events)
	return out, nil
}

// SaveCount reports how many times SaveCart ran. For tests asserting the
// write-through contract.
func (m *MemoryStore) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
