package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/geministore/storefront/internal/cart/domain"
)

var (
	ErrInvalidProduct = errors.New("invalid product")
	ErrInvalidInput   = errors.New("invalid input")
)

// Summary is the cart snapshot handed to presentation and checkout.
type Summary struct {
	Items    []domain.LineItem
	Discount *domain.Discount
	Totals   domain.Totals
}

// Store owns the cart state. It is an explicitly constructed object
// passed by reference to every consumer; there is no package-level
// instance. All operations write through to durable storage before
// returning and then notify subscribers.
type Store struct {
	catalog CatalogReader
	storage Storage
	save    SaveFunc
	pricing domain.Pricing
	log     *slog.Logger

	mu   sync.Mutex
	cart domain.Cart
	subs []func(Change)
}

type Option func(*Store)

func WithPricing(p domain.Pricing) Option {
	return func(s *Store) { s.pricing = p }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

func NewStore(catalog CatalogReader, storage Storage, opts ...Option) *Store {
	s := &Store{
		catalog: catalog,
		storage: storage,
		pricing: domain.DefaultPricing(),
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.save = WithEventLog(func(ctx context.Context, c domain.Cart, _ domain.Event) error {
		return storage.SaveCart(ctx, c)
	}, storage)
	return s
}

// Subscribe registers a callback invoked after every mutation with the
// new item count and total. Callbacks run outside the store lock.
func (s *Store) Subscribe(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// Reload re-hydrates the in-memory state from durable storage. Called at
// process start and whenever a consumer regains focus; concurrent writers
// are not coordinated, last writer wins.
func (s *Store) Reload(ctx context.Context) {
	cart, err := s.storage.LoadCart(ctx)
	if err != nil {
		s.log.Warn("cart load failed, starting empty", slog.Any("err", err))
		cart = domain.Cart{}
	}

	s.mu.Lock()
	s.cart = cart
	s.mu.Unlock()

	s.notify()
}

// AddItem resolves the product through the catalog, then merges into an
// existing line item with the same (product id, variant) or appends a
// new one.
func (s *Store) AddItem(ctx context.Context, productID string, quantity int, variant map[string]string) error {
	if productID == "" {
		return fmt.Errorf("%w: empty product id", ErrInvalidProduct)
	}
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	p, err := s.catalog.Product(ctx, productID)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidProduct, productID)
	}

	s.mu.Lock()
	if i := s.cart.Find(productID, variant); i >= 0 {
		s.cart.Items[i].Quantity += quantity
	} else {
		s.cart.Items = append(s.cart.Items, domain.LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  quantity,
			Variant:   variant,
		})
	}
	s.persistLocked(ctx, "item_added", fmt.Sprintf("%s x%d", p.Name, quantity))
	s.mu.Unlock()

	s.notify()
	return nil
}

// RemoveItem deletes the matching line item. Absent items are a no-op,
// not an error.
func (s *Store) RemoveItem(ctx context.Context, productID string, variant map[string]string) error {
	s.mu.Lock()
	i := s.cart.Find(productID, variant)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	name := s.cart.Items[i].Name
	s.cart.Items = append(s.cart.Items[:i], s.cart.Items[i+1:]...)
	s.persistLocked(ctx, "item_removed", name)
	s.mu.Unlock()

	s.notify()
	return nil
}

// UpdateQuantity sets the line item's quantity; a quantity of zero or
// less deletes the row.
func (s *Store) UpdateQuantity(ctx context.Context, productID string, quantity int, variant map[string]string) error {
	if quantity <= 0 {
		return s.RemoveItem(ctx, productID, variant)
	}

	s.mu.Lock()
	i := s.cart.Find(productID, variant)
	if i < 0 {
		s.mu.Unlock()
		return nil
	}
	s.cart.Items[i].Quantity = quantity
	s.persistLocked(ctx, "quantity_updated", fmt.Sprintf("%s -> %d", s.cart.Items[i].Name, quantity))
	s.mu.Unlock()

	s.notify()
	return nil
}

// Clear empties the cart and drops any applied discount.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	s.cart = domain.Cart{}
	s.persistLocked(ctx, "cart_cleared", "all items removed")
	s.mu.Unlock()

	s.notify()
	return nil
}

// ApplyDiscount records a discount worth percentOff% of the current
// subtotal. Only one discount is active; a second call replaces the
// first.
func (s *Store) ApplyDiscount(ctx context.Context, code string, percentOff float64) (domain.Discount, error) {
	if code == "" || percentOff <= 0 || percentOff > 100 {
		return domain.Discount{}, fmt.Errorf("%w: discount %q (%v%%)", ErrInvalidInput, code, percentOff)
	}

	s.mu.Lock()
	amount := s.cart.Subtotal().Mul(decimal.NewFromFloat(percentOff)).Div(decimal.NewFromInt(100))
	d := domain.Discount{Code: code, Amount: amount}
	s.cart.Discount = &d
	s.persistLocked(ctx, "discount_applied", fmt.Sprintf("%s (%v%%)", code, percentOff))
	s.mu.Unlock()

	s.notify()
	return d, nil
}

func (s *Store) Totals() domain.Totals {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Totals(s.pricing)
}

func (s *Store) Summary() Summary {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.cart.Clone()
	return Summary{
		Items:    snap.Items,
		Discount: snap.Discount,
		Totals:   snap.Totals(s.pricing),
	}
}

// Events returns the diagnostic state-change log, newest last.
func (s *Store) Events(ctx context.Context) ([]domain.Event, error) {
	return s.storage.Events(ctx)
}

// persistLocked writes through to storage. A storage failure is logged
// and swallowed; in-memory state remains authoritative and the user flow
// is never aborted over it.
func (s *Store) persistLocked(ctx context.Context, evType, summary string) {
	ev := domain.Event{At: time.Now().UTC(), Type: evType, Summary: summary}
	if err := s.save(ctx, s.cart.Clone(), ev); err != nil {
		s.log.Warn("cart persist failed",
			slog.String("event", evType),
			slog.Any("err", err),
		)
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	subs := make([]func(Change), len(s.subs))
	copy(subs, s.subs)
	totals := s.cart.Totals(s.pricing)
	s.mu.Unlock()

	change := Change{ItemCount: totals.ItemCount, Total: totals.Total}
	for _, fn := range subs {
		fn(change)
	}
}
