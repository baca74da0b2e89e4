package app

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/geministore/storefront/internal/cart/domain"
)

// Storage is the durable key-value backing for the cart. Every mutating
// store operation writes through before returning.
type Storage interface {
	LoadCart(ctx context.Context) (domain.Cart, error)
	SaveCart(ctx context.Context, c domain.Cart) error
	EventAppender
	Events(ctx context.Context) ([]domain.Event, error)
}

type EventAppender interface {
	AppendEvent(ctx context.Context, ev domain.Event) error
}

// CatalogReader resolves a product's canonical name/price/image at add
// time. The cart depends on the catalog for nothing else.
type CatalogReader interface {
	Product(ctx context.Context, id string) (ProductInfo, error)
}

type ProductInfo struct {
	ID    string
	Name  string
	Image string
	Price decimal.Decimal
}

// Change is the minimal summary broadcast to subscribers after every
// mutation.
type Change struct {
	ItemCount int
	Total     decimal.Decimal
}

// SaveFunc is the persistence pipeline. Cross-cutting behavior (the
// event log) is layered on with explicit decorators composed at
// construction time.
type SaveFunc func(ctx context.Context, c domain.Cart, ev domain.Event) error

// WithEventLog appends a diagnostic event after a successful save.
func WithEventLog(next SaveFunc, events EventAppender) SaveFunc {
	return func(ctx context.Context, c domain.Cart, ev domain.Event) error {
		if err := next(ctx, c, ev); err != nil {
			return err
		}
		return events.AppendEvent(ctx, ev)
	}
}
