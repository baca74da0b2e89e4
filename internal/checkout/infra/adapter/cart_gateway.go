package adapter

import (
	"context"

	cartapp "github.com/geministore/storefront/internal/cart/app"
	checkoutapp "github.com/geministore/storefront/internal/checkout/app"
)

// CartStoreGateway adapts the cart store to the checkout wizard's
// CartGateway port.
type CartStoreGateway struct {
	store *cartapp.Store
}

func NewCartStoreGateway(store *cartapp.Store) *CartStoreGateway {
	return &CartStoreGateway{store: store}
}

func (g *CartStoreGateway) Summary(ctx context.Context) (checkoutapp.CartSummary, error) {
	sum := g.store.Summary()

	lines := make([]checkoutapp.CartLine, 0, len(sum.Items))
	for _, li := range sum.Items {
		lines = append(lines, checkoutapp.CartLine{
			ProductID: li.ProductID,
			Name:      li.Name,
			Price:     li.Price,
			Quantity:  li.Quantity,
			Variant:   li.Variant,
		})
	}

	return checkoutapp.CartSummary{
		Items:     lines,
		ItemCount: sum.Totals.ItemCount,
		Total:     sum.Totals.Total,
	}, nil
}

func (g *CartStoreGateway) Clear(ctx context.Context) error {
	return g.store.Clear(ctx)
}
