package app

import (
	"context"

	"github.com/shopspring/decimal"
)

// CartGateway is the wizard's view of the cart store: a read-only
// snapshot for the review step, and Clear on a successful order.
type CartGateway interface {
	Summary(ctx context.Context) (CartSummary, error)
	Clear(ctx context.Context) error
}

type CartSummary struct {
	Items     []CartLine
	ItemCount int
	Total     decimal.Decimal
}

type CartLine struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	Variant   map[string]string
}

// Processor resolves a payment attempt. It always resolves once started;
// cancellation of an in-flight attempt is not supported.
type Processor interface {
	Process(ctx context.Context, amount decimal.Decimal) error
}
