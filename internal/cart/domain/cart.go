package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LineItem is one cart row: a product plus an optional variant choice.
// Name, Price and Image are captured at add time so the cart stays
// stable even if catalog data later changes.
type LineItem struct {
	ProductID string            `json:"id"`
	Name      string            `json:"name"`
	Price     decimal.Decimal   `json:"price"`
	Image     string            `json:"image"`
	Quantity  int               `json:"quantity"`
	Variant   map[string]string `json:"variant,omitempty"`
}

// Key identifies a line item by (product id, variant). Variant axes are
// sorted so the key is canonical regardless of map iteration order.
func (li LineItem) Key() string {
	return ItemKey(li.ProductID, li.Variant)
}

func ItemKey(productID string, variant map[string]string) string {
	if len(variant) == 0 {
		return productID
	}

	axes := make([]string, 0, len(variant))
	for k := range variant {
		axes = append(axes, k)
	}
	sort.Strings(axes)

	var b strings.Builder
	b.WriteString(productID)
	for _, k := range axes {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(variant[k])
	}
	return b.String()
}

type Discount struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

// Cart is the full cart state. Items keep insertion order for display.
type Cart struct {
	Items    []LineItem `json:"items"`
	Discount *Discount  `json:"discount,omitempty"`
}

func (c Cart) Clone() Cart {
	out := Cart{}
	if c.Items != nil {
		out.Items = make([]LineItem, len(c.Items))
		for i, li := range c.Items {
			out.Items[i] = li
			if li.Variant != nil {
				v := make(map[string]string, len(li.Variant))
				for k, val := range li.Variant {
					v[k] = val
				}
				out.Items[i].Variant = v
			}
		}
	}
	if c.Discount != nil {
		d := *c.Discount
		out.Discount = &d
	}
	return out
}

// Find returns the index of the line item matching (productID, variant),
// or -1.
func (c Cart) Find(productID string, variant map[string]string) int {
	key := ItemKey(productID, variant)
	for i, li := range c.Items {
		if li.Key() == key {
			return i
		}
	}
	return -1
}

func (c Cart) ItemCount() int {
	var n int
	for _, li := range c.Items {
		n += li.Quantity
	}
	return n
}

func (c Cart) Subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, li := range c.Items {
		sum = sum.Add(li.Price.Mul(decimal.NewFromInt(int64(li.Quantity))))
	}
	return sum
}

// Pricing holds the invariants of the totals computation.
type Pricing struct {
	TaxRate          decimal.Decimal
	FreeShippingOver decimal.Decimal
	ShippingFee      decimal.Decimal
}

func DefaultPricing() Pricing {
	return Pricing{
		TaxRate:          decimal.RequireFromString("0.08"),
		FreeShippingOver: decimal.NewFromInt(50),
		ShippingFee:      decimal.RequireFromString("9.99"),
	}
}

// Totals carries exact (unrounded) monetary derivations. Rounding to two
// decimals happens at presentation time only, never here.
type Totals struct {
	Subtotal       decimal.Decimal
	Tax            decimal.Decimal
	Shipping       decimal.Decimal
	DiscountAmount decimal.Decimal
	Total          decimal.Decimal
	ItemCount      int
}

func (c Cart) Totals(p Pricing) Totals {
	count := c.ItemCount()
	if count == 0 {
		return Totals{
			Subtotal: decimal.Zero,
			Tax:      decimal.Zero,
			Shipping: decimal.Zero,
			Total:    decimal.Zero,
		}
	}

	subtotal := c.Subtotal()
	tax := subtotal.Mul(p.TaxRate)

	shipping := p.ShippingFee
	if subtotal.GreaterThan(p.FreeShippingOver) {
		shipping = decimal.Zero
	}

	total := subtotal.Add(tax).Add(shipping)

	discount := decimal.Zero
	if c.Discount != nil {
		discount = c.Discount.Amount
		total = total.Sub(discount)
	}

	return Totals{
		Subtotal:       subtotal,
		Tax:            tax,
		Shipping:       shipping,
		DiscountAmount: discount,
		Total:          total,
		ItemCount:      count,
	}
}

// Event is one entry in the capped diagnostic log of state changes.
type Event struct {
	At      time.Time `json:"at"`
	Type    string    `json:"type"`
	Summary string    `json:"summary"`
}
