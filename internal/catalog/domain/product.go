package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID             string
	Name           string
	Price          decimal.Decimal
	Description    string
	Image          string
	Category       string
	InStock        bool
	Rating         float64
	Reviews        int
	Features       []string
	Specifications map[string]string
}
