package app

import (
	"fmt"
	"strings"
)

// Mock discount table; a real storefront would look these up remotely.
var discountCodes = map[string]float64{
	"SAVE10":    10,
	"WELCOME20": 20,
	"FIRST15":   15,
}

// LookupDiscount resolves a code to its canonical form and percent-off.
func LookupDiscount(code string) (string, float64, error) {
	canonical := strings.ToUpper(strings.TrimSpace(code))
	if canonical == "" {
		return "", 0, fmt.Errorf("%w: empty discount code", ErrInvalidInput)
	}

	percent, ok := discountCodes[canonical]
	if !ok {
		return "", 0, fmt.Errorf("%w: unknown discount code %q", ErrInvalidInput, canonical)
	}
	return canonical, percent, nil
}
