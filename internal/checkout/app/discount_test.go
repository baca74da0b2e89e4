package app

import (
	"errors"
	"testing"
)

func TestLookupDiscount(t *testing.T) {
	t.Run("known codes, case-insensitive", func(t *testing.T) {
		for in, pct := range map[string]float64{
			"SAVE10":      10,
			"save10":      10,
			" Welcome20 ": 20,
			"first15":     15,
		} {
			code, percent, err := LookupDiscount(in)
			if err != nil {
				t.Fatalf("LookupDiscount(%q): %v", in, err)
			}
			if percent != pct {
				t.Fatalf("LookupDiscount(%q) = %v%%, want %v%%", in, percent, pct)
			}
			if code != "SAVE10" && code != "WELCOME20" && code != "FIRST15" {
				t.Fatalf("canonical code = %q", code)
			}
		}
	})

	t.Run("unknown or empty codes", func(t *testing.T) {
		for _, in := range []string{"", "   ", "NOPE99"} {
			if _, _, err := LookupDiscount(in); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("LookupDiscount(%q): expected ErrInvalidInput, got %v", in, err)
			}
		}
	})
}
