package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.HTTPPort != 8080 {
		t.Fatalf("HTTPPort = %d", cfg.HTTPPort)
	}
	if cfg.TaxRate != 0.08 || cfg.FreeShippingOver != 50 || cfg.ShippingFee != 9.99 {
		t.Fatalf("pricing defaults = %+v", cfg)
	}
	if cfg.PaymentSuccessRate != 0.9 || cfg.PaymentDelay != 2*time.Second {
		t.Fatalf("payment defaults = %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("PAYMENT_SUCCESS_RATE", "1.0")
	t.Setenv("PAYMENT_DELAY", "10ms")

	cfg := Load()
	if cfg.HTTPPort != 9090 {
		t.Fatalf("HTTPPort = %d", cfg.HTTPPort)
	}
	if cfg.PaymentSuccessRate != 1.0 {
		t.Fatalf("PaymentSuccessRate = %v", cfg.PaymentSuccessRate)
	}
	if cfg.PaymentDelay != 10*time.Millisecond {
		t.Fatalf("PaymentDelay = %v", cfg.PaymentDelay)
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	t.Setenv("HTTP_PORT", "not-a-number")
	t.Setenv("PAYMENT_DELAY", "soon")

	cfg := Load()
	if cfg.HTTPPort != 8080 {
		t.Fatalf("HTTPPort = %d, want default", cfg.HTTPPort)
	}
	if cfg.PaymentDelay != 2*time.Second {
		t.Fatalf("PaymentDelay = %v, want default", cfg.PaymentDelay)
	}
}
