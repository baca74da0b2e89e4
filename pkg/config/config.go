package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	HTTPPort    int
	StoragePath string

	// Pricing knobs for the cart totals computation.
	TaxRate          float64
	FreeShippingOver float64
	ShippingFee      float64

	// Mock payment behavior. The success rate is a stand-in for a real
	// payment collaborator, not a contractual figure.
	PaymentSuccessRate float64
	PaymentDelay       time.Duration
	PaymentSeed        int64
}

func Load() Config {
	// Best effort: a missing .env file is not an error.
	_ = godotenv.Load()

	return Config{
		AppEnv:      getEnv("APP_ENV", "dev"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		HTTPPort:    getEnvInt("HTTP_PORT", 8080),
		StoragePath: getEnv("STORAGE_PATH", "data"),

		TaxRate:          getEnvFloat("TAX_RATE", 0.08),
		FreeShippingOver: getEnvFloat("FREE_SHIPPING_OVER", 50),
		ShippingFee:      getEnvFloat("SHIPPING_FEE", 9.99),

		PaymentSuccessRate: getEnvFloat("PAYMENT_SUCCESS_RATE", 0.9),
		PaymentDelay:       getEnvDuration("PAYMENT_DELAY", 2*time.Second),
		PaymentSeed:        int64(getEnvInt("PAYMENT_SEED", 0)),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}

	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}

	return d
}
