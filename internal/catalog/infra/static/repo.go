// Package static holds the built-in product set. The demo has no product
// database; the catalog is reference data compiled into the binary.
package static

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/geministore/storefront/internal/catalog/app"
	"github.com/geministore/storefront/internal/catalog/domain"
)

type ProductRepo struct {
	products []domain.Product
}

func NewProductRepo() *ProductRepo {
	return &ProductRepo{products: seed()}
}

func (r *ProductRepo) All(ctx context.Context) ([]domain.Product, error) {
	out := make([]domain.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

func (r *ProductRepo) Get(ctx context.Context, id string) (domain.Product, error) {
	for _, p := range r.products {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Product{}, fmt.Errorf("product %q: %w", id, app.ErrNotFound)
}

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seed() []domain.Product {
	return []domain.Product{
		{
			ID:          "gemini-smartwatch",
			Name:        "GEMINI Smartwatch",
			Price:       price("299.99"),
			Description: "The GEMINI Smartwatch is a stylish and functional smartwatch that helps you stay connected and active. It features a heart rate monitor, GPS, and a variety of other sensors to track your fitness and activity levels.",
			Image:       "https://picsum.photos/seed/smartwatch/800/600",
			Category:    "wearables",
			InStock:     true,
			Rating:      4.5,
			Reviews:     89,
			Features: []string{
				"Heart rate monitoring",
				"GPS tracking",
				"Water resistant (50m)",
				"7-day battery life",
				"Sleep tracking",
				"Smartphone notifications",
			},
			Specifications: map[string]string{
				"display":      "1.4\" AMOLED",
				"battery":      "7 days typical use",
				"connectivity": "Bluetooth 5.0, WiFi",
				"waterRating":  "5ATM",
				"sensors":      "Heart rate, GPS, Accelerometer, Gyroscope",
			},
		},
		{
			ID:          "gemini-headphones",
			Name:        "GEMINI Headphones",
			Price:       price("99.99"),
			Description: "Premium wireless headphones with active noise cancellation and superior sound quality. Perfect for music lovers and professionals.",
			Image:       "https://picsum.photos/seed/headphones/800/600",
			Category:    "audio",
			InStock:     true,
			Rating:      4.7,
			Reviews:     156,
			Features: []string{
				"Active noise cancellation",
				"Wireless connectivity",
				"30-hour battery life",
				"Quick charge (5 min = 2 hours)",
				"Premium leather cushions",
				"Built-in microphone",
			},
			Specifications: map[string]string{
				"drivers":      "40mm dynamic",
				"frequency":    "20Hz - 20kHz",
				"battery":      "30 hours with ANC",
				"connectivity": "Bluetooth 5.2",
				"weight":       "250g",
			},
		},
		{
			ID:          "gemini-speaker",
			Name:        "GEMINI Speaker",
			Price:       price("149.99"),
			Description: "Portable Bluetooth speaker with incredible bass and 360-degree sound. Waterproof design perfect for any adventure.",
			Image:       "https://picsum.photos/seed/speaker/800/600",
			Category:    "audio",
			InStock:     true,
			Rating:      4.3,
			Reviews:     203,
			Features: []string{
				"360-degree sound",
				"Deep bass enhancement",
				"Waterproof (IPX7)",
				"12-hour battery life",
				"Voice assistant support",
				"Multi-device pairing",
			},
			Specifications: map[string]string{
				"power":        "20W RMS",
				"battery":      "12 hours",
				"connectivity": "Bluetooth 5.0",
				"waterRating":  "IPX7",
				"dimensions":   "180x80x80mm",
			},
		},
		{
			ID:          "gemini-tablet",
			Name:        "GEMINI Tablet",
			Price:       price("399.99"),
			Description: "High-performance tablet with stunning display and all-day battery life. Perfect for work, creativity, and entertainment.",
			Image:       "https://picsum.photos/seed/tablet/800/600",
			Category:    "tablets",
			InStock:     true,
			Rating:      4.6,
			Reviews:     95,
			Features: []string{
				"10.1\" Retina display",
				"All-day battery life",
				"Fast charging",
				"Dual camera system",
				"Lightweight design",
				"Keyboard compatible",
			},
			Specifications: map[string]string{
				"display":   "10.1\" IPS LCD (2560x1600)",
				"processor": "Octa-core 2.4GHz",
				"memory":    "6GB RAM, 128GB storage",
				"battery":   "8000mAh (12+ hours)",
				"cameras":   "8MP rear, 5MP front",
			},
		},
		{
			ID:          "gemini-earbuds",
			Name:        "GEMINI Earbuds",
			Price:       price("79.99"),
			Description: "True wireless earbuds with exceptional sound quality and comfortable fit. Perfect for active lifestyles.",
			Image:       "https://picsum.photos/seed/earbuds/800/600",
			Category:    "audio",
			InStock:     true,
			Rating:      4.4,
			Reviews:     128,
			Features: []string{
				"True wireless design",
				"Noise isolation",
				"6+24 hour battery",
				"Sweat resistant",
				"Touch controls",
				"Quick pairing",
			},
			Specifications: map[string]string{
				"drivers":      "6mm dynamic",
				"battery":      "6hr + 24hr case",
				"connectivity": "Bluetooth 5.1",
				"waterRating":  "IPX4",
				"weight":       "4.5g each",
			},
		},
		{
			ID:          "gemini-phone",
			Name:        "GEMINI Phone",
			Price:       price("699.99"),
			Description: "Flagship smartphone with cutting-edge technology, pro-grade cameras, and lightning-fast performance.",
			Image:       "https://picsum.photos/seed/smartphone/800/600",
			Category:    "phones",
			InStock:     false,
			Rating:      4.8,
			Reviews:     412,
			Features: []string{
				"Triple camera system",
				"6.7\" OLED display",
				"5G connectivity",
				"All-day battery",
				"Wireless charging",
				"Premium build quality",
			},
			Specifications: map[string]string{
				"display":   "6.7\" OLED (3200x1440)",
				"processor": "Flagship chipset",
				"memory":    "8GB RAM, 256GB storage",
				"cameras":   "108MP + 12MP + 12MP",
				"battery":   "4500mAh with fast charging",
			},
		},
	}
}
