package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type StorefrontMetrics struct {
	CartMutations *prometheus.CounterVec
	Orders        *prometheus.CounterVec
	CartItems     prometheus.Gauge
	CartValue     prometheus.Gauge
}

func New(service string) *StorefrontMetrics {
	mutations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart state mutations.",
	}, []string{"op"})
	orders := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "orders_total",
		Help:      "Total number of order placement attempts.",
	}, []string{"status"})
	items := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "cart_items",
		Help:      "Current number of items in the cart.",
	})
	value := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "cart_value_dollars",
		Help:      "Current cart total including tax and shipping.",
	})

	prometheus.MustRegister(mutations, orders, items, value)
	return &StorefrontMetrics{CartMutations: mutations, Orders: orders, CartItems: items, CartValue: value}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
