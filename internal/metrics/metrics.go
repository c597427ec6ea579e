// Package metrics counts shopping activity on a private Prometheus registry.
// The simulator has no scrape endpoint; the registry is written to a
// node_exporter textfile when the run ends.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Login attempt results.
const (
	LoginSuccess       = "success"
	LoginNotRegistered = "not_registered"
	LoginEmailMismatch = "email_mismatch"
)

// Metrics holds every collector the simulator updates.
type Metrics struct {
	registry *prometheus.Registry

	ItemsAdded       *prometheus.CounterVec
	ItemsRemoved     *prometheus.CounterVec
	RemoveMisses     prometheus.Counter
	CheckoutRejected prometheus.Counter
	OrdersPlaced     prometheus.Counter
	OrdersCancelled  prometheus.Counter
	OrderRevenue     prometheus.Counter
	OrderItems       prometheus.Histogram
	Registrations    prometheus.Counter
	LoginAttempts    *prometheus.CounterVec
}

// New registers all collectors on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		ItemsAdded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cartsim_cart_items_added_total",
				Help: "Units added to carts, by product",
			},
			[]string{"product_id"},
		),
		ItemsRemoved: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cartsim_cart_items_removed_total",
				Help: "Units actually removed from carts, by product",
			},
			[]string{"product_id"},
		),
		RemoveMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "cartsim_cart_remove_misses_total",
			Help: "Remove requests for products that were not in the cart",
		}),
		CheckoutRejected: factory.NewCounter(prometheus.CounterOpts{
			Name: "cartsim_checkout_rejected_total",
			Help: "Checkout attempts refused because the cart was empty",
		}),
		OrdersPlaced: factory.NewCounter(prometheus.CounterOpts{
			Name: "cartsim_orders_placed_total",
			Help: "Orders placed",
		}),
		OrdersCancelled: factory.NewCounter(prometheus.CounterOpts{
			Name: "cartsim_orders_cancelled_total",
			Help: "Orders cancelled",
		}),
		OrderRevenue: factory.NewCounter(prometheus.CounterOpts{
			Name: "cartsim_order_revenue_total",
			Help: "Sum of placed order totals in major currency units",
		}),
		OrderItems: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "cartsim_order_items",
			Help:    "Units per placed order",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),
		Registrations: factory.NewCounter(prometheus.CounterOpts{
			Name: "cartsim_registrations_total",
			Help: "User registrations, including overwrites",
		}),
		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "cartsim_login_attempts_total",
				Help: "Login attempts, by result",
			},
			[]string{"result"},
		),
	}
}

// Registry returns the registry holding the collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteTextfile writes the current values in Prometheus text format. The
// file is written to a temp name and renamed, so readers never see a
// partial file.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
