// Package metrics counts store activity with Prometheus collectors.
// There is no scrape endpoint: the registry is written to a textfile (node_exporter textfile collector format)
// when the process exits.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/grocer/internal/models"
)

const namespace = "grocer"

// Recorder holds every collector on a private registry.
// A nil *Recorder is valid and records nothing.
type Recorder struct {
	registry *prometheus.Registry

	signups      prometheus.Counter
	logins       *prometheus.CounterVec
	checkouts    prometheus.Counter
	revenue      prometheus.Counter
	unitsSold    *prometheus.CounterVec
	stockUpdates *prometheus.CounterVec
}

// New creates a Recorder with its collectors registered.
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		signups: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "signups_total",
			Help:      "Accounts created through signup.",
		}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by result.",
		}, []string{"result"}),
		checkouts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Completed checkout sessions.",
		}),
		revenue: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "revenue_total",
			Help:      "Sum of bill grand totals.",
		}),
		unitsSold: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "units_sold_total",
			Help:      "Quantity sold per item.",
		}, []string{"item", "unit"}),
		stockUpdates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stock_updates_total",
			Help:      "Stock update requests by operation and outcome.",
		}, []string{"op", "outcome"}),
	}

	r.registry.MustRegister(r.signups, r.logins, r.checkouts, r.revenue, r.unitsSold, r.stockUpdates)
	return r
}

// Registry exposes the registry for export and tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Signup counts a new account.
func (r *Recorder) Signup() {
	if r == nil {
		return
	}
	r.signups.Inc()
}

// Login counts a login attempt.
func (r *Recorder) Login(success bool) {
	if r == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	r.logins.WithLabelValues(result).Inc()
}

// Checkout counts a completed bill, its revenue and the units of every line.
func (r *Recorder) Checkout(bill models.Bill) {
	if r == nil {
		return
	}
	r.checkouts.Inc()
	r.revenue.Add(bill.GrandTotal)
	for _, line := range bill.Items {
		r.unitsSold.WithLabelValues(line.Name, string(line.Unit)).Add(float64(line.Quantity))
	}
}

// StockUpdate counts a stock update with its outcome: applied, cancelled, rejected or undone.
func (r *Recorder) StockUpdate(op, outcome string) {
	if r == nil {
		return
	}
	r.stockUpdates.WithLabelValues(op, outcome).Inc()
}

// WriteTextfile writes the current values in the Prometheus text format.
func (r *Recorder) WriteTextfile(path string) error {
	if r == nil {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
