package metrics

import "github.com/prometheus/client_golang/prometheus"

// OrderMetrics counts business events in the checkout and order flows.
type OrderMetrics struct {
	confirmed     *prometheus.CounterVec
	confirmFailed *prometheus.CounterVec
	transitions   *prometheus.CounterVec
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	confirmed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_confirmed_total",
		Help: "Orders created from confirmed paniers, by delivery location.",
	}, []string{"location_type"})
	confirmFailed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_confirm_failed_total",
		Help: "Panier confirmations rejected or failed, by reason.",
	}, []string{"reason"})
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_transitions_total",
		Help: "Order status transitions applied by suppliers.",
	}, []string{"from", "to"})
	reg.MustRegister(confirmed, confirmFailed, transitions)
	return &OrderMetrics{
		confirmed:     confirmed,
		confirmFailed: confirmFailed,
		transitions:   transitions,
	}
}

// IncConfirmed increments the confirmed-orders counter.
func (m *OrderMetrics) IncConfirmed(locationType string) {
	if m == nil || m.confirmed == nil {
		return
	}
	m.confirmed.WithLabelValues(normalizeLabel(locationType)).Inc()
}

// IncConfirmFailed increments the failed-confirmation counter.
func (m *OrderMetrics) IncConfirmFailed(reason string) {
	if m == nil || m.confirmFailed == nil {
		return
	}
	m.confirmFailed.WithLabelValues(normalizeLabel(reason)).Inc()
}

// IncTransition increments the status-transition counter.
func (m *OrderMetrics) IncTransition(from, to string) {
	if m == nil || m.transitions == nil {
		return
	}
	m.transitions.WithLabelValues(normalizeLabel(from), normalizeLabel(to)).Inc()
}
