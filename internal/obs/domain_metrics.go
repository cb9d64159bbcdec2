package obs

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	domainOnce sync.Once

	// OrderSelectionsTotal counts select operations by category and outcome.
	OrderSelectionsTotal *prometheus.CounterVec
	// OrderResetsTotal counts completed order resets.
	OrderResetsTotal prometheus.Counter
	// OrderSessionsActive tracks the number of live order sessions.
	OrderSessionsActive prometheus.Gauge
	// OrderEventsTotal counts emitted domain events by topic.
	OrderEventsTotal *prometheus.CounterVec
)

// MustRegisterDomainMetrics initialises and registers domain-specific Prometheus collectors.
func MustRegisterDomainMetrics(namespace string, reg prometheus.Registerer) {
	domainOnce.Do(func() {
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		OrderSelectionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_selections_total",
			Help:      "Count of order select operations by category and outcome.",
		}, []string{"category", "result"})
		OrderResetsTotal = prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_resets_total",
			Help:      "Count of order resets.",
		})
		OrderSessionsActive = prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "order_sessions_active",
			Help:      "Number of live order sessions.",
		})
		OrderEventsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_events_total",
			Help:      "Count of emitted order events by topic.",
		}, []string{"topic"})

		mustRegisterCollector(reg, OrderSelectionsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				OrderSelectionsTotal = v
			}
		})
		mustRegisterCollector(reg, OrderResetsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Counter); ok {
				OrderResetsTotal = v
			}
		})
		mustRegisterCollector(reg, OrderSessionsActive, func(existing prometheus.Collector) {
			if v, ok := existing.(prometheus.Gauge); ok {
				OrderSessionsActive = v
			}
		})
		mustRegisterCollector(reg, OrderEventsTotal, func(existing prometheus.Collector) {
			if v, ok := existing.(*prometheus.CounterVec); ok {
				OrderEventsTotal = v
			}
		})
	})
}

func mustRegisterCollector(reg prometheus.Registerer, collector prometheus.Collector, reuse func(prometheus.Collector)) {
	if err := reg.Register(collector); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if reuse != nil {
				reuse(are.ExistingCollector)
			}
			return
		}
		panic(fmt.Errorf("register domain metric: %w", err))
	}
}
