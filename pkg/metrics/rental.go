package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Cart lines added or incremented, by rental period
	CartAdds = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_cart_adds_total",
		Help: "Number of add-to-cart calls by rental period",
	}, []string{"rental_period"})

	// Mock login attempts by outcome
	LoginAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_login_attempts_total",
		Help: "Number of login attempts by result",
	}, []string{"result"})

	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rental_orders_created_total",
		Help: "Total number of rental orders placed",
	})

	OrderAmount = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "rental_order_amount",
		Help:    "Total amount of placed rental orders",
		Buckets: []float64{50, 100, 250, 500, 1000, 2500, 5000},
	})

	OrderStatusTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "rental_order_status_transitions_total",
		Help: "Order status changes by source and target status",
	}, []string{"from", "to"})

	ActiveSessions = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "rental_active_sessions",
		Help: "Visitor sessions currently cached in memory",
	})

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Latency of HTTP handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

func Init() {
	prometheus.MustRegister(
		CartAdds,
		LoginAttempts,
		OrdersCreated,
		OrderAmount,
		OrderStatusTransitions,
		ActiveSessions,
		HTTPRequestDuration,
	)
}
