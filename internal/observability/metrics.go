package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mp_integration_http_requests_total",
		Help: "HTTP requests handled, by route, method and status code",
	}, []string{"route", "method", "code"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mp_integration_http_request_duration_seconds",
		Help:    "HTTP request latency by route",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})

	// Provider failures are answered with 200, so this is the only place
	// where they are counted apart from successes.
	ProviderCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mp_integration_provider_calls_total",
		Help: "Mercado Pago API calls by operation and outcome",
	}, []string{"operation", "outcome"})

	ProviderCallDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "mp_integration_provider_call_duration_seconds",
		Help:    "Mercado Pago API call latency by operation",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"operation"})

	NotificationsReceivedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mp_integration_notifications_received_total",
		Help: "Webhook notifications received by topic",
	}, []string{"type"})
)

func ObserveProviderCall(operation string, elapsed time.Duration, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	ProviderCallsTotal.WithLabelValues(operation, outcome).Inc()
	ProviderCallDuration.WithLabelValues(operation).Observe(elapsed.Seconds())
}

func ObserveNotification(topic string) {
	if topic == "" {
		topic = "unknown"
	}
	NotificationsReceivedTotal.WithLabelValues(topic).Inc()
}

// GinMiddleware records request count and latency keyed by the route
// template, not the raw path, to keep label cardinality bounded.
func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
	}
}
