package service

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsService encapsulates Prometheus instrumentation for the HTTP
// surface and the coin economy.
type MetricsService struct {
	registry        *prometheus.Registry
	handler         http.Handler
	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	coinsAwarded    prometheus.Counter
	coinsSpent      prometheus.Counter
	purchases       prometheus.Counter
	bonusClaims     prometheus.Counter
	submissions     *prometheus.CounterVec
}

// NewMetricsService registers core Prometheus collectors.
func NewMetricsService() *MetricsService {
	registry := prometheus.NewRegistry()

	requestDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	requestTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	coinsAwarded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "educoin_coins_awarded_total",
		Help: "Total coins credited to students",
	})

	coinsSpent := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "educoin_coins_spent_total",
		Help: "Total coins debited in the shop",
	})

	purchases := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "educoin_reward_purchases_total",
		Help: "Total completed shop purchases",
	})

	bonusClaims := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "educoin_bonus_claims_total",
		Help: "Total daily bonus claims",
	})

	submissions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "educoin_submissions_total",
		Help: "Homework submissions by resulting status",
	}, []string{"status"})

	registry.MustRegister(requestDuration, requestTotal, coinsAwarded, coinsSpent, purchases, bonusClaims, submissions)

	return &MetricsService{
		registry:        registry,
		handler:         promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		requestDuration: requestDuration,
		requestTotal:    requestTotal,
		coinsAwarded:    coinsAwarded,
		coinsSpent:      coinsSpent,
		purchases:       purchases,
		bonusClaims:     bonusClaims,
		submissions:     submissions,
	}
}

// Handler exposes the /metrics endpoint.
func (s *MetricsService) Handler() http.Handler {
	return s.handler
}

// ObserveHTTPRequest records a completed request.
func (s *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	labels := []string{method, path, strconv.Itoa(status)}
	s.requestDuration.WithLabelValues(labels...).Observe(duration.Seconds())
	s.requestTotal.WithLabelValues(labels...).Inc()
}

// CountCoinsAwarded records coins credited to a student.
func (s *MetricsService) CountCoinsAwarded(amount int) {
	if amount > 0 {
		s.coinsAwarded.Add(float64(amount))
	}
}

// CountPurchase records a completed shop purchase.
func (s *MetricsService) CountPurchase(cost int) {
	s.purchases.Inc()
	if cost > 0 {
		s.coinsSpent.Add(float64(cost))
	}
}

// CountBonusClaim records a successful daily bonus claim.
func (s *MetricsService) CountBonusClaim() {
	s.bonusClaims.Inc()
}

// CountSubmission records a homework submission event by status.
func (s *MetricsService) CountSubmission(status string) {
	s.submissions.WithLabelValues(status).Inc()
}
