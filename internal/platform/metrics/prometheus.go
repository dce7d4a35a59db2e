package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Manager holds the service's Prometheus metrics on its own registry.
type Manager struct {
	Registry *prometheus.Registry

	ListingsCreatedTotal prometheus.Counter
	LikesTotal           prometheus.Counter
	ImpressionsTotal     prometheus.Counter
	ReportsTotal         prometheus.Counter

	HTTPErrorsTotal *prometheus.CounterVec
	HTTPLatency     *prometheus.HistogramVec
}

func NewManager(serviceName string) *Manager {
	registry := prometheus.NewRegistry()

	listingsCreatedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listings_created_total",
		Help:      "Total number of listings created.",
	})
	likesTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listing_likes_total",
		Help:      "Total number of listing likes recorded.",
	})
	impressionsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "listing_impressions_total",
		Help:      "Total number of listing impressions recorded.",
	})
	reportsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "abuse_reports_total",
		Help:      "Total number of abuse reports filed.",
	})
	httpErrorsTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: serviceName,
		Name:      "http_errors_total",
		Help:      "Total number of HTTP error responses by route and status.",
	}, []string{"route", "status"})
	httpLatency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: serviceName,
		Name:      "http_request_latency_seconds",
		Help:      "Latency of HTTP requests by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	registry.MustRegister(
		listingsCreatedTotal,
		likesTotal,
		impressionsTotal,
		reportsTotal,
		httpErrorsTotal,
		httpLatency,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return &Manager{
		Registry:             registry,
		ListingsCreatedTotal: listingsCreatedTotal,
		LikesTotal:           likesTotal,
		ImpressionsTotal:     impressionsTotal,
		ReportsTotal:         reportsTotal,
		HTTPErrorsTotal:      httpErrorsTotal,
		HTTPLatency:          httpLatency,
	}
}

// StartServer exposes /metrics on its own port. Blocks, so run it in a
// goroutine.
func StartServer(port string, logger *zap.Logger, registry *prometheus.Registry) error {
	if port == "" {
		logger.Info("Prometheus metrics port not configured, metrics server will not start")
		return nil
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	logger.Info("Prometheus metrics server starting", zap.String("port", port), zap.String("path", "/metrics"))

	server := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}
	return server.ListenAndServe()
}
