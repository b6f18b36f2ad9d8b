package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWithPrefix("takealook_", registry)

var (
	// milliseconds
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000, 30000, 120000,
	}

	UploadsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "uploads_total",
			Help: "Uploads received, by outcome",
		},
		[]string{"result"},
	)

	ProcessingTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "processing_total",
			Help: "Classification tasks finished, by final status",
		},
		[]string{"status"},
	)

	ProcessingLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "processing_latency_ms",
			Help:    "Classification task duration in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"status"},
	)

	FindingsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "findings_total",
			Help: "Findings persisted, by category and severity",
		},
		[]string{"category", "severity"},
	)

	QueueDepth = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "queue_depth",
			Help: "Tasks waiting for a classification worker",
		},
	)

	AlertsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "alerts_total",
			Help: "Critical alerts attempted, by delivery result",
		},
		[]string{"result"},
	)

	HTTPRequestsTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "API requests served",
		},
		[]string{"method", "route", "status"},
	)
)

type MetricsConfig struct {
	EnableLatency  bool // processing latency histogram
	EnableCategory bool // per category finding counters
}

func DefaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		EnableLatency:  true,
		EnableCategory: true,
	}
}

var Config = DefaultMetricsConfig()

func Initialize(cfg MetricsConfig) {
	Config = cfg
	registry.MustRegister(
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		collectors.NewGoCollector(),
	)

	prometheus.DefaultRegisterer = registry
	prometheus.DefaultGatherer = registry
}

func Gatherer() prometheus.Gatherer {
	return registry
}

func ObserveProcessing(status string, durationMs float64) {
	ProcessingTotal.WithLabelValues(status).Inc()
	if Config.EnableLatency {
		ProcessingLatency.WithLabelValues(status).Observe(durationMs)
	}
}

func AddFindings(category, severity string, n int) {
	if !Config.EnableCategory || n == 0 {
		return
	}
	FindingsTotal.WithLabelValues(category, severity).Add(float64(n))
}
