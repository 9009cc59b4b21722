package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var HttpRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests received",
	},
	[]string{"endpoint", "status", "method"},
)

var HttpRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"endpoint", "method"},
)

var HttpErrorsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_errors_total",
		Help: "Total number of failed HTTP requests (4xx/5xx)",
	},
	[]string{"endpoint", "status", "method"},
)

var HttpRateLimitRejectionsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "http_rate_limit_rejections_total",
		Help: "Total number of HTTP requests rejected due to rate limiting",
	},
	[]string{"tier"},
)

var ExternalAPISuccessTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "external_api_success_total",
		Help: "Total number of successful external API calls",
	},
	[]string{"provider", "service"},
)

var ExternalAPIFailureTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "external_api_failure_total",
		Help: "Total number of failed external API calls",
	},
	[]string{"provider", "service", "reason"},
)

var ExternalAPIDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "external_api_duration_seconds",
		Help:    "Duration of external API calls in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"provider", "service"},
)

var TemplatesReconciledTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "templates_reconciled_total",
		Help: "Remote templates merged into local storage, by outcome",
	},
	[]string{"outcome"},
)

var TemplateSyncRunsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "template_sync_runs_total",
		Help: "Template catalog sync runs, by trigger and status",
	},
	[]string{"trigger", "status"},
)

var EmailsSentTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "emails_sent_total",
		Help: "Outgoing emails, by provider and status",
	},
	[]string{"provider", "status"},
)

// ObserveExternalCall records one call to a third-party API
func ObserveExternalCall(provider, service, failureReason string, elapsed time.Duration) {
	ExternalAPIDuration.WithLabelValues(provider, service).Observe(elapsed.Seconds())
	if failureReason == "" {
		ExternalAPISuccessTotal.WithLabelValues(provider, service).Inc()
		return
	}
	ExternalAPIFailureTotal.WithLabelValues(provider, service, failureReason).Inc()
}

func InitAPIMetrics() {
	prometheus.MustRegister(HttpRequestsTotal)
	prometheus.MustRegister(HttpRequestDuration)
	prometheus.MustRegister(HttpErrorsTotal)
	prometheus.MustRegister(HttpRateLimitRejectionsTotal)
}

func InitDomainMetrics() {
	prometheus.MustRegister(ExternalAPISuccessTotal)
	prometheus.MustRegister(ExternalAPIFailureTotal)
	prometheus.MustRegister(ExternalAPIDuration)
	prometheus.MustRegister(TemplatesReconciledTotal)
	prometheus.MustRegister(TemplateSyncRunsTotal)
	prometheus.MustRegister(EmailsSentTotal)
}
