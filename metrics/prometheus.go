package metrics

import "github.com/prometheus/client_golang/prometheus"

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

var HttpRateLimitRejectionsTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "http_rate_limit_rejections_total",
		Help: "Total number of HTTP requests rejected due to rate limiting",
	},
)

var DeliveriesQueuedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "deliveries_queued_total",
		Help: "Total number of deliveries enqueued by incident publishes",
	},
	[]string{"channel"},
)

var DeliveriesProcessedTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "deliveries_processed_total",
		Help: "Total number of deliveries processed by the batch worker",
	},
	[]string{"channel", "status", "provider"},
)

var DeliverySendDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "delivery_send_duration_seconds",
		Help:    "Time taken to send deliveries via external providers",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"provider", "channel"},
)

var DeliveryRetriesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "delivery_retries_total",
		Help: "Total number of delivery retries scheduled",
	},
	[]string{"channel"},
)

var DeliveriesTerminalTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "deliveries_terminal_total",
		Help: "Total number of deliveries that exhausted their retry budget",
	},
	[]string{"channel"},
)

var StaleDeliveriesReclaimedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "stale_deliveries_reclaimed_total",
		Help: "Total number of deliveries reclaimed from a stuck sending state",
	},
)

var KafkaPublishSuccessTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_publish_success_total",
		Help: "Total number of successful Kafka publishes",
	},
	[]string{"topic"},
)

var KafkaPublishFailureTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "kafka_publish_failure_total",
		Help: "Total number of failed Kafka publishes",
	},
	[]string{"topic"},
)

var ExternalAPIDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "external_api_duration_seconds",
		Help:    "Duration of external API calls in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"provider", "service"},
)

func InitAPIMetrics() {
	prometheus.MustRegister(HttpRequestsTotal)
	prometheus.MustRegister(HttpRequestDuration)
	prometheus.MustRegister(HttpErrorsTotal)
	prometheus.MustRegister(HttpRateLimitRejectionsTotal)
	prometheus.MustRegister(DeliveriesQueuedTotal)
}

func InitWorkerMetrics() {
	prometheus.MustRegister(DeliveriesProcessedTotal)
	prometheus.MustRegister(DeliverySendDuration)
	prometheus.MustRegister(DeliveryRetriesTotal)
	prometheus.MustRegister(DeliveriesTerminalTotal)
	prometheus.MustRegister(StaleDeliveriesReclaimedTotal)
	prometheus.MustRegister(ExternalAPIDuration)
}

func InitKafkaMetrics() {
	prometheus.MustRegister(KafkaPublishSuccessTotal)
	prometheus.MustRegister(KafkaPublishFailureTotal)
}
