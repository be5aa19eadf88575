package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	MessagesFetched     prometheus.Counter
	MessagesProcessed   prometheus.Counter
	SegmentsExtracted   prometheus.Counter
	SegmentsDiscarded   *prometheus.CounterVec
	BookingsCreated     prometheus.Counter
	BookingsUpdated     prometheus.Counter
	UnrecognizedAlerts  prometheus.Counter
	MailboxReconnects   prometheus.Counter
	ProcessingTime      prometheus.Histogram
	ErrorsCount         *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		MessagesFetched: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_fetched_total",
			Help:      "The total number of messages fetched from the mailbox",
		}),
		MessagesProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "messages_processed_total",
			Help:      "The total number of processed messages",
		}),
		SegmentsExtracted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_extracted_total",
			Help:      "The total number of flight segments extracted",
		}),
		SegmentsDiscarded: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "segments_discarded_total",
			Help:      "The total number of segments discarded before reconciliation",
		}, []string{"reason"}),
		BookingsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "The total number of bookings created from extracted segments",
		}),
		BookingsUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_updated_total",
			Help:      "The total number of bookings updated from extracted segments",
		}),
		UnrecognizedAlerts: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "unrecognized_bookings_total",
			Help:      "The total number of unrecognized traveler alerts raised",
		}),
		MailboxReconnects: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "mailbox_reconnects_total",
			Help:      "The total number of mailbox reconnect attempts",
		}),
		ProcessingTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "message_processing_time_seconds",
			Help:      "Time taken to process messages",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
