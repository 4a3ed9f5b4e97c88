package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Item Engine Metrics
var (
	ItemsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsCreated,
			Help: HelpTextItemsCreated,
		},
		[]string{LabelCategory},
	)

	ItemsCrafted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsCrafted,
			Help: HelpTextItemsCrafted,
		},
		[]string{LabelQuality},
	)

	EnchantsApplied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEnchantsApplied,
			Help: HelpTextEnchantsApplied,
		},
	)

	EnchantsRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEnchantsRejected,
			Help: HelpTextEnchantsRejected,
		},
		[]string{LabelReason},
	)

	RepairsPerformed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameRepairsPerformed,
			Help: HelpTextRepairsPerformed,
		},
	)

	EquipOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEquipOperations,
			Help: HelpTextEquipOperations,
		},
		[]string{LabelOperation, LabelSlot},
	)

	BuffsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameBuffsConsumed,
			Help: HelpTextBuffsConsumed,
		},
		[]string{LabelType},
	)
)
