package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Item engine metric names
const (
	MetricNameItemsCreated     = "items_created_total"
	MetricNameItemsCrafted     = "items_crafted_total"
	MetricNameEnchantsApplied  = "enchantments_applied_total"
	MetricNameEnchantsRejected = "enchantments_rejected_total"
	MetricNameRepairsPerformed = "repairs_performed_total"
	MetricNameEquipOperations  = "equip_operations_total"
	MetricNameBuffsConsumed    = "buffs_consumed_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Item engine metric help text
const (
	HelpTextItemsCreated     = "Total number of items created by the factory"
	HelpTextItemsCrafted     = "Total number of crafted equipment instances"
	HelpTextEnchantsApplied  = "Total number of enchantments applied"
	HelpTextEnchantsRejected = "Total number of enchantment applications rejected"
	HelpTextRepairsPerformed = "Total number of equipment repairs"
	HelpTextEquipOperations  = "Total number of equip and unequip operations"
	HelpTextBuffsConsumed    = "Total number of consume-on-use buffs consumed"
)

// ============================================================================
// Metric Labels
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelCategory  = "category"
	LabelQuality   = "quality"
	LabelReason    = "reason"
	LabelOperation = "operation"
	LabelSlot      = "slot"
)

// HTTPLatencyBuckets are the histogram buckets for request latency
var HTTPLatencyBuckets = []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}
