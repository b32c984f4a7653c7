package telemetry

// SLI metric names used for instrumentation.
const (
	// Latency
	MetricLookupLatencyP50 = "lookup.latency.p50"
	MetricLookupLatencyP95 = "lookup.latency.p95"
	MetricLookupLatencyP99 = "lookup.latency.p99"

	// Throughput
	MetricRequestsPerSec = "api.requests_per_second"

	// Upstream health
	MetricCatalogErrorRate    = "upstream.catalog.error_rate"
	MetricEnrichmentErrorRate = "upstream.enrichment.error_rate"

	// Availability
	MetricUptime = "service.uptime_percentage"

	// Business
	MetricDegradedExplanations = "business.degraded_explanations"
)
