package handlers

import (
	"net/http"

	"homepro/metrics"
)

// HandlerBundle groups the endpoint handlers registered by the router.
type HandlerBundle struct {
	Availability *AvailabilityHandler
	Professional *ProfessionalHandler
	Webhook      *WebhookHandler
	Health       *HealthHandler

	// Metrics is nil when METRICS_ENABLED is off.
	Metrics        *metrics.Metrics
	MetricsHandler http.Handler
}
