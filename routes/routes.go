package routes

import (
	"time"

	"homepro/handlers"
	"homepro/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterProfessionalRoutes registers profile, availability and settings endpoints.
func RegisterProfessionalRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/professionals")
	{
		api.GET("/nearby", hb.Availability.NearbyHandler)
		api.GET("/:id", hb.Professional.GetProfessionalHandler)
		api.GET("/:id/slots", hb.Availability.GetSlotsHandler)
		api.POST("/:id/availability", hb.Availability.CheckSlotHandler)
		api.POST("/:id/travel-fee", hb.Availability.TravelFeeHandler)

		// Settings are only writable by the professional who owns them.
		protected := api.Group("")
		protected.Use(middleware.JWTAuthProfessionalMiddleware())
		protected.PUT("/:id/schedule", hb.Professional.UpdateScheduleHandler)
		protected.PUT("/:id/vacation", hb.Professional.UpdateVacationHandler)
		protected.PUT("/:id/blocked-dates", hb.Professional.UpdateBlockedDatesHandler)
		protected.PUT("/:id/service-areas", hb.Professional.UpdateServiceAreasHandler)
	}
}

// RegisterWebhookRoutes registers payment processor callbacks.
func RegisterWebhookRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/webhooks")
	{
		api.POST("/stripe", hb.Webhook.StripeWebhookHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/health", hb.Health.HealthCheckHandler)
}

// RegisterMetricsRoute exposes Prometheus metrics when enabled.
func RegisterMetricsRoute(r *gin.Engine, hb *handlers.HandlerBundle) {
	if hb.MetricsHandler == nil {
		return
	}
	r.GET("/metrics", gin.WrapH(hb.MetricsHandler))
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, requestsPerMin int) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "Stripe-Signature"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RequestLogger())
	if hb.Metrics != nil {
		r.Use(middleware.MetricsMiddleware(hb.Metrics))
	}
	r.Use(middleware.RateLimitMiddleware(requestsPerMin))

	RegisterHealthRoute(r, hb)
	RegisterMetricsRoute(r, hb)
	RegisterProfessionalRoutes(r, hb)
	RegisterWebhookRoutes(r, hb)
}
