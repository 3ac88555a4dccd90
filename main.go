package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"homepro/config"
	"homepro/cron"
	"homepro/database"
	bookingRepo "homepro/database/repository/booking"
	professionalRepo "homepro/database/repository/professional"
	"homepro/handlers"
	"homepro/metrics"
	"homepro/routes"
	"homepro/services/booking"
	"homepro/services/notification"
	"homepro/services/payment"
	"homepro/services/professional"
	"homepro/services/tasks"
	"homepro/services/travel"
	"homepro/utils"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stripe/stripe-go/v76"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// repositories.
	mongoProfessionals := professionalRepo.NewMongoProfessionalRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	indexCtx, cancelIndexes := context.WithTimeout(ctx, 30*time.Second)
	if err := mongoProfessionals.EnsureIndexes(indexCtx); err != nil {
		logger.Fatal("main: failed to create professional indexes", zap.Error(err))
	}
	if err := bookings.EnsureIndexes(indexCtx); err != nil {
		logger.Fatal("main: failed to create booking indexes", zap.Error(err))
	}
	cancelIndexes()
	professionals := professionalRepo.NewCachedProfessionalRepo(mongoProfessionals, utils.GetCacheClient(), config.ProfileCacheTTL())

	var m *metrics.Metrics
	if config.AppConfig.MetricsEnabled {
		m = metrics.New("homepro", prometheus.DefaultRegisterer)
	}

	// services.
	availabilityService := &booking.DefaultAvailabilityService{
		Professionals: professionals,
		Bookings:      bookings,
		Metrics:       m,
		Opts: booking.Options{
			DefaultLocation:     config.DefaultLocation(),
			SlotIntervalMinutes: config.AppConfig.SlotIntervalMinutes,
			Fees: travel.FeeOptions{
				BaseFee:   config.AppConfig.TravelBaseFee,
				PerKmRate: config.AppConfig.TravelPerKmRate,
				MaxFee:    config.AppConfig.TravelMaxFee,
			},
			Currency: config.AppConfig.TravelCurrency,
		},
	}
	professionalService := &professional.DefaultProfessionalService{Repo: professionals}

	var sender notification.Sender
	if config.AppConfig.NotificationsEnabled {
		fcm, err := utils.FirebaseInit(ctx, config.AppConfig.FirebaseCredentialsFile)
		if err != nil {
			logger.Error("main: push notifications disabled", zap.Error(err))
		} else {
			sender = fcm
		}
	}
	notificationService, err := notification.NewDefaultNotificationService(professionals, sender)
	if err != nil {
		logger.Fatal("main: failed to build notification service", zap.Error(err))
	}

	queue := asynq.NewClient(tasks.RedisOpt())
	defer queue.Close()
	worker := cron.InitWorker(notificationService)

	webhookProcessor := &payment.WebhookProcessor{
		APIKey:    config.AppConfig.StripeKey,
		Secret:    config.AppConfig.StripeWebhookSecret,
		Tolerance: config.WebhookTolerance(),
		Bookings:  bookings,
		Dedupe:    utils.GetCacheClient(),
		Queue:     queue,
	}

	monitor := utils.NewHealthMonitor(utils.GetCacheClient(), database.MongoClient)
	monitor.Start(ctx, 30*time.Second)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Availability: &handlers.AvailabilityHandler{Service: availabilityService},
		Professional: &handlers.ProfessionalHandler{Service: professionalService},
		Webhook:      &handlers.WebhookHandler{Processor: webhookProcessor},
		Health:       &handlers.HealthHandler{Monitor: monitor},
		Metrics:      m,
	}
	if m != nil {
		handlerBundle.MetricsHandler = promhttp.Handler()
	}

	router := gin.New()
	if err := router.SetTrustedProxies(config.AppConfig.TrustedProxies); err != nil {
		logger.Fatal("main: invalid TRUSTED_PROXIES", zap.Error(err))
	}
	router.Use(utils.ErrorHandler())
	routes.RegisterRoutes(router, handlerBundle, config.AppConfig.MaxRequestsPerMin)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              "0.0.0.0:" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting server", zap.String("addr", srv.Addr))
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("main: server failed to start", zap.Error(err))
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("main: server is shutting down...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	worker.Shutdown()
	if err := database.Close(shutdownCtx); err != nil {
		logger.Error("main: failed to close mongo", zap.Error(err))
	}

	logger.Info("main: server stopped gracefully")
}
