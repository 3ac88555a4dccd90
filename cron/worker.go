package cron

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"homepro/models"
	"homepro/services/notification"
	"homepro/services/tasks"
	"homepro/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// InitWorker starts the background task server and returns it for shutdown.
func InitWorker(notifSvc notification.NotificationService) *asynq.Server {
	logger := utils.GetLogger().With(zap.String("component", "worker"))

	srv := asynq.NewServer(
		tasks.RedisOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypePaymentConfirmed, HandlePaymentConfirmed(notifSvc))

	go func() {
		const maxAttempts = 5
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			err := srv.Start(mux)
			if err == nil {
				logger.Info("Task worker started")
				return
			}
			logger.Error("Task worker failed to start", zap.Int("attempt", attempt), zap.Error(err))
			if attempt == maxAttempts {
				logger.Fatal("Task worker gave up after max retry attempts")
			}
			time.Sleep(time.Duration(attempt*2) * time.Second)
		}
	}()
	return srv
}

// HandlePaymentConfirmed pushes the payment notice to the professional.
// A malformed payload or a professional without a device is not retried.
func HandlePaymentConfirmed(notifSvc notification.NotificationService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger().With(zap.String("task", task.Type()))

		var p models.PaymentConfirmedPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("Invalid task payload", zap.Error(err))
			return fmt.Errorf("decode payload: %v: %w", err, asynq.SkipRetry)
		}
		logger = logger.With(zap.String("bookingID", p.BookingID), zap.String("professionalID", p.ProfessionalID))

		err := notifSvc.NotifyPaymentConfirmed(ctx, p)
		switch {
		case err == nil:
			logger.Info("Payment confirmation delivered")
			return nil
		case errors.Is(err, notification.ErrNoDeviceToken):
			logger.Warn("Professional has no registered device, skipping push")
			return nil
		default:
			logger.Error("Failed to send payment confirmation", zap.Error(err))
			return err
		}
	}
}
