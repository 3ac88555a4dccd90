package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	bookingRepo "homepro/database/repository/booking"
	"homepro/models"
	"homepro/services/tasks"
	"homepro/utils"

	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

const (
	eventKeyPrefix = "stripe:event:"
	eventKeyTTL    = 48 * time.Hour
)

// Outcome describes how a verified event was handled.
type Outcome struct {
	EventID   string
	EventType string
	BookingID string
	Duplicate bool
	Ignored   bool
}

// WebhookProcessor verifies Stripe events and applies payment outcomes to bookings.
type WebhookProcessor struct {
	APIKey    string
	Secret    string
	Tolerance time.Duration
	Bookings  bookingRepo.BookingRepository
	// Dedupe remembers processed event ids. Nil disables deduplication.
	Dedupe *redis.Client
	// Queue receives payment:confirmed tasks. Nil skips the follow-up.
	Queue tasks.Enqueuer
}

// Process verifies the payload signature and dispatches the event.
func (p *WebhookProcessor) Process(ctx context.Context, payload []byte, sigHeader string) (*Outcome, error) {
	if p.APIKey == "" || p.Secret == "" {
		return nil, ErrNotConfigured
	}
	if strings.TrimSpace(sigHeader) == "" {
		return nil, ErrInvalidSignature
	}

	event, err := webhook.ConstructEventWithOptions(payload, sigHeader, p.Secret, webhook.ConstructEventOptions{
		Tolerance:                p.Tolerance,
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	logger := utils.GetLogger().With(zap.String("eventID", event.ID), zap.String("eventType", string(event.Type)))
	out := &Outcome{EventID: event.ID, EventType: string(event.Type)}

	status, handled := paymentStatusFor(event.Type)
	if !handled {
		out.Ignored = true
		logger.Debug("Ignoring stripe event")
		return out, nil
	}

	first, err := p.claim(ctx, event.ID)
	if err != nil {
		logger.Warn("Webhook dedupe unavailable, processing anyway", zap.Error(err))
		first = true
	}
	if !first {
		out.Duplicate = true
		logger.Info("Duplicate stripe event acknowledged")
		return out, nil
	}

	if err := p.dispatch(ctx, event, status, out); err != nil {
		p.release(ctx, event.ID)
		logger.Error("Failed to apply stripe event", zap.Error(err))
		return nil, err
	}
	return out, nil
}

func (p *WebhookProcessor) dispatch(ctx context.Context, event stripe.Event, status models.PaymentStatus, out *Outcome) error {
	logger := utils.GetLogger().With(zap.String("eventID", event.ID))

	if event.Data == nil {
		out.Ignored = true
		logger.Warn("Stripe event without data")
		return nil
	}
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		out.Ignored = true
		logger.Warn("Unreadable payment intent", zap.Error(err))
		return nil
	}

	bookingID := intent.Metadata["bookingId"]
	if bookingID == "" {
		out.Ignored = true
		logger.Warn("Payment intent has no bookingId metadata", zap.String("paymentIntentID", intent.ID))
		return nil
	}
	out.BookingID = bookingID

	update := models.PaymentUpdate{
		BookingID:       bookingID,
		Status:          status,
		PaymentIntentID: intent.ID,
		Amount:          MajorUnits(intent.Amount, string(intent.Currency)),
		Currency:        string(intent.Currency),
	}
	if event.Created > 0 {
		update.OccurredAt = time.Unix(event.Created, 0).UTC()
	}

	booking, err := p.Bookings.UpdatePaymentState(ctx, update)
	if errors.Is(err, bookingRepo.ErrNotFound) {
		out.Ignored = true
		logger.Warn("Payment event for unknown booking", zap.String("bookingID", bookingID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to update booking payment: %w", err)
	}
	logger.Info("Booking payment updated", zap.String("bookingID", bookingID), zap.String("paymentStatus", string(status)))

	if status != models.PaymentPaid || p.Queue == nil {
		return nil
	}
	return tasks.EnqueuePaymentConfirmed(ctx, p.Queue, models.PaymentConfirmedPayload{
		BookingID:      booking.ID,
		ProfessionalID: booking.ProfessionalID,
		Amount:         update.Amount,
		Currency:       update.Currency,
	})
}

// claim records the event id; false means it was already processed.
func (p *WebhookProcessor) claim(ctx context.Context, eventID string) (bool, error) {
	if p.Dedupe == nil || eventID == "" {
		return true, nil
	}
	return p.Dedupe.SetNX(ctx, eventKeyPrefix+eventID, time.Now().Unix(), eventKeyTTL).Result()
}

func (p *WebhookProcessor) release(ctx context.Context, eventID string) {
	if p.Dedupe == nil || eventID == "" {
		return
	}
	if err := p.Dedupe.Del(ctx, eventKeyPrefix+eventID).Err(); err != nil {
		utils.GetLogger().Warn("Failed to release webhook dedupe key", zap.String("eventID", eventID), zap.Error(err))
	}
}

func paymentStatusFor(t stripe.EventType) (models.PaymentStatus, bool) {
	switch t {
	case stripe.EventTypePaymentIntentSucceeded:
		return models.PaymentPaid, true
	case stripe.EventTypePaymentIntentPaymentFailed:
		return models.PaymentFailed, true
	case stripe.EventTypePaymentIntentCanceled:
		return models.PaymentCanceled, true
	}
	return "", false
}

var zeroDecimal = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true, "krw": true, "mga": true,
	"pyg": true, "rwf": true, "ugx": true, "vnd": true, "vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// MajorUnits converts a Stripe amount in the smallest currency unit.
func MajorUnits(amount int64, currency string) float64 {
	if zeroDecimal[strings.ToLower(currency)] {
		return float64(amount)
	}
	return float64(amount) / 100
}
