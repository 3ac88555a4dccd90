package notification

import (
	"context"
	"errors"
	"fmt"

	"homepro/models"
	"homepro/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// ErrNoDeviceToken means the professional has not registered a device.
var ErrNoDeviceToken = errors.New("professional has no FCM token")

// NotificationService defines methods for sending FCM pushes.
type NotificationService interface {
	SendProfessionalPush(ctx context.Context, professionalID, title, body string, data map[string]string) error
	NotifyPaymentConfirmed(ctx context.Context, p models.PaymentConfirmedPayload) error
}

// Sender is the part of *messaging.Client used here.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// ProfessionalLookup resolves a professional's device token.
type ProfessionalLookup interface {
	GetByID(ctx context.Context, id string) (*models.Professional, error)
}

// DefaultNotificationService is the production implementation.
// A nil sender turns every push into a logged no-op.
type DefaultNotificationService struct {
	professionals ProfessionalLookup
	sender        Sender
}

func NewDefaultNotificationService(professionals ProfessionalLookup, sender Sender) (*DefaultNotificationService, error) {
	if professionals == nil {
		return nil, fmt.Errorf("notification service initialization error: professional lookup is nil")
	}
	return &DefaultNotificationService{professionals: professionals, sender: sender}, nil
}

// SendProfessionalPush looks up a professional's FCM token and sends a push.
func (s *DefaultNotificationService) SendProfessionalPush(ctx context.Context, professionalID, title, body string, data map[string]string) error {
	logger := utils.GetLogger().With(zap.String("professionalID", professionalID))
	if s.sender == nil {
		logger.Debug("Notifications disabled, dropping push", zap.String("title", title))
		return nil
	}

	pro, err := s.professionals.GetByID(ctx, professionalID)
	if err != nil {
		return fmt.Errorf("SendProfessionalPush: could not find professional %s: %w", professionalID, err)
	}
	if pro.FCMToken == "" {
		return ErrNoDeviceToken
	}

	payload := map[string]string{"role": "professional"}
	for k, v := range data {
		payload[k] = v
	}
	msg := &messaging.Message{
		Token: pro.FCMToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: payload,
	}

	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendProfessionalPush: failed to send FCM message: %w", err)
	}
	logger.Info("Push sent", zap.String("messageID", id))
	return nil
}

// NotifyPaymentConfirmed tells the professional that a booking has been paid.
func (s *DefaultNotificationService) NotifyPaymentConfirmed(ctx context.Context, p models.PaymentConfirmedPayload) error {
	body := "A customer has paid for their booking."
	if p.Amount > 0 && p.Currency != "" {
		body = fmt.Sprintf("A customer paid %.2f %s for their booking.", p.Amount, p.Currency)
	}
	return s.SendProfessionalPush(ctx, p.ProfessionalID, "Booking paid", body, map[string]string{
		"type":      "payment_confirmed",
		"bookingId": p.BookingID,
	})
}
