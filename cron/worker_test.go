package cron

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homepro/models"
	"homepro/services/notification"
	"homepro/services/tasks"
)

type fakeNotifier struct {
	got []models.PaymentConfirmedPayload
	err error
}

func (f *fakeNotifier) SendProfessionalPush(context.Context, string, string, string, map[string]string) error {
	return f.err
}

func (f *fakeNotifier) NotifyPaymentConfirmed(_ context.Context, p models.PaymentConfirmedPayload) error {
	f.got = append(f.got, p)
	return f.err
}

func paymentTask(t *testing.T, p models.PaymentConfirmedPayload) *asynq.Task {
	t.Helper()
	task, _, err := tasks.NewPaymentConfirmedTask(p)
	require.NoError(t, err)
	return task
}

func TestHandlePaymentConfirmed(t *testing.T) {
	payload := models.PaymentConfirmedPayload{BookingID: "b-1", ProfessionalID: "pro-1"}

	notifier := &fakeNotifier{}
	require.NoError(t, HandlePaymentConfirmed(notifier)(context.Background(), paymentTask(t, payload)))
	assert.Equal(t, []models.PaymentConfirmedPayload{payload}, notifier.got)
}

func TestHandlePaymentConfirmed_Failures(t *testing.T) {
	payload := models.PaymentConfirmedPayload{BookingID: "b-1", ProfessionalID: "pro-1"}

	noDevice := &fakeNotifier{err: notification.ErrNoDeviceToken}
	assert.NoError(t, HandlePaymentConfirmed(noDevice)(context.Background(), paymentTask(t, payload)))

	down := &fakeNotifier{err: errors.New("fcm unavailable")}
	err := HandlePaymentConfirmed(down)(context.Background(), paymentTask(t, payload))
	assert.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))

	raw, _ := json.Marshal("not an object")
	err = HandlePaymentConfirmed(&fakeNotifier{})(context.Background(), asynq.NewTask(tasks.TypePaymentConfirmed, raw))
	assert.ErrorIs(t, err, asynq.SkipRetry)
}
