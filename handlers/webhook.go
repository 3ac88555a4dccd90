package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"

	"homepro/services/payment"
	"homepro/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const maxWebhookBodyBytes = 64 << 10

// WebhookProcessor is satisfied by *payment.WebhookProcessor.
type WebhookProcessor interface {
	Process(ctx context.Context, payload []byte, sigHeader string) (*payment.Outcome, error)
}

// WebhookHandler receives Stripe events.
type WebhookHandler struct {
	Processor WebhookProcessor
}

// StripeWebhookHandler verifies and applies a Stripe event. The raw body is
// read before any binding so the signature covers the exact bytes.
func (h *WebhookHandler) StripeWebhookHandler(c *gin.Context) {
	logger := getLogger(c)

	payload, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "Invalid webhook body", err.Error())
		return
	}

	out, err := h.Processor.Process(c.Request.Context(), payload, c.GetHeader("Stripe-Signature"))
	switch {
	case errors.Is(err, payment.ErrInvalidSignature):
		utils.JSONError(c, http.StatusBadRequest, "Invalid signature", "")
		return
	case errors.Is(err, payment.ErrNotConfigured):
		logger.Error("Stripe webhook received but not configured")
		utils.JSONError(c, http.StatusInternalServerError, "Webhook not configured", "")
		return
	case err != nil:
		logger.Error("Stripe webhook processing failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Webhook processing failed", "")
		return
	}

	logger.Info("Stripe webhook processed",
		zap.String("eventID", out.EventID),
		zap.String("eventType", out.EventType),
		zap.Bool("duplicate", out.Duplicate),
	)
	c.JSON(http.StatusOK, gin.H{"received": true})
}
