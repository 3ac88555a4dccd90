package payment

import "errors"

var (
	// ErrNotConfigured means the Stripe key or webhook secret is missing.
	ErrNotConfigured = errors.New("stripe webhook is not configured")
	// ErrInvalidSignature means the Stripe-Signature header did not verify.
	ErrInvalidSignature = errors.New("invalid stripe signature")
)
