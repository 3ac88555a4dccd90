package models

import "time"

// PaymentUpdate is the booking payment state change derived from a processor event.
type PaymentUpdate struct {
	BookingID       string
	Status          PaymentStatus
	PaymentIntentID string
	Amount          float64
	Currency        string
	OccurredAt      time.Time
}

// PaymentConfirmedPayload is queued after a successful card payment.
type PaymentConfirmedPayload struct {
	BookingID      string  `json:"bookingId"`
	ProfessionalID string  `json:"professionalId"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
}
