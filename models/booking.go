package models

import "time"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

// InactiveBookingStatuses never occupy a professional's calendar.
var InactiveBookingStatuses = []BookingStatus{BookingCancelled}

// PaymentStatus tracks card payment state for a booking.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentFailed   PaymentStatus = "failed"
	PaymentCanceled PaymentStatus = "canceled"
)

// Booking is an appointment with a professional.
type Booking struct {
	ID             string        `json:"id"`
	ProfessionalID string        `json:"professionalId"`
	CustomerID     string        `json:"customerId"`
	SelectedDate   time.Time     `json:"selectedDate"`
	SelectedTime   string        `json:"selectedTime"` // "HH:MM"
	Duration       int           `json:"duration"`     // minutes
	Status         BookingStatus `json:"status"`

	Amount          float64       `json:"amount"`
	TravelFee       float64       `json:"travelFee"`
	Currency        string        `json:"currency,omitempty"`
	PaymentStatus   PaymentStatus `json:"paymentStatus,omitempty"`
	PaymentIntentID string        `json:"paymentIntentId,omitempty"`
	PaidAt          *time.Time    `json:"paidAt,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// IsActive returns true if the booking still occupies its slot.
func (b *Booking) IsActive() bool {
	return b.Status != BookingCancelled
}
