package bookingRepo

import (
	"context"
	"errors"
	"time"

	"homepro/models"
)

// ErrNotFound is returned when no booking matches the id.
var ErrNotFound = errors.New("booking not found")

// BookingRepository defines methods for booking data access.
type BookingRepository interface {
	// GetByID retrieves a booking by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	// Create inserts a new booking record.
	Create(ctx context.Context, booking *models.Booking) error
	// ListActiveForDate returns the professional's non-cancelled bookings on a calendar date.
	// The day is bounded in date's location; callers still anchor the results.
	ListActiveForDate(ctx context.Context, professionalID string, date time.Time) ([]models.Booking, error)
	// UpdatePaymentState records a payment outcome and returns the updated booking.
	UpdatePaymentState(ctx context.Context, update models.PaymentUpdate) (*models.Booking, error)
	// EnsureIndexes creates the collection indexes.
	EnsureIndexes(ctx context.Context) error
}
