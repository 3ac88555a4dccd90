package bookingRepo

import (
	"time"

	"homepro/database/repository"
	"homepro/models"
)

// bookingDocument is the stored shape of a booking. selectedDate is a calendar
// date kept at UTC midnight; older documents may hold it as a string.
type bookingDocument struct {
	ID             string                  `bson:"id"`
	ProfessionalID string                  `bson:"professionalId"`
	CustomerID     string                  `bson:"customerId"`
	SelectedDate   repository.FlexibleDate `bson:"selectedDate"`
	SelectedTime   string                  `bson:"selectedTime"`
	Duration       int                     `bson:"duration"`
	Status         string                  `bson:"status"`

	Amount          float64                  `bson:"amount"`
	TravelFee       float64                  `bson:"travelFee"`
	Currency        string                   `bson:"currency,omitempty"`
	PaymentStatus   string                   `bson:"paymentStatus,omitempty"`
	PaymentIntentID string                   `bson:"paymentIntentId,omitempty"`
	PaidAt          *repository.FlexibleDate `bson:"paidAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toDocument(b *models.Booking) bookingDocument {
	return bookingDocument{
		ID:              b.ID,
		ProfessionalID:  b.ProfessionalID,
		CustomerID:      b.CustomerID,
		SelectedDate:    repository.NewFlexibleDate(calendarDateUTC(b.SelectedDate)),
		SelectedTime:    b.SelectedTime,
		Duration:        b.Duration,
		Status:          string(b.Status),
		Amount:          b.Amount,
		TravelFee:       b.TravelFee,
		Currency:        b.Currency,
		PaymentStatus:   string(b.PaymentStatus),
		PaymentIntentID: b.PaymentIntentID,
		PaidAt:          repository.FlexibleDatePtr(b.PaidAt),
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

func (d *bookingDocument) toModel() models.Booking {
	return models.Booking{
		ID:              d.ID,
		ProfessionalID:  d.ProfessionalID,
		CustomerID:      d.CustomerID,
		SelectedDate:    d.SelectedDate.Time,
		SelectedTime:    d.SelectedTime,
		Duration:        d.Duration,
		Status:          models.BookingStatus(d.Status),
		Amount:          d.Amount,
		TravelFee:       d.TravelFee,
		Currency:        d.Currency,
		PaymentStatus:   models.PaymentStatus(d.PaymentStatus),
		PaymentIntentID: d.PaymentIntentID,
		PaidAt:          d.PaidAt.Ptr(),
		CreatedAt:       d.CreatedAt,
		UpdatedAt:       d.UpdatedAt,
	}
}

// calendarDateUTC keeps t's calendar day as written and drops the time of day.
func calendarDateUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
