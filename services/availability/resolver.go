package availability

import (
	"time"

	"homepro/models"
)

// Reason explains why a slot was rejected.
type Reason string

const (
	ReasonVacation            Reason = "vacation"
	ReasonBlocked             Reason = "blocked"
	ReasonOutsideWorkingHours Reason = "outside working hours"
	ReasonConflict            Reason = "conflict/buffer"
)

// Request is a candidate slot together with the data it is judged against.
type Request struct {
	Date             time.Time
	Time             string // "HH:MM"
	DurationMinutes  int
	Professional     *models.Professional
	ExistingBookings []models.Booking
}

// Result is the admission decision for a candidate slot.
type Result struct {
	Available bool   `json:"available"`
	Reason    Reason `json:"reason,omitempty"`
}

// IsBookingAvailable applies the booking rules in a fixed order and returns the
// first failure: vacation, blocked date, working hours, then booking conflicts.
// The order decides which reason a customer sees and must not change.
func IsBookingAvailable(req Request) Result {
	pro := req.Professional
	if pro == nil {
		pro = &models.Professional{}
	}

	if IsVacationDate(req.Date, pro.VacationMode, pro.VacationStartDate, pro.VacationEndDate) {
		return Result{Reason: ReasonVacation}
	}
	if IsDateBlocked(req.Date, pro.BlockedDates) {
		return Result{Reason: ReasonBlocked}
	}
	if !IsTimeInSchedule(req.Date, req.Time, pro.WeeklySchedule) {
		return Result{Reason: ReasonOutsideWorkingHours}
	}
	if HasBookingConflict(req.Date, req.Time, req.DurationMinutes, req.ExistingBookings, pro.BufferTimeMinutes) {
		return Result{Reason: ReasonConflict}
	}
	return Result{Available: true}
}
