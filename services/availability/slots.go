package availability

import (
	"time"

	"homepro/models"
)

// DefaultIntervalMinutes is the spacing between generated slot start times.
const DefaultIntervalMinutes = 30

// SlotRequest describes one day's slot listing.
type SlotRequest struct {
	Date             time.Time
	Availability     models.WeeklySchedule // falls back to Professional.WeeklySchedule when nil
	DurationMinutes  int
	Professional     *models.Professional
	ExistingBookings []models.Booking
	IntervalMinutes  int
}

// GenerateAvailableTimeSlots enumerates every IntervalMinutes step in the day's
// [startTime, endTime) window and keeps the ones IsBookingAvailable admits, in
// chronological order. A disabled or missing day yields an empty slice.
func GenerateAvailableTimeSlots(req SlotRequest) []models.TimeSlotOption {
	slots := []models.TimeSlotOption{}

	pro := models.Professional{}
	if req.Professional != nil {
		pro = *req.Professional
	}
	schedule := req.Availability
	if schedule == nil {
		schedule = pro.WeeklySchedule
	}
	pro.WeeklySchedule = schedule

	day, ok := schedule[DayName(req.Date)]
	if !ok || !day.Enabled {
		return slots
	}
	start, end, ok := dayWindow(day)
	if !ok {
		return slots
	}

	interval := req.IntervalMinutes
	if interval <= 0 {
		interval = DefaultIntervalMinutes
	}

	for minutes := start; minutes < end; minutes += interval {
		option := models.TimeSlotOption{
			Value: FormatClock(minutes),
			Label: FormatClockLabel(minutes),
		}
		result := IsBookingAvailable(Request{
			Date:             req.Date,
			Time:             option.Value,
			DurationMinutes:  req.DurationMinutes,
			Professional:     &pro,
			ExistingBookings: req.ExistingBookings,
		})
		if result.Available {
			slots = append(slots, option)
		}
	}
	return slots
}
