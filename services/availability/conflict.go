package availability

import (
	"time"

	"homepro/models"
)

// HasBookingConflict reports whether a candidate slot collides with an existing booking.
//
// The candidate interval is widened by bufferMinutes on both ends and compared
// against the unpadded interval of each booking on the same calendar date:
//
//	candidateStart-buffer < bookingEnd && candidateEnd+buffer > bookingStart
//
// Only the candidate is padded. Bookings without a date, a parsable time or a
// positive duration are skipped. A candidate whose time cannot be parsed is
// reported as conflicting so it is never admitted.
func HasBookingConflict(date time.Time, clock string, durationMinutes int, existing []models.Booking, bufferMinutes int) bool {
	slotStart, ok := At(date, clock)
	if !ok {
		return true
	}
	slotEnd := slotStart.Add(time.Duration(durationMinutes) * time.Minute)

	buffer := time.Duration(max(bufferMinutes, 0)) * time.Minute
	paddedStart := slotStart.Add(-buffer)
	paddedEnd := slotEnd.Add(buffer)

	for i := range existing {
		b := &existing[i]
		bookingStart, bookingEnd, ok := bookingInterval(b)
		if !ok {
			continue
		}
		if !sameCalendarDate(b.SelectedDate, date) {
			continue
		}
		if paddedStart.Before(bookingEnd) && paddedEnd.After(bookingStart) {
			return true
		}
	}
	return false
}

func bookingInterval(b *models.Booking) (start, end time.Time, ok bool) {
	if b.SelectedDate.IsZero() || b.Duration <= 0 {
		return time.Time{}, time.Time{}, false
	}
	start, ok = At(b.SelectedDate, b.SelectedTime)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return start, start.Add(time.Duration(b.Duration) * time.Minute), true
}
