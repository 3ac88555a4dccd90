package availability

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"homepro/models"
)

// dayNames is indexed by time.Weekday (0 = Sunday).
var dayNames = [7]string{
	"sunday",
	"monday",
	"tuesday",
	"wednesday",
	"thursday",
	"friday",
	"saturday",
}

// DayName returns the lowercase weekday name of date in its own location.
func DayName(date time.Time) string {
	return dayNames[date.Weekday()]
}

// IsDayName reports whether name is one of the seven schedule keys.
func IsDayName(name string) bool {
	for _, d := range dayNames {
		if d == name {
			return true
		}
	}
	return false
}

// IsDateBlocked reports whether date falls on the same calendar day as any blocked entry.
// Time of day is ignored on both sides.
func IsDateBlocked(date time.Time, blockedDates []time.Time) bool {
	for _, blocked := range blockedDates {
		if blocked.IsZero() {
			continue
		}
		if sameCalendarDate(date, blocked) {
			return true
		}
	}
	return false
}

// IsVacationDate reports whether date lies inside the inclusive vacation window.
// The window runs from 00:00 on start to 23:59:59.999 on end, in date's location.
func IsVacationDate(date time.Time, vacationMode bool, start, end *time.Time) bool {
	if !vacationMode || start == nil || end == nil || start.IsZero() || end.IsZero() {
		return false
	}
	loc := date.Location()
	day := startOfDay(date)
	from := calendarDateIn(*start, loc)
	y, m, d := end.Date()
	to := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), loc)
	return !day.Before(from) && !day.After(to)
}

// IsTimeInSchedule reports whether clock ("HH:MM") falls inside the half-open
// [startTime, endTime) window of date's weekday. A slot starting exactly at
// endTime is outside the schedule.
func IsTimeInSchedule(date time.Time, clock string, schedule models.WeeklySchedule) bool {
	day, ok := schedule[DayName(date)]
	if !ok || !day.Enabled {
		return false
	}
	at, ok := ParseClock(clock)
	if !ok {
		return false
	}
	start, end, ok := dayWindow(day)
	if !ok {
		return false
	}
	return at >= start && at < end
}

// ParseClock converts "HH:MM" into minutes since midnight. "24:00" is accepted
// so a working day may end at midnight.
func ParseClock(s string) (int, bool) {
	h, m, found := strings.Cut(strings.TrimSpace(s), ":")
	if !found || len(h) == 0 || len(h) > 2 || len(m) != 2 || !allDigits(h) || !allDigits(m) {
		return 0, false
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 24 {
		return 0, false
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	if hour == 24 && minute != 0 {
		return 0, false
	}
	return hour*60 + minute, true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// FormatClock renders minutes since midnight as "15:04".
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatClockLabel renders minutes since midnight as "3:04 PM".
func FormatClockLabel(minutes int) string {
	hour, minute := (minutes/60)%24, minutes%60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour12, minute, suffix)
}

// At combines the calendar date of date with a wall-clock "HH:MM" in date's location.
func At(date time.Time, clock string) (time.Time, bool) {
	minutes, ok := ParseClock(clock)
	if !ok {
		return time.Time{}, false
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, minutes/60, minutes%60, 0, 0, date.Location()), true
}

func dayWindow(day models.DaySchedule) (start, end int, ok bool) {
	start, ok = ParseClock(day.StartTime)
	if !ok {
		return 0, 0, false
	}
	end, ok = ParseClock(day.EndTime)
	if !ok {
		return 0, 0, false
	}
	return start, end, true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// calendarDateIn takes t's calendar day as written and places it at midnight in loc.
func calendarDateIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

func sameCalendarDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
