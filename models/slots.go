package models

// TimeSlotOption is a bookable start time rendered for display.
type TimeSlotOption struct {
	Value string `json:"value"` // "15:04"
	Label string `json:"label"` // "3:04 PM"
}

// DaySlots is the bookable-slot listing for one professional and date.
type DaySlots struct {
	ProfessionalID  string           `json:"professionalId"`
	Date            string           `json:"date"`
	DurationMinutes int              `json:"durationMinutes"`
	IntervalMinutes int              `json:"intervalMinutes"`
	Slots           []TimeSlotOption `json:"slots"`
}
