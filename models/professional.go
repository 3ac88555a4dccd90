package models

import "time"

// DaySchedule is a single weekday's working window.
type DaySchedule struct {
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"startTime"` // "HH:MM", inclusive
	EndTime   string `json:"endTime"`   // "HH:MM", exclusive
}

// WeeklySchedule maps lowercase day names ("monday" … "sunday") to a window.
type WeeklySchedule map[string]DaySchedule

// ServiceArea is an independent coverage disc.
type ServiceArea struct {
	Label           string   `json:"label,omitempty"`
	Latitude        *float64 `json:"lat"`
	Longitude       *float64 `json:"lon"`
	ServiceRadiusKm float64  `json:"serviceRadius,omitempty"` // 0 means the default radius
}

// HasCoordinates reports whether both center coordinates are set.
func (a ServiceArea) HasCoordinates() bool {
	return a.Latitude != nil && a.Longitude != nil
}

// Professional is a service provider profile as seen by the availability engine.
// Dates are canonical time.Time values; storage wrappers are converted by the repositories.
type Professional struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	ServiceType string `json:"serviceType,omitempty"`
	Timezone    string `json:"timezone,omitempty"` // IANA zone used for all calendar arithmetic

	WeeklySchedule    WeeklySchedule `json:"weeklySchedule"`
	BlockedDates      []time.Time    `json:"blockedDates,omitempty"`
	VacationMode      bool           `json:"vacationMode"`
	VacationStartDate *time.Time     `json:"vacationStartDate,omitempty"`
	VacationEndDate   *time.Time     `json:"vacationEndDate,omitempty"`
	BufferTimeMinutes int            `json:"bufferTimeMinutes"`

	// Single-location coverage. Ignored when ServiceAreas is non-empty.
	Latitude        *float64      `json:"lat,omitempty"`
	Longitude       *float64      `json:"lon,omitempty"`
	ServiceRadiusKm float64       `json:"serviceRadius,omitempty"`
	ServiceAreas    []ServiceArea `json:"serviceAreas,omitempty"`

	Verified  bool      `json:"verified"`
	FCMToken  string    `json:"-"`
	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
}

// HasServiceAreas reports whether the multi-area coverage overrides the single location.
func (p *Professional) HasServiceAreas() bool {
	return len(p.ServiceAreas) > 0
}

// HasLocation reports whether the single-location coordinates are set.
func (p *Professional) HasLocation() bool {
	return p.Latitude != nil && p.Longitude != nil
}

// Zone resolves the professional's time zone, falling back when unset or unknown.
func (p *Professional) Zone(fallback *time.Location) *time.Location {
	if p.Timezone != "" {
		if loc, err := time.LoadLocation(p.Timezone); err == nil {
			return loc
		}
	}
	if fallback == nil {
		return time.UTC
	}
	return fallback
}

// CoverageCenters returns the [lon, lat] centers used for geo indexing.
func (p *Professional) CoverageCenters() [][]float64 {
	var centers [][]float64
	if p.HasServiceAreas() {
		for _, a := range p.ServiceAreas {
			if a.HasCoordinates() {
				centers = append(centers, []float64{*a.Longitude, *a.Latitude})
			}
		}
		return centers
	}
	if p.HasLocation() {
		centers = append(centers, []float64{*p.Longitude, *p.Latitude})
	}
	return centers
}
