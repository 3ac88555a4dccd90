package professionalRepo

import (
	"time"

	"homepro/database/repository"
	"homepro/models"
)

type dayScheduleDocument struct {
	Enabled   bool   `bson:"enabled"`
	StartTime string `bson:"startTime"`
	EndTime   string `bson:"endTime"`
}

type serviceAreaDocument struct {
	Label         string   `bson:"label,omitempty"`
	Lat           *float64 `bson:"lat"`
	Lon           *float64 `bson:"lon"`
	ServiceRadius float64  `bson:"serviceRadius,omitempty"`
}

// professionalDocument is the stored shape of a professional.
// coverage mirrors lat/lon and serviceAreas as a GeoJSON MultiPoint for the 2dsphere index.
type professionalDocument struct {
	ID          string `bson:"id"`
	DisplayName string `bson:"displayName"`
	ServiceType string `bson:"serviceType,omitempty"`
	Timezone    string `bson:"timezone,omitempty"`

	WeeklySchedule    map[string]dayScheduleDocument `bson:"weeklySchedule"`
	BlockedDates      []repository.FlexibleDate      `bson:"blockedDates"`
	VacationMode      bool                           `bson:"vacationMode"`
	VacationStartDate *repository.FlexibleDate       `bson:"vacationStartDate,omitempty"`
	VacationEndDate   *repository.FlexibleDate       `bson:"vacationEndDate,omitempty"`
	BufferTimeMinutes int                            `bson:"bufferTimeMinutes"`

	Lat           *float64              `bson:"lat,omitempty"`
	Lon           *float64              `bson:"lon,omitempty"`
	ServiceRadius float64               `bson:"serviceRadius,omitempty"`
	ServiceAreas  []serviceAreaDocument `bson:"serviceAreas,omitempty"`
	Coverage      *models.GeoMultiPoint `bson:"coverage,omitempty"`

	Verified  bool      `bson:"verified"`
	FCMToken  string    `bson:"fcmToken,omitempty"`
	CreatedAt time.Time `bson:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func toDocument(p *models.Professional) professionalDocument {
	return professionalDocument{
		ID:                p.ID,
		DisplayName:       p.DisplayName,
		ServiceType:       p.ServiceType,
		Timezone:          p.Timezone,
		WeeklySchedule:    scheduleDocument(p.WeeklySchedule),
		BlockedDates:      repository.FlexibleDates(p.BlockedDates),
		VacationMode:      p.VacationMode,
		VacationStartDate: repository.FlexibleDatePtr(p.VacationStartDate),
		VacationEndDate:   repository.FlexibleDatePtr(p.VacationEndDate),
		BufferTimeMinutes: p.BufferTimeMinutes,
		Lat:               p.Latitude,
		Lon:               p.Longitude,
		ServiceRadius:     p.ServiceRadiusKm,
		ServiceAreas:      areaDocuments(p.ServiceAreas),
		Coverage:          coverageOf(p),
		Verified:          p.Verified,
		FCMToken:          p.FCMToken,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// toModel reads stored dates as calendar days in the professional's zone,
// falling back to loc when the document names none.
func (d *professionalDocument) toModel(loc *time.Location) *models.Professional {
	p := &models.Professional{
		ID:                d.ID,
		DisplayName:       d.DisplayName,
		ServiceType:       d.ServiceType,
		Timezone:          d.Timezone,
		WeeklySchedule:    make(models.WeeklySchedule, len(d.WeeklySchedule)),
		VacationMode:      d.VacationMode,
		BufferTimeMinutes: max(d.BufferTimeMinutes, 0),
		Latitude:          d.Lat,
		Longitude:         d.Lon,
		ServiceRadiusKm:   d.ServiceRadius,
		Verified:          d.Verified,
		FCMToken:          d.FCMToken,
		CreatedAt:         d.CreatedAt,
		UpdatedAt:         d.UpdatedAt,
	}
	zone := p.Zone(loc)
	p.BlockedDates = repository.CalendarDates(d.BlockedDates, zone)
	p.VacationStartDate = d.VacationStartDate.CalendarPtr(zone)
	p.VacationEndDate = d.VacationEndDate.CalendarPtr(zone)
	for day, s := range d.WeeklySchedule {
		p.WeeklySchedule[day] = models.DaySchedule{Enabled: s.Enabled, StartTime: s.StartTime, EndTime: s.EndTime}
	}
	for _, a := range d.ServiceAreas {
		p.ServiceAreas = append(p.ServiceAreas, models.ServiceArea{
			Label:           a.Label,
			Latitude:        a.Lat,
			Longitude:       a.Lon,
			ServiceRadiusKm: a.ServiceRadius,
		})
	}
	return p
}

func scheduleDocument(s models.WeeklySchedule) map[string]dayScheduleDocument {
	out := make(map[string]dayScheduleDocument, len(s))
	for day, w := range s {
		out[day] = dayScheduleDocument{Enabled: w.Enabled, StartTime: w.StartTime, EndTime: w.EndTime}
	}
	return out
}

func areaDocuments(areas []models.ServiceArea) []serviceAreaDocument {
	if len(areas) == 0 {
		return nil
	}
	out := make([]serviceAreaDocument, 0, len(areas))
	for _, a := range areas {
		out = append(out, serviceAreaDocument{
			Label:         a.Label,
			Lat:           a.Latitude,
			Lon:           a.Longitude,
			ServiceRadius: a.ServiceRadiusKm,
		})
	}
	return out
}

// coverageOf returns nil when there is nothing to index; an empty MultiPoint is rejected by 2dsphere.
func coverageOf(p *models.Professional) *models.GeoMultiPoint {
	centers := p.CoverageCenters()
	if len(centers) == 0 {
		return nil
	}
	return &models.GeoMultiPoint{Type: "MultiPoint", Coordinates: centers}
}
