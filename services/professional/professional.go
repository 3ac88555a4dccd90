package professional

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"homepro/database/repository"
	professionalRepo "homepro/database/repository/professional"
	"homepro/models"
	"homepro/services/availability"
	"homepro/utils"

	"go.uber.org/zap"
)

const (
	maxBufferMinutes = 24 * 60
	maxBlockedDates  = 366
	maxServiceAreas  = 20
)

// VacationInput is the requested vacation window. Dates are "YYYY-MM-DD".
type VacationInput struct {
	VacationMode bool   `json:"vacationMode"`
	StartDate    string `json:"vacationStartDate"`
	EndDate      string `json:"vacationEndDate"`
}

// CoverageInput is the requested single location and service areas.
type CoverageInput struct {
	Latitude        *float64             `json:"lat"`
	Longitude       *float64             `json:"lon"`
	ServiceRadiusKm float64              `json:"serviceRadius"`
	ServiceAreas    []models.ServiceArea `json:"serviceAreas"`
}

// ProfessionalService lets professionals manage their own availability settings.
type ProfessionalService interface {
	GetProfessional(ctx context.Context, id string) (*models.Professional, error)
	UpdateSchedule(ctx context.Context, id string, schedule models.WeeklySchedule, bufferTimeMinutes int) (*models.Professional, error)
	UpdateVacation(ctx context.Context, id string, in VacationInput) (*models.Professional, error)
	UpdateBlockedDates(ctx context.Context, id string, dates []string) (*models.Professional, error)
	UpdateServiceAreas(ctx context.Context, id string, in CoverageInput) (*models.Professional, error)
}

// DefaultProfessionalService validates updates and hands them to the repository,
// which also evicts the cached profile.
type DefaultProfessionalService struct {
	Repo professionalRepo.ProfessionalRepository
}

func (s *DefaultProfessionalService) GetProfessional(ctx context.Context, id string) (*models.Professional, error) {
	pro, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err)
	}
	return pro, nil
}

func (s *DefaultProfessionalService) UpdateSchedule(ctx context.Context, id string, schedule models.WeeklySchedule, bufferTimeMinutes int) (*models.Professional, error) {
	if err := validateSchedule(schedule); err != nil {
		return nil, err
	}
	if bufferTimeMinutes < 0 || bufferTimeMinutes > maxBufferMinutes {
		return nil, invalid("bufferTimeMinutes", "must be between 0 and %d", maxBufferMinutes)
	}
	return s.apply(ctx, id, "schedule", professionalRepo.Patch{
		WeeklySchedule:    schedule,
		BufferTimeMinutes: &bufferTimeMinutes,
	})
}

func (s *DefaultProfessionalService) UpdateVacation(ctx context.Context, id string, in VacationInput) (*models.Professional, error) {
	patch := professionalRepo.Patch{VacationMode: &in.VacationMode}
	if in.VacationMode {
		start, err := parseDay("vacationStartDate", in.StartDate)
		if err != nil {
			return nil, err
		}
		end, err := parseDay("vacationEndDate", in.EndDate)
		if err != nil {
			return nil, err
		}
		if end.Before(start) {
			return nil, invalid("vacationEndDate", "must not be before vacationStartDate")
		}
		patch.VacationStartDate = &start
		patch.VacationEndDate = &end
	}
	return s.apply(ctx, id, "vacation", patch)
}

func (s *DefaultProfessionalService) UpdateBlockedDates(ctx context.Context, id string, dates []string) (*models.Professional, error) {
	if len(dates) > maxBlockedDates {
		return nil, invalid("blockedDates", "at most %d dates", maxBlockedDates)
	}
	seen := make(map[time.Time]struct{}, len(dates))
	blocked := make([]time.Time, 0, len(dates))
	for _, raw := range dates {
		day, err := parseDay("blockedDates", raw)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[day]; dup {
			continue
		}
		seen[day] = struct{}{}
		blocked = append(blocked, day)
	}
	sort.Slice(blocked, func(i, j int) bool { return blocked[i].Before(blocked[j]) })

	return s.apply(ctx, id, "blocked dates", professionalRepo.Patch{BlockedDates: &blocked})
}

func (s *DefaultProfessionalService) UpdateServiceAreas(ctx context.Context, id string, in CoverageInput) (*models.Professional, error) {
	if err := validatePoint("location", in.Latitude, in.Longitude, true); err != nil {
		return nil, err
	}
	if in.ServiceRadiusKm < 0 {
		return nil, invalid("serviceRadius", "must not be negative")
	}
	if len(in.ServiceAreas) > maxServiceAreas {
		return nil, invalid("serviceAreas", "at most %d areas", maxServiceAreas)
	}
	for i, a := range in.ServiceAreas {
		field := fmt.Sprintf("serviceAreas[%d]", i)
		if err := validatePoint(field, a.Latitude, a.Longitude, false); err != nil {
			return nil, err
		}
		if a.ServiceRadiusKm < 0 {
			return nil, invalid(field+".serviceRadius", "must not be negative")
		}
	}
	return s.apply(ctx, id, "service areas", professionalRepo.Patch{
		Coverage: &professionalRepo.Coverage{
			Latitude:        in.Latitude,
			Longitude:       in.Longitude,
			ServiceRadiusKm: in.ServiceRadiusKm,
			ServiceAreas:    in.ServiceAreas,
		},
	})
}

func (s *DefaultProfessionalService) apply(ctx context.Context, id, what string, patch professionalRepo.Patch) (*models.Professional, error) {
	pro, err := s.Repo.Update(ctx, id, patch)
	if err != nil {
		return nil, mapRepoError(err)
	}
	utils.GetLogger().Info("Professional updated", zap.String("professionalID", id), zap.String("section", what))
	return pro, nil
}

func mapRepoError(err error) error {
	if errors.Is(err, professionalRepo.ErrNotFound) {
		return ErrProfessionalNotFound
	}
	return fmt.Errorf("professional repository: %w", err)
}

func validateSchedule(schedule models.WeeklySchedule) error {
	for day, window := range schedule {
		if !availability.IsDayName(day) {
			return invalid("weeklySchedule", "unknown day %q", day)
		}
		field := "weeklySchedule." + day
		if !window.Enabled && window.StartTime == "" && window.EndTime == "" {
			continue
		}
		start, ok := availability.ParseClock(window.StartTime)
		if !ok {
			return invalid(field+".startTime", "must be HH:MM")
		}
		end, ok := availability.ParseClock(window.EndTime)
		if !ok {
			return invalid(field+".endTime", "must be HH:MM")
		}
		if window.Enabled && start >= end {
			return invalid(field, "startTime must be before endTime")
		}
	}
	return nil
}

func parseDay(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, invalid(field, "is required")
	}
	day, err := time.Parse(repository.DateLayout, raw)
	if err != nil {
		return time.Time{}, invalid(field, "must be YYYY-MM-DD")
	}
	return day, nil
}

// validatePoint checks a lat/lon pair. Both may be absent only when optional.
func validatePoint(field string, lat, lon *float64, optional bool) error {
	if lat == nil && lon == nil {
		if optional {
			return nil
		}
		return invalid(field, "lat and lon are required")
	}
	if lat == nil || lon == nil {
		return invalid(field, "lat and lon must be set together")
	}
	if *lat < -90 || *lat > 90 {
		return invalid(field+".lat", "must be between -90 and 90")
	}
	if *lon < -180 || *lon > 180 {
		return invalid(field+".lon", "must be between -180 and 180")
	}
	return nil
}
