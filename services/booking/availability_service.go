package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homepro/database/repository"
	bookingRepo "homepro/database/repository/booking"
	professionalRepo "homepro/database/repository/professional"
	"homepro/metrics"
	"homepro/models"
	"homepro/services/availability"
	"homepro/services/travel"
	"homepro/utils"

	"go.uber.org/zap"
)

const maxDurationMinutes = 24 * 60

// AvailabilityService answers slot and travel questions for customers.
type AvailabilityService interface {
	GetDaySlots(ctx context.Context, professionalID, date string, durationMinutes, intervalMinutes int) (*models.DaySlots, error)
	CheckSlot(ctx context.Context, professionalID, date, clock string, durationMinutes int) (*availability.Result, error)
	QuoteTravelFee(ctx context.Context, professionalID string, customer models.CustomerLocation) (*models.TravelQuote, error)
	FindNearby(ctx context.Context, q NearbyQuery) ([]models.NearbyProfessional, error)
}

// Options carries the configured defaults.
type Options struct {
	DefaultLocation     *time.Location
	SlotIntervalMinutes int
	Fees                travel.FeeOptions
	Currency            string
	NearbyLimit         int64
}

// DefaultAvailabilityService loads profiles and bookings and runs the availability engine over them.
// Reads are not serialised against booking writes; two customers may both see a slot as free.
type DefaultAvailabilityService struct {
	Professionals professionalRepo.ProfessionalRepository
	Bookings      bookingRepo.BookingRepository
	Metrics       *metrics.Metrics
	Opts          Options
}

func (s *DefaultAvailabilityService) GetDaySlots(ctx context.Context, professionalID, date string, durationMinutes, intervalMinutes int) (*models.DaySlots, error) {
	if err := validateDuration(durationMinutes); err != nil {
		return nil, err
	}
	if intervalMinutes < 0 || intervalMinutes > maxDurationMinutes {
		return nil, fmt.Errorf("%w: interval must be between 1 and %d minutes", ErrInvalidInput, maxDurationMinutes)
	}
	if intervalMinutes == 0 {
		intervalMinutes = s.Opts.SlotIntervalMinutes
	}

	pro, day, bookings, err := s.load(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}

	slots := availability.GenerateAvailableTimeSlots(availability.SlotRequest{
		Date:             day,
		DurationMinutes:  durationMinutes,
		Professional:     pro,
		ExistingBookings: bookings,
		IntervalMinutes:  intervalMinutes,
	})
	if intervalMinutes <= 0 {
		intervalMinutes = availability.DefaultIntervalMinutes
	}
	return &models.DaySlots{
		ProfessionalID:  pro.ID,
		Date:            day.Format(repository.DateLayout),
		DurationMinutes: durationMinutes,
		IntervalMinutes: intervalMinutes,
		Slots:           slots,
	}, nil
}

func (s *DefaultAvailabilityService) CheckSlot(ctx context.Context, professionalID, date, clock string, durationMinutes int) (*availability.Result, error) {
	if err := validateDuration(durationMinutes); err != nil {
		return nil, err
	}
	if _, ok := availability.ParseClock(clock); !ok {
		return nil, fmt.Errorf("%w: time must be HH:MM", ErrInvalidInput)
	}

	pro, day, bookings, err := s.load(ctx, professionalID, date)
	if err != nil {
		return nil, err
	}

	result := availability.IsBookingAvailable(availability.Request{
		Date:             day,
		Time:             clock,
		DurationMinutes:  durationMinutes,
		Professional:     pro,
		ExistingBookings: bookings,
	})

	outcome := string(result.Reason)
	if result.Available {
		outcome = "available"
	}
	s.Metrics.ObserveDecision(outcome)
	utils.GetLogger().Debug("Slot checked",
		zap.String("professionalID", professionalID),
		zap.String("date", date),
		zap.String("time", clock),
		zap.String("outcome", outcome),
	)
	return &result, nil
}

func (s *DefaultAvailabilityService) QuoteTravelFee(ctx context.Context, professionalID string, customer models.CustomerLocation) (*models.TravelQuote, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	pro, err := s.professional(ctx, professionalID)
	if err != nil {
		return nil, err
	}

	quote := &models.TravelQuote{
		ProfessionalID:    pro.ID,
		WithinServiceArea: travel.IsWithinServiceArea(pro, &customer),
		Fee:               travel.CalculateBookingTravelFee(pro, &customer, s.Opts.Fees),
		Currency:          s.Opts.Currency,
	}
	if d, ok := travel.NearestDistanceKm(pro, &customer); ok {
		quote.DistanceKm = d
	}
	return quote, nil
}

// load resolves the professional, the requested day in their zone and that day's active bookings.
func (s *DefaultAvailabilityService) load(ctx context.Context, professionalID, date string) (*models.Professional, time.Time, []models.Booking, error) {
	pro, err := s.professional(ctx, professionalID)
	if err != nil {
		return nil, time.Time{}, nil, err
	}

	loc := pro.Zone(s.Opts.DefaultLocation)
	day, err := time.ParseInLocation(repository.DateLayout, date, loc)
	if err != nil {
		return nil, time.Time{}, nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrInvalidInput)
	}

	bookings, err := s.Bookings.ListActiveForDate(ctx, pro.ID, day)
	if err != nil {
		return nil, time.Time{}, nil, fmt.Errorf("failed to load bookings: %w", err)
	}
	return pro, day, anchorBookings(bookings, loc), nil
}

func (s *DefaultAvailabilityService) professional(ctx context.Context, id string) (*models.Professional, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: professional id is required", ErrInvalidInput)
	}
	pro, err := s.Professionals.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, professionalRepo.ErrNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, fmt.Errorf("failed to load professional: %w", err)
	}
	return pro, nil
}

// anchorBookings drops inactive bookings and places each booking's calendar day, read
// in loc, at midnight in loc so its selectedTime is wall-clock time in the professional's zone.
func anchorBookings(bookings []models.Booking, loc *time.Location) []models.Booking {
	out := make([]models.Booking, 0, len(bookings))
	for _, b := range bookings {
		if !b.IsActive() {
			continue
		}
		if !b.SelectedDate.IsZero() {
			y, m, d := repository.CalendarDate(b.SelectedDate, loc).Date()
			b.SelectedDate = time.Date(y, m, d, 0, 0, 0, 0, loc)
		}
		out = append(out, b)
	}
	return out
}

func validateDuration(minutes int) error {
	if minutes <= 0 || minutes > maxDurationMinutes {
		return fmt.Errorf("%w: duration must be between 1 and %d minutes", ErrInvalidInput, maxDurationMinutes)
	}
	return nil
}

func validateCustomer(c models.CustomerLocation) error {
	if !c.HasCoordinates() {
		return fmt.Errorf("%w: lat and lon are required", ErrInvalidInput)
	}
	if *c.Latitude < -90 || *c.Latitude > 90 || *c.Longitude < -180 || *c.Longitude > 180 {
		return fmt.Errorf("%w: coordinates out of range", ErrInvalidInput)
	}
	return nil
}
