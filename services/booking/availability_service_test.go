package booking

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homepro/database/repository"
	professionalRepo "homepro/database/repository/professional"
	"homepro/metrics"
	"homepro/models"
	"homepro/services/availability"
	"homepro/services/travel"
)

func ptr(f float64) *float64 { return &f }

var kmPerDegree = travel.EarthRadiusKm * math.Pi / 180

type fakeProfessionals struct {
	pros    map[string]*models.Professional
	near    []models.Professional
	nearQ   professionalRepo.NearQuery
	failGet error
}

func (f *fakeProfessionals) GetByID(_ context.Context, id string) (*models.Professional, error) {
	if f.failGet != nil {
		return nil, f.failGet
	}
	p, ok := f.pros[id]
	if !ok {
		return nil, professionalRepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfessionals) Create(context.Context, *models.Professional) error { return nil }

func (f *fakeProfessionals) Update(context.Context, string, professionalRepo.Patch) (*models.Professional, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeProfessionals) FindNear(_ context.Context, q professionalRepo.NearQuery) ([]models.Professional, error) {
	f.nearQ = q
	return f.near, nil
}

func (f *fakeProfessionals) EnsureIndexes(context.Context) error { return nil }

type fakeBookings struct {
	bookings []models.Booking
	asked    time.Time
	err      error
}

func (f *fakeBookings) GetByID(context.Context, string) (*models.Booking, error) { return nil, nil }
func (f *fakeBookings) Create(context.Context, *models.Booking) error            { return nil }
func (f *fakeBookings) EnsureIndexes(context.Context) error                      { return nil }

func (f *fakeBookings) ListActiveForDate(_ context.Context, professionalID string, date time.Time) ([]models.Booking, error) {
	f.asked = date
	if f.err != nil {
		return nil, f.err
	}
	var out []models.Booking
	for _, b := range f.bookings {
		if b.ProfessionalID != professionalID || !b.IsActive() {
			continue
		}
		y1, m1, d1 := repository.CalendarDate(b.SelectedDate, date.Location()).Date()
		y2, m2, d2 := date.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			out = append(out, b)
		}
	}
	return out, nil
}

func (f *fakeBookings) UpdatePaymentState(context.Context, models.PaymentUpdate) (*models.Booking, error) {
	return nil, nil
}

func morningPro() *models.Professional {
	return &models.Professional{
		ID:       "pro-1",
		Timezone: "Africa/Nairobi",
		WeeklySchedule: models.WeeklySchedule{
			"monday": {Enabled: true, StartTime: "09:00", EndTime: "11:00"},
		},
		Latitude:        ptr(0),
		Longitude:       ptr(0),
		ServiceRadiusKm: 10,
	}
}

func newService(pros *fakeProfessionals, bookings *fakeBookings) *DefaultAvailabilityService {
	return &DefaultAvailabilityService{
		Professionals: pros,
		Bookings:      bookings,
		Metrics:       metrics.New("test", prometheus.NewRegistry()),
		Opts: Options{
			DefaultLocation:     time.UTC,
			SlotIntervalMinutes: 30,
			Fees:                travel.DefaultFeeOptions(),
			Currency:            "usd",
		},
	}
}

func TestGetDaySlots(t *testing.T) {
	pros := &fakeProfessionals{pros: map[string]*models.Professional{"pro-1": morningPro()}}
	bookings := &fakeBookings{bookings: []models.Booking{
		// Stored as a UTC calendar date; read as 10:00 Nairobi time.
		{ProfessionalID: "pro-1", SelectedDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), SelectedTime: "10:00", Duration: 30, Status: models.BookingConfirmed},
		{ProfessionalID: "pro-1", SelectedDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), SelectedTime: "09:00", Duration: 30, Status: models.BookingCancelled},
	}}
	svc := newService(pros, bookings)

	got, err := svc.GetDaySlots(context.Background(), "pro-1", "2024-06-03", 30, 0)
	require.NoError(t, err)

	assert.Equal(t, "2024-06-03", got.Date)
	assert.Equal(t, 30, got.IntervalMinutes)
	assert.Equal(t, []models.TimeSlotOption{
		{Value: "09:00", Label: "9:00 AM"},
		{Value: "09:30", Label: "9:30 AM"},
		{Value: "10:30", Label: "10:30 AM"},
	}, got.Slots)
	assert.Equal(t, "Africa/Nairobi", bookings.asked.Location().String())
}

func TestGetDaySlots_Validation(t *testing.T) {
	svc := newService(&fakeProfessionals{pros: map[string]*models.Professional{"pro-1": morningPro()}}, &fakeBookings{})
	ctx := context.Background()

	_, err := svc.GetDaySlots(ctx, "pro-1", "03/06/2024", 30, 30)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.GetDaySlots(ctx, "pro-1", "2024-06-03", 0, 30)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.GetDaySlots(ctx, "pro-1", "2024-06-03", 30, -15)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.GetDaySlots(ctx, "missing", "2024-06-03", 30, 30)
	assert.ErrorIs(t, err, ErrProfessionalNotFound)
	_, err = svc.GetDaySlots(ctx, "", "2024-06-03", 30, 30)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestGetDaySlots_RepositoryFailure(t *testing.T) {
	boom := errors.New("connection reset")

	svc := newService(&fakeProfessionals{failGet: boom}, &fakeBookings{})
	_, err := svc.GetDaySlots(context.Background(), "pro-1", "2024-06-03", 30, 30)
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrProfessionalNotFound)

	svc = newService(&fakeProfessionals{pros: map[string]*models.Professional{"pro-1": morningPro()}}, &fakeBookings{err: boom})
	_, err = svc.GetDaySlots(context.Background(), "pro-1", "2024-06-03", 30, 30)
	assert.ErrorIs(t, err, boom)
}

func TestCheckSlot(t *testing.T) {
	pro := morningPro()
	pro.BlockedDates = []time.Time{time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)}
	pros := &fakeProfessionals{pros: map[string]*models.Professional{"pro-1": pro}}
	bookings := &fakeBookings{bookings: []models.Booking{
		{ProfessionalID: "pro-1", SelectedDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), SelectedTime: "10:00", Duration: 60, Status: models.BookingPending},
	}}
	svc := newService(pros, bookings)
	ctx := context.Background()

	tests := []struct {
		date, clock string
		want        availability.Result
	}{
		{"2024-06-03", "09:00", availability.Result{Available: true}},
		{"2024-06-03", "10:30", availability.Result{Reason: availability.ReasonConflict}},
		{"2024-06-03", "11:00", availability.Result{Reason: availability.ReasonOutsideWorkingHours}},
		{"2024-06-10", "09:00", availability.Result{Reason: availability.ReasonBlocked}},
	}
	for _, tt := range tests {
		got, err := svc.CheckSlot(ctx, "pro-1", tt.date, tt.clock, 30)
		require.NoError(t, err)
		assert.Equal(t, tt.want, *got, "%s %s", tt.date, tt.clock)
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.AvailabilityDecisions.WithLabelValues("available")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.Metrics.AvailabilityDecisions.WithLabelValues("blocked")))

	_, err := svc.CheckSlot(ctx, "pro-1", "2024-06-03", "9am", 30)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCheckSlot_BookingStoredAsLocalMidnightInstant(t *testing.T) {
	nairobi, err := time.LoadLocation("Africa/Nairobi")
	require.NoError(t, err)
	localMidnight := time.Date(2024, 6, 3, 0, 0, 0, 0, nairobi).UTC()
	require.Equal(t, time.Date(2024, 6, 2, 21, 0, 0, 0, time.UTC), localMidnight)

	pros := &fakeProfessionals{pros: map[string]*models.Professional{"pro-1": morningPro()}}
	bookings := &fakeBookings{bookings: []models.Booking{
		{ProfessionalID: "pro-1", SelectedDate: localMidnight, SelectedTime: "10:00", Duration: 60, Status: models.BookingConfirmed},
	}}
	svc := newService(pros, bookings)
	ctx := context.Background()

	got, err := svc.CheckSlot(ctx, "pro-1", "2024-06-03", "10:00", 60)
	require.NoError(t, err)
	assert.Equal(t, availability.Result{Reason: availability.ReasonConflict}, *got)

	got, err = svc.CheckSlot(ctx, "pro-1", "2024-06-03", "09:00", 30)
	require.NoError(t, err)
	assert.True(t, got.Available)

	slots, err := svc.GetDaySlots(ctx, "pro-1", "2024-06-03", 30, 0)
	require.NoError(t, err)
	assert.Equal(t, []models.TimeSlotOption{
		{Value: "09:00", Label: "9:00 AM"},
		{Value: "09:30", Label: "9:30 AM"},
	}, slots.Slots)
}

func TestQuoteTravelFee(t *testing.T) {
	svc := newService(&fakeProfessionals{pros: map[string]*models.Professional{"pro-1": morningPro()}}, &fakeBookings{})

	quote, err := svc.QuoteTravelFee(context.Background(), "pro-1", models.CustomerLocation{Latitude: ptr(4 / kmPerDegree), Longitude: ptr(0)})
	require.NoError(t, err)
	assert.True(t, quote.WithinServiceArea)
	assert.InDelta(t, 4, quote.DistanceKm, 1e-6)
	assert.InDelta(t, 7, quote.Fee, 1e-6)
	assert.Equal(t, "usd", quote.Currency)

	far, err := svc.QuoteTravelFee(context.Background(), "pro-1", models.CustomerLocation{Latitude: ptr(1), Longitude: ptr(0)})
	require.NoError(t, err)
	assert.False(t, far.WithinServiceArea)
	assert.Equal(t, 25.0, far.Fee)

	_, err = svc.QuoteTravelFee(context.Background(), "pro-1", models.CustomerLocation{Latitude: ptr(91), Longitude: ptr(0)})
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = svc.QuoteTravelFee(context.Background(), "pro-1", models.CustomerLocation{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestFindNearby(t *testing.T) {
	near := morningPro()
	near.ID = "near"
	near.Latitude = ptr(2 / kmPerDegree)

	nearer := morningPro()
	nearer.ID = "nearer"
	nearer.ServiceAreas = []models.ServiceArea{
		{Latitude: ptr(20 / kmPerDegree), Longitude: ptr(0), ServiceRadiusKm: 5},
		{Latitude: ptr(-1 / kmPerDegree), Longitude: ptr(0), ServiceRadiusKm: 5},
	}

	outOfRange := morningPro()
	outOfRange.ID = "out-of-range"
	outOfRange.Latitude = ptr(8 / kmPerDegree)
	outOfRange.ServiceRadiusKm = 3

	pros := &fakeProfessionals{near: []models.Professional{*near, *outOfRange, *nearer}}
	svc := newService(pros, &fakeBookings{})

	got, err := svc.FindNearby(context.Background(), NearbyQuery{
		Customer:    models.CustomerLocation{Latitude: ptr(0), Longitude: ptr(0)},
		ServiceType: "plumbing",
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "nearer", got[0].Professional.ID)
	assert.InDelta(t, 1, got[0].DistanceKm, 1e-6)
	assert.InDelta(t, 5.5, got[0].TravelFee, 1e-6)
	assert.Equal(t, "near", got[1].Professional.ID)

	assert.Equal(t, float64(defaultNearbyRadiusKm), pros.nearQ.MaxDistanceKm)
	assert.Equal(t, int64(defaultNearbyLimit), pros.nearQ.Limit)
	assert.Equal(t, "plumbing", pros.nearQ.ServiceType)

	_, err = svc.FindNearby(context.Background(), NearbyQuery{Customer: models.CustomerLocation{Latitude: ptr(0), Longitude: ptr(0)}, MaxDistanceKm: -1})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestAnchorBookings(t *testing.T) {
	nairobi, err := time.LoadLocation("Africa/Nairobi")
	require.NoError(t, err)

	in := []models.Booking{
		{SelectedDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC)},
		{},
		{SelectedDate: time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), Status: models.BookingCancelled},
		{SelectedDate: time.Date(2024, 6, 2, 21, 0, 0, 0, time.UTC)},
	}
	out := anchorBookings(in, nairobi)

	require.Len(t, out, 3)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, nairobi), out[0].SelectedDate)
	assert.True(t, out[1].SelectedDate.IsZero())
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, nairobi), out[2].SelectedDate)
	assert.Equal(t, time.UTC, in[0].SelectedDate.Location(), "input is not mutated")
}
