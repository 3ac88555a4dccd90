package travel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homepro/models"
)

func ptr(f float64) *float64 { return &f }

// kmPerDegreeLat is the haversine length of one degree of latitude.
var kmPerDegreeLat = EarthRadiusKm * math.Pi / 180

func customerAt(lat, lon float64) *models.CustomerLocation {
	return &models.CustomerLocation{Latitude: ptr(lat), Longitude: ptr(lon)}
}

func TestHaversineKm(t *testing.T) {
	assert.Equal(t, 0.0, HaversineKm(-1.2921, 36.8219, -1.2921, 36.8219))
	assert.InDelta(t, kmPerDegreeLat, HaversineKm(0, 0, 1, 0), 1e-9)
	// Nairobi to Mombasa, roughly 440 km as the crow flies.
	assert.InDelta(t, 440, HaversineKm(-1.2921, 36.8219, -4.0435, 39.6682), 10)
	assert.InDelta(t, HaversineKm(10, 20, 30, 40), HaversineKm(30, 40, 10, 20), 1e-9)
}

func TestCalculateTravelFee(t *testing.T) {
	opts := DefaultFeeOptions()

	tests := []struct {
		name     string
		distance float64
		want     float64
	}{
		{"zero distance", 0, 0},
		{"negative distance", -3, 0},
		{"not a number", math.NaN(), 0},
		{"linear", 10, 10},
		{"at the cap", 40, 25},
		{"capped", 100, 25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateTravelFee(tt.distance, opts), 1e-9)
		})
	}
}

func TestCalculateTravelFee_Monotonic(t *testing.T) {
	opts := DefaultFeeOptions()
	prev := 0.0
	for d := 0.0; d <= 80; d += 0.5 {
		fee := CalculateTravelFee(d, opts)
		assert.GreaterOrEqual(t, fee, prev)
		assert.LessOrEqual(t, fee, opts.MaxFee)
		prev = fee
	}
}

func TestCalculateMultiAreaTravelFee_NearestArea(t *testing.T) {
	// The customer sits 10 km from A and 3 km from B. A has the larger radius.
	pro := &models.Professional{
		ServiceAreas: []models.ServiceArea{
			{Label: "A", Latitude: ptr(10 / kmPerDegreeLat), Longitude: ptr(0), ServiceRadiusKm: 50},
			{Label: "B", Latitude: ptr(-3 / kmPerDegreeLat), Longitude: ptr(0), ServiceRadiusKm: 1},
		},
	}
	customer := customerAt(0, 0)
	opts := DefaultFeeOptions()

	want := CalculateTravelFee(3, opts)
	assert.InDelta(t, 6.5, want, 1e-9)
	assert.InDelta(t, want, CalculateMultiAreaTravelFee(pro, customer, opts), 1e-6)
	assert.InDelta(t, want, CalculateBookingTravelFee(pro, customer, opts), 1e-6)

	distance, ok := NearestDistanceKm(pro, customer)
	require.True(t, ok)
	assert.InDelta(t, 3, distance, 1e-6)
}

func TestCalculateMultiAreaTravelFee_NoValidArea(t *testing.T) {
	pro := &models.Professional{
		ServiceAreas: []models.ServiceArea{{Label: "unset"}, {Latitude: ptr(1)}},
	}
	assert.Zero(t, CalculateMultiAreaTravelFee(pro, customerAt(0, 0), DefaultFeeOptions()))
	_, ok := NearestDistanceKm(pro, customerAt(0, 0))
	assert.False(t, ok)
}

func TestCalculateBookingTravelFee_SingleLocation(t *testing.T) {
	pro := &models.Professional{Latitude: ptr(0), Longitude: ptr(0), ServiceRadiusKm: 5}
	opts := DefaultFeeOptions()

	assert.InDelta(t, 7.5, CalculateBookingTravelFee(pro, customerAt(5/kmPerDegreeLat, 0), opts), 1e-6)
	assert.Zero(t, CalculateBookingTravelFee(pro, &models.CustomerLocation{Latitude: ptr(1)}, opts))
	assert.Zero(t, CalculateBookingTravelFee(pro, nil, opts))
	assert.Zero(t, CalculateBookingTravelFee(&models.Professional{}, customerAt(1, 1), opts))
}

func TestIsWithinServiceArea(t *testing.T) {
	single := &models.Professional{Latitude: ptr(0), Longitude: ptr(0), ServiceRadiusKm: 5}
	defaulted := &models.Professional{Latitude: ptr(0), Longitude: ptr(0)}
	multi := &models.Professional{
		// Single location is ignored once areas are present.
		Latitude:  ptr(0),
		Longitude: ptr(0),
		ServiceAreas: []models.ServiceArea{
			{Latitude: ptr(1), Longitude: ptr(0), ServiceRadiusKm: 2},
			{Latitude: ptr(2), Longitude: ptr(0)},
		},
	}

	tests := []struct {
		name     string
		pro      *models.Professional
		customer *models.CustomerLocation
		want     bool
	}{
		{"inside single radius", single, customerAt(4/kmPerDegreeLat, 0), true},
		{"outside single radius", single, customerAt(6/kmPerDegreeLat, 0), false},
		{"default radius", defaulted, customerAt(24/kmPerDegreeLat, 0), true},
		{"beyond default radius", defaulted, customerAt(26/kmPerDegreeLat, 0), false},
		{"first area", multi, customerAt(1, 0), true},
		{"second area with default radius", multi, customerAt(2+20/kmPerDegreeLat, 0), true},
		{"single location ignored", multi, customerAt(0, 0), false},
		{"missing customer coordinates", single, &models.CustomerLocation{}, false},
		{"nil customer", single, nil, false},
		{"no location at all", &models.Professional{}, customerAt(0, 0), false},
		{"nil professional", nil, customerAt(0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWithinServiceArea(tt.pro, tt.customer))
		})
	}
}
