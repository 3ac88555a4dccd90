package travel

import (
	"math"

	"homepro/models"
)

// FeeOptions parameterises the capped linear travel fee.
type FeeOptions struct {
	BaseFee   float64 `json:"baseFee"`
	PerKmRate float64 `json:"perKmRate"`
	MaxFee    float64 `json:"maxFee"`
}

// DefaultFeeOptions returns base 5, 0.5 per km, capped at 25.
func DefaultFeeOptions() FeeOptions {
	return FeeOptions{BaseFee: 5, PerKmRate: 0.5, MaxFee: 25}
}

// CalculateTravelFee returns min(base + distance*rate, max), or 0 when the
// distance is not positive.
func CalculateTravelFee(distanceKm float64, opts FeeOptions) float64 {
	if math.IsNaN(distanceKm) || distanceKm <= 0 {
		return 0
	}
	return math.Min(opts.BaseFee+distanceKm*opts.PerKmRate, opts.MaxFee)
}

// IsWithinServiceArea reports whether the customer falls inside any of the
// professional's coverage discs. A non-empty ServiceAreas list replaces the
// single location.
func IsWithinServiceArea(pro *models.Professional, customer *models.CustomerLocation) bool {
	if pro == nil || !customer.HasCoordinates() {
		return false
	}
	lat, lon := *customer.Latitude, *customer.Longitude

	if pro.HasServiceAreas() {
		for _, area := range pro.ServiceAreas {
			if !area.HasCoordinates() {
				continue
			}
			if HaversineKm(*area.Latitude, *area.Longitude, lat, lon) <= radiusOrDefault(area.ServiceRadiusKm) {
				return true
			}
		}
		return false
	}

	if !pro.HasLocation() {
		return false
	}
	return HaversineKm(*pro.Latitude, *pro.Longitude, lat, lon) <= radiusOrDefault(pro.ServiceRadiusKm)
}

// CalculateBookingTravelFee prices the trip to the customer, using the
// multi-area rule when the professional has service areas.
func CalculateBookingTravelFee(pro *models.Professional, customer *models.CustomerLocation, opts FeeOptions) float64 {
	if pro == nil || !customer.HasCoordinates() {
		return 0
	}
	if pro.HasServiceAreas() {
		return CalculateMultiAreaTravelFee(pro, customer, opts)
	}
	if !pro.HasLocation() {
		return 0
	}
	return CalculateTravelFee(HaversineKm(*pro.Latitude, *pro.Longitude, *customer.Latitude, *customer.Longitude), opts)
}

// CalculateMultiAreaTravelFee prices the trip from the nearest area with valid
// coordinates. Area radii play no part in choosing it.
func CalculateMultiAreaTravelFee(pro *models.Professional, customer *models.CustomerLocation, opts FeeOptions) float64 {
	if pro == nil || !customer.HasCoordinates() {
		return 0
	}
	distance, ok := nearestAreaKm(pro.ServiceAreas, *customer.Latitude, *customer.Longitude)
	if !ok {
		return 0
	}
	return CalculateTravelFee(distance, opts)
}

// NearestDistanceKm is the distance the fee is computed from: the nearest
// service area, or the single location when there are no areas.
func NearestDistanceKm(pro *models.Professional, customer *models.CustomerLocation) (float64, bool) {
	if pro == nil || !customer.HasCoordinates() {
		return 0, false
	}
	lat, lon := *customer.Latitude, *customer.Longitude
	if pro.HasServiceAreas() {
		return nearestAreaKm(pro.ServiceAreas, lat, lon)
	}
	if !pro.HasLocation() {
		return 0, false
	}
	return HaversineKm(*pro.Latitude, *pro.Longitude, lat, lon), true
}

func nearestAreaKm(areas []models.ServiceArea, lat, lon float64) (float64, bool) {
	best, found := math.Inf(1), false
	for _, area := range areas {
		if !area.HasCoordinates() {
			continue
		}
		if d := HaversineKm(*area.Latitude, *area.Longitude, lat, lon); d < best {
			best, found = d, true
		}
	}
	return best, found
}
