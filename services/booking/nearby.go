package booking

import (
	"context"
	"fmt"
	"sort"

	professionalRepo "homepro/database/repository/professional"
	"homepro/models"
	"homepro/services/travel"
)

const (
	defaultNearbyRadiusKm = 50
	defaultNearbyLimit    = 20
)

// NearbyQuery is a customer's search for professionals who serve their location.
type NearbyQuery struct {
	Customer      models.CustomerLocation
	MaxDistanceKm float64
	ServiceType   string
}

// FindNearby returns professionals whose coverage includes the customer,
// nearest first, each annotated with distance and travel fee.
func (s *DefaultAvailabilityService) FindNearby(ctx context.Context, q NearbyQuery) ([]models.NearbyProfessional, error) {
	if err := validateCustomer(q.Customer); err != nil {
		return nil, err
	}
	if q.MaxDistanceKm < 0 {
		return nil, fmt.Errorf("%w: maxKm must not be negative", ErrInvalidInput)
	}
	if q.MaxDistanceKm == 0 {
		q.MaxDistanceKm = defaultNearbyRadiusKm
	}
	limit := s.Opts.NearbyLimit
	if limit <= 0 {
		limit = defaultNearbyLimit
	}

	candidates, err := s.Professionals.FindNear(ctx, professionalRepo.NearQuery{
		Latitude:      *q.Customer.Latitude,
		Longitude:     *q.Customer.Longitude,
		MaxDistanceKm: q.MaxDistanceKm,
		ServiceType:   q.ServiceType,
		Limit:         limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find nearby professionals: %w", err)
	}

	matches := []models.NearbyProfessional{}
	for i := range candidates {
		pro := &candidates[i]
		// The geo query only knows centers; radii are checked here.
		if !travel.IsWithinServiceArea(pro, &q.Customer) {
			continue
		}
		distance, _ := travel.NearestDistanceKm(pro, &q.Customer)
		matches = append(matches, models.NearbyProfessional{
			Professional: *pro,
			DistanceKm:   distance,
			TravelFee:    travel.CalculateBookingTravelFee(pro, &q.Customer, s.Opts.Fees),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].DistanceKm < matches[j].DistanceKm
	})
	return matches, nil
}
