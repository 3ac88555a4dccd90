package professionalRepo

import (
	"context"
	"errors"
	"time"

	"homepro/models"
)

// ErrNotFound is returned when no professional matches the id.
var ErrNotFound = errors.New("professional not found")

// Patch lists the fields a professional may change about themselves.
// Nil fields are left untouched.
type Patch struct {
	WeeklySchedule    models.WeeklySchedule
	BufferTimeMinutes *int

	VacationMode      *bool
	VacationStartDate *time.Time
	VacationEndDate   *time.Time

	BlockedDates *[]time.Time

	// Coverage is replaced as a whole when set.
	Coverage *Coverage
}

// Coverage is a professional's single location plus optional service areas.
type Coverage struct {
	Latitude        *float64
	Longitude       *float64
	ServiceRadiusKm float64
	ServiceAreas    []models.ServiceArea
}

// NearQuery selects professionals whose coverage centers are close to a point.
type NearQuery struct {
	Latitude      float64
	Longitude     float64
	MaxDistanceKm float64
	ServiceType   string
	Limit         int64
}

// ProfessionalRepository defines methods for professional data access.
type ProfessionalRepository interface {
	// GetByID retrieves a professional by its unique ID.
	GetByID(ctx context.Context, id string) (*models.Professional, error)
	// Create inserts a new professional record.
	Create(ctx context.Context, pro *models.Professional) error
	// Update applies a patch and returns the stored result.
	Update(ctx context.Context, id string, patch Patch) (*models.Professional, error)
	// FindNear returns professionals ordered by distance to the nearest coverage center.
	FindNear(ctx context.Context, q NearQuery) ([]models.Professional, error)
	// EnsureIndexes creates the collection indexes.
	EnsureIndexes(ctx context.Context) error
}
