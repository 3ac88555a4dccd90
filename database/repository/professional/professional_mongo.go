package professionalRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homepro/config"
	"homepro/database"
	"homepro/database/repository"
	"homepro/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoProfessionalRepo implements ProfessionalRepository using MongoDB.
type MongoProfessionalRepo struct {
	coll *mongo.Collection
	loc  *time.Location
}

// NewMongoProfessionalRepo creates a ProfessionalRepository over the "professionals" collection.
func NewMongoProfessionalRepo() *MongoProfessionalRepo {
	return &MongoProfessionalRepo{
		coll: database.DB().Collection("professionals"),
		loc:  config.DefaultLocation(),
	}
}

func (r *MongoProfessionalRepo) GetByID(ctx context.Context, id string) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc professionalDocument
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch professional with id %s: %w", id, err)
	}
	return doc.toModel(r.loc), nil
}

func (r *MongoProfessionalRepo) Create(ctx context.Context, pro *models.Professional) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if pro.CreatedAt.IsZero() {
		pro.CreatedAt = now
	}
	pro.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, toDocument(pro)); err != nil {
		return fmt.Errorf("failed to create professional: %w", err)
	}
	return nil
}

func (r *MongoProfessionalRepo) Update(ctx context.Context, id string, patch Patch) (*models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc professionalDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": id}, patchUpdate(patch, time.Now().UTC()), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update professional %s: %w", id, err)
	}
	return doc.toModel(r.loc), nil
}

func (r *MongoProfessionalRepo) FindNear(ctx context.Context, q NearQuery) ([]models.Professional, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, nearFilter(q), options.Find().SetLimit(q.Limit))
	if err != nil {
		return nil, fmt.Errorf("near query failed: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []professionalDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode professionals: %w", err)
	}
	pros := make([]models.Professional, 0, len(docs))
	for i := range docs {
		pros = append(pros, *docs[i].toModel(r.loc))
	}
	return pros, nil
}

// nearFilter matches coverage centers within MaxDistanceKm, nearest first.
// $nearSphere sorts by distance itself, so the query carries no sort.
func nearFilter(q NearQuery) bson.M {
	near := bson.M{
		"$geometry": models.GeoPoint{Type: "Point", Coordinates: []float64{q.Longitude, q.Latitude}},
	}
	if q.MaxDistanceKm > 0 {
		near["$maxDistance"] = q.MaxDistanceKm * 1000
	}
	filter := bson.M{"coverage": bson.M{"$nearSphere": near}}
	if q.ServiceType != "" {
		filter["serviceType"] = q.ServiceType
	}
	return filter
}

func patchUpdate(patch Patch, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	unset := bson.M{}

	if patch.WeeklySchedule != nil {
		set["weeklySchedule"] = scheduleDocument(patch.WeeklySchedule)
	}
	if patch.BufferTimeMinutes != nil {
		set["bufferTimeMinutes"] = *patch.BufferTimeMinutes
	}
	if patch.VacationMode != nil {
		set["vacationMode"] = *patch.VacationMode
		setOrUnset(set, unset, "vacationStartDate", repository.FlexibleDatePtr(patch.VacationStartDate))
		setOrUnset(set, unset, "vacationEndDate", repository.FlexibleDatePtr(patch.VacationEndDate))
	}
	if patch.BlockedDates != nil {
		set["blockedDates"] = repository.FlexibleDates(*patch.BlockedDates)
	}
	if c := patch.Coverage; c != nil {
		shape := &models.Professional{Latitude: c.Latitude, Longitude: c.Longitude, ServiceAreas: c.ServiceAreas}
		setOrUnset(set, unset, "lat", c.Latitude)
		setOrUnset(set, unset, "lon", c.Longitude)
		set["serviceRadius"] = c.ServiceRadiusKm
		areas := areaDocuments(c.ServiceAreas)
		if areas == nil {
			areas = []serviceAreaDocument{}
		}
		set["serviceAreas"] = areas
		setOrUnset(set, unset, "coverage", coverageOf(shape))
	}

	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	return update
}

func setOrUnset[T any](set, unset bson.M, key string, v *T) {
	if v == nil {
		unset[key] = ""
		return
	}
	set[key] = v
}
