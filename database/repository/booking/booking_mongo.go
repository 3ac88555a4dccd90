package bookingRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"homepro/database"
	"homepro/database/repository"
	"homepro/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoBookingRepo implements BookingRepository using MongoDB.
type MongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo creates a BookingRepository over the "bookings" collection.
func NewMongoBookingRepo() *MongoBookingRepo {
	return &MongoBookingRepo{coll: database.DB().Collection("bookings")}
}

func (r *MongoBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var doc bookingDocument
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	b := doc.toModel()
	return &b, nil
}

func (r *MongoBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	now := time.Now().UTC()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}
	booking.UpdatedAt = now
	if booking.Status == "" {
		booking.Status = models.BookingPending
	}
	if booking.PaymentStatus == "" {
		booking.PaymentStatus = models.PaymentPending
	}
	if _, err := r.coll.InsertOne(ctx, toDocument(booking)); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *MongoBookingRepo) ListActiveForDate(ctx context.Context, professionalID string, date time.Time) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, activeForDateFilter(professionalID, date))
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for %s: %w", professionalID, err)
	}
	defer cursor.Close(ctx)

	var bookings []models.Booking
	for cursor.Next(ctx) {
		var doc bookingDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode booking: %w", err)
		}
		bookings = append(bookings, doc.toModel())
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("booking cursor failed: %w", err)
	}
	return bookings, nil
}

// activeForDateFilter matches stored calendar dates, instants inside the local
// day of date's location, and legacy "YYYY-MM-DD" strings.
func activeForDateFilter(professionalID string, date time.Time) bson.M {
	day := calendarDateUTC(date)
	y, m, d := date.Date()
	localMidnight := time.Date(y, m, d, 0, 0, 0, 0, date.Location())
	inactive := make([]string, 0, len(models.InactiveBookingStatuses))
	for _, s := range models.InactiveBookingStatuses {
		inactive = append(inactive, string(s))
	}
	return bson.M{
		"professionalId": professionalID,
		"status":         bson.M{"$nin": inactive},
		"$or": bson.A{
			bson.M{"selectedDate": day},
			bson.M{"selectedDate": bson.M{"$gte": localMidnight.UTC(), "$lt": localMidnight.AddDate(0, 0, 1).UTC()}},
			bson.M{"selectedDate": day.Format(repository.DateLayout)},
		},
	}
}

func (r *MongoBookingRepo) UpdatePaymentState(ctx context.Context, update models.PaymentUpdate) (*models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc bookingDocument
	err := r.coll.FindOneAndUpdate(ctx, bson.M{"id": update.BookingID}, paymentUpdate(update, time.Now().UTC()), opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update payment for booking %s: %w", update.BookingID, err)
	}

	// A paid booking that was still waiting on payment becomes confirmed.
	if update.Status == models.PaymentPaid && doc.Status == string(models.BookingPending) {
		filter := bson.M{"id": update.BookingID, "status": string(models.BookingPending)}
		set := bson.M{"$set": bson.M{"status": string(models.BookingConfirmed)}}
		res, err := r.coll.UpdateOne(ctx, filter, set)
		if err != nil {
			return nil, fmt.Errorf("failed to confirm booking %s: %w", update.BookingID, err)
		}
		if res.ModifiedCount > 0 {
			doc.Status = string(models.BookingConfirmed)
		}
	}

	b := doc.toModel()
	return &b, nil
}

func paymentUpdate(update models.PaymentUpdate, now time.Time) bson.M {
	set := bson.M{
		"paymentStatus": string(update.Status),
		"updatedAt":     now,
	}
	if update.PaymentIntentID != "" {
		set["paymentIntentId"] = update.PaymentIntentID
	}
	if update.Currency != "" {
		set["currency"] = update.Currency
	}
	if update.Status == models.PaymentPaid {
		paidAt := update.OccurredAt
		if paidAt.IsZero() {
			paidAt = now
		}
		set["paidAt"] = paidAt.UTC()
	}
	return bson.M{"$set": set}
}
