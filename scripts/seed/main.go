package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"homepro/config"
	"homepro/database"
	bookingRepo "homepro/database/repository/booking"
	professionalRepo "homepro/database/repository/professional"
	"homepro/models"
	"homepro/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
)

func main() {
	config.LoadConfig()
	database.InitDB()
	db := database.DB()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, name := range []string{"professionals", "bookings"} {
		if _, err := db.Collection(name).DeleteMany(ctx, bson.M{}); err != nil {
			log.Fatalf("Failed to clear %s: %v", name, err)
		}
	}

	professionals := professionalRepo.NewMongoProfessionalRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	if err := professionals.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create professional indexes: %v", err)
	}
	if err := bookings.EnsureIndexes(ctx); err != nil {
		log.Fatalf("Failed to create booking indexes: %v", err)
	}

	// Fixed customer point for simulation (Nairobi CBD).
	centerLat, centerLon := -1.2864, 36.8172
	serviceTypes := []string{"cleaning", "plumbing", "hair"}
	perService := 5

	weekdays := models.DaySchedule{Enabled: true, StartTime: "09:00", EndTime: "17:00"}
	schedule := models.WeeklySchedule{
		"monday": weekdays, "tuesday": weekdays, "wednesday": weekdays,
		"thursday": weekdays, "friday": weekdays,
		"saturday": {Enabled: true, StartTime: "10:00", EndTime: "14:00"},
		"sunday":   {Enabled: false},
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	today := time.Now().UTC().Truncate(24 * time.Hour)
	counter := 1
	for _, service := range serviceTypes {
		for i := 0; i < perService; i++ {
			// Spread professionals between 0.5 and 12 km from the center.
			distanceKm := 0.5 + rng.Float64()*11.5
			angle := rng.Float64() * 2 * math.Pi
			lat := centerLat + distanceKm/111.0*math.Sin(angle)
			lon := centerLon + distanceKm/111.0*math.Cos(angle)

			pro := &models.Professional{
				ID:                fmt.Sprintf("pro-%d", counter),
				DisplayName:       fmt.Sprintf("%s professional %d", service, counter),
				ServiceType:       service,
				Timezone:          "Africa/Nairobi",
				WeeklySchedule:    schedule,
				BufferTimeMinutes: 15 * (counter % 3),
				BlockedDates:      []time.Time{today.AddDate(0, 0, 7)},
				Latitude:          &lat,
				Longitude:         &lon,
				ServiceRadiusKm:   float64(10 + counter%3*5),
				Verified:          true,
			}
			if counter%4 == 0 {
				areaLat, areaLon := lat+0.05, lon-0.05
				pro.ServiceAreas = []models.ServiceArea{
					{Label: "Home", Latitude: &lat, Longitude: &lon, ServiceRadiusKm: 8},
					{Label: "Second base", Latitude: &areaLat, Longitude: &areaLon, ServiceRadiusKm: 5},
				}
			}
			if err := professionals.Create(ctx, pro); err != nil {
				log.Fatalf("Failed to insert %s: %v", pro.ID, err)
			}

			booking := &models.Booking{
				ID:             uuid.New().String(),
				ProfessionalID: pro.ID,
				CustomerID:     "customer-1",
				SelectedDate:   today.AddDate(0, 0, 1),
				SelectedTime:   "11:00",
				Duration:       60,
				Amount:         40,
				Currency:       config.AppConfig.TravelCurrency,
			}
			if err := bookings.Create(ctx, booking); err != nil {
				log.Fatalf("Failed to insert booking for %s: %v", pro.ID, err)
			}
			counter++
		}
	}
	fmt.Printf("Inserted %d professionals with one booking each\n", counter-1)

	if token, err := utils.GenerateToken("pro-1", 24*time.Hour); err == nil {
		fmt.Printf("Token for pro-1: %s\n", token)
	}
}
