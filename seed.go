package main

import (
	"log"
	"time"

	"github.com/shopspring/decimal"

	"kampung-service-server/clock"
	"kampung-service-server/models"
	"kampung-service-server/store"
)

// Demo data for the prototype. The catalog deliberately includes one entry
// per unavailable state so every availability dialog can be exercised.

func seedServices() []models.Service {
	return []models.Service{
		{
			ID:          "s1",
			Type:        models.ServiceTypeFoodDelivery,
			Title:       "Food Delivery",
			Description: "Hot meals from the kampung warung delivered to your door",
			Price:       decimal.NewFromFloat(5.00),
			ImageURL:    "/images/services/food-delivery.jpg",
			Status:      models.ServiceStatusActive,
		},
		{
			ID:          "s2",
			Type:        models.ServiceTypeHouseCleaning,
			Title:       "House Cleaning",
			Description: "Full house cleaning by a trusted local helper",
			Price:       decimal.NewFromFloat(25.00),
			ImageURL:    "/images/services/house-cleaning.jpg",
			Status:      models.ServiceStatusInactive,
		},
		{
			ID:          "s3",
			Type:        models.ServiceTypeShopping,
			Title:       "Grocery Shopping",
			Description: "Daily necessities picked up from the pasar for you",
			Price:       decimal.NewFromFloat(8.00),
			ImageURL:    "/images/services/grocery-shopping.jpg",
			Status:      models.ServiceStatusDbError,
		},
		{
			ID:          "s4",
			Type:        models.ServiceTypeClinicEscort,
			Title:       "Clinic Escort",
			Description: "Accompanied transport to the nearest klinik kesihatan",
			Price:       decimal.NewFromFloat(15.00),
			ImageURL:    "/images/services/clinic-escort.jpg",
			Status:      models.ServiceStatusDeleted,
		},
	}
}

func seedWorkers() []models.Worker {
	return []models.Worker{
		{
			ID:     "w1",
			Name:   "Ahmad bin Ismail",
			Rating: 4.8,
			Status: models.WorkerStatusAvailable,
			Photo:  "/images/workers/ahmad.jpg",
		},
		{
			ID:     "w2",
			Name:   "Siti Rohani",
			Rating: 4.9,
			Status: models.WorkerStatusBusy,
			Photo:  "/images/workers/siti.jpg",
		},
	}
}

func seedUsers() []models.User {
	return []models.User{
		{
			ID:       "user-001",
			FullName: "John Doe",
			Village:  "Kampung Losong",
		},
	}
}

// seedBookings inserts the pre-existing bookings the demo opens with: one
// trip already underway and one finished job in the history. Returns the
// in-progress booking so main can hand it to the tracking job.
func seedBookings(bookings *store.BookingStore, clk clock.Clock) models.Booking {
	now := clk.Now()
	w1, w2 := "w1", "w2"

	inProgress := models.Booking{
		ID:         "BK-8888",
		ServiceID:  "s1",
		UserID:     "user-001",
		WorkerID:   &w1,
		Status:     models.BookingStatusInProgress,
		Date:       now.Format("2006-01-02"),
		Time:       "12:30",
		FullName:   "John Doe",
		Phone:      "012-3456789",
		Address:    "No. 12, Lorong Masjid, Kampung Losong",
		TotalPrice: decimal.NewFromFloat(5.00),
		CreatedAt:  now.Add(-10 * time.Minute),
		UpdatedAt:  now.Add(-2 * time.Minute),
	}

	completed := models.Booking{
		ID:         "BK-2024",
		ServiceID:  "s2",
		UserID:     "user-001",
		WorkerID:   &w2,
		Status:     models.BookingStatusCompleted,
		Date:       now.AddDate(0, 0, -3).Format("2006-01-02"),
		Time:       "09:00",
		FullName:   "John Doe",
		Phone:      "012-3456789",
		Address:    "No. 12, Lorong Masjid, Kampung Losong",
		TotalPrice: decimal.NewFromFloat(25.00),
		CreatedAt:  now.AddDate(0, 0, -3),
		UpdatedAt:  now.AddDate(0, 0, -3).Add(2 * time.Hour),
	}

	// insertion order matters: the store lists most recent first
	for _, b := range []models.Booking{completed, inProgress} {
		if _, err := bookings.Insert(b); err != nil {
			log.Printf("⚠️ Failed to seed booking %s: %v", b.ID, err)
		}
	}

	log.Printf("🌱 Seeded %d services, %d workers, 2 bookings", len(seedServices()), len(seedWorkers()))
	return inProgress
}
