package jobs

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"kampung-service-server/clock"
	"kampung-service-server/config"
	"kampung-service-server/engine"
	"kampung-service-server/models"
	"kampung-service-server/store"
	ws "kampung-service-server/websocket"
)

func newTestJob() (*TrackingJob, *engine.Engine, *clock.Fake) {
	clk := clock.NewFake()
	catalog := store.NewCatalog([]models.Service{
		{ID: "s1", Title: "Food Delivery", Price: decimal.NewFromFloat(5.00), Status: models.ServiceStatusActive},
	})

	n := 0
	bookings := store.NewBookingStore(func() string {
		n++
		return fmt.Sprintf("BK-%04d", n)
	})
	eng := engine.New(catalog, bookings, clk, "w1")

	cfg := config.TrackingConfig{
		TickInterval: time.Second,
		TripDuration: 5 * time.Second,
		StartLat:     5.3219,
		StartLng:     103.1290,
		HomeLat:      5.3302,
		HomeLng:      103.1408,
	}
	return NewTrackingJob(clk, eng, ws.NewHub(), cfg), eng, clk
}

func inTransitBooking(t *testing.T, eng *engine.Engine) models.Booking {
	t.Helper()
	b, err := eng.CreateBooking("user-001", models.BookingCreateRequest{
		ServiceID: "s1", Date: "2025-01-02", Time: "12:30",
		FullName: "John Doe", Phone: "012-3456789", Address: "No. 12, Lorong Masjid",
	})
	if err != nil {
		t.Fatalf("CreateBooking failed: %v", err)
	}
	if _, err := eng.ConfirmAssignment(b.ID); err != nil {
		t.Fatalf("ConfirmAssignment failed: %v", err)
	}
	b, err = eng.StartTrip(b.ID)
	if err != nil {
		t.Fatalf("StartTrip failed: %v", err)
	}
	return b
}

func TestTrackIsIdempotent(t *testing.T) {
	job, eng, _ := newTestJob()
	b := inTransitBooking(t, eng)

	first := job.Track(b)
	second := job.Track(b)
	if first != second {
		t.Fatalf("expected the same simulator for repeat Track calls")
	}
	if _, ok := job.Simulator(b.ID); !ok {
		t.Fatalf("expected a live simulator for %s", b.ID)
	}
}

func TestSimulatorArrivalMarksBookingArrived(t *testing.T) {
	job, eng, _ := newTestJob()
	b := inTransitBooking(t, eng)

	sim := job.Track(b)
	for i := 0; i < 5; i++ {
		sim.Tick(time.Second)
	}

	got, _ := eng.Get(b.ID)
	if got.Status != models.BookingStatusArrived {
		t.Fatalf("expected arrived after the trip finished, got %s", got.Status)
	}
}

func TestTickAdvancesLiveTrips(t *testing.T) {
	job, eng, _ := newTestJob()
	b := inTransitBooking(t, eng)
	sim := job.Track(b)

	job.tick()
	if got := sim.Snapshot().Progress; got == 0 {
		t.Fatalf("expected the tick to advance the trip")
	}
}

func TestTickRetiresCancelledTrip(t *testing.T) {
	job, eng, _ := newTestJob()
	b := inTransitBooking(t, eng)
	job.Track(b)

	if _, err := eng.Cancel(b.ID); err != nil {
		t.Fatalf("Cancel failed: %v", err)
	}

	job.tick()
	if _, ok := job.Simulator(b.ID); ok {
		t.Fatalf("expected the cancelled trip to be retired")
	}
}

func TestTickRetiresCompletedTrip(t *testing.T) {
	job, eng, _ := newTestJob()
	b := inTransitBooking(t, eng)
	sim := job.Track(b)

	for i := 0; i < 5; i++ {
		sim.Tick(time.Second)
	}
	if _, err := eng.CompleteJob(b.ID); err != nil {
		t.Fatalf("CompleteJob failed: %v", err)
	}

	job.tick()
	if _, ok := job.Simulator(b.ID); ok {
		t.Fatalf("expected the completed trip to be retired")
	}
}
