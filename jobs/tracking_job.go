package jobs

import (
	"log"
	"sync"

	"kampung-service-server/clock"
	"kampung-service-server/config"
	"kampung-service-server/engine"
	"kampung-service-server/models"
	"kampung-service-server/tracking"
	"kampung-service-server/utils"
	"kampung-service-server/websocket"
)

// TrackingJob drives every live tracking simulator. Each tick it advances
// the trips, pushes position frames to the residents watching them, and
// retires trips whose booking left the in-transit states - which is how a
// cancellation made on the resident side reaches the worker's dashboard.
type TrackingJob struct {
	clk    clock.Clock
	engine *engine.Engine
	hub    *websocket.Hub
	cfg    config.TrackingConfig

	mu    sync.Mutex
	trips map[string]*trackedTrip

	stopChan chan bool
}

type trackedTrip struct {
	sim        *tracking.Simulator
	residentID string
	workerID   string
}

// NewTrackingJob creates a new tracking job
func NewTrackingJob(clk clock.Clock, eng *engine.Engine, hub *websocket.Hub, cfg config.TrackingConfig) *TrackingJob {
	return &TrackingJob{
		clk:      clk,
		engine:   eng,
		hub:      hub,
		cfg:      cfg,
		trips:    make(map[string]*trackedTrip),
		stopChan: make(chan bool),
	}
}

// Start begins the tracking job
func (j *TrackingJob) Start() {
	go j.run()
	log.Printf("🚀 Tracking job started (tick %s, trip %s)", j.cfg.TickInterval, j.cfg.TripDuration)
}

// Stop stops the tracking job
func (j *TrackingJob) Stop() {
	j.stopChan <- true
	log.Println("🛑 Tracking job stopped")
}

// Track registers a simulator for a booking's trip. Tracking an already
// tracked booking returns the existing simulator.
func (j *TrackingJob) Track(b models.Booking) *tracking.Simulator {
	j.mu.Lock()
	defer j.mu.Unlock()

	if trip, ok := j.trips[b.ID]; ok {
		return trip.sim
	}

	workerID := ""
	if b.WorkerID != nil {
		workerID = *b.WorkerID
	}

	sim := tracking.NewSimulator(
		b.ID,
		utils.Location{Latitude: j.cfg.StartLat, Longitude: j.cfg.StartLng},
		utils.Location{Latitude: j.cfg.HomeLat, Longitude: j.cfg.HomeLng},
		j.cfg.TripDuration,
		j.onArrive,
	)
	j.trips[b.ID] = &trackedTrip{sim: sim, residentID: b.UserID, workerID: workerID}
	log.Printf("🛵 Tracking started for booking %s (worker %s)", b.ID, workerID)
	return sim
}

// Simulator returns the live simulator for a booking, if one is running
func (j *TrackingJob) Simulator(bookingID string) (*tracking.Simulator, bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	trip, ok := j.trips[bookingID]
	if !ok {
		return nil, false
	}
	return trip.sim, true
}

func (j *TrackingJob) onArrive(bookingID string) {
	// the simulator and the worker's manual action can race; the engine
	// treats a duplicate arrival as a no-op
	if _, err := j.engine.MarkArrived(bookingID); err != nil {
		log.Printf("⚠️ Arrival for booking %s not applied: %v", bookingID, err)
	}
}

func (j *TrackingJob) run() {
	ticker := j.clk.NewTicker(j.cfg.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			j.tick()
		case <-j.stopChan:
			return
		}
	}
}

// tick advances every live trip by one interval
func (j *TrackingJob) tick() {
	j.mu.Lock()
	trips := make(map[string]*trackedTrip, len(j.trips))
	for id, trip := range j.trips {
		trips[id] = trip
	}
	j.mu.Unlock()

	for id, trip := range trips {
		booking, err := j.engine.Get(id)
		if err != nil {
			j.retire(id)
			continue
		}

		switch booking.Status {
		case models.BookingStatusCancelled:
			// the booking was cancelled out from under the trip; tell the
			// worker so the dashboard can show the interstitial
			if trip.workerID != "" {
				j.hub.SendBookingCancelled(trip.workerID, id)
			}
			j.retire(id)

		case models.BookingStatusCompleted:
			j.retire(id)

		case models.BookingStatusInProgress, models.BookingStatusArrived:
			trip.sim.Tick(j.cfg.TickInterval)
			j.hub.SendTrackingUpdate(trip.residentID, id, trip.sim.Snapshot())
		}
	}
}

func (j *TrackingJob) retire(bookingID string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if _, ok := j.trips[bookingID]; ok {
		delete(j.trips, bookingID)
		log.Printf("🏁 Tracking retired for booking %s", bookingID)
	}
}
