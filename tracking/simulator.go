package tracking

import (
	"log"
	"math"
	"sync"
	"time"

	"kampung-service-server/utils"
)

// Fault is a simulated in-transit fault condition. GPS denial and signal
// loss pause position updates; traffic delay is a cosmetic banner only.
type Fault string

const (
	FaultGPSPermissionDenied Fault = "gps_permission_denied"
	FaultLocationSignalLost  Fault = "location_signal_lost"
	FaultTrafficDelay        Fault = "traffic_delay"
)

// arrivalEpsilon is the progress slack within which the trip counts as done
const arrivalEpsilon = 0.001

// averageSpeedKmh feeds the ETA estimate shown to the resident
const averageSpeedKmh = 30.0

// Snapshot is the resident-facing view of a simulator at one instant
type Snapshot struct {
	BookingID  string         `json:"booking_id"`
	Position   utils.Location `json:"position"`
	Progress   float64        `json:"progress"`
	ETAMinutes int            `json:"eta_minutes"`
	Arrived    bool           `json:"arrived"`
	Faults     []Fault        `json:"faults"`
}

// Simulator models one worker's movement from a start coordinate toward the
// resident's home over a fixed trip duration. Blocking faults pause
// progress; they never reset it. When progress reaches 1.0 the arrival
// callback fires once and movement stops.
type Simulator struct {
	mu sync.Mutex

	bookingID string
	start     utils.Location
	home      utils.Location
	duration  time.Duration

	elapsed time.Duration
	faults  map[Fault]bool
	arrived bool

	onArrive func(bookingID string)
}

func NewSimulator(bookingID string, start, home utils.Location, duration time.Duration, onArrive func(string)) *Simulator {
	return &Simulator{
		bookingID: bookingID,
		start:     start,
		home:      home,
		duration:  duration,
		faults:    make(map[Fault]bool),
		onArrive:  onArrive,
	}
}

// Tick advances the trip by step. While a blocking fault is active the step
// is skipped entirely: no position change, no elapsed time accumulated.
func (s *Simulator) Tick(step time.Duration) {
	s.mu.Lock()
	if s.arrived || s.blockedLocked() {
		s.mu.Unlock()
		return
	}

	s.elapsed += step
	justArrived := false
	if s.progressLocked() >= 1-arrivalEpsilon {
		s.elapsed = s.duration
		s.arrived = true
		justArrived = true
	}
	s.mu.Unlock()

	if justArrived {
		log.Printf("🛵 Worker reached destination for booking %s", s.bookingID)
		if s.onArrive != nil {
			s.onArrive(s.bookingID)
		}
	}
}

// SetFault toggles one fault flag. Clearing a blocking fault resumes the
// trip from the paused position.
func (s *Simulator) SetFault(f Fault, active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if active {
		s.faults[f] = true
	} else {
		delete(s.faults, f)
	}
	log.Printf("📍 Booking %s tracking fault %s: %v", s.bookingID, f, active)
}

// FaultActive reports whether the given fault is currently set
func (s *Simulator) FaultActive(f Fault) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.faults[f]
}

// Arrived reports whether the trip has finished
func (s *Simulator) Arrived() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.arrived
}

// Snapshot returns the current position, progress, ETA and fault set
func (s *Simulator) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	progress := s.progressLocked()
	pos := utils.Interpolate(s.start, s.home, progress)

	faults := make([]Fault, 0, len(s.faults))
	for f := range s.faults {
		faults = append(faults, f)
	}

	eta := utils.CalculateETA(pos, s.home, averageSpeedKmh)

	return Snapshot{
		BookingID:  s.bookingID,
		Position:   pos,
		Progress:   math.Round(progress*1000) / 1000,
		ETAMinutes: int(eta.Minutes()),
		Arrived:    s.arrived,
		Faults:     faults,
	}
}

func (s *Simulator) blockedLocked() bool {
	return s.faults[FaultGPSPermissionDenied] || s.faults[FaultLocationSignalLost]
}

func (s *Simulator) progressLocked() float64 {
	if s.duration <= 0 {
		return 1
	}
	p := float64(s.elapsed) / float64(s.duration)
	if p > 1 {
		p = 1
	}
	return p
}
