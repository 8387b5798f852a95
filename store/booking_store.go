package store

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"kampung-service-server/models"
)

// ErrBookingNotFound is returned when a booking id is unknown to the store
var ErrBookingNotFound = errors.New("booking not found")

// IDGenerator produces booking ids. Injectable so tests can use a
// deterministic sequence while production uses random BK-#### ids.
type IDGenerator func() string

// RandomBookingID generates ids in the BK-#### format
func RandomBookingID() string {
	return fmt.Sprintf("BK-%04d", rand.Intn(10000))
}

// BookingStore is the single in-memory source of truth for booking records.
// Both role views read through it; all mutation goes through Mutate so a
// status check and its write happen under one lock. Records are never
// deleted for the lifetime of the session.
type BookingStore struct {
	mu       sync.RWMutex
	bookings map[string]*models.Booking
	order    []string // insertion order, oldest first
	newID    IDGenerator
}

// NewBookingStore creates an empty store with the given id generator
func NewBookingStore(newID IDGenerator) *BookingStore {
	if newID == nil {
		newID = RandomBookingID
	}
	return &BookingStore{
		bookings: make(map[string]*models.Booking),
		newID:    newID,
	}
}

// NextID returns a fresh, unused booking id. Ids are never reused, so the
// generator is retried until it produces one the store has not seen.
func (s *BookingStore) NextID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for {
		id := s.newID()
		if _, exists := s.bookings[id]; !exists {
			return id
		}
	}
}

// Insert stores a new booking record
func (s *BookingStore) Insert(b models.Booking) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.bookings[b.ID]; exists {
		return models.Booking{}, fmt.Errorf("booking id %s already exists", b.ID)
	}

	copy := b
	s.bookings[b.ID] = &copy
	s.order = append(s.order, b.ID)
	return b, nil
}

// Get returns a copy of the booking, so callers never hold a reference into
// the store's mutable state.
func (s *BookingStore) Get(id string) (models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, ErrBookingNotFound
	}
	return *b, nil
}

// Mutate applies fn to the booking under the store lock and returns the
// updated copy. If fn returns an error the record is left unchanged.
func (s *BookingStore) Mutate(id string, fn func(*models.Booking) error) (models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookings[id]
	if !ok {
		return models.Booking{}, ErrBookingNotFound
	}

	snapshot := *b
	if err := fn(b); err != nil {
		*b = snapshot
		return snapshot, err
	}
	return *b, nil
}

// ListByUser returns the user's bookings, most recently created first
func (s *BookingStore) ListByUser(userID string) []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Booking
	for i := len(s.order) - 1; i >= 0; i-- {
		b := s.bookings[s.order[i]]
		if b.UserID == userID {
			result = append(result, *b)
		}
	}
	return result
}

// ListByWorker returns bookings assigned to the worker, most recent first
func (s *BookingStore) ListByWorker(workerID string) []models.Booking {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.Booking
	for i := len(s.order) - 1; i >= 0; i-- {
		b := s.bookings[s.order[i]]
		if b.WorkerID != nil && *b.WorkerID == workerID {
			result = append(result, *b)
		}
	}
	return result
}
