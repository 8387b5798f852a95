package engine

import (
	"fmt"
	"log"

	"kampung-service-server/clock"
	"kampung-service-server/models"
	"kampung-service-server/store"
)

// Engine owns the authoritative booking records and enforces every status
// transition. Views never mutate bookings directly; the operations here are
// the only mutation surface, so a cancellation made by one role is visible
// to the other on its next read.
type Engine struct {
	catalog  *store.Catalog
	bookings *store.BookingStore
	clk      clock.Clock

	// the single mock worker every assignment goes to
	workerID string
}

func New(catalog *store.Catalog, bookings *store.BookingStore, clk clock.Clock, workerID string) *Engine {
	return &Engine{
		catalog:  catalog,
		bookings: bookings,
		clk:      clk,
		workerID: workerID,
	}
}

// CreateBooking creates a new booking in pending status. The caller is
// expected to have run the availability check already; a non-active service
// is still rejected here as a last line of defense. The service price is
// copied onto the booking and frozen from then on.
func (e *Engine) CreateBooking(userID string, req models.BookingCreateRequest) (models.Booking, error) {
	svc, ok := e.catalog.Get(req.ServiceID)
	if !ok || svc.Status != models.ServiceStatusActive {
		return models.Booking{}, ErrInvalidService
	}

	now := e.clk.Now()
	booking := models.Booking{
		ID:         e.bookings.NextID(),
		ServiceID:  svc.ID,
		UserID:     userID,
		Status:     models.BookingStatusPending,
		Date:       req.Date,
		Time:       req.Time,
		FullName:   req.FullName,
		Phone:      req.Phone,
		Address:    req.Address,
		TotalPrice: svc.Price,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := e.bookings.Insert(booking)
	if err != nil {
		return models.Booking{}, err
	}

	log.Printf("📦 Booking %s created for service %s (user %s, total %s)",
		created.ID, created.ServiceID, created.UserID, created.TotalPrice.StringFixed(2))
	return created, nil
}

// ConfirmAssignment moves a pending booking to assigned and attaches the
// worker. Invoked by the payment pipeline's success resolution.
func (e *Engine) ConfirmAssignment(id string) (models.Booking, error) {
	b, err := e.bookings.Mutate(id, func(b *models.Booking) error {
		if b.Status != models.BookingStatusPending {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, models.BookingStatusAssigned)
		}
		b.Status = models.BookingStatusAssigned
		workerID := e.workerID
		b.WorkerID = &workerID
		b.UpdatedAt = e.clk.Now()
		return nil
	})
	if err != nil {
		return b, err
	}
	log.Printf("👷 Booking %s assigned to worker %s", id, e.workerID)
	return b, nil
}

// MarkPaymentFailed moves a pending booking to payment_failed
func (e *Engine) MarkPaymentFailed(id string) (models.Booking, error) {
	return e.transition(id, models.BookingStatusPaymentFailed, models.BookingStatusPending)
}

// RetryPayment puts a payment_failed booking back into pending so the
// resident can run the payment pipeline again
func (e *Engine) RetryPayment(id string) (models.Booking, error) {
	return e.transition(id, models.BookingStatusPending, models.BookingStatusPaymentFailed)
}

// StartTrip moves an assigned booking to in_progress (worker action)
func (e *Engine) StartTrip(id string) (models.Booking, error) {
	return e.transition(id, models.BookingStatusInProgress, models.BookingStatusAssigned)
}

// MarkArrived moves an in_progress booking to arrived. The tracking
// simulator and the worker's manual action can both trigger this; arriving
// twice is a no-op success, first one wins.
func (e *Engine) MarkArrived(id string) (models.Booking, error) {
	b, err := e.bookings.Get(id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status == models.BookingStatusArrived {
		return b, nil
	}
	return e.transition(id, models.BookingStatusArrived, models.BookingStatusInProgress)
}

// CompleteJob moves an arrived booking to completed (worker action, after
// the completion pipeline resolved successfully)
func (e *Engine) CompleteJob(id string) (models.Booking, error) {
	return e.transition(id, models.BookingStatusCompleted, models.BookingStatusArrived)
}

// Cancel moves any non-terminal booking to cancelled. Cancelling an
// already-cancelled booking is a no-op returning the current record.
func (e *Engine) Cancel(id string) (models.Booking, error) {
	b, err := e.bookings.Get(id)
	if err != nil {
		return models.Booking{}, err
	}
	if b.Status == models.BookingStatusCancelled {
		return b, nil
	}
	return e.transition(id, models.BookingStatusCancelled,
		models.BookingStatusPending,
		models.BookingStatusAssigned,
		models.BookingStatusInProgress,
		models.BookingStatusArrived,
		models.BookingStatusPaymentFailed,
	)
}

// AcknowledgeCancellation records that the worker has seen the "job
// unavailable" interstitial for a cancelled booking
func (e *Engine) AcknowledgeCancellation(id string) (models.Booking, error) {
	return e.bookings.Mutate(id, func(b *models.Booking) error {
		if b.Status != models.BookingStatusCancelled {
			return fmt.Errorf("%w: cannot acknowledge cancellation while %s", ErrInvalidTransition, b.Status)
		}
		b.CancellationAcked = true
		b.UpdatedAt = e.clk.Now()
		return nil
	})
}

// ApplyIfStatus performs the transition only if the booking is still in the
// expected source state, and reports whether it applied. Async pipeline
// resolutions route through this so a cancellation that landed while the
// pipeline was in flight is never overwritten.
func (e *Engine) ApplyIfStatus(id string, expected, to models.BookingStatus) (models.Booking, bool) {
	applied := false
	b, err := e.bookings.Mutate(id, func(b *models.Booking) error {
		if b.Status != expected {
			return nil
		}
		b.Status = to
		if to == models.BookingStatusAssigned && b.WorkerID == nil {
			workerID := e.workerID
			b.WorkerID = &workerID
		}
		b.UpdatedAt = e.clk.Now()
		applied = true
		return nil
	})
	if err != nil {
		return models.Booking{}, false
	}
	if applied {
		log.Printf("🔄 Booking %s: %s -> %s", id, expected, to)
	} else {
		log.Printf("⚠️ Booking %s no longer %s, dropping stale %s resolution", id, expected, to)
	}
	return b, applied
}

// Get returns the current booking record
func (e *Engine) Get(id string) (models.Booking, error) {
	return e.bookings.Get(id)
}

// ListBookings returns the user's bookings, most recently created first
func (e *Engine) ListBookings(userID string) []models.Booking {
	return e.bookings.ListByUser(userID)
}

// ListWorkerJobs returns bookings assigned to the worker, most recent first
func (e *Engine) ListWorkerJobs(workerID string) []models.Booking {
	return e.bookings.ListByWorker(workerID)
}

// Service looks up a catalog entry
func (e *Engine) Service(id string) (models.Service, bool) {
	return e.catalog.Get(id)
}

// Services returns the full catalog
func (e *Engine) Services() []models.Service {
	return e.catalog.List()
}

func (e *Engine) transition(id string, to models.BookingStatus, from ...models.BookingStatus) (models.Booking, error) {
	b, err := e.bookings.Mutate(id, func(b *models.Booking) error {
		for _, f := range from {
			if b.Status == f {
				b.Status = to
				b.UpdatedAt = e.clk.Now()
				return nil
			}
		}
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, b.Status, to)
	})
	if err != nil {
		return b, err
	}
	log.Printf("🔄 Booking %s: now %s", id, to)
	return b, nil
}
