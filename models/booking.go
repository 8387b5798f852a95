package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// BookingStatus represents the lifecycle state of a booking
type BookingStatus string

const (
	BookingStatusPending       BookingStatus = "pending"
	BookingStatusAssigned      BookingStatus = "assigned"
	BookingStatusInProgress    BookingStatus = "in_progress"
	BookingStatusArrived       BookingStatus = "arrived"
	BookingStatusCompleted     BookingStatus = "completed"
	BookingStatusCancelled     BookingStatus = "cancelled"
	BookingStatusPaymentFailed BookingStatus = "payment_failed"
)

// IsTerminal reports whether no further transitions may leave this status.
func (s BookingStatus) IsTerminal() bool {
	return s == BookingStatusCompleted || s == BookingStatusCancelled
}

// CanCancel reports whether a booking in this status may still be cancelled.
func (s BookingStatus) CanCancel() bool {
	switch s {
	case BookingStatusPending, BookingStatusAssigned, BookingStatusInProgress, BookingStatusArrived:
		return true
	}
	return false
}

// IsActiveForResident reports whether the booking belongs in the resident's
// active list. Payment failures only show up in history.
func (s BookingStatus) IsActiveForResident() bool {
	switch s {
	case BookingStatusPending, BookingStatusAssigned, BookingStatusInProgress, BookingStatusArrived:
		return true
	}
	return false
}

// Booking represents a resident's scheduled service request
type Booking struct {
	ID        string        `json:"id"`
	ServiceID string        `json:"service_id"`
	UserID    string        `json:"user_id"`
	WorkerID  *string       `json:"worker_id"`
	Status    BookingStatus `json:"status"`
	Date      string        `json:"date"`
	Time      string        `json:"time"`
	FullName  string        `json:"full_name"`
	Phone     string        `json:"phone"`
	Address   string        `json:"address"`

	// TotalPrice is copied from the service at creation time and frozen
	TotalPrice decimal.Decimal `json:"total_price"`

	// CancellationAcked is set once the worker has acknowledged the
	// "job unavailable" interstitial for a cancelled booking
	CancellationAcked bool `json:"cancellation_acked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AvailableActions returns the actions a role may take on a booking in its
// current status. The views render exactly these affordances.
func (b Booking) AvailableActions(role string) []string {
	if role == RoleWorker {
		switch b.Status {
		case BookingStatusAssigned:
			return []string{"start_trip"}
		case BookingStatusInProgress:
			return []string{"arrive"}
		case BookingStatusArrived:
			return []string{"finish_job"}
		}
		return []string{}
	}

	switch b.Status {
	case BookingStatusAssigned, BookingStatusInProgress, BookingStatusArrived:
		return []string{"track", "cancel"}
	case BookingStatusPaymentFailed:
		return []string{"retry_payment"}
	case BookingStatusPending:
		return []string{"cancel"}
	}
	return []string{}
}
