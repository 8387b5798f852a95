package models

// LoginRequest selects a seeded demo identity and role
type LoginRequest struct {
	UserID string `json:"user_id" binding:"required"`
	Role   string `json:"role" binding:"required,oneof=resident worker"`
}

// BookingCreateRequest carries the booking form fields
type BookingCreateRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
	Date      string `json:"date" binding:"required"`
	Time      string `json:"time" binding:"required"`
	FullName  string `json:"full_name" binding:"required"`
	Phone     string `json:"phone" binding:"required"`
	Address   string `json:"address" binding:"required"`

	// FailSync simulates a synchronization error during booking verification
	FailSync bool `json:"fail_sync"`
}

// PaymentRequest carries the mock card details plus the simulated gateway
// outcome the demo client wants to exercise
type PaymentRequest struct {
	CardNumber string `json:"card_number" binding:"required"`
	Expiry     string `json:"expiry" binding:"required"`
	CVV        string `json:"cvv" binding:"required"`
	Outcome    string `json:"outcome" binding:"omitempty,oneof=success timeout invalid_info insufficient_funds"`
}

// CompleteJobRequest toggles the simulated confirmation failure
type CompleteJobRequest struct {
	FailConfirmation bool `json:"fail_confirmation"`
}

// FaultToggleRequest switches one tracking fault flag on or off
type FaultToggleRequest struct {
	Fault  string `json:"fault" binding:"required,oneof=gps_permission_denied location_signal_lost traffic_delay"`
	Active bool   `json:"active"`
}
