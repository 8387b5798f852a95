package pipeline

import "time"

// The three use sites share the same three-stage shape; only the labels
// differ. Delays come from config so demos and tests can tune them.

// BookingVerificationStages are run when a resident submits the booking form
func BookingVerificationStages(delay time.Duration) []Stage {
	return []Stage{
		{Label: "Validating request", Delay: delay},
		{Label: "Syncing with village hub", Delay: delay},
		{Label: "Finalizing schedule", Delay: delay},
	}
}

// PaymentStages are run when a resident confirms payment
func PaymentStages(delay time.Duration) []Stage {
	return []Stage{
		{Label: "Validating card details", Delay: delay},
		{Label: "Contacting payment gateway", Delay: delay},
		{Label: "Finalizing payment", Delay: delay},
	}
}

// CompletionStages are run when the worker finishes a job
func CompletionStages(delay time.Duration) []Stage {
	return []Stage{
		{Label: "Confirming with resident", Delay: delay},
		{Label: "Syncing job record", Delay: delay},
		{Label: "Closing job", Delay: delay},
	}
}
