package routes

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"kampung-service-server/config"
	"kampung-service-server/engine"
	"kampung-service-server/models"
	"kampung-service-server/pipeline"
	"kampung-service-server/tracking"
)

const (
	pipelineBookingVerification = "booking_verification"
	pipelinePayment             = "payment"
	pipelineCompletion          = "completion"
)

// RegisterBookingRoutes registers the resident booking routes. The group is
// expected to carry auth plus the resident role requirement.
func RegisterBookingRoutes(router *gin.RouterGroup) {
	router.POST("", createBooking)
	router.GET("", listBookings)
	router.GET("/:id", getBooking)
	router.POST("/:id/pay", payBooking)
	router.POST("/:id/retry-payment", retryPayment)
	router.POST("/:id/cancel", cancelBooking)
	router.GET("/:id/pipeline", getPipelineStatus)
	router.GET("/:id/tracking", getTracking)
	router.POST("/:id/tracking/faults", toggleTrackingFault)
	router.POST("/:id/tracking/faults/gps/ack", ackGPSPermission)
}

// createBooking creates a pending booking and kicks off the verification
// pipeline. The response returns immediately; the client polls the pipeline
// endpoint for stage progress.
func createBooking(c *gin.Context) {
	var req models.BookingCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	userID := c.GetString("user_id")
	booking, err := bookingEngine.CreateBooking(userID, req)
	if err != nil {
		if errors.Is(err, engine.ErrInvalidService) {
			c.JSON(http.StatusConflict, gin.H{
				"error":   "Service unavailable",
				"message": "This service cannot be booked right now.",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Booking failed",
			"message": "Could not create the booking",
		})
		return
	}

	outcome := pipeline.OutcomeSuccess
	if req.FailSync {
		outcome = pipeline.OutcomeSyncError
	}

	stages := pipeline.BookingVerificationStages(config.AppConfig.Pipeline.StageDelay)
	// a sync error leaves the booking pending and untouched; the failure
	// dialog is driven entirely by the recorded outcome
	bookingID := booking.ID
	run := runner.Start(pipelineBookingVerification+":"+bookingID, stages, outcome, nil)
	runs.put(bookingID, pipelineBookingVerification, run)

	c.JSON(http.StatusAccepted, gin.H{
		"booking":  booking,
		"pipeline": pipelineView(pipelineBookingVerification, run),
	})
}

// listBookings returns the resident's bookings, most recent first.
// ?filter=active narrows to the bookings the active tab shows; payment
// failures and terminal bookings only appear in the full history.
func listBookings(c *gin.Context) {
	userID := c.GetString("user_id")
	all := bookingEngine.ListBookings(userID)

	activeOnly := c.Query("filter") == "active"
	views := make([]gin.H, 0, len(all))
	for _, b := range all {
		if activeOnly && !b.Status.IsActiveForResident() {
			continue
		}
		views = append(views, residentBookingView(b))
	}

	c.JSON(http.StatusOK, gin.H{"bookings": views})
}

// getBooking returns one booking with the actions the resident may take
func getBooking(c *gin.Context) {
	booking, ok := ownedBooking(c)
	if !ok {
		return
	}

	view := residentBookingView(booking)
	if kind, run, found := runs.get(booking.ID); found {
		view["pipeline"] = pipelineView(kind, run)
	}
	c.JSON(http.StatusOK, view)
}

// payBooking runs the payment pipeline for a pending booking. On success the
// booking is assigned to a worker; on failure it moves to payment_failed.
// Both resolutions re-check that the booking is still pending, so a
// cancellation made while the gateway was "processing" always wins.
func payBooking(c *gin.Context) {
	booking, ok := ownedBooking(c)
	if !ok {
		return
	}

	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	if booking.Status != models.BookingStatusPending {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cannot pay",
			"message": "This booking is not awaiting payment",
		})
		return
	}

	startPaymentPipeline(c, booking, req)
}

// retryPayment puts a payment_failed booking back into pending and runs the
// payment pipeline again with the newly chosen outcome
func retryPayment(c *gin.Context) {
	booking, ok := ownedBooking(c)
	if !ok {
		return
	}

	var req models.PaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	booking, err := bookingEngine.RetryPayment(booking.ID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cannot retry payment",
			"message": "This booking has no failed payment to retry",
		})
		return
	}

	startPaymentPipeline(c, booking, req)
}

func startPaymentPipeline(c *gin.Context, booking models.Booking, req models.PaymentRequest) {
	outcome := pipeline.OutcomeSuccess
	switch req.Outcome {
	case "timeout":
		outcome = pipeline.OutcomeTimeout
	case "invalid_info":
		outcome = pipeline.OutcomeInvalidInfo
	case "insufficient_funds":
		outcome = pipeline.OutcomeInsufficientFunds
	}

	stages := pipeline.PaymentStages(config.AppConfig.Pipeline.StageDelay)
	bookingID := booking.ID
	run := runner.Start(pipelinePayment+":"+bookingID, stages, outcome, func(o pipeline.Outcome) {
		if o.IsSuccess() {
			b, applied := bookingEngine.ApplyIfStatus(bookingID, models.BookingStatusPending, models.BookingStatusAssigned)
			if applied && b.WorkerID != nil {
				hub.SendJobAssigned(*b.WorkerID, b.ID, b)
			}
			return
		}
		bookingEngine.ApplyIfStatus(bookingID, models.BookingStatusPending, models.BookingStatusPaymentFailed)
	})
	runs.put(bookingID, pipelinePayment, run)

	c.JSON(http.StatusAccepted, gin.H{
		"booking":  booking,
		"pipeline": pipelineView(pipelinePayment, run),
	})
}

// cancelBooking cancels the resident's booking. Cancelling twice is a no-op;
// completed bookings cannot be cancelled.
func cancelBooking(c *gin.Context) {
	booking, ok := ownedBooking(c)
	if !ok {
		return
	}

	cancelled, err := bookingEngine.Cancel(booking.ID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cannot cancel",
			"message": "This booking can no longer be cancelled",
		})
		return
	}

	if cancelled.WorkerID != nil {
		hub.SendBookingCancelled(*cancelled.WorkerID, cancelled.ID)
	}

	log.Printf("🚫 Booking %s cancelled by resident %s", cancelled.ID, c.GetString("user_id"))
	c.JSON(http.StatusOK, residentBookingView(cancelled))
}

// getPipelineStatus reports the booking's latest pipeline run so the client
// can render "stage k of n" and the terminal outcome dialog
func getPipelineStatus(c *gin.Context) {
	booking, ok := ownedBooking(c)
	if !ok {
		return
	}

	kind, run, found := runs.get(booking.ID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "No pipeline",
			"message": "No verification has been run for this booking",
		})
		return
	}

	c.JSON(http.StatusOK, pipelineView(kind, run))
}

// getTracking returns the live tracking snapshot for an in-transit booking
func getTracking(c *gin.Context) {
	_, sim, ok := ownedTracking(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"tracking": sim.Snapshot()})
}

// toggleTrackingFault switches a simulated tracking fault on or off
func toggleTrackingFault(c *gin.Context) {
	_, sim, ok := ownedTracking(c)
	if !ok {
		return
	}

	var req models.FaultToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	sim.SetFault(tracking.Fault(req.Fault), req.Active)
	c.JSON(http.StatusOK, gin.H{"tracking": sim.Snapshot()})
}

// ackGPSPermission clears the GPS permission fault, resuming the trip from
// where it paused
func ackGPSPermission(c *gin.Context) {
	_, sim, ok := ownedTracking(c)
	if !ok {
		return
	}

	sim.SetFault(tracking.FaultGPSPermissionDenied, false)
	c.JSON(http.StatusOK, gin.H{
		"message":  "Location permission granted",
		"tracking": sim.Snapshot(),
	})
}

// ownedBooking loads the booking in the path and verifies the caller owns it
func ownedBooking(c *gin.Context) (models.Booking, bool) {
	booking, err := bookingEngine.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Booking not found",
			"message": "The requested booking does not exist",
		})
		return models.Booking{}, false
	}
	if booking.UserID != c.GetString("user_id") {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "This booking belongs to another resident",
		})
		return models.Booking{}, false
	}
	return booking, true
}

func ownedTracking(c *gin.Context) (models.Booking, *tracking.Simulator, bool) {
	booking, ok := ownedBooking(c)
	if !ok {
		return models.Booking{}, nil, false
	}
	sim, found := tracker.Simulator(booking.ID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "No live tracking",
			"message": "The worker is not on their way yet",
		})
		return models.Booking{}, nil, false
	}
	return booking, sim, true
}

func residentBookingView(b models.Booking) gin.H {
	return gin.H{
		"booking":           b,
		"available_actions": b.AvailableActions(models.RoleResident),
	}
}

func pipelineView(kind string, run *pipeline.Run) gin.H {
	stage, done := run.CurrentStage()
	labels := make([]string, 0, len(run.Stages()))
	for _, s := range run.Stages() {
		labels = append(labels, s.Label)
	}

	view := gin.H{
		"kind":   kind,
		"stages": labels,
		"stage":  stage,
		"total":  len(labels),
		"done":   done,
	}
	if outcome, resolved := run.Outcome(); resolved {
		view["outcome"] = outcome
		view["succeeded"] = outcome.IsSuccess()
		if msg := outcome.Message(); msg != "" {
			view["message"] = msg
		}
	}
	return view
}
