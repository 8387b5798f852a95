package routes

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"kampung-service-server/config"
	"kampung-service-server/models"
	"kampung-service-server/pipeline"
)

// RegisterWorkerRoutes registers the worker dashboard routes. The group is
// expected to carry auth plus the worker role requirement.
func RegisterWorkerRoutes(router *gin.RouterGroup) {
	router.GET("/jobs", listWorkerJobs)
	router.GET("/jobs/:id", getWorkerJob)
	router.POST("/jobs/:id/start", startTrip)
	router.POST("/jobs/:id/arrive", markArrived)
	router.POST("/jobs/:id/complete", completeJob)
	router.POST("/jobs/:id/ack-unavailable", ackUnavailable)
}

// listWorkerJobs returns the worker's assigned jobs, most recent first. A
// job cancelled under the worker shows up flagged unavailable until they
// acknowledge the interstitial.
func listWorkerJobs(c *gin.Context) {
	workerID := c.GetString("user_id")
	all := bookingEngine.ListWorkerJobs(workerID)

	views := make([]gin.H, 0, len(all))
	for _, b := range all {
		switch b.Status {
		case models.BookingStatusAssigned, models.BookingStatusInProgress, models.BookingStatusArrived:
		case models.BookingStatusCancelled:
			// stays on the board until the interstitial is acknowledged
			if b.CancellationAcked {
				continue
			}
		default:
			continue
		}
		views = append(views, workerJobView(b))
	}

	c.JSON(http.StatusOK, gin.H{"jobs": views})
}

// getWorkerJob returns one assigned job with the worker's actions
func getWorkerJob(c *gin.Context) {
	booking, ok := assignedJob(c)
	if !ok {
		return
	}

	view := workerJobView(booking)
	if kind, run, found := runs.get(booking.ID); found && kind == pipelineCompletion {
		view["pipeline"] = pipelineView(kind, run)
	}
	c.JSON(http.StatusOK, view)
}

// startTrip begins the worker's trip to the resident and starts the
// tracking simulator for it
func startTrip(c *gin.Context) {
	booking, ok := assignedJob(c)
	if !ok {
		return
	}

	booking, err := bookingEngine.StartTrip(booking.ID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cannot start trip",
			"message": "This job is not waiting to be started",
		})
		return
	}

	tracker.Track(booking)
	log.Printf("🛵 Worker %s started trip for booking %s", c.GetString("user_id"), booking.ID)
	c.JSON(http.StatusOK, workerJobView(booking))
}

// markArrived records arrival at the resident's home. The simulator usually
// gets there first; a manual arrival on an already-arrived job succeeds.
func markArrived(c *gin.Context) {
	booking, ok := assignedJob(c)
	if !ok {
		return
	}

	booking, err := bookingEngine.MarkArrived(booking.ID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cannot mark arrived",
			"message": "This job is not in transit",
		})
		return
	}

	c.JSON(http.StatusOK, workerJobView(booking))
}

// completeJob runs the completion pipeline for an arrived job. On success
// the booking completes; on a confirmation error it stays arrived so the
// worker can retry.
func completeJob(c *gin.Context) {
	booking, ok := assignedJob(c)
	if !ok {
		return
	}

	var req models.CompleteJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request",
			"message": err.Error(),
		})
		return
	}

	if booking.Status != models.BookingStatusArrived {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cannot finish job",
			"message": "The worker has not arrived at this job yet",
		})
		return
	}

	outcome := pipeline.OutcomeSuccess
	if req.FailConfirmation {
		outcome = pipeline.OutcomeConfirmationError
	}

	stages := pipeline.CompletionStages(config.AppConfig.Pipeline.StageDelay)
	bookingID := booking.ID
	run := runner.Start(pipelineCompletion+":"+bookingID, stages, outcome, func(o pipeline.Outcome) {
		if o.IsSuccess() {
			bookingEngine.ApplyIfStatus(bookingID, models.BookingStatusArrived, models.BookingStatusCompleted)
		}
		// a confirmation error leaves the job arrived and retryable
	})
	runs.put(bookingID, pipelineCompletion, run)

	c.JSON(http.StatusAccepted, gin.H{
		"booking":  booking,
		"pipeline": pipelineView(pipelineCompletion, run),
	})
}

// ackUnavailable records that the worker saw the "job unavailable"
// interstitial for a cancelled booking, clearing the flag from their feed
func ackUnavailable(c *gin.Context) {
	booking, ok := assignedJob(c)
	if !ok {
		return
	}

	booking, err := bookingEngine.AcknowledgeCancellation(booking.ID)
	if err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":   "Cannot acknowledge",
			"message": "This job has not been cancelled",
		})
		return
	}

	c.JSON(http.StatusOK, workerJobView(booking))
}

// RegisterWorkerDirectoryRoutes registers the shared worker reference reads
// (both roles; the resident tracking screen shows the worker card)
func RegisterWorkerDirectoryRoutes(router *gin.RouterGroup) {
	router.GET("/workers/:id", getWorkerProfile)
}

func getWorkerProfile(c *gin.Context) {
	worker, ok := workerDir.Get(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Worker not found",
			"message": "The requested worker does not exist",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"worker": worker})
}

// assignedJob loads the booking in the path and verifies it is assigned to
// the calling worker
func assignedJob(c *gin.Context) (models.Booking, bool) {
	booking, err := bookingEngine.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Job not found",
			"message": "The requested job does not exist",
		})
		return models.Booking{}, false
	}
	workerID := c.GetString("user_id")
	if booking.WorkerID == nil || *booking.WorkerID != workerID {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "Access denied",
			"message": "This job is assigned to another worker",
		})
		return models.Booking{}, false
	}
	return booking, true
}

func workerJobView(b models.Booking) gin.H {
	return gin.H{
		"booking":           b,
		"available_actions": b.AvailableActions(models.RoleWorker),
		"job_unavailable":   b.Status == models.BookingStatusCancelled && !b.CancellationAcked,
	}
}
