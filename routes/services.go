package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kampung-service-server/models"
)

// RegisterServiceRoutes registers catalog routes
func RegisterServiceRoutes(router *gin.RouterGroup) {
	router.GET("", getAllServices)
	router.GET("/:id", getService)
	router.POST("/:id/check", checkServiceAvailability)
}

// getAllServices returns the full seeded catalog, unavailable entries
// included, so the home screen can render every card
func getAllServices(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"services": bookingEngine.Services(),
	})
}

// getService returns a specific service by ID
func getService(c *gin.Context) {
	svc, ok := bookingEngine.Service(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "The requested service does not exist",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": svc})
}

// checkServiceAvailability is the gate the booking screen calls before
// opening the form. Each unavailable state maps to its own error dialog.
func checkServiceAvailability(c *gin.Context) {
	svc, ok := bookingEngine.Service(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Service not found",
			"message": "The requested service does not exist",
		})
		return
	}

	switch svc.Status {
	case models.ServiceStatusActive:
		c.JSON(http.StatusOK, gin.H{
			"available": true,
			"service":   svc,
		})
	case models.ServiceStatusInactive:
		c.JSON(http.StatusConflict, gin.H{
			"available": false,
			"error":     "Service Inactive",
			"message":   "This service is temporarily unavailable. Please check back later.",
		})
	case models.ServiceStatusDbError:
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"available": false,
			"error":     "System Error",
			"message":   "We could not reach the service directory. Please try again.",
		})
	case models.ServiceStatusDeleted:
		c.JSON(http.StatusGone, gin.H{
			"available": false,
			"error":     "Service Deleted",
			"message":   "This service is no longer offered in your kampung.",
		})
	}
}
