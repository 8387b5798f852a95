package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"kampung-service-server/clock"
	"kampung-service-server/config"
	"kampung-service-server/engine"
	"kampung-service-server/jobs"
	"kampung-service-server/middleware"
	"kampung-service-server/models"
	"kampung-service-server/pipeline"
	"kampung-service-server/routes"
	"kampung-service-server/store"
	ws "kampung-service-server/websocket"
)

// mockWorkerID is the worker every paid booking gets assigned to
const mockWorkerID = "w1"

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Load configuration
	config.Load()

	clk := clock.NewReal()

	// Seed the in-memory state
	catalog := store.NewCatalog(seedServices())
	workers := store.NewWorkerDirectory(seedWorkers())
	users := store.NewUserDirectory(seedUsers())
	bookings := store.NewBookingStore(store.RandomBookingID)

	bookingEngine := engine.New(catalog, bookings, clk, mockWorkerID)
	inProgress := seedBookings(bookings, clk)

	// WebSocket hub for push updates
	hub := ws.NewHub()
	go hub.Run()

	// Pipeline runner and tracking job share the process clock
	runner := pipeline.NewRunner(clk)
	tracker := jobs.NewTrackingJob(clk, bookingEngine, hub, config.AppConfig.Tracking)
	tracker.Start()
	defer tracker.Stop()

	// The seeded trip is already underway when the server comes up
	tracker.Track(inProgress)

	routes.Init(routes.Deps{
		Engine:  bookingEngine,
		Runner:  runner,
		Hub:     hub,
		Tracker: tracker,
		Users:   users,
		Workers: workers,
	})

	// Set Gin mode
	if config.AppConfig.Server.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Disable automatic redirects for trailing slashes
	router.RedirectTrailingSlash = false
	router.RedirectFixedPath = false

	// Security headers (must be first)
	router.Use(middleware.SecurityHeadersMiddleware())

	// Rate limiting
	router.Use(middleware.RateLimitMiddleware())

	// CORS
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:8081"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Kampung Service Server is running",
			"time":    time.Now().UTC(),
		})
	})

	// API v1 routes
	api := router.Group("/api/v1")
	{
		auth := api.Group("/auth")
		routes.RegisterAuthRoutes(auth)

		services := api.Group("/services")
		services.Use(middleware.AuthMiddleware())
		routes.RegisterServiceRoutes(services)

		bookingRoutes := api.Group("/bookings")
		bookingRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleResident))
		routes.RegisterBookingRoutes(bookingRoutes)

		workerRoutes := api.Group("/worker")
		workerRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleWorker))
		routes.RegisterWorkerRoutes(workerRoutes)

		shared := api.Group("")
		shared.Use(middleware.AuthMiddleware())
		routes.RegisterWorkerDirectoryRoutes(shared)

		routes.RegisterWebSocketRoutes(api)
	}

	port := config.AppConfig.Server.Port
	log.Printf("🚀 Kampung Service Server listening on port %s", port)
	if err := router.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
