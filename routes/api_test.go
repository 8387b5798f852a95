package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"kampung-service-server/clock"
	"kampung-service-server/config"
	"kampung-service-server/engine"
	"kampung-service-server/jobs"
	"kampung-service-server/middleware"
	"kampung-service-server/models"
	"kampung-service-server/pipeline"
	"kampung-service-server/store"
	ws "kampung-service-server/websocket"
)

// settle is long enough for any three-stage pipeline to resolve on the
// fake clock (3 x the default 1200ms stage delay)
const settle = 4 * 1200 * time.Millisecond

func newTestRouter(t *testing.T) (*gin.Engine, *clock.Fake) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.Load()

	clk := clock.NewFake()
	catalog := store.NewCatalog([]models.Service{
		{ID: "s1", Type: models.ServiceTypeFoodDelivery, Title: "Food Delivery", Price: decimal.NewFromFloat(5.00), Status: models.ServiceStatusActive},
		{ID: "s2", Type: models.ServiceTypeHouseCleaning, Title: "House Cleaning", Price: decimal.NewFromFloat(25.00), Status: models.ServiceStatusInactive},
		{ID: "s3", Type: models.ServiceTypeShopping, Title: "Grocery Shopping", Price: decimal.NewFromFloat(8.00), Status: models.ServiceStatusDbError},
		{ID: "s4", Type: models.ServiceTypeClinicEscort, Title: "Clinic Escort", Price: decimal.NewFromFloat(15.00), Status: models.ServiceStatusDeleted},
	})
	workers := store.NewWorkerDirectory([]models.Worker{
		{ID: "w1", Name: "Ahmad bin Ismail", Rating: 4.8, Status: models.WorkerStatusAvailable},
		{ID: "w2", Name: "Siti Rohani", Rating: 4.9, Status: models.WorkerStatusBusy},
	})
	users := store.NewUserDirectory([]models.User{
		{ID: "user-001", FullName: "John Doe", Village: "Kampung Losong"},
	})

	n := 0
	bookings := store.NewBookingStore(func() string {
		n++
		return fmt.Sprintf("BK-%04d", n)
	})
	eng := engine.New(catalog, bookings, clk, "w1")

	pushHub := ws.NewHub()
	go pushHub.Run()

	Init(Deps{
		Engine:  eng,
		Runner:  pipeline.NewRunner(clk),
		Hub:     pushHub,
		Tracker: jobs.NewTrackingJob(clk, eng, pushHub, config.AppConfig.Tracking),
		Users:   users,
		Workers: workers,
	})

	router := gin.New()
	api := router.Group("/api/v1")

	RegisterAuthRoutes(api.Group("/auth"))

	services := api.Group("/services")
	services.Use(middleware.AuthMiddleware())
	RegisterServiceRoutes(services)

	bookingRoutes := api.Group("/bookings")
	bookingRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleResident))
	RegisterBookingRoutes(bookingRoutes)

	workerRoutes := api.Group("/worker")
	workerRoutes.Use(middleware.AuthMiddleware(), middleware.RequireRole(models.RoleWorker))
	RegisterWorkerRoutes(workerRoutes)

	shared := api.Group("")
	shared.Use(middleware.AuthMiddleware())
	RegisterWorkerDirectoryRoutes(shared)

	return router, clk
}

func authToken(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := generateToken(userID, role)
	if err != nil {
		t.Fatalf("generateToken failed: %v", err)
	}
	return token
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]interface{}
	if w.Body.Len() > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal response %q: %v", w.Body.String(), err)
		}
	}
	return w.Code, resp
}

func bookingField(t *testing.T, resp map[string]interface{}, field string) interface{} {
	t.Helper()
	booking, ok := resp["booking"].(map[string]interface{})
	if !ok {
		t.Fatalf("response has no booking object: %v", resp)
	}
	return booking[field]
}

func createBookingBody(serviceID string) map[string]interface{} {
	return map[string]interface{}{
		"service_id": serviceID,
		"date":       "2025-01-02",
		"time":       "12:30",
		"full_name":  "John Doe",
		"phone":      "012-3456789",
		"address":    "No. 12, Lorong Masjid, Kampung Losong",
	}
}

func paymentBody(outcome string) map[string]interface{} {
	return map[string]interface{}{
		"card_number": "4111111111111111",
		"expiry":      "12/26",
		"cvv":         "123",
		"outcome":     outcome,
	}
}

func TestLoginIssuesToken(t *testing.T) {
	router, _ := newTestRouter(t)

	code, resp := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"user_id": "user-001",
		"role":    "resident",
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %v", code, resp)
	}
	if token, _ := resp["token"].(string); token == "" {
		t.Fatalf("expected a token in the response")
	}

	code, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"user_id": "w1",
		"role":    "worker",
	})
	if code != http.StatusOK {
		t.Fatalf("expected 200 for worker login, got %d", code)
	}
}

func TestLoginRejectsUnknownIdentity(t *testing.T) {
	router, _ := newTestRouter(t)

	code, _ := doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"user_id": "nobody",
		"role":    "resident",
	})
	if code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", code)
	}

	code, _ = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"user_id": "user-001",
		"role":    "admin",
	})
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an unknown role, got %d", code)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router, _ := newTestRouter(t)

	code, _ := doJSON(t, router, http.MethodGet, "/api/v1/bookings", "", nil)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d", code)
	}
}

func TestRoleSeparation(t *testing.T) {
	router, _ := newTestRouter(t)
	resident := authToken(t, "user-001", models.RoleResident)
	worker := authToken(t, "w1", models.RoleWorker)

	if code, _ := doJSON(t, router, http.MethodGet, "/api/v1/worker/jobs", resident, nil); code != http.StatusForbidden {
		t.Fatalf("expected 403 for resident on worker routes, got %d", code)
	}
	if code, _ := doJSON(t, router, http.MethodGet, "/api/v1/bookings", worker, nil); code != http.StatusForbidden {
		t.Fatalf("expected 403 for worker on resident routes, got %d", code)
	}
}
