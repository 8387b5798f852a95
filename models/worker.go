package models

// WorkerStatus represents a worker's availability
type WorkerStatus string

const (
	WorkerStatusAvailable WorkerStatus = "available"
	WorkerStatusBusy      WorkerStatus = "busy"
	WorkerStatusOffline   WorkerStatus = "offline"
)

// Worker represents a service worker profile. Read-only reference data for
// this prototype; availability logic is out of scope.
type Worker struct {
	ID     string       `json:"id"`
	Name   string       `json:"name"`
	Rating float64      `json:"rating"`
	Status WorkerStatus `json:"status"`
	Photo  string       `json:"photo"`
}
