package models

// Roles recognized by the auth middleware
const (
	RoleResident = "resident"
	RoleWorker   = "worker"
)

// User represents a kampung resident account. Seeded demo data only.
type User struct {
	ID       string `json:"id"`
	FullName string `json:"full_name"`
	Village  string `json:"village"`
}
