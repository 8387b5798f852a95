package models

import (
	"github.com/shopspring/decimal"
)

// ServiceType represents the kind of local service offered in the kampung
type ServiceType string

const (
	ServiceTypeFoodDelivery  ServiceType = "food_delivery"
	ServiceTypeHouseCleaning ServiceType = "house_cleaning"
	ServiceTypeShopping      ServiceType = "shopping"
	ServiceTypeClinicEscort  ServiceType = "clinic_escort"
)

// ServiceStatus represents the availability state of a catalog entry
type ServiceStatus string

const (
	ServiceStatusActive   ServiceStatus = "active"
	ServiceStatusInactive ServiceStatus = "inactive"
	ServiceStatusDeleted  ServiceStatus = "deleted"
	ServiceStatusDbError  ServiceStatus = "db_error"
)

// Service represents a bookable service in the catalog.
// Catalog entries are seeded at process start and never mutated.
type Service struct {
	ID          string          `json:"id"`
	Type        ServiceType     `json:"type"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url"`
	Status      ServiceStatus   `json:"status"`
}
