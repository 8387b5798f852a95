package utils

import (
	"math"
	"time"
)

// Location represents a geographical coordinate
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HaversineDistance calculates the distance between two points on Earth using the Haversine formula
// Returns distance in kilometers
func HaversineDistance(lat1, lon1, lat2, lon2 float64) float64 {
	const R = 6371 // Earth's radius in kilometers

	lat1Rad := lat1 * math.Pi / 180
	lon1Rad := lon1 * math.Pi / 180
	lat2Rad := lat2 * math.Pi / 180
	lon2Rad := lon2 * math.Pi / 180

	deltaLat := lat2Rad - lat1Rad
	deltaLon := lon2Rad - lon1Rad

	a := math.Sin(deltaLat/2)*math.Sin(deltaLat/2) +
		math.Cos(lat1Rad)*math.Cos(lat2Rad)*
			math.Sin(deltaLon/2)*math.Sin(deltaLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return R * c
}

// Interpolate returns the point a fraction t of the way from a to b.
// t is clamped to [0, 1]. Linear interpolation is accurate enough at
// kampung scale.
func Interpolate(a, b Location, t float64) Location {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return Location{
		Latitude:  a.Latitude + (b.Latitude-a.Latitude)*t,
		Longitude: a.Longitude + (b.Longitude-a.Longitude)*t,
	}
}

// CalculateETA estimates the time of arrival for a worker
// This is a simplified calculation - in production, you might want to use a routing API
func CalculateETA(workerLocation, requestLocation Location, averageSpeed float64) time.Duration {
	distance := HaversineDistance(
		workerLocation.Latitude, workerLocation.Longitude,
		requestLocation.Latitude, requestLocation.Longitude,
	)

	// Convert distance to time (distance in km, speed in km/h)
	timeHours := distance / averageSpeed
	timeMinutes := int(timeHours * 60)

	return time.Duration(timeMinutes) * time.Minute
}

// IsLocationValid checks if the provided coordinates are valid
func IsLocationValid(lat, lng float64) bool {
	return lat >= -90 && lat <= 90 && lng >= -180 && lng <= 180
}
