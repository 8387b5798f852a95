package utils

import (
	"math"
	"testing"
)

func TestHaversineDistance(t *testing.T) {
	// same point
	if d := HaversineDistance(5.3219, 103.1290, 5.3219, 103.1290); d != 0 {
		t.Fatalf("expected zero distance, got %v", d)
	}

	// one degree of latitude is about 111 km
	d := HaversineDistance(0, 0, 1, 0)
	if math.Abs(d-111.19) > 0.5 {
		t.Fatalf("expected ~111.19 km, got %v", d)
	}
}

func TestInterpolate(t *testing.T) {
	a := Location{Latitude: 0, Longitude: 0}
	b := Location{Latitude: 10, Longitude: 20}

	mid := Interpolate(a, b, 0.5)
	if mid.Latitude != 5 || mid.Longitude != 10 {
		t.Fatalf("unexpected midpoint: %+v", mid)
	}

	// t is clamped
	if got := Interpolate(a, b, -1); got != a {
		t.Fatalf("expected clamp to a, got %+v", got)
	}
	if got := Interpolate(a, b, 2); got != b {
		t.Fatalf("expected clamp to b, got %+v", got)
	}
}

func TestCalculateETA(t *testing.T) {
	here := Location{Latitude: 5.3219, Longitude: 103.1290}
	if eta := CalculateETA(here, here, 30); eta != 0 {
		t.Fatalf("expected zero ETA at the destination, got %v", eta)
	}

	far := Location{Latitude: 5.3219, Longitude: 103.40}
	if eta := CalculateETA(here, far, 30); eta <= 0 {
		t.Fatalf("expected positive ETA, got %v", eta)
	}
}

func TestIsLocationValid(t *testing.T) {
	if !IsLocationValid(5.3219, 103.1290) {
		t.Fatalf("valid coordinates rejected")
	}
	if IsLocationValid(91, 0) || IsLocationValid(0, 181) || IsLocationValid(-91, 0) {
		t.Fatalf("invalid coordinates accepted")
	}
}
