package checkin

import (
	"math"
	"testing"

	"staffloop/models"
)

func TestHaversineMeters(t *testing.T) {
	// Tokyo Station to Shinjuku Station, roughly 6.2 km
	got := HaversineMeters(35.6812, 139.7671, 35.6896, 139.7006)
	if math.Abs(got-6200) > 300 {
		t.Fatalf("distance %f, expected ~6200m", got)
	}

	if d := HaversineMeters(35.0, 139.0, 35.0, 139.0); d != 0 {
		t.Fatalf("identical points should be 0m apart, got %f", d)
	}
}

func TestWithinGeofence(t *testing.T) {
	fence := models.Geofence{Latitude: 35.6812, Longitude: 139.7671, RadiusMeters: 200}

	if !WithinGeofence(fence, 35.6813, 139.7672) {
		t.Fatalf("point a few meters away rejected")
	}
	if WithinGeofence(fence, 35.6896, 139.7006) {
		t.Fatalf("point kilometers away accepted")
	}

	// unconfigured geofence always passes
	if !WithinGeofence(models.Geofence{}, 0, 0) {
		t.Fatalf("zero-radius geofence should not gate check-in")
	}
}
