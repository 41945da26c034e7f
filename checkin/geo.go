package checkin

import (
	"math"

	"staffloop/models"
)

const earthRadiusMeters = 6371000

// HaversineMeters is the great-circle distance between two coordinates.
func HaversineMeters(lat1, lon1, lat2, lon2 float64) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return earthRadiusMeters * c
}

// WithinGeofence reports whether a position is inside the event boundary.
// A zero-radius geofence means no boundary was configured and always passes.
func WithinGeofence(g models.Geofence, lat, lon float64) bool {
	if g.RadiusMeters <= 0 {
		return true
	}
	return HaversineMeters(g.Latitude, g.Longitude, lat, lon) <= float64(g.RadiusMeters)
}
