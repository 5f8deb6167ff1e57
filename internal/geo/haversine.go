// Package geo provides the straight-line distance used by the stop
// sequencer. Road routing is deliberately out of scope; at per-journey
// stop counts the great-circle approximation is enough to pick a
// plausible visiting order.
package geo

import (
	"journey-dispatch-service/internal/domain"
	"math"
)

// EarthRadiusMeters is the mean radius of Earth (WGS-84).
const EarthRadiusMeters = 6_371_000.0

// DistanceMeters returns the great-circle distance between two locations
// using the haversine formula. Ungeocoded (0,0) inputs produce a
// numerically valid but physically meaningless result; callers are
// expected to geocode stops before sequencing.
func DistanceMeters(a, b domain.Location) float64 {
	dLat := degToRad(b.Lat - a.Lat)
	dLng := degToRad(b.Lng - a.Lng)

	sinLat := math.Sin(dLat / 2)
	sinLng := math.Sin(dLng / 2)

	h := sinLat*sinLat +
		math.Cos(degToRad(a.Lat))*math.Cos(degToRad(b.Lat))*sinLng*sinLng

	return 2 * EarthRadiusMeters * math.Asin(math.Sqrt(h))
}

func degToRad(deg float64) float64 {
	return deg * (math.Pi / 180.0)
}
