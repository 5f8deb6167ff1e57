package domain

// Geocoded address (WGS-84 latitude/longitude).
//
// The core never validates geocoding correctness; (0,0) is a valid but
// physically meaningless sentinel for "not yet geocoded".
type Location struct {
	Address string
	Lat     float64
	Lng     float64
}

// Report whether the location still carries the ungeocoded sentinel.
func (l Location) IsZero() bool { return l.Lat == 0 && l.Lng == 0 }
