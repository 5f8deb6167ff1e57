package domain

// One passenger (or hold-on wrapper) unit within a journey, holding its
// stops in original input order. That order decides which stop carries
// the destination flag; the visiting order across bookings is derived by
// the sequencer.
type Booking struct {
	ID string

	// ServerID is the request identifier assigned by the dispatch API
	// once the booking has been accepted; empty for unpublished bookings.
	ServerID string

	// HoldOn marks a two-stop booking that wraps the whole journey rather
	// than representing a passenger trip. Hold-on bookings sequence like
	// any other booking.
	HoldOn bool

	Stops []Stop
}

// LastStop returns the structurally last stop of the booking, the one
// tagged as the booking's destination in dispatch payloads. ok is false
// for a booking with no stops.
func (b Booking) LastStop() (Stop, bool) {
	if len(b.Stops) == 0 {
		return Stop{}, false
	}
	return b.Stops[len(b.Stops)-1], true
}

// FirstDatedPickup returns the first pickup stop in input order that
// carries an explicit DateTime, if any.
func (b Booking) FirstDatedPickup() (Stop, bool) {
	for _, s := range b.Stops {
		if s.IsPickup() && s.DateTime != nil {
			return s, true
		}
	}
	return Stop{}, false
}
