package domain

// The unit submitted to the dispatch API: an ordered list of bookings
// plus journey-level flags. A non-empty ServerID means the journey
// already exists remotely and submissions are updates.
type Journey struct {
	ID       string
	ServerID string

	MessagingEnabled bool
	Keyless          bool
	Delete           bool

	Bookings []Booking
}

// IsUpdate reports whether submitting this journey updates an existing
// remote journey rather than creating a new one.
func (j Journey) IsUpdate() bool { return j.ServerID != "" }

// BookingsByID indexes the journey's bookings by their id.
func (j Journey) BookingsByID() map[string]Booking {
	out := make(map[string]Booking, len(j.Bookings))
	for _, b := range j.Bookings {
		out[b.ID] = b
	}
	return out
}
