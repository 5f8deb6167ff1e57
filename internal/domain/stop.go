package domain

import "time"

type StopType string

const (
	StopTypePickup  StopType = "pickup"
	StopTypeDropoff StopType = "dropoff"
)

// Represents a single pickup or dropoff within a booking.
//
// IDs are assigned by the caller and never regenerated here. Passenger
// fields (Name, Phone, Instructions) are only meaningful on pickups and
// play no part in sequencing; they are carried through for output.
type Stop struct {
	ID       string
	Location Location
	StopType StopType

	Name         string
	Phone        string
	Instructions string

	// PickupStopID references the pickup in the same booking whose
	// passenger this dropoff delivers. Empty on pickups.
	PickupStopID string

	// DateTime is the earliest request time for a passenger. Set only on
	// pickup stops; nil means "ASAP".
	DateTime *time.Time

	// BookingSegmentID is assigned by the dispatch API once the stop has
	// been accepted remotely; empty until then.
	BookingSegmentID string
}

func (s Stop) IsPickup() bool  { return s.StopType == StopTypePickup }
func (s Stop) IsDropoff() bool { return s.StopType == StopTypeDropoff }

// SequencedStop is a stop annotated with its owning booking identity and
// that booking's original position in the journey's booking list. The
// annotation is what lets the sequencer interleave stops from different
// bookings while keeping deterministic tie-breaks.
type SequencedStop struct {
	Stop
	BookingID         string
	BookingInputIndex int
}
