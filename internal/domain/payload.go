package domain

import "time"

// One entry of the dispatch request body, emitted per sequenced stop.
//
// Exactly one of RequestID / BookingSegmentID is set: the dispatch API
// identifies a booking's destination stop by request id and every other
// stop by booking-segment id. Until the API has assigned real values,
// both fields fall back to deterministic placeholders.
type StopPayload struct {
	StopID    string
	BookingID string

	RequestID        string
	BookingSegmentID string

	StopType      StopType
	IsDestination bool

	Location     Location
	Name         string
	Phone        string
	Instructions string

	PlannedDate time.Time

	// DistanceMeters is the straight-line leg distance to the next stop
	// in the visiting order, 0 for the last stop.
	DistanceMeters float64
}

// Top-level request structure submitted to the dispatch API.
type JourneyEnvelope struct {
	// JourneyServerID is set when updating a previously published
	// journey; empty for a new submission.
	JourneyServerID string
	IsUpdate        bool

	MessagingEnabled bool
	Keyless          bool
	Delete           bool

	Stops []StopPayload
}
