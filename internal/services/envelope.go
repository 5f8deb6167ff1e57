package services

import (
	"fmt"
	"journey-dispatch-service/internal/domain"
	"time"
)

// AssembleEnvelope runs the full pipeline for one journey: flatten the
// bookings, derive the visiting order, synthesize per-stop payloads, and
// wrap them in the top-level dispatch request structure.
//
// The journey is taken as an immutable snapshot; the envelope is a fresh
// structure and no caller-owned data is mutated.
func AssembleEnvelope(journey domain.Journey, now func() time.Time) (*domain.JourneyEnvelope, error) {
	ordered, err := Sequence(Flatten(journey.Bookings))
	if err != nil {
		return nil, fmt.Errorf("assemble envelope: journey %q: %w", journey.ID, err)
	}

	payloads, err := Synthesize(ordered, journey.BookingsByID(), now)
	if err != nil {
		return nil, fmt.Errorf("assemble envelope: journey %q: %w", journey.ID, err)
	}

	return &domain.JourneyEnvelope{
		JourneyServerID:  journey.ServerID,
		IsUpdate:         journey.IsUpdate(),
		MessagingEnabled: journey.MessagingEnabled,
		Keyless:          journey.Keyless,
		Delete:           journey.Delete,
		Stops:            payloads,
	}, nil
}
