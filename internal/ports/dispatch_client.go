package ports

import (
	"context"
	"journey-dispatch-service/internal/domain"
)

// Identifiers assigned by the dispatch API on acceptance. Maps are keyed
// by the client-side booking/stop ids echoed back in the response.
type DispatchResult struct {
	JourneyServerID   string
	RequestIDs        map[string]string
	BookingSegmentIDs map[string]string
}

// Contract for submitting journey envelopes to the remote dispatch API.
type DispatchClient interface {
	// Submit a new journey; the result carries the server-assigned
	// journey, request, and booking-segment identifiers.
	SubmitJourney(ctx context.Context, envelope *domain.JourneyEnvelope) (*DispatchResult, error)

	// Update a previously published journey in place.
	UpdateJourney(ctx context.Context, journeyServerID string, envelope *domain.JourneyEnvelope) (*DispatchResult, error)
}
