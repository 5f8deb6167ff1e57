package dispatch

import (
	"context"

	"journey-dispatch-service/internal/domain"
	"journey-dispatch-service/internal/ports"
)

// MockDispatchClient assigns deterministic server identifiers without
// any network traffic. Used by tests and local runs against no real
// dispatch backend. It holds no mutable state, so a single instance is
// safe to share across goroutines.
type MockDispatchClient struct {
	// Err, when set, is returned by both operations.
	Err error
}

func (m *MockDispatchClient) SubmitJourney(ctx context.Context, envelope *domain.JourneyEnvelope) (*ports.DispatchResult, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	return m.result(journeyIDFor(envelope), envelope), nil
}

func (m *MockDispatchClient) UpdateJourney(ctx context.Context, journeyServerID string, envelope *domain.JourneyEnvelope) (*ports.DispatchResult, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	return m.result(journeyServerID, envelope), nil
}

// journeyIDFor derives the mock server id from the envelope itself so
// repeated submissions of the same journey get the same id.
func journeyIDFor(envelope *domain.JourneyEnvelope) string {
	for _, s := range envelope.Stops {
		return "jrn-" + s.BookingID
	}
	return "jrn-empty"
}

func (m *MockDispatchClient) result(journeyID string, envelope *domain.JourneyEnvelope) *ports.DispatchResult {
	out := &ports.DispatchResult{
		JourneyServerID:   journeyID,
		RequestIDs:        make(map[string]string),
		BookingSegmentIDs: make(map[string]string),
	}

	for _, s := range envelope.Stops {
		if s.IsDestination {
			if _, ok := out.RequestIDs[s.BookingID]; !ok {
				out.RequestIDs[s.BookingID] = "req-" + s.BookingID
			}
			continue
		}
		out.BookingSegmentIDs[s.StopID] = "seg-" + s.StopID
	}

	return out
}
