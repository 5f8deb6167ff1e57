package services

import (
	"context"
	"fmt"
	"journey-dispatch-service/internal/domain"
	"journey-dispatch-service/internal/platform/obs"
	"journey-dispatch-service/internal/ports"
	"time"
)

// SubmitService runs the pipeline for real: assemble the envelope, send
// it to the dispatch API, fold the server-assigned identifiers back into
// the journey, and persist the result so later edits re-sequence with
// real ids instead of placeholders.
type SubmitService struct {
	Repo     ports.JourneyRepository
	Dispatch ports.DispatchClient
	Now      func() time.Time
}

// Submit returns the journey enriched with server identifiers alongside
// the envelope that was sent. A journey that already carries a
// ServerID is updated remotely rather than re-created.
func (s *SubmitService) Submit(ctx context.Context, journey domain.Journey) (_ *domain.Journey, _ *domain.JourneyEnvelope, err error) {
	defer obs.Time(ctx, "journey.submit")(&err)

	env, err := AssembleEnvelope(journey, s.Now)
	if err != nil {
		return nil, nil, fmt.Errorf("submit journey %q: %w", journey.ID, err)
	}

	var result *ports.DispatchResult
	if journey.IsUpdate() {
		result, err = s.Dispatch.UpdateJourney(ctx, journey.ServerID, env)
	} else {
		result, err = s.Dispatch.SubmitJourney(ctx, env)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("submit journey %q: dispatch: %w", journey.ID, err)
	}

	accepted := applyDispatchResult(journey, result)

	if s.Repo != nil {
		if err := s.Repo.SaveJourney(ctx, &accepted); err != nil {
			return nil, nil, fmt.Errorf("submit journey %q: save: %w", journey.ID, err)
		}
	}

	return &accepted, env, nil
}

// applyDispatchResult copies server-assigned identifiers onto a fresh
// journey value; the caller's snapshot is left untouched. Identifiers
// already present are only overwritten when the API returned a value,
// so re-submissions keep known ids verbatim.
func applyDispatchResult(journey domain.Journey, result *ports.DispatchResult) domain.Journey {
	out := journey
	if result.JourneyServerID != "" {
		out.ServerID = result.JourneyServerID
	}

	out.Bookings = make([]domain.Booking, len(journey.Bookings))
	for i, b := range journey.Bookings {
		nb := b
		if id, ok := result.RequestIDs[b.ID]; ok && id != "" {
			nb.ServerID = id
		}

		nb.Stops = make([]domain.Stop, len(b.Stops))
		for j, st := range b.Stops {
			ns := st
			if id, ok := result.BookingSegmentIDs[st.ID]; ok && id != "" {
				ns.BookingSegmentID = id
			}
			nb.Stops[j] = ns
		}
		out.Bookings[i] = nb
	}

	return out
}
