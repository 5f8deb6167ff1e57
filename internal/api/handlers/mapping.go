package handlers

import (
	"fmt"
	"journey-dispatch-service/internal/api/dto"
	"journey-dispatch-service/internal/domain"
	"log"
	"strings"
)

// journeyFromRequest validates a request body and maps it onto the
// domain snapshot the pipeline consumes. Structural problems (missing
// ids, broken pickup references) are rejected here so the core only ever
// sees the invariants it documents.
func journeyFromRequest(req dto.JourneyRequest) (domain.Journey, error) {
	if strings.TrimSpace(req.JourneyID) == "" {
		return domain.Journey{}, fmt.Errorf("journey_id is required")
	}
	if len(req.Bookings) == 0 {
		return domain.Journey{}, fmt.Errorf("journey must contain at least one booking")
	}

	journey := domain.Journey{
		ID:               req.JourneyID,
		ServerID:         req.ServerID,
		MessagingEnabled: req.MessagingEnabled,
		Keyless:          req.Keyless,
		Delete:           req.Delete,
		Bookings:         make([]domain.Booking, 0, len(req.Bookings)),
	}

	seenStops := make(map[string]struct{})
	for bi, b := range req.Bookings {
		if strings.TrimSpace(b.BookingID) == "" {
			return domain.Journey{}, fmt.Errorf("booking at index %d has no booking_id", bi)
		}
		if len(b.Stops) == 0 {
			return domain.Journey{}, fmt.Errorf("booking %q has no stops", b.BookingID)
		}

		booking := domain.Booking{
			ID:       b.BookingID,
			ServerID: b.ServerID,
			HoldOn:   b.HoldOn,
			Stops:    make([]domain.Stop, 0, len(b.Stops)),
		}

		pickupIDs := make(map[string]struct{})
		for _, s := range b.Stops {
			if strings.TrimSpace(s.StopID) == "" {
				return domain.Journey{}, fmt.Errorf("booking %q has a stop with no stop_id", b.BookingID)
			}
			if _, dup := seenStops[s.StopID]; dup {
				return domain.Journey{}, fmt.Errorf("duplicate stop_id %q", s.StopID)
			}
			seenStops[s.StopID] = struct{}{}

			loc := domain.Location{Address: s.Address, Lat: s.Lat, Lng: s.Lng}
			if loc.IsZero() {
				// Sequencing still runs on (0,0) sentinels; the order is
				// just meaningless until the UI geocodes the stop.
				log.Printf("journey %q: stop %q is not geocoded", req.JourneyID, s.StopID)
			}

			st := domain.StopType(s.StopType)
			switch st {
			case domain.StopTypePickup:
				pickupIDs[s.StopID] = struct{}{}
			case domain.StopTypeDropoff:
				if s.PickupStopID == "" {
					return domain.Journey{}, fmt.Errorf("dropoff %q has no pickup_stop_id", s.StopID)
				}
			default:
				return domain.Journey{}, fmt.Errorf("stop %q has invalid stop_type %q", s.StopID, s.StopType)
			}

			booking.Stops = append(booking.Stops, domain.Stop{
				ID:               s.StopID,
				Location:         loc,
				StopType:         st,
				Name:             s.Name,
				Phone:            s.Phone,
				Instructions:     s.Instructions,
				PickupStopID:     s.PickupStopID,
				DateTime:         s.DateTime,
				BookingSegmentID: s.SegmentID,
			})
		}

		// A dropoff referencing a pickup outside its own booking is
		// malformed upstream data; the sequencer still terminates on it
		// via the orphan fallback, so log rather than reject.
		for _, s := range booking.Stops {
			if s.IsDropoff() {
				if _, ok := pickupIDs[s.PickupStopID]; !ok {
					log.Printf(
						"journey %q: dropoff %q references pickup %q outside booking %q",
						req.JourneyID, s.ID, s.PickupStopID, b.BookingID,
					)
				}
			}
		}

		journey.Bookings = append(journey.Bookings, booking)
	}

	return journey, nil
}

func envelopeToResponse(env *domain.JourneyEnvelope) dto.EnvelopeResponse {
	out := dto.EnvelopeResponse{
		JourneyServerID:  env.JourneyServerID,
		IsUpdate:         env.IsUpdate,
		MessagingEnabled: env.MessagingEnabled,
		Keyless:          env.Keyless,
		Delete:           env.Delete,
		Stops:            make([]dto.StopPayloadResponse, 0, len(env.Stops)),
	}

	for _, s := range env.Stops {
		out.Stops = append(out.Stops, dto.StopPayloadResponse{
			StopID:           s.StopID,
			BookingID:        s.BookingID,
			RequestID:        s.RequestID,
			BookingSegmentID: s.BookingSegmentID,
			StopType:         string(s.StopType),
			IsDestination:    s.IsDestination,
			Address:          s.Location.Address,
			Lat:              s.Location.Lat,
			Lng:              s.Location.Lng,
			Name:             s.Name,
			Phone:            s.Phone,
			Instructions:     s.Instructions,
			PlannedDate:      s.PlannedDate,
			DistanceMeters:   s.DistanceMeters,
		})
	}

	return out
}

func journeyToSummary(j *domain.Journey) dto.JourneySummaryResponse {
	return dto.JourneySummaryResponse{
		JourneyID:        j.ID,
		JourneyServerID:  j.ServerID,
		MessagingEnabled: j.MessagingEnabled,
		Keyless:          j.Keyless,
		Delete:           j.Delete,
	}
}
