package services

import (
	"fmt"
	"journey-dispatch-service/internal/domain"
	"journey-dispatch-service/internal/geo"
	"log"
	"time"
)

// Synthesize walks an ordered stop sequence and emits the per-stop
// payload entries the dispatch API expects: booking/segment identity,
// destination flag, planned timestamp, and straight-line leg distance.
//
// now supplies the wall-clock fallback for fully-ASAP journeys; nil
// defaults to time.Now. It is the only non-deterministic input.
//
// Stops and bookings lacking server-assigned identifiers get
// deterministic placeholders so previews can run before the dispatch API
// has accepted anything; the gap is logged since real submissions are
// expected to carry real ids on re-sequencing.
func Synthesize(
	ordered []domain.SequencedStop,
	bookingsByID map[string]domain.Booking,
	now func() time.Time,
) ([]domain.StopPayload, error) {
	// The sequencer's precondition normally guarantees this, but the two
	// stages can be driven independently.
	hasPickup := false
	for _, s := range ordered {
		if s.IsPickup() {
			hasPickup = true
			break
		}
	}
	if !hasPickup {
		return nil, fmt.Errorf("synthesize payload: %w", ErrNoPickup)
	}

	if now == nil {
		now = time.Now
	}

	payloads := make([]domain.StopPayload, 0, len(ordered))
	for i, s := range ordered {
		booking := bookingsByID[s.BookingID]

		p := domain.StopPayload{
			StopID:        s.ID,
			BookingID:     s.BookingID,
			StopType:      s.StopType,
			IsDestination: isDestination(s, booking),
			Location:      s.Location,
			Name:          s.Name,
			Phone:         s.Phone,
			Instructions:  s.Instructions,
			PlannedDate:   plannedDate(s, booking, bookingsByID, now),
		}

		if i < len(ordered)-1 {
			p.DistanceMeters = geo.DistanceMeters(s.Location, ordered[i+1].Location)
		}

		// The dispatch API addresses a booking's destination stop by
		// request id and every other stop by booking-segment id.
		if p.IsDestination {
			p.RequestID = booking.ServerID
			if p.RequestID == "" {
				p.RequestID = PlaceholderRequestID(booking.ID)
				log.Printf("synthesize: no request id yet booking_id=%s, using placeholder", booking.ID)
			}
		} else {
			p.BookingSegmentID = s.BookingSegmentID
			if p.BookingSegmentID == "" {
				p.BookingSegmentID = PlaceholderSegmentID(s.ID)
				log.Printf("synthesize: no bookingsegment id yet stop_id=%s, using placeholder", s.ID)
			}
		}

		payloads = append(payloads, p)
	}

	return payloads, nil
}

// A stop is its booking's destination when it is the structurally last
// stop of that booking, regardless of where the sequencer placed it in
// the journey-wide order.
func isDestination(s domain.SequencedStop, booking domain.Booking) bool {
	last, ok := booking.LastStop()
	return ok && last.ID == s.ID
}

// plannedDate resolves a stop's planned timestamp through a fixed
// fallback chain: the stop's own time (pickups), then the referenced
// pickup's time looked up across all bookings (dropoffs), then the
// owning booking's first dated pickup, then the wall clock.
func plannedDate(
	s domain.SequencedStop,
	booking domain.Booking,
	bookingsByID map[string]domain.Booking,
	now func() time.Time,
) time.Time {
	if s.IsPickup() && s.DateTime != nil {
		return *s.DateTime
	}

	if s.IsDropoff() && s.PickupStopID != "" {
		if pickup, ok := findStop(bookingsByID, s.PickupStopID); ok && pickup.DateTime != nil {
			return *pickup.DateTime
		}
	}

	if pickup, ok := booking.FirstDatedPickup(); ok {
		return *pickup.DateTime
	}

	return now()
}

func findStop(bookingsByID map[string]domain.Booking, stopID string) (domain.Stop, bool) {
	for _, b := range bookingsByID {
		for _, s := range b.Stops {
			if s.ID == stopID {
				return s, true
			}
		}
	}
	return domain.Stop{}, false
}
