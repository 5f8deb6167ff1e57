package services

import "journey-dispatch-service/internal/domain"

// Flatten restructures a journey's bookings into one collection of stops,
// each annotated with its owning booking and that booking's original
// input position. The output order (bookings in input order, stops in
// within-booking order) is the "encounter order" the sequencer uses for
// deterministic tie-breaks.
//
// Pure restructuring: every stop appears exactly once and the input is
// never mutated.
func Flatten(bookings []domain.Booking) []domain.SequencedStop {
	n := 0
	for _, b := range bookings {
		n += len(b.Stops)
	}

	out := make([]domain.SequencedStop, 0, n)
	for i, b := range bookings {
		for _, s := range b.Stops {
			out = append(out, domain.SequencedStop{
				Stop:              s,
				BookingID:         b.ID,
				BookingInputIndex: i,
			})
		}
	}
	return out
}
