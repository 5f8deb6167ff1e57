package services

import "fmt"

// Deterministic stand-ins for identifiers the dispatch API has not
// assigned yet. The exact shape is part of the preview contract with the
// downstream consumer, so both live here as named functions rather than
// inline interpolation.

func PlaceholderRequestID(bookingID string) string {
	return fmt.Sprintf("(placeholder_request_id_for_%s)", shortID(bookingID))
}

func PlaceholderSegmentID(stopID string) string {
	return fmt.Sprintf("(placeholder_bookingsegment_id_for_%s)", shortID(stopID))
}

func shortID(id string) string {
	if len(id) > 4 {
		return id[:4]
	}
	return id
}
