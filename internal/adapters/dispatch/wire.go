package dispatch

import (
	"journey-dispatch-service/internal/domain"
	"journey-dispatch-service/internal/ports"
	"time"
)

// Wire-format structs for the dispatch API. The identifier key of each
// stop switches between request_id and bookingsegment_id depending on
// the destination flag; omitempty on the unset one produces the field
// switch the API contract requires.

type wireStop struct {
	StopID           string  `json:"stop_id"`
	BookingID        string  `json:"booking_id"`
	RequestID        string  `json:"request_id,omitempty"`
	BookingSegmentID string  `json:"bookingsegment_id,omitempty"`
	StopType         string  `json:"stop_type"`
	IsDestination    bool    `json:"is_destination"`
	Address          string  `json:"address"`
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	Name             string  `json:"name,omitempty"`
	Phone            string  `json:"phone,omitempty"`
	Instructions     string  `json:"instructions,omitempty"`
	PlannedDate      string  `json:"planned_date"`
	Distance         float64 `json:"distance"`
}

type wireEnvelope struct {
	JourneyID        string     `json:"journey_id,omitempty"`
	MessagingEnabled bool       `json:"messaging_enabled"`
	Keyless          bool       `json:"keyless"`
	Delete           bool       `json:"delete"`
	Stops            []wireStop `json:"stops"`
}

type wireResult struct {
	JourneyID string `json:"journey_id"`
	Bookings  []struct {
		BookingID string `json:"booking_id"`
		RequestID string `json:"request_id"`
	} `json:"bookings"`
	Segments []struct {
		StopID           string `json:"stop_id"`
		BookingSegmentID string `json:"bookingsegment_id"`
	} `json:"segments"`
}

func toWire(env *domain.JourneyEnvelope) *wireEnvelope {
	out := &wireEnvelope{
		JourneyID:        env.JourneyServerID,
		MessagingEnabled: env.MessagingEnabled,
		Keyless:          env.Keyless,
		Delete:           env.Delete,
		Stops:            make([]wireStop, 0, len(env.Stops)),
	}

	for _, s := range env.Stops {
		out.Stops = append(out.Stops, wireStop{
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
			PlannedDate:      s.PlannedDate.Format(time.RFC3339),
			Distance:         s.DistanceMeters,
		})
	}

	return out
}

func fromWire(w *wireResult) *ports.DispatchResult {
	out := &ports.DispatchResult{
		JourneyServerID:   w.JourneyID,
		RequestIDs:        make(map[string]string, len(w.Bookings)),
		BookingSegmentIDs: make(map[string]string, len(w.Segments)),
	}

	for _, b := range w.Bookings {
		out.RequestIDs[b.BookingID] = b.RequestID
	}
	for _, s := range w.Segments {
		out.BookingSegmentIDs[s.StopID] = s.BookingSegmentID
	}

	return out
}
