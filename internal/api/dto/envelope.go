package dto

import "time"

// Response shapes mirroring the dispatch request body. Exactly one of
// request_id / bookingsegment_id is present per stop; omitempty on the
// unset one implements the identifier field switch the downstream API
// contract requires.

type StopPayloadResponse struct {
	StopID           string    `json:"stop_id"`
	BookingID        string    `json:"booking_id"`
	RequestID        string    `json:"request_id,omitempty"`
	BookingSegmentID string    `json:"bookingsegment_id,omitempty"`
	StopType         string    `json:"stop_type"`
	IsDestination    bool      `json:"is_destination"`
	Address          string    `json:"address"`
	Lat              float64   `json:"lat"`
	Lng              float64   `json:"lng"`
	Name             string    `json:"name,omitempty"`
	Phone            string    `json:"phone,omitempty"`
	Instructions     string    `json:"instructions,omitempty"`
	PlannedDate      time.Time `json:"planned_date"`
	DistanceMeters   float64   `json:"distance"`
}

type EnvelopeResponse struct {
	JourneyServerID  string                `json:"journey_server_id,omitempty"`
	IsUpdate         bool                  `json:"is_update"`
	MessagingEnabled bool                  `json:"messaging_enabled"`
	Keyless          bool                  `json:"keyless"`
	Delete           bool                  `json:"delete"`
	Stops            []StopPayloadResponse `json:"stops"`
}

type SubmitResponse struct {
	JourneyID       string           `json:"journey_id"`
	JourneyServerID string           `json:"journey_server_id"`
	Envelope        EnvelopeResponse `json:"envelope"`
}

type JourneySummaryResponse struct {
	JourneyID        string `json:"journey_id"`
	JourneyServerID  string `json:"journey_server_id,omitempty"`
	MessagingEnabled bool   `json:"messaging_enabled"`
	Keyless          bool   `json:"keyless"`
	Delete           bool   `json:"delete"`
}

type ListJourneysResponse struct {
	Journeys []JourneySummaryResponse `json:"journeys"`
}
