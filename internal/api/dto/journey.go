package dto

import "time"

// Request shapes. The UI submits a full journey snapshot per call; the
// service holds no session state between requests.

type StopRequest struct {
	StopID       string     `json:"stop_id"`
	StopType     string     `json:"stop_type"`
	Address      string     `json:"address"`
	Lat          float64    `json:"lat"`
	Lng          float64    `json:"lng"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Instructions string     `json:"instructions"`
	PickupStopID string     `json:"pickup_stop_id"`
	DateTime     *time.Time `json:"date_time"`
	SegmentID    string     `json:"bookingsegment_id"`
}

type BookingRequest struct {
	BookingID string        `json:"booking_id"`
	ServerID  string        `json:"request_id"`
	HoldOn    bool          `json:"hold_on"`
	Stops     []StopRequest `json:"stops"`
}

type JourneyRequest struct {
	JourneyID        string           `json:"journey_id"`
	ServerID         string           `json:"journey_server_id"`
	MessagingEnabled bool             `json:"messaging_enabled"`
	Keyless          bool             `json:"keyless"`
	Delete           bool             `json:"delete"`
	Bookings         []BookingRequest `json:"bookings"`
}
