package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"journey-dispatch-service/internal/domain"
	"os"
	"strings"
	"time"
)

// Initialize the Postgres schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createJourneysQuery := `
	CREATE TABLE IF NOT EXISTS journeys (
		journey_id TEXT PRIMARY KEY,
		server_id TEXT NOT NULL DEFAULT '',
		messaging_enabled BOOLEAN NOT NULL DEFAULT FALSE,
		keyless BOOLEAN NOT NULL DEFAULT FALSE,
		deleted BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	createBookingsQuery := `
	CREATE TABLE IF NOT EXISTS bookings (
		booking_id TEXT PRIMARY KEY,
		journey_id TEXT NOT NULL REFERENCES journeys(journey_id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		server_id TEXT NOT NULL DEFAULT '',
		hold_on BOOLEAN NOT NULL DEFAULT FALSE
	);
	`

	createStopsQuery := `
	CREATE TABLE IF NOT EXISTS stops (
		stop_id TEXT PRIMARY KEY,
		booking_id TEXT NOT NULL REFERENCES bookings(booking_id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		stop_type TEXT NOT NULL,
		address TEXT NOT NULL DEFAULT '',
		lat DOUBLE PRECISION NOT NULL DEFAULT 0,
		lng DOUBLE PRECISION NOT NULL DEFAULT 0,
		name TEXT NOT NULL DEFAULT '',
		phone TEXT NOT NULL DEFAULT '',
		instructions TEXT NOT NULL DEFAULT '',
		pickup_stop_id TEXT NOT NULL DEFAULT '',
		date_time TIMESTAMPTZ,
		segment_id TEXT NOT NULL DEFAULT ''
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_bookings_journey_position
	ON bookings(journey_id, position);
	`

	statements := []string{
		createJourneysQuery,
		createBookingsQuery,
		createStopsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type StopSeed struct {
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
	SegmentID    string     `json:"segment_id"`
}

type BookingSeed struct {
	BookingID string     `json:"booking_id"`
	ServerID  string     `json:"server_id"`
	HoldOn    bool       `json:"hold_on"`
	Stops     []StopSeed `json:"stops"`
}

type JourneySeed struct {
	JourneyID        string        `json:"journey_id"`
	ServerID         string        `json:"server_id"`
	MessagingEnabled bool          `json:"messaging_enabled"`
	Keyless          bool          `json:"keyless"`
	Bookings         []BookingSeed `json:"bookings"`
}

// Populate the database with journey data from a JSON file.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed journeys: read %q: %w", jsonPath, err)
	}

	var data []JourneySeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed journeys: parse json: %w", err)
	}

	repo := NewPgJourneyRepository(db)

	for i, seed := range data {
		if strings.TrimSpace(seed.JourneyID) == "" {
			return fmt.Errorf("seed journeys: empty journey_id at index %d", i)
		}

		journey, err := seedToJourney(seed)
		if err != nil {
			return fmt.Errorf("seed journeys: journey %q: %w", seed.JourneyID, err)
		}

		if err := repo.SaveJourney(context.Background(), journey); err != nil {
			return fmt.Errorf("seed journeys: save %q: %w", seed.JourneyID, err)
		}
	}

	return nil
}

func seedToJourney(seed JourneySeed) (*domain.Journey, error) {
	journey := &domain.Journey{
		ID:               seed.JourneyID,
		ServerID:         seed.ServerID,
		MessagingEnabled: seed.MessagingEnabled,
		Keyless:          seed.Keyless,
	}

	for _, b := range seed.Bookings {
		if strings.TrimSpace(b.BookingID) == "" {
			return nil, errors.New("booking with empty booking_id")
		}

		booking := domain.Booking{
			ID:       b.BookingID,
			ServerID: b.ServerID,
			HoldOn:   b.HoldOn,
		}

		for _, s := range b.Stops {
			st := domain.StopType(s.StopType)
			if st != domain.StopTypePickup && st != domain.StopTypeDropoff {
				return nil, fmt.Errorf("stop %q has invalid stop_type %q", s.StopID, s.StopType)
			}

			booking.Stops = append(booking.Stops, domain.Stop{
				ID:               s.StopID,
				Location:         domain.Location{Address: s.Address, Lat: s.Lat, Lng: s.Lng},
				StopType:         st,
				Name:             s.Name,
				Phone:            s.Phone,
				Instructions:     s.Instructions,
				PickupStopID:     s.PickupStopID,
				DateTime:         s.DateTime,
				BookingSegmentID: s.SegmentID,
			})
		}

		journey.Bookings = append(journey.Bookings, booking)
	}

	return journey, nil
}
