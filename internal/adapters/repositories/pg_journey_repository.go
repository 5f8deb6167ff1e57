package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"journey-dispatch-service/internal/domain"
	"journey-dispatch-service/internal/ports"
)

// Postgres-backed implementation of the JourneyRepository port.
type PgJourneyRepository struct{ DB *sql.DB }

func NewPgJourneyRepository(db *sql.DB) *PgJourneyRepository {
	return &PgJourneyRepository{DB: db}
}

// Store a journey with its bookings and stops. Child rows are replaced
// wholesale inside one transaction; a journey snapshot is small enough
// that diffing rows buys nothing.
func (r *PgJourneyRepository) SaveJourney(ctx context.Context, journey *domain.Journey) error {
	if r.DB == nil {
		return errors.New("journey repository: DB is nil")
	}
	if journey == nil || journey.ID == "" {
		return errors.New("save journey: journey id must not be empty")
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save journey: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `
	INSERT INTO journeys (journey_id, server_id, messaging_enabled, keyless, deleted)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (journey_id) DO UPDATE
	SET server_id = EXCLUDED.server_id,
		messaging_enabled = EXCLUDED.messaging_enabled,
		keyless = EXCLUDED.keyless,
		deleted = EXCLUDED.deleted;
	`, journey.ID, journey.ServerID, journey.MessagingEnabled, journey.Keyless, journey.Delete)
	if err != nil {
		return fmt.Errorf("save journey: upsert journey %q: %w", journey.ID, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM bookings WHERE journey_id = $1;`, journey.ID); err != nil {
		return fmt.Errorf("save journey: clear bookings for %q: %w", journey.ID, err)
	}

	bookingStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO bookings (booking_id, journey_id, position, server_id, hold_on)
	VALUES ($1, $2, $3, $4, $5);
	`)
	if err != nil {
		return fmt.Errorf("save journey: prepare booking insert: %w", err)
	}
	defer bookingStmt.Close()

	stopStmt, err := tx.PrepareContext(ctx, `
	INSERT INTO stops (
		stop_id, booking_id, position, stop_type,
		address, lat, lng,
		name, phone, instructions,
		pickup_stop_id, date_time, segment_id
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`)
	if err != nil {
		return fmt.Errorf("save journey: prepare stop insert: %w", err)
	}
	defer stopStmt.Close()

	for bi, b := range journey.Bookings {
		if _, err := bookingStmt.ExecContext(ctx, b.ID, journey.ID, bi, b.ServerID, b.HoldOn); err != nil {
			return fmt.Errorf("save journey: insert booking %q: %w", b.ID, err)
		}

		for si, s := range b.Stops {
			if _, err := stopStmt.ExecContext(ctx,
				s.ID, b.ID, si, string(s.StopType),
				s.Location.Address, s.Location.Lat, s.Location.Lng,
				s.Name, s.Phone, s.Instructions,
				s.PickupStopID, s.DateTime, s.BookingSegmentID,
			); err != nil {
				return fmt.Errorf("save journey: insert stop %q: %w", s.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save journey: commit tx: %w", err)
	}

	return nil
}

// Retrieve one journey with its bookings and stops in stored order.
func (r *PgJourneyRepository) GetJourney(ctx context.Context, id string) (*domain.Journey, error) {
	if r.DB == nil {
		return nil, errors.New("journey repository: DB is nil")
	}

	journey := &domain.Journey{ID: id}
	err := r.DB.QueryRowContext(ctx, `
	SELECT server_id, messaging_enabled, keyless, deleted
	FROM journeys
	WHERE journey_id = $1;
	`, id).Scan(&journey.ServerID, &journey.MessagingEnabled, &journey.Keyless, &journey.Delete)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get journey %q: %w", id, ports.ErrJourneyNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get journey %q: query journeys table: %w", id, err)
	}

	bookings, err := r.loadBookings(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get journey %q: %w", id, err)
	}
	journey.Bookings = bookings

	return journey, nil
}

// Retrieve summary rows for all stored journeys (no bookings attached).
func (r *PgJourneyRepository) ListJourneys(ctx context.Context) ([]*domain.Journey, error) {
	if r.DB == nil {
		return nil, errors.New("journey repository: DB is nil")
	}

	rows, err := r.DB.QueryContext(ctx, `
	SELECT journey_id, server_id, messaging_enabled, keyless, deleted
	FROM journeys
	ORDER BY journey_id;
	`)
	if err != nil {
		return nil, fmt.Errorf("list journeys: query journeys table: %w", err)
	}
	defer rows.Close()

	journeys := make([]*domain.Journey, 0, 16)
	for rows.Next() {
		j := &domain.Journey{}
		if err := rows.Scan(&j.ID, &j.ServerID, &j.MessagingEnabled, &j.Keyless, &j.Delete); err != nil {
			return nil, fmt.Errorf("list journeys: scan row: %w", err)
		}
		journeys = append(journeys, j)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list journeys: row iteration: %w", err)
	}

	return journeys, nil
}

func (r *PgJourneyRepository) loadBookings(ctx context.Context, journeyID string) ([]domain.Booking, error) {
	rows, err := r.DB.QueryContext(ctx, `
	SELECT booking_id, server_id, hold_on
	FROM bookings
	WHERE journey_id = $1
	ORDER BY position;
	`, journeyID)
	if err != nil {
		return nil, fmt.Errorf("query bookings table: %w", err)
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0, 8)
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.ServerID, &b.HoldOn); err != nil {
			return nil, fmt.Errorf("scan booking row: %w", err)
		}
		bookings = append(bookings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("booking row iteration: %w", err)
	}

	for i := range bookings {
		stops, err := r.loadStops(ctx, bookings[i].ID)
		if err != nil {
			return nil, fmt.Errorf("booking %q: %w", bookings[i].ID, err)
		}
		bookings[i].Stops = stops
	}

	return bookings, nil
}

func (r *PgJourneyRepository) loadStops(ctx context.Context, bookingID string) ([]domain.Stop, error) {
	rows, err := r.DB.QueryContext(ctx, `
	SELECT stop_id, stop_type, address, lat, lng,
		name, phone, instructions,
		pickup_stop_id, date_time, segment_id
	FROM stops
	WHERE booking_id = $1
	ORDER BY position;
	`, bookingID)
	if err != nil {
		return nil, fmt.Errorf("query stops table: %w", err)
	}
	defer rows.Close()

	stops := make([]domain.Stop, 0, 4)
	for rows.Next() {
		var s domain.Stop
		var stopType string
		var dt sql.NullTime
		if err := rows.Scan(
			&s.ID, &stopType, &s.Location.Address, &s.Location.Lat, &s.Location.Lng,
			&s.Name, &s.Phone, &s.Instructions,
			&s.PickupStopID, &dt, &s.BookingSegmentID,
		); err != nil {
			return nil, fmt.Errorf("scan stop row: %w", err)
		}

		s.StopType = domain.StopType(stopType)
		if dt.Valid {
			t := dt.Time.UTC()
			s.DateTime = &t
		}
		stops = append(stops, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stop row iteration: %w", err)
	}

	return stops, nil
}
