package ports

import (
	"context"
	"errors"
	"journey-dispatch-service/internal/domain"
)

// ErrJourneyNotFound is returned for lookups of unknown journey ids.
var ErrJourneyNotFound = errors.New("journey not found")

// Port: a boundary for persisting and retrieving journeys.
type JourneyRepository interface {
	// Store a journey with its bookings and stops, replacing any
	// previously stored version with the same id.
	SaveJourney(ctx context.Context, journey *domain.Journey) error

	// Retrieve one journey with bookings and stops fully populated.
	// Returns ErrJourneyNotFound for an unknown id.
	GetJourney(ctx context.Context, id string) (*domain.Journey, error)

	// Retrieve all stored journeys without their bookings (summary rows).
	ListJourneys(ctx context.Context) ([]*domain.Journey, error)
}
