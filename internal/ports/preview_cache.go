package ports

import (
	"context"
	"journey-dispatch-service/internal/domain"
)

// Port: a cache of assembled envelopes keyed by journey fingerprint, so
// repeated previews of an unchanged journey skip re-sequencing.
type PreviewCache interface {
	// Return the cached envelope for a fingerprint; ok is false on miss.
	Get(ctx context.Context, fingerprint string) (envelope *domain.JourneyEnvelope, ok bool, err error)

	// Store an envelope under a fingerprint.
	Put(ctx context.Context, fingerprint string, envelope *domain.JourneyEnvelope) error
}
