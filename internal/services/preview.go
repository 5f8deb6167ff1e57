package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"journey-dispatch-service/internal/domain"
	"journey-dispatch-service/internal/platform/obs"
	"journey-dispatch-service/internal/ports"
	"log"
	"time"
)

// PreviewService assembles journey envelopes for display, consulting the
// preview cache so an unchanged journey is not re-sequenced on every
// keystroke-triggered refresh.
//
// Cache failures are logged and bypassed; previewing never fails because
// the cache is down.
type PreviewService struct {
	Cache ports.PreviewCache
	Now   func() time.Time
}

func (s *PreviewService) Preview(ctx context.Context, journey domain.Journey) (_ *domain.JourneyEnvelope, err error) {
	defer obs.Time(ctx, "journey.preview")(&err)

	fp, err := Fingerprint(journey)
	if err != nil {
		return nil, fmt.Errorf("preview journey %q: %w", journey.ID, err)
	}

	if s.Cache != nil {
		env, ok, cerr := s.Cache.Get(ctx, fp)
		if cerr != nil {
			log.Printf("preview cache read failed journey_id=%s: %v", journey.ID, cerr)
		} else if ok {
			return env, nil
		}
	}

	env, err := AssembleEnvelope(journey, s.Now)
	if err != nil {
		return nil, fmt.Errorf("preview journey %q: %w", journey.ID, err)
	}

	if s.Cache != nil {
		if cerr := s.Cache.Put(ctx, fp, env); cerr != nil {
			log.Printf("preview cache write failed journey_id=%s: %v", journey.ID, cerr)
		}
	}

	return env, nil
}

// Fingerprint returns a deterministic digest of everything that feeds
// the pipeline: booking/stop content, server identifiers, and journey
// flags. Journeys with equal fingerprints assemble to equal envelopes
// (up to the wall-clock fallback, whose drift previews tolerate).
func Fingerprint(journey domain.Journey) (string, error) {
	b, err := json.Marshal(journey)
	if err != nil {
		return "", fmt.Errorf("fingerprint journey: %w", err)
	}

	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:]), nil
}
