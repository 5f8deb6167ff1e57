package services

import (
	"context"
	"errors"
	"journey-dispatch-service/internal/domain"
	"testing"
)

type fakePreviewCache struct {
	entries map[string]*domain.JourneyEnvelope
	gets    int
	puts    int
	failing bool
}

func newFakePreviewCache() *fakePreviewCache {
	return &fakePreviewCache{entries: make(map[string]*domain.JourneyEnvelope)}
}

func (c *fakePreviewCache) Get(ctx context.Context, fp string) (*domain.JourneyEnvelope, bool, error) {
	c.gets++
	if c.failing {
		return nil, false, errors.New("cache down")
	}
	env, ok := c.entries[fp]
	return env, ok, nil
}

func (c *fakePreviewCache) Put(ctx context.Context, fp string, env *domain.JourneyEnvelope) error {
	c.puts++
	if c.failing {
		return errors.New("cache down")
	}
	c.entries[fp] = env
	return nil
}

func TestPreviewCachesByFingerprint(t *testing.T) {
	cache := newFakePreviewCache()
	svc := &PreviewService{Cache: cache, Now: fixedClock()}
	journey := domain.Journey{ID: "jny-1", Bookings: twoBookingJourney()}

	first, err := svc.Preview(context.Background(), journey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.puts != 1 {
		t.Fatalf("cache puts = %d, want 1", cache.puts)
	}

	second, err := svc.Preview(context.Background(), journey)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cache.puts != 1 {
		t.Fatalf("second preview re-assembled: puts = %d", cache.puts)
	}
	if len(first.Stops) != len(second.Stops) {
		t.Fatalf("cached envelope differs: %d vs %d stops", len(first.Stops), len(second.Stops))
	}
}

func TestPreviewEditedJourneyMissesCache(t *testing.T) {
	cache := newFakePreviewCache()
	svc := &PreviewService{Cache: cache, Now: fixedClock()}

	journey := domain.Journey{ID: "jny-1", Bookings: twoBookingJourney()}
	if _, err := svc.Preview(context.Background(), journey); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	edited := domain.Journey{ID: "jny-1", Bookings: twoBookingJourney()}
	edited.Bookings[0].Stops[0].Name = "Someone Else"
	if _, err := svc.Preview(context.Background(), edited); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cache.puts != 2 {
		t.Fatalf("edited journey hit stale cache entry: puts = %d", cache.puts)
	}
}

func TestPreviewSurvivesCacheFailure(t *testing.T) {
	cache := newFakePreviewCache()
	cache.failing = true
	svc := &PreviewService{Cache: cache, Now: fixedClock()}

	env, err := svc.Preview(context.Background(), domain.Journey{ID: "jny-1", Bookings: twoBookingJourney()})
	if err != nil {
		t.Fatalf("cache failure leaked: %v", err)
	}
	if len(env.Stops) != 4 {
		t.Fatalf("envelope has %d stops, want 4", len(env.Stops))
	}
}

func TestPreviewWithoutCache(t *testing.T) {
	svc := &PreviewService{Now: fixedClock()}

	env, err := svc.Preview(context.Background(), domain.Journey{ID: "jny-1", Bookings: twoBookingJourney()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(env.Stops) != 4 {
		t.Fatalf("envelope has %d stops, want 4", len(env.Stops))
	}
}

func TestFingerprintDeterministic(t *testing.T) {
	a := domain.Journey{ID: "jny-1", Bookings: twoBookingJourney()}
	b := domain.Journey{ID: "jny-1", Bookings: twoBookingJourney()}

	fa, err := Fingerprint(a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fb, err := Fingerprint(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fa != fb {
		t.Fatalf("equal journeys fingerprint differently: %s vs %s", fa, fb)
	}

	b.Bookings[1].ServerID = "req-1"
	fc, err := Fingerprint(b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fc == fa {
		t.Fatal("identifier change did not change fingerprint")
	}
}
