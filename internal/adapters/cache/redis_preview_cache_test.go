package cache

import (
	"context"
	"journey-dispatch-service/internal/domain"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestCache(t *testing.T) *RedisPreviewCache {
	t.Helper()

	srv := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: srv.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisPreviewCache(client, time.Minute)
}

func TestRedisPreviewCacheRoundTrip(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	env := &domain.JourneyEnvelope{
		IsUpdate: true,
		Stops: []domain.StopPayload{
			{
				StopID:           "s1",
				BookingID:        "b1",
				BookingSegmentID: "seg-1",
				StopType:         domain.StopTypePickup,
				DistanceMeters:   812.5,
			},
			{
				StopID:        "s2",
				BookingID:     "b1",
				RequestID:     "req-1",
				StopType:      domain.StopTypeDropoff,
				IsDestination: true,
			},
		},
	}

	if err := c.Put(ctx, "fp-1", env); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, ok, err := c.Get(ctx, "fp-1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatal("expected cache hit")
	}

	if len(got.Stops) != 2 {
		t.Fatalf("stops = %d, want 2", len(got.Stops))
	}
	if !got.IsUpdate {
		t.Fatal("IsUpdate flag lost in round trip")
	}
	if got.Stops[0].BookingSegmentID != "seg-1" {
		t.Fatalf("segment id = %q, want seg-1", got.Stops[0].BookingSegmentID)
	}
	if got.Stops[1].RequestID != "req-1" || !got.Stops[1].IsDestination {
		t.Fatalf("destination stop mangled: %+v", got.Stops[1])
	}
}

func TestRedisPreviewCacheMiss(t *testing.T) {
	c := newTestCache(t)

	_, ok, err := c.Get(context.Background(), "never-stored")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatal("expected cache miss")
	}
}

func TestRedisPreviewCacheEmptyFingerprint(t *testing.T) {
	c := newTestCache(t)

	if _, _, err := c.Get(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty fingerprint")
	}
	if err := c.Put(context.Background(), "", &domain.JourneyEnvelope{}); err == nil {
		t.Fatal("expected error for empty fingerprint")
	}
}
