package services

import (
	"journey-dispatch-service/internal/domain"
	"testing"
	"time"
)

func datedAt(hour, min int) *time.Time {
	t := time.Date(2026, 9, 1, hour, min, 0, 0, time.UTC)
	return &t
}

func pickup(id string, lat, lng float64, dt *time.Time) domain.Stop {
	return domain.Stop{
		ID:       id,
		Location: domain.Location{Lat: lat, Lng: lng},
		StopType: domain.StopTypePickup,
		DateTime: dt,
	}
}

func dropoff(id, pickupID string, lat, lng float64) domain.Stop {
	return domain.Stop{
		ID:           id,
		Location:     domain.Location{Lat: lat, Lng: lng},
		StopType:     domain.StopTypeDropoff,
		PickupStopID: pickupID,
	}
}

// Two nearby bookings: the sequencer should collect both passengers near
// the start before driving across town, then drop them off by proximity.
func twoBookingJourney() []domain.Booking {
	return []domain.Booking{
		{
			ID: "bkg-alice",
			Stops: []domain.Stop{
				pickup("alice-pu", 33.4456, -112.0972, datedAt(10, 0)),
				dropoff("alice-do", "alice-pu", 33.4734, -112.0740),
			},
		},
		{
			ID: "bkg-bob",
			Stops: []domain.Stop{
				pickup("bob-pu", 33.4516, -112.0962, datedAt(10, 5)),
				dropoff("bob-do", "bob-pu", 33.4749, -112.0741),
			},
		},
	}
}

func orderOf(t *testing.T, stops []domain.SequencedStop) []string {
	t.Helper()
	ids := make([]string, 0, len(stops))
	for _, s := range stops {
		ids = append(ids, s.ID)
	}
	return ids
}

func TestSequenceInterleavesNearbyBookings(t *testing.T) {
	ordered, err := Sequence(Flatten(twoBookingJourney()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"alice-pu", "bob-pu", "alice-do", "bob-do"}
	got := orderOf(t, ordered)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSequenceIsPermutationOfInput(t *testing.T) {
	bookings := []domain.Booking{
		{
			ID: "b1",
			Stops: []domain.Stop{
				pickup("p1", 10, 10, datedAt(9, 0)),
				dropoff("d1", "p1", 11, 11),
			},
		},
		{
			ID: "b2",
			Stops: []domain.Stop{
				pickup("p2", 10.5, 10.5, nil),
				pickup("p3", 12, 12, nil),
				dropoff("d2", "p2", 13, 13),
				dropoff("d3", "p3", 14, 14),
			},
		},
	}

	stops := Flatten(bookings)
	ordered, err := Sequence(stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(ordered) != len(stops) {
		t.Fatalf("output has %d stops, want %d", len(ordered), len(stops))
	}

	seen := make(map[string]int)
	for _, s := range ordered {
		seen[s.ID]++
	}
	for _, s := range stops {
		if seen[s.ID] != 1 {
			t.Fatalf("stop %q appears %d times, want exactly once", s.ID, seen[s.ID])
		}
	}
}

func TestSequencePickupPrecedesDropoff(t *testing.T) {
	ordered, err := Sequence(Flatten(twoBookingJourney()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	index := make(map[string]int, len(ordered))
	for i, s := range ordered {
		index[s.ID] = i
	}

	for _, s := range ordered {
		if s.IsDropoff() {
			pi, ok := index[s.PickupStopID]
			if !ok {
				t.Fatalf("dropoff %q: pickup %q not in output", s.ID, s.PickupStopID)
			}
			if pi >= index[s.ID] {
				t.Fatalf("dropoff %q at %d precedes its pickup at %d", s.ID, index[s.ID], pi)
			}
		}
	}
}

func TestSequenceNoPickup(t *testing.T) {
	if _, err := Sequence(nil); err != ErrNoPickup {
		t.Fatalf("empty input: err = %v, want ErrNoPickup", err)
	}

	dropoffOnly := []domain.SequencedStop{
		{Stop: dropoff("d1", "p-missing", 10, 10), BookingID: "b1"},
	}
	if _, err := Sequence(dropoffOnly); err != ErrNoPickup {
		t.Fatalf("dropoff-only input: err = %v, want ErrNoPickup", err)
	}
}

func TestSequenceDeterministic(t *testing.T) {
	stops := Flatten(twoBookingJourney())

	first, err := Sequence(stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Sequence(stops)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first {
		if first[i].ID != second[i].ID {
			t.Fatalf("run 1 = %v, run 2 = %v", orderOf(t, first), orderOf(t, second))
		}
	}
}

// ASAP pickups (nil DateTime) yield the start slot to scheduled ones and
// break mutual ties by booking input order.
func TestSequenceStartSelection(t *testing.T) {
	bookings := []domain.Booking{
		{ID: "b1", Stops: []domain.Stop{
			pickup("asap-1", 50, 50, nil),
			dropoff("asap-1-do", "asap-1", 51, 51),
		}},
		{ID: "b2", Stops: []domain.Stop{
			pickup("timed", 10, 10, datedAt(16, 30)),
			dropoff("timed-do", "timed", 11, 11),
		}},
	}

	ordered, err := Sequence(Flatten(bookings))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ordered[0].ID != "timed" {
		t.Fatalf("start = %q, want the dated pickup", ordered[0].ID)
	}

	allASAP := []domain.Booking{
		{ID: "b1", Stops: []domain.Stop{
			pickup("first-booking", 50, 50, nil),
			dropoff("first-do", "first-booking", 51, 51),
		}},
		{ID: "b2", Stops: []domain.Stop{
			pickup("second-booking", 10, 10, nil),
			dropoff("second-do", "second-booking", 11, 11),
		}},
	}

	ordered, err = Sequence(Flatten(allASAP))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ordered[0].ID != "first-booking" {
		t.Fatalf("start = %q, want the first booking's ASAP pickup", ordered[0].ID)
	}
}

// Candidates at identical distance from the current stop must resolve
// by encounter order: the stop flattened first wins.
func TestSequenceEqualDistanceTieBreak(t *testing.T) {
	bookings := []domain.Booking{
		{ID: "b-start", Stops: []domain.Stop{
			pickup("start-pu", 10, 10, datedAt(8, 0)),
			dropoff("start-do", "start-pu", 20, 20),
		}},
		{ID: "b-first", Stops: []domain.Stop{
			pickup("first-pu", 10.5, 10.5, nil),
			dropoff("first-do", "first-pu", 21, 21),
		}},
		{ID: "b-second", Stops: []domain.Stop{
			// Same coordinates as first-pu, so the same distance from
			// the start stop.
			pickup("second-pu", 10.5, 10.5, nil),
			dropoff("second-do", "second-pu", 22, 22),
		}},
	}

	ordered, err := Sequence(Flatten(bookings))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ordered[0].ID != "start-pu" {
		t.Fatalf("start = %q, want start-pu", ordered[0].ID)
	}
	if ordered[1].ID != "first-pu" {
		t.Fatalf("tied candidate = %q, want the first-flattened first-pu", ordered[1].ID)
	}
	if ordered[2].ID != "second-pu" {
		t.Fatalf("third stop = %q, want second-pu", ordered[2].ID)
	}

	// The tie must resolve the same way on every run.
	again, err := Sequence(Flatten(bookings))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range ordered {
		if ordered[i].ID != again[i].ID {
			t.Fatalf("tied input not deterministic: %v vs %v", orderOf(t, ordered), orderOf(t, again))
		}
	}
}

// Two pickups sharing the same explicit DateTime tie on chronology; the
// earlier booking starts the journey.
func TestSequenceEqualDateTimeStart(t *testing.T) {
	shared := datedAt(10, 0)
	bookings := []domain.Booking{
		{ID: "b1", Stops: []domain.Stop{
			pickup("earlier-booking-pu", 50, 50, shared),
			dropoff("earlier-booking-do", "earlier-booking-pu", 51, 51),
		}},
		{ID: "b2", Stops: []domain.Stop{
			pickup("later-booking-pu", 10, 10, shared),
			dropoff("later-booking-do", "later-booking-pu", 11, 11),
		}},
	}

	ordered, err := Sequence(Flatten(bookings))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ordered[0].ID != "earlier-booking-pu" {
		t.Fatalf("start = %q, want the earlier booking's pickup", ordered[0].ID)
	}

	again, err := Sequence(Flatten(bookings))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := range ordered {
		if ordered[i].ID != again[i].ID {
			t.Fatalf("tied input not deterministic: %v vs %v", orderOf(t, ordered), orderOf(t, again))
		}
	}
}

// A dropoff whose pickup never appears must still come out, appended by
// distance after all reachable stops.
func TestSequenceOrphanedDropoff(t *testing.T) {
	bookings := []domain.Booking{
		{ID: "b1", Stops: []domain.Stop{
			pickup("p1", 10, 10, datedAt(9, 0)),
			dropoff("d1", "p1", 10.1, 10.1),
		}},
		{ID: "b2", Stops: []domain.Stop{
			dropoff("orphan-far", "ghost", 30, 30),
			dropoff("orphan-near", "ghost", 10.2, 10.2),
		}},
	}

	ordered, err := Sequence(Flatten(bookings))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := orderOf(t, ordered)
	want := []string{"p1", "d1", "orphan-near", "orphan-far"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSequenceDoesNotMutateInput(t *testing.T) {
	stops := Flatten(twoBookingJourney())
	before := orderOf(t, stops)

	if _, err := Sequence(stops); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	after := orderOf(t, stops)
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("input mutated: %v -> %v", before, after)
		}
	}
}
