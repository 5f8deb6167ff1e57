package services

import (
	"errors"
	"journey-dispatch-service/internal/domain"
	"journey-dispatch-service/internal/geo"
	"log"
	"sort"
)

// ErrNoPickup is returned when a stop set contains no pickup stops; a
// journey cannot be sequenced with nothing to collect.
var ErrNoPickup = errors.New("journey has no pickup stops")

// Sequence orders a flattened stop set into a single visiting order
// using a greedy nearest-neighbor walk with pickup-before-dropoff
// precedence.
//
// The algorithm minimizes immediate travel distance at each step and
// does not attempt global optimization. The design prioritizes
// determinism and simplicity over optimality; per-journey stop counts
// are small enough that the O(n²) scan is irrelevant.
//
// A dropoff becomes a candidate only once its passenger has been picked
// up (its PickupStopID is in the occupancy set). Distance ties are
// broken by input encounter order, first seen wins. The input slice is
// never mutated.
func Sequence(stops []domain.SequencedStop) ([]domain.SequencedStop, error) {
	start := -1
	for i, s := range stops {
		if !s.IsPickup() {
			continue
		}
		if start == -1 || startsBefore(s, stops[start]) {
			start = i
		}
	}
	if start == -1 {
		return nil, ErrNoPickup
	}

	visited := make([]domain.SequencedStop, 0, len(stops))
	used := make([]bool, len(stops))

	// Pickup stop ids of passengers currently in the vehicle.
	occupancy := make(map[string]struct{})

	visit := func(i int) {
		s := stops[i]
		used[i] = true
		visited = append(visited, s)
		if s.IsPickup() {
			occupancy[s.ID] = struct{}{}
		} else {
			delete(occupancy, s.PickupStopID)
		}
	}

	visit(start)

	for len(visited) < len(stops) {
		current := visited[len(visited)-1]

		best := -1
		bestDist := 0.0
		for i, s := range stops {
			if used[i] {
				continue
			}
			if s.IsDropoff() {
				if _, aboard := occupancy[s.PickupStopID]; !aboard {
					continue
				}
			}

			d := geo.DistanceMeters(current.Location, s.Location)
			// Strict < keeps the first-seen candidate on equal distance.
			if best == -1 || d < bestDist {
				best = i
				bestDist = d
			}
		}

		if best != -1 {
			visit(best)
			continue
		}

		// No reachable candidate: every remaining stop is a dropoff whose
		// pickup never appeared in this stop set. Appending them by
		// ascending distance keeps the every-stop-exactly-once guarantee
		// and terminates on malformed input instead of looping.
		appendOrphans(&visited, stops, used, current)
	}

	return visited, nil
}

// startsBefore reports whether pickup a should start the journey over
// pickup b: explicit times order chronologically, timed pickups beat
// ASAP ones, and mutually-ASAP pickups fall back to booking input order.
func startsBefore(a, b domain.SequencedStop) bool {
	switch {
	case a.DateTime != nil && b.DateTime == nil:
		return true
	case a.DateTime == nil && b.DateTime != nil:
		return false
	case a.DateTime != nil:
		return a.DateTime.Before(*b.DateTime)
	default:
		return a.BookingInputIndex < b.BookingInputIndex
	}
}

func appendOrphans(
	visited *[]domain.SequencedStop,
	stops []domain.SequencedStop,
	used []bool,
	current domain.SequencedStop,
) {
	remaining := make([]int, 0)
	for i := range stops {
		if !used[i] {
			remaining = append(remaining, i)
		}
	}

	sort.SliceStable(remaining, func(x, y int) bool {
		dx := geo.DistanceMeters(current.Location, stops[remaining[x]].Location)
		dy := geo.DistanceMeters(current.Location, stops[remaining[y]].Location)
		return dx < dy
	})

	for _, i := range remaining {
		s := stops[i]
		log.Printf(
			"sequence: orphaned dropoff appended stop_id=%s booking_id=%s pickup_stop_id=%s",
			s.ID, s.BookingID, s.PickupStopID,
		)
		used[i] = true
		*visited = append(*visited, s)
	}
}
