package domain

import (
	"testing"
	"time"
)

func TestBookingLastStop(t *testing.T) {
	dt := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)

	b := Booking{
		ID: "b1",
		Stops: []Stop{
			{ID: "p1", StopType: StopTypePickup, DateTime: &dt},
			{ID: "d1", StopType: StopTypeDropoff, PickupStopID: "p1"},
		},
	}

	last, ok := b.LastStop()
	if !ok || last.ID != "d1" {
		t.Fatalf("last stop = (%q, %v), want (d1, true)", last.ID, ok)
	}

	if _, ok := (Booking{}).LastStop(); ok {
		t.Fatal("empty booking reported a last stop")
	}
}

func TestBookingFirstDatedPickup(t *testing.T) {
	dt := time.Date(2026, 9, 1, 14, 45, 0, 0, time.UTC)

	b := Booking{
		ID: "b1",
		Stops: []Stop{
			{ID: "p-undated", StopType: StopTypePickup},
			{ID: "p-dated", StopType: StopTypePickup, DateTime: &dt},
			{ID: "d1", StopType: StopTypeDropoff, PickupStopID: "p-dated"},
		},
	}

	p, ok := b.FirstDatedPickup()
	if !ok || p.ID != "p-dated" {
		t.Fatalf("first dated pickup = (%q, %v), want (p-dated, true)", p.ID, ok)
	}

	undated := Booking{Stops: []Stop{{ID: "p1", StopType: StopTypePickup}}}
	if _, ok := undated.FirstDatedPickup(); ok {
		t.Fatal("undated booking reported a dated pickup")
	}
}

func TestJourneyIsUpdate(t *testing.T) {
	if (Journey{}).IsUpdate() {
		t.Fatal("journey without server id flagged as update")
	}
	if !(Journey{ServerID: "jrn-1"}).IsUpdate() {
		t.Fatal("journey with server id not flagged as update")
	}
}
