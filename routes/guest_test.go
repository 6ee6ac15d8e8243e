package routes

import (
	"testing"

	"eventbuddy-server/models"
)

func TestEventHeadcount(t *testing.T) {
	guests := []models.Guest{
		{Name: "A", RSVPStatus: "confirmed", PlusOne: true},
		{Name: "B", RSVPStatus: "confirmed", PlusOne: false},
		{Name: "C", RSVPStatus: "pending", PlusOne: true},
		{Name: "D", RSVPStatus: "declined", PlusOne: false},
	}

	// Two confirmed guests, one of them with a plus-one.
	if got := eventHeadcount(guests); got != 3 {
		t.Fatalf("expected headcount 3, got %d", got)
	}

	if got := eventHeadcount(nil); got != 0 {
		t.Fatalf("expected headcount 0 for empty list, got %d", got)
	}
}
