package model

import "testing"

func TestCalculateRoyalty_DefaultRate(t *testing.T) {
	// 2.5% of 1 ether
	got := CalculateRoyalty(1_000_000_000_000_000_000, DefaultRoyaltyBps)
	if got != 25_000_000_000_000_000 {
		t.Fatalf("got %d", got)
	}
}

func TestCalculateRoyalty_Truncates(t *testing.T) {
	// 250 bps of 39 = 0.975, integer division truncates toward zero
	if got := CalculateRoyalty(39, DefaultRoyaltyBps); got != 0 {
		t.Fatalf("got %d; want 0", got)
	}
	if got := CalculateRoyalty(41, DefaultRoyaltyBps); got != 1 {
		t.Fatalf("got %d; want 1", got)
	}
}

func TestCalculateRoyalty_Bounds(t *testing.T) {
	if got := CalculateRoyalty(10_000, 0); got != 0 {
		t.Fatalf("zero rate: got %d", got)
	}
	if got := CalculateRoyalty(10_000, MaxRoyaltyBps); got != 10_000 {
		t.Fatalf("full rate: got %d", got)
	}
	if got := CalculateRoyalty(10_000, 500); got != 500 {
		t.Fatalf("5%%: got %d", got)
	}
}

func TestRoleValid(t *testing.T) {
	for _, r := range AllRoles {
		if !r.Valid() {
			t.Fatalf("%s should be valid", r)
		}
	}
	if Role("OWNER").Valid() {
		t.Fatal("unknown role accepted")
	}
}
