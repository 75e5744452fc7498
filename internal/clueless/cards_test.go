package clueless

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestLedgerStartsUnassigned(t *testing.T) {
	l := NewLedger(testRand())

	if got, want := l.UnassignedCount(), len(Suspects)+len(Weapons)+len(Rooms); got != want {
		t.Fatalf("expected %d unassigned cards, got %d", want, got)
	}
	if got := l.CardsHeldBy("P1"); len(got) != 0 {
		t.Errorf("expected empty hand before dealing, got %v", got)
	}
}

func TestAssignIsWriteOnce(t *testing.T) {
	l := NewLedger(testRand())

	if err := l.Assign("Rope", "P1"); err != nil {
		t.Fatalf("first assignment: %v", err)
	}
	err := l.Assign("Rope", "P2")
	if !errors.Is(err, ErrAlreadyAssigned) {
		t.Fatalf("expected ErrAlreadyAssigned, got %v", err)
	}
	if KindOf(err) != KindStateConflict {
		t.Errorf("expected state conflict kind, got %v", KindOf(err))
	}
	if !l.Holds("P1", "Rope") {
		t.Error("failed reassignment must not move the card")
	}
}

func TestAssignUnknownCard(t *testing.T) {
	l := NewLedger(testRand())

	if err := l.Assign("Spoon", "P1"); !errors.Is(err, ErrUnknownCard) {
		t.Fatalf("expected ErrUnknownCard, got %v", err)
	}
}

func TestLoadCaseFile(t *testing.T) {
	l := NewLedger(testRand())

	cf, err := l.LoadCaseFile()
	if err != nil {
		t.Fatalf("loading case file: %v", err)
	}

	checks := []struct {
		name string
		want Category
	}{
		{cf.Suspect, CategorySuspect},
		{cf.Weapon, CategoryWeapon},
		{cf.Room, CategoryRoom},
	}
	for _, c := range checks {
		cat, ok := CategoryOf(c.name)
		if !ok || cat != c.want {
			t.Errorf("case file %s card %q has category %v", c.want, c.name, cat)
		}
		if !l.Holds(holderCaseFile, c.name) {
			t.Errorf("case file card %q not held by the case file", c.name)
		}
	}
	if got := l.UnassignedCount(); got != 18 {
		t.Errorf("expected 18 cards left after the case file draw, got %d", got)
	}
}

func TestDealRemaining(t *testing.T) {
	l := NewLedger(testRand())
	if _, err := l.LoadCaseFile(); err != nil {
		t.Fatalf("loading case file: %v", err)
	}

	players := []string{"P1", "P2", "P3", "P4"}
	if err := l.DealRemaining(players); err != nil {
		t.Fatalf("dealing: %v", err)
	}

	if got := l.UnassignedCount(); got != 0 {
		t.Fatalf("expected an empty pool after dealing, got %d unassigned", got)
	}

	// 18 cards over 4 players: the two earliest players take the leftovers.
	wantSizes := []int{5, 5, 4, 4}
	total := 0
	for i, id := range players {
		hand := l.CardsHeldBy(id)
		if len(hand) != wantSizes[i] {
			t.Errorf("player %s: expected %d cards, got %d (%v)", id, wantSizes[i], len(hand), hand)
		}
		total += len(hand)
	}
	if total+3 != len(Suspects)+len(Weapons)+len(Rooms) {
		t.Errorf("hands plus case file do not cover the universe: %d + 3", total)
	}
}

func TestCardUniqueness(t *testing.T) {
	l := NewLedger(testRand())
	if _, err := l.LoadCaseFile(); err != nil {
		t.Fatalf("loading case file: %v", err)
	}
	players := []string{"P1", "P2", "P3"}
	if err := l.DealRemaining(players); err != nil {
		t.Fatalf("dealing: %v", err)
	}

	seen := make(map[string]string)
	for _, holder := range append(players, holderCaseFile) {
		for _, name := range l.CardsHeldBy(holder) {
			if prev, dup := seen[name]; dup {
				t.Errorf("card %q held by both %s and %s", name, prev, holder)
			}
			seen[name] = holder
		}
	}
	if len(seen) != len(Suspects)+len(Weapons)+len(Rooms) {
		t.Errorf("expected every card to have exactly one holder, covered %d", len(seen))
	}
}

func TestDealRemainingNoPlayers(t *testing.T) {
	l := NewLedger(testRand())

	if err := l.DealRemaining(nil); !errors.Is(err, ErrNotEnoughPlayers) {
		t.Fatalf("expected ErrNotEnoughPlayers, got %v", err)
	}
}
