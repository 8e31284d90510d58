package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"finlife/internal/game"
)

func testSession(id string) *game.Session {
	return &game.Session{
		ID:          id,
		Name:        "Ada Lovelace",
		AccountID:   "acct-1",
		Age:         25,
		CurrentDate: time.Date(2035, time.January, 1, 0, 0, 0, 0, time.UTC),
		Balance:     12_345,
		JobTitle:    "Engineer",
		Loans:       []game.Loan{{ID: "loan-1", Description: "Student loan", RemainingAmount: 10_000}},
		LifeEvents:  []string{"Went to university"},
		Started:     true,
	}
}

func TestMemoryPutGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Get(ctx, "g1"); !errors.Is(err, game.ErrSessionNotFound) {
		t.Fatalf("Get on empty store: %v", err)
	}

	if err := m.Put(ctx, testSession("g1")); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, err := m.Get(ctx, "g1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Ada Lovelace" || got.Age != 25 || len(got.Loans) != 1 {
		t.Errorf("got %+v", got)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, want 1", m.Len())
	}

	if err := m.Delete(ctx, "g1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := m.Delete(ctx, "g1"); !errors.Is(err, game.ErrSessionNotFound) {
		t.Errorf("second Delete: %v", err)
	}
	if m.Len() != 0 {
		t.Errorf("Len after delete = %d, want 0", m.Len())
	}
}

func TestMemoryCopiesOnBothSides(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	original := testSession("g1")
	if err := m.Put(ctx, original); err != nil {
		t.Fatalf("Put: %v", err)
	}

	// Mutating the value handed to Put must not reach the store.
	original.Age = 99
	original.LifeEvents[0] = "changed"

	got, err := m.Get(ctx, "g1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Age != 25 || got.LifeEvents[0] != "Went to university" {
		t.Errorf("stored session aliased the caller's value: %+v", got)
	}

	// Mutating a retrieved copy must not reach the store either.
	got.Loans[0].RemainingAmount = 0
	got.Age = 40

	again, err := m.Get(ctx, "g1")
	if err != nil {
		t.Fatalf("second Get: %v", err)
	}
	if again.Age != 25 || again.Loans[0].RemainingAmount != 10_000 {
		t.Errorf("retrieved copy aliased the stored value: %+v", again)
	}
}
