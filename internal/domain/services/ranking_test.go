package services

import (
	"testing"

	"github.com/gulbargadeals/deals-go/internal/domain/entities/directory"
)

func rankOf(n int) *int { return &n }

func rankedListings(names ...string) []*directory.Listing {
	out := make([]*directory.Listing, len(names))
	for i, name := range names {
		out[i] = &directory.Listing{
			ID:    name,
			Type:  directory.CategoryRestaurants,
			Name:  name,
			Order: rankOf(i),
		}
	}
	return out
}

func assertDense(t *testing.T, list []*directory.Listing) {
	t.Helper()
	seen := make(map[int]bool)
	for _, l := range list {
		if l.Order == nil {
			t.Fatalf("listing %s has no order after renumber", l.ID)
		}
		if *l.Order < 0 || *l.Order >= len(list) {
			t.Errorf("listing %s order %d outside [0,%d)", l.ID, *l.Order, len(list))
		}
		if seen[*l.Order] {
			t.Errorf("duplicate order %d on listing %s", *l.Order, l.ID)
		}
		seen[*l.Order] = true
	}
}

func TestMoveSwapsAndRenumbers(t *testing.T) {
	list := []*directory.Listing{
		{ID: "a", Name: "Cafe", Order: rankOf(0)},
		{ID: "b", Name: "Mart", Order: rankOf(1)},
	}

	got, moved := Move(list, 0, +1)
	if !moved {
		t.Fatal("Move(0,+1) on two elements should move")
	}
	if got[0].ID != "b" || got[1].ID != "a" {
		t.Fatalf("order after move: got [%s %s], want [b a]", got[0].ID, got[1].ID)
	}
	if *got[0].Order != 0 || *got[1].Order != 1 {
		t.Errorf("orders after move: got [%d %d], want [0 1]", *got[0].Order, *got[1].Order)
	}
	assertDense(t, got)

	// Input must be untouched (optimistic callers keep their copy).
	if list[0].ID != "a" || *list[0].Order != 0 {
		t.Error("Move mutated its input")
	}
}

func TestMoveBoundariesAreNoOps(t *testing.T) {
	list := rankedListings("a", "b", "c")

	if got, moved := Move(list, 0, -1); moved || &got[0] != &list[0] {
		t.Error("Move(0,-1) should return input unchanged")
	}
	if got, moved := Move(list, 2, +1); moved || &got[0] != &list[0] {
		t.Error("Move(N-1,+1) should return input unchanged")
	}
	if _, moved := Move(list, 5, +1); moved {
		t.Error("Move with out-of-range index should not move")
	}
}

func TestMoveHealsLegacyGaps(t *testing.T) {
	// Legacy collection with a gap and a duplicate: any move restores density.
	list := []*directory.Listing{
		{ID: "a", Order: rankOf(0)},
		{ID: "b", Order: rankOf(4)},
		{ID: "c", Order: rankOf(4)},
		{ID: "d"},
	}

	got, moved := Move(list, 1, +1)
	if !moved {
		t.Fatal("expected a move")
	}
	assertDense(t, got)
	wantIDs := []string{"a", "c", "b", "d"}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, want)
		}
	}
}

func TestAssignOrderOnCreate(t *testing.T) {
	created := AssignOrderOnCreate(&directory.Listing{ID: "new"}, 3)
	if created.Order == nil || *created.Order != 3 {
		t.Fatalf("new listing appended to 3 ranked should get order 3, got %v", created.Order)
	}

	existing := AssignOrderOnCreate(&directory.Listing{ID: "old", Order: rankOf(1)}, 3)
	if *existing.Order != 1 {
		t.Errorf("existing rank must be preserved on edit, got %d", *existing.Order)
	}
}

func TestSortByRankUnrankedLast(t *testing.T) {
	list := []*directory.Listing{
		{ID: "legacy1"},
		{ID: "b", Order: rankOf(1)},
		{ID: "legacy2"},
		{ID: "a", Order: rankOf(0)},
	}

	got := SortByRank(list)
	wantIDs := []string{"a", "b", "legacy1", "legacy2"}
	for i, want := range wantIDs {
		if got[i].ID != want {
			t.Errorf("position %d: got %s, want %s", i, got[i].ID, want)
		}
	}
}
