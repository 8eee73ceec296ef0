package services

import (
	"testing"

	"github.com/gulbargadeals/deals-go/internal/domain/entities/directory"
)

func sampleDeals() []*directory.Listing {
	return []*directory.Listing{
		{ID: "1", Type: directory.CategoryRestaurants, Name: "Pizza Palace", MainOffer: "50% OFF"},
		{ID: "2", Type: directory.CategoryGrocery, Name: "Fresh Mart", MainOffer: "Buy 1 Get 1"},
		{ID: "3", Type: directory.CategoryGrocery, Name: "Daily Needs", MainOffer: "Free pizza base with flour"},
		{ID: "4", Type: directory.CategorySalon, Name: "Style Studio", MainOffer: "Haircut 99"},
	}
}

func TestFilterByCategory(t *testing.T) {
	got := Filter(sampleDeals(), directory.CategoryGrocery, "")
	if len(got) != 2 {
		t.Fatalf("Grocery with empty query: got %d listings, want 2", len(got))
	}
	if got[0].ID != "2" || got[1].ID != "3" {
		t.Errorf("Grocery results out of rank order: got [%s %s]", got[0].ID, got[1].ID)
	}
}

func TestFilterAllIsNeutral(t *testing.T) {
	byCategory := Filter(sampleDeals(), directory.CategorySalon, "")
	thenAll := Filter(byCategory, directory.CategoryAll, "")
	if len(thenAll) != len(byCategory) {
		t.Fatalf("filtering by All after a category changed the result: %d vs %d", len(thenAll), len(byCategory))
	}
	for i := range thenAll {
		if thenAll[i].ID != byCategory[i].ID {
			t.Errorf("position %d: got %s, want %s", i, thenAll[i].ID, byCategory[i].ID)
		}
	}
}

func TestFilterSearchCaseInsensitive(t *testing.T) {
	upper := Filter(sampleDeals(), directory.CategoryAll, "PIZZA")
	lower := Filter(sampleDeals(), directory.CategoryAll, "pizza")
	if len(upper) != len(lower) {
		t.Fatalf("case changed the result set: %d vs %d", len(upper), len(lower))
	}
	for i := range upper {
		if upper[i].ID != lower[i].ID {
			t.Errorf("position %d: got %s vs %s", i, upper[i].ID, lower[i].ID)
		}
	}
	// Matches name on listing 1 and mainOffer on listing 3.
	if len(upper) != 2 || upper[0].ID != "1" || upper[1].ID != "3" {
		t.Errorf("pizza search: got %d results, want listings 1 and 3", len(upper))
	}
}

func TestFilterCombinesPredicates(t *testing.T) {
	got := Filter(sampleDeals(), directory.CategoryGrocery, "pizza")
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("Grocery+pizza: got %d results, want just listing 3", len(got))
	}
}

func TestEmptyStateDiscriminator(t *testing.T) {
	deals := sampleDeals()

	if state := EmptyStateFor(Filter(deals, directory.CategoryAll, ""), ""); state != EmptyStateNone {
		t.Errorf("non-empty result: got %q, want none", state)
	}
	if state := EmptyStateFor(Filter(deals, directory.CategoryAll, "zzzz"), "zzzz"); state != EmptyStateNoMatches {
		t.Errorf("failed search: got %q, want %q", state, EmptyStateNoMatches)
	}
	if state := EmptyStateFor(Filter(deals, directory.CategoryPharma, ""), ""); state != EmptyStateCategoryEmpty {
		t.Errorf("empty category: got %q, want %q", state, EmptyStateCategoryEmpty)
	}
}
