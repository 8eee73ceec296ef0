// Package services holds pure domain logic for the deals directory:
// display-rank maintenance and the category/search filter.
package services

import (
	"sort"

	"github.com/gulbargadeals/deals-go/internal/domain/entities/directory"
)

// unrankedSentinel sorts legacy listings without an order after every ranked
// listing without erroring on them.
const unrankedSentinel = int(^uint(0) >> 1)

// Move swaps the listing at index with its neighbour in the given direction
// (-1 up, +1 down) and renumbers the WHOLE list to dense 0-based orders.
// A two-element swap alone would reintroduce gaps or duplicates against
// legacy unranked data, so every move is a full renumbering pass.
//
// An out-of-range target is a no-op: the input slice is returned unchanged
// and moved is false. This models the disabled boundary buttons.
func Move(list []*directory.Listing, index, direction int) (result []*directory.Listing, moved bool) {
	target := index + direction
	if index < 0 || index >= len(list) || target < 0 || target >= len(list) {
		return list, false
	}

	swapped := make([]*directory.Listing, len(list))
	copy(swapped, list)
	swapped[index], swapped[target] = swapped[target], swapped[index]

	return Renumber(swapped), true
}

// Renumber rewrites every listing's order to its positional index, returning
// new listing values so callers holding the input slice see no mutation.
// The result always satisfies the dense [0,N) invariant.
func Renumber(list []*directory.Listing) []*directory.Listing {
	out := make([]*directory.Listing, len(list))
	for i, l := range list {
		clone := *l
		rank := i
		clone.Order = &rank
		out[i] = &clone
	}
	return out
}

// AssignOrderOnCreate appends a newly created listing at the bottom by
// setting its order to the current collection size. Listings that already
// carry an order keep it; edits never re-rank implicitly.
func AssignOrderOnCreate(listing *directory.Listing, currentCount int) *directory.Listing {
	if listing.Ranked() {
		return listing
	}
	clone := *listing
	rank := currentCount
	clone.Order = &rank
	return &clone
}

// SortByRank returns the listings sorted ascending by order. Listings with
// no order sort after all ranked listings; the sort is stable so their
// stored relative order is preserved until the next save renumbers them.
func SortByRank(list []*directory.Listing) []*directory.Listing {
	out := make([]*directory.Listing, len(list))
	copy(out, list)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Rank(unrankedSentinel) < out[j].Rank(unrankedSentinel)
	})
	return out
}
