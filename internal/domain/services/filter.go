package services

import (
	"strings"

	"github.com/gulbargadeals/deals-go/internal/domain/entities/directory"
)

// EmptyState discriminates why a filter result is empty so the front end can
// show the right guidance.
type EmptyState string

const (
	EmptyStateNone          EmptyState = ""
	EmptyStateNoMatches     EmptyState = "noSearchMatches"
	EmptyStateCategoryEmpty EmptyState = "categoryEmpty"
)

// Filter returns the listings matching both the active category and the
// free-text query, preserving input order. The caller passes rank-ordered
// input, so results stay rank-ordered.
//
// The query matches case-insensitively against name and mainOffer, with the
// same case folding applied to both sides.
func Filter(list []*directory.Listing, activeCategory directory.Category, query string) []*directory.Listing {
	needle := strings.ToLower(strings.TrimSpace(query))

	var out []*directory.Listing
	for _, l := range list {
		if activeCategory != directory.CategoryAll && l.Type != activeCategory {
			continue
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(l.Name), needle) &&
			!strings.Contains(strings.ToLower(l.MainOffer), needle) {
			continue
		}
		out = append(out, l)
	}
	return out
}

// EmptyStateFor reports the empty-state discriminator for a filter result.
// An empty result is a valid display state, not an error.
func EmptyStateFor(result []*directory.Listing, query string) EmptyState {
	if len(result) > 0 {
		return EmptyStateNone
	}
	if strings.TrimSpace(query) != "" {
		return EmptyStateNoMatches
	}
	return EmptyStateCategoryEmpty
}
