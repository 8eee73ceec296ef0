// Package repositories defines the repository interfaces for directory
// documents. These abstract the document store so the core application stays
// decoupled from the database.
package repositories

import (
	"errors"
	"fmt"

	"github.com/gulbargadeals/deals-go/internal/domain/entities/directory"
)

// ErrUnauthorized marks reads or writes rejected by the document store.
// Callers surface it to the admin as the persistent "database locked" banner
// instead of flattening it into empty data.
var ErrUnauthorized = errors.New("database access not authorized")

// DocumentDecodeError reports a stored document that failed schema decoding.
// Malformed remote data fails fast at the data-access boundary rather than
// propagating undefined fields into the UI.
type DocumentDecodeError struct {
	DocumentID string
	Err        error
}

func (e *DocumentDecodeError) Error() string {
	return fmt.Sprintf("document %s failed to decode: %v", e.DocumentID, e.Err)
}

func (e *DocumentDecodeError) Unwrap() error { return e.Err }

// ListingRepository persists listing documents keyed by id.
//
// FindAll raises every read error to the caller; an authorization failure in
// particular must never be flattened into an empty collection, because it
// signals a misconfigured deployment the operator has to fix.
//
// SaveAll upserts each listing sequentially as a full-document overwrite, not
// a merge: fields missing from the payload are dropped from the stored
// document.
type ListingRepository interface {
	FindAll() ([]*directory.Listing, error)
	FindByID(id string) (*directory.Listing, error)
	SaveAll(listings []*directory.Listing) error
	Delete(id string) error
	Count() (int, error)
}

// SettingsRepository persists the singleton settings document.
//
// GetTagline follows the onReadFailure:useDefault policy — missing document
// and read errors alike yield the configured default, never an error.
// SaveTagline upserts with merge semantics so sibling settings fields survive.
type SettingsRepository interface {
	GetTagline() string
	SaveTagline(tagline string) error
}

// AnalyticsRepository persists the singleton counter document. Increments are
// best-effort and never raise; a missing document is created with the
// increment already applied. Get follows onReadFailure:useDefault and returns
// zero-valued counters on missing document or read error.
type AnalyticsRepository interface {
	IncrementViews()
	IncrementClick(listingID string)
	Get() *directory.Analytics
}
