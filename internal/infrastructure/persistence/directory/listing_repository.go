// Package directory provides the document-store repositories for listings,
// settings, and analytics.
package directory

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gulbargadeals/deals-go/internal/domain/entities/directory"
	"github.com/gulbargadeals/deals-go/internal/domain/repositories"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
	"github.com/gulbargadeals/deals-go/pkg/config"
)

// isAuthError detects a permission rejection from either backing driver:
// sqlite reports SQLITE_AUTH ("not authorized"), hosted libsql rejects with
// an HTTP 401/403 status in the error text.
func isAuthError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not authorized") ||
		strings.Contains(msg, "sqlite_auth") ||
		strings.Contains(msg, "401") ||
		strings.Contains(msg, "403")
}

type ListingRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewListingRepository(db *sql.DB, logger *logging.ChanneledLogger) *ListingRepository {
	return &ListingRepository{
		db:     db,
		logger: logger,
	}
}

// FindAll reads every listing document. Errors are raised, never swallowed:
// an authorization failure comes back as repositories.ErrUnauthorized so the
// admin console can show the database-locked banner.
func (r *ListingRepository) FindAll() ([]*directory.Listing, error) {
	query := `SELECT id, payload FROM listings`

	start := time.Now()
	r.logger.Database().Debug("Loading all listings from database")

	rows, err := r.db.Query(query)
	if err != nil {
		r.logger.Database().Error("Failed to query listings", "error", err.Error())
		if isAuthError(err) {
			return nil, fmt.Errorf("%w: %v", repositories.ErrUnauthorized, err)
		}
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var listings []*directory.Listing
	for rows.Next() {
		var id, payload string
		if err := rows.Scan(&id, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}

		listing, err := decodeListing(id, payload)
		if err != nil {
			r.logger.Database().Error("Listing document failed to decode", "id", id, "error", err.Error())
			return nil, err
		}
		listings = append(listings, listing)
	}

	r.logger.Database().Info("Loaded listings from database", "count", len(listings), "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return listings, rows.Err()
}

func (r *ListingRepository) FindByID(id string) (*directory.Listing, error) {
	query := `SELECT payload FROM listings WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Loading listing from database", "id", id)

	var payload string
	err := r.db.QueryRow(query, id).Scan(&payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Database().Error("Failed to scan listing", "error", err.Error(), "id", id)
		if isAuthError(err) {
			return nil, fmt.Errorf("%w: %v", repositories.ErrUnauthorized, err)
		}
		return nil, fmt.Errorf("failed to scan listing: %w", err)
	}

	listing, err := decodeListing(id, payload)
	if err != nil {
		return nil, err
	}

	r.logger.Database().Info("Listing loaded from database", "id", id, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return listing, nil
}

// SaveAll upserts each listing sequentially by id, overwriting the whole
// stored document. A payload built from a stale in-memory copy will drop any
// fields that copy did not carry; last write wins.
func (r *ListingRepository) SaveAll(listings []*directory.Listing) error {
	query := `INSERT INTO listings (id, payload) VALUES (?, ?)
              ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`

	start := time.Now()
	r.logger.Database().Debug("Executing listing upserts", "count", len(listings))

	for _, listing := range listings {
		payload, err := json.Marshal(listing)
		if err != nil {
			return fmt.Errorf("failed to marshal listing %s: %w", listing.ID, err)
		}

		if _, err := r.db.Exec(query, listing.ID, string(payload)); err != nil {
			r.logger.Database().Error("Listing upsert failed", "error", err.Error(), "id", listing.ID)
			if isAuthError(err) {
				return fmt.Errorf("%w: %v", repositories.ErrUnauthorized, err)
			}
			return fmt.Errorf("failed to upsert listing %s: %w", listing.ID, err)
		}
	}

	r.logger.Database().Info("Listing upserts completed", "count", len(listings), "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return nil
}

// Delete removes one listing document. An absent id is not an error.
func (r *ListingRepository) Delete(id string) error {
	query := `DELETE FROM listings WHERE id = ?`

	start := time.Now()
	r.logger.Database().Debug("Executing listing delete", "id", id)

	if _, err := r.db.Exec(query, id); err != nil {
		r.logger.Database().Error("Listing delete failed", "error", err.Error(), "id", id)
		if isAuthError(err) {
			return fmt.Errorf("%w: %v", repositories.ErrUnauthorized, err)
		}
		return fmt.Errorf("failed to delete listing %s: %w", id, err)
	}

	r.logger.Database().Info("Listing delete completed", "id", id, "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return nil
}

func (r *ListingRepository) Count() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM listings`).Scan(&count); err != nil {
		if isAuthError(err) {
			return 0, fmt.Errorf("%w: %v", repositories.ErrUnauthorized, err)
		}
		return 0, fmt.Errorf("failed to count listings: %w", err)
	}
	return count, nil
}

// decodeListing validates a stored document against the Listing schema. The
// document key is authoritative for the id.
func decodeListing(id, payload string) (*directory.Listing, error) {
	var listing directory.Listing
	if err := json.Unmarshal([]byte(payload), &listing); err != nil {
		return nil, &repositories.DocumentDecodeError{DocumentID: id, Err: err}
	}
	listing.ID = id
	return &listing, nil
}
