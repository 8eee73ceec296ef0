package directory

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
	"github.com/gulbargadeals/deals-go/pkg/config"
)

const settingsDocumentID = "settings"

type SettingsRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewSettingsRepository(db *sql.DB, logger *logging.ChanneledLogger) *SettingsRepository {
	return &SettingsRepository{
		db:     db,
		logger: logger,
	}
}

// GetTagline returns the stored tagline. Missing document, read error, and
// absent field all fall back to the configured default (onReadFailure:
// useDefault) — errors are logged, never surfaced.
func (r *SettingsRepository) GetTagline() string {
	start := time.Now()

	payload, err := r.loadDocument(settingsDocumentID)
	if err != nil {
		if err != sql.ErrNoRows {
			r.logger.Database().Error("Settings read failed, using default tagline", "error", err.Error())
		}
		return config.DefaultTagline
	}

	var settings map[string]any
	if err := json.Unmarshal([]byte(payload), &settings); err != nil {
		r.logger.Database().Error("Settings document failed to decode, using default tagline", "error", err.Error())
		return config.DefaultTagline
	}

	tagline, ok := settings["tagline"].(string)
	if !ok || tagline == "" {
		return config.DefaultTagline
	}

	r.logger.Database().Debug("Tagline loaded", "duration", time.Since(start))
	return tagline
}

// SaveTagline upserts the tagline with merge semantics: sibling fields in the
// settings document are preserved. The merge happens at the store via
// json_patch, so a concurrent or partially-failed read can never clobber
// fields the patch does not carry.
func (r *SettingsRepository) SaveTagline(tagline string) error {
	start := time.Now()
	r.logger.Database().Debug("Executing tagline upsert")

	patch, err := json.Marshal(map[string]any{"tagline": tagline})
	if err != nil {
		return fmt.Errorf("failed to marshal settings patch: %w", err)
	}

	query := `INSERT INTO system_documents (id, payload) VALUES (?, ?)
              ON CONFLICT(id) DO UPDATE SET payload = json_patch(payload, excluded.payload)`
	if _, err := r.db.Exec(query, settingsDocumentID, string(patch)); err != nil {
		r.logger.Database().Error("Tagline upsert failed", "error", err.Error())
		return fmt.Errorf("failed to save tagline: %w", err)
	}

	r.logger.Database().Info("Tagline upsert completed", "duration", time.Since(start))
	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
	return nil
}

func (r *SettingsRepository) loadDocument(id string) (string, error) {
	var payload string
	err := r.db.QueryRow(`SELECT payload FROM system_documents WHERE id = ?`, id).Scan(&payload)
	return payload, err
}
