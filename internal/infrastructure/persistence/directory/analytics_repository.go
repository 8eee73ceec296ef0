package directory

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gulbargadeals/deals-go/internal/domain/entities/directory"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
	"github.com/gulbargadeals/deals-go/pkg/config"
)

const analyticsDocumentID = "analytics"

type AnalyticsRepository struct {
	db     *sql.DB
	logger *logging.ChanneledLogger
}

func NewAnalyticsRepository(db *sql.DB, logger *logging.ChanneledLogger) *AnalyticsRepository {
	return &AnalyticsRepository{
		db:     db,
		logger: logger,
	}
}

// IncrementViews bumps the page-view counter. Best-effort: when the analytics
// document does not exist yet it is created with the increment already
// applied, and failures are logged rather than raised.
func (r *AnalyticsRepository) IncrementViews() {
	query := `UPDATE system_documents
              SET payload = json_set(payload, '$.views', COALESCE(json_extract(payload, '$.views'), 0) + 1)
              WHERE id = ?`

	start := time.Now()
	res, err := r.db.Exec(query, analyticsDocumentID)
	if err != nil {
		r.logger.Analytics().Error("View increment failed", "error", err.Error())
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		r.insertInitial(&directory.Analytics{Views: 1, Clicks: map[string]int{}})
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
}

// IncrementClick bumps the click-through counter for one listing, creating
// the analytics document on first use. Never raises.
func (r *AnalyticsRepository) IncrementClick(listingID string) {
	// Listing ids are ULIDs, safe to embed in a JSON path.
	path := fmt.Sprintf(`$.clicks."%s"`, listingID)
	query := `UPDATE system_documents
              SET payload = json_set(payload, ?, COALESCE(json_extract(payload, ?), 0) + 1)
              WHERE id = ?`

	start := time.Now()
	res, err := r.db.Exec(query, path, path, analyticsDocumentID)
	if err != nil {
		r.logger.Analytics().Error("Click increment failed", "error", err.Error(), "listingId", listingID)
		return
	}

	if affected, _ := res.RowsAffected(); affected == 0 {
		r.insertInitial(&directory.Analytics{Views: 0, Clicks: map[string]int{listingID: 1}})
	}

	duration := time.Since(start)
	if duration > config.SlowQueryThreshold {
		r.logger.LogSlowQuery(query, duration)
	}
}

// Get returns the analytics counters, substituting zero-valued defaults on a
// missing document or any read error (onReadFailure: useDefault).
func (r *AnalyticsRepository) Get() *directory.Analytics {
	zero := &directory.Analytics{Views: 0, Clicks: map[string]int{}}

	var payload string
	err := r.db.QueryRow(`SELECT payload FROM system_documents WHERE id = ?`, analyticsDocumentID).Scan(&payload)
	if err == sql.ErrNoRows {
		return zero
	}
	if err != nil {
		r.logger.Analytics().Error("Analytics read failed, using zero defaults", "error", err.Error())
		return zero
	}

	var analytics directory.Analytics
	if err := json.Unmarshal([]byte(payload), &analytics); err != nil {
		r.logger.Analytics().Error("Analytics document failed to decode, using zero defaults", "error", err.Error())
		return zero
	}
	if analytics.Clicks == nil {
		analytics.Clicks = map[string]int{}
	}
	return &analytics
}

func (r *AnalyticsRepository) insertInitial(analytics *directory.Analytics) {
	payload, err := json.Marshal(analytics)
	if err != nil {
		r.logger.Analytics().Error("Failed to marshal initial analytics", "error", err.Error())
		return
	}

	query := `INSERT INTO system_documents (id, payload) VALUES (?, ?)
              ON CONFLICT(id) DO UPDATE SET payload = excluded.payload`
	if _, err := r.db.Exec(query, analyticsDocumentID, string(payload)); err != nil {
		r.logger.Analytics().Error("Initial analytics insert failed", "error", err.Error())
	}
}
