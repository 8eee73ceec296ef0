package directory

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/gulbargadeals/deals-go/internal/domain/entities/directory"
	"github.com/gulbargadeals/deals-go/internal/domain/repositories"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/observability/logging"
	"github.com/gulbargadeals/deals-go/internal/infrastructure/persistence/database"
	"github.com/gulbargadeals/deals-go/pkg/config"

	_ "github.com/mattn/go-sqlite3"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()

	// A named shared-cache memory database: every pooled connection sees the
	// same store, and each test gets its own.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := database.NewConnection("sqlite3", dsn)
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.NewTableCreator().CreateSchema(db.DB); err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
	return db.DB
}

func testLogger(t *testing.T) *logging.ChanneledLogger {
	t.Helper()

	logger, err := logging.NewChanneledLogger(logging.TestLoggerConfig())
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	return logger
}

func intPtr(n int) *int { return &n }

func TestListingRepositorySaveAndFind(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db, testLogger(t))

	saved := &directory.Listing{
		ID:        "01J0TESTLISTINGA",
		Type:      directory.CategoryRestaurants,
		Name:      "Hotel Mayura",
		MainOffer: "20% off on biryani",
		Address:   "Station Road, Gulbarga",
		Contact:   "9876543210",
		Order:     intPtr(0),
	}
	if err := repo.SaveAll([]*directory.Listing{saved}); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	got, err := repo.FindByID("01J0TESTLISTINGA")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got == nil {
		t.Fatal("FindByID returned nil for a stored listing")
	}
	if got.Name != "Hotel Mayura" || got.MainOffer != "20% off on biryani" {
		t.Errorf("stored listing round-trip mismatch: got %q / %q", got.Name, got.MainOffer)
	}
	if got.Order == nil || *got.Order != 0 {
		t.Errorf("expected order 0, got %v", got.Order)
	}
}

func TestListingRepositorySaveOverwritesWholeDocument(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db, testLogger(t))

	full := &directory.Listing{
		ID:      "a",
		Name:    "Original",
		Address: "Somewhere",
		Menu:    []*directory.MenuItem{{Name: "Dosa", Price: "40"}},
	}
	if err := repo.SaveAll([]*directory.Listing{full}); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	// A stale copy without the menu drops it on re-save: full overwrite,
	// last write wins.
	stale := &directory.Listing{ID: "a", Name: "Renamed"}
	if err := repo.SaveAll([]*directory.Listing{stale}); err != nil {
		t.Fatalf("second SaveAll failed: %v", err)
	}

	got, err := repo.FindByID("a")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.Name != "Renamed" {
		t.Errorf("expected overwritten name, got %q", got.Name)
	}
	if got.Address != "" || len(got.Menu) != 0 {
		t.Errorf("expected stale fields dropped, got address %q, menu %d items", got.Address, len(got.Menu))
	}
}

func TestListingRepositoryFindByIDAbsent(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db, testLogger(t))

	got, err := repo.FindByID("missing")
	if err != nil {
		t.Fatalf("FindByID on absent id failed: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil for absent listing, got %+v", got)
	}
}

func TestListingRepositoryDeleteAbsentSucceeds(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db, testLogger(t))

	if err := repo.Delete("never-existed"); err != nil {
		t.Errorf("deleting an absent listing should succeed, got %v", err)
	}
}

func TestListingRepositoryDeleteRemovesDocument(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db, testLogger(t))

	if err := repo.SaveAll([]*directory.Listing{{ID: "a", Name: "Target"}}); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}
	if err := repo.Delete("a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	count, err := repo.Count()
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected 0 listings after delete, got %d", count)
	}
}

func TestListingRepositoryMalformedDocumentRaisesDecodeError(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db, testLogger(t))

	if _, err := db.Exec(`INSERT INTO listings (id, payload) VALUES (?, ?)`, "bad", `{not json`); err != nil {
		t.Fatalf("failed to seed malformed document: %v", err)
	}

	_, err := repo.FindAll()
	var decodeErr *repositories.DocumentDecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("expected DocumentDecodeError, got %v", err)
	}
	if decodeErr.DocumentID != "bad" {
		t.Errorf("expected document id %q, got %q", "bad", decodeErr.DocumentID)
	}
}

func TestListingRepositoryDocumentKeyIsAuthoritative(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db, testLogger(t))

	// Payload id disagrees with the document key; the key wins.
	if _, err := db.Exec(`INSERT INTO listings (id, payload) VALUES (?, ?)`, "key-id", `{"id":"payload-id","name":"X"}`); err != nil {
		t.Fatalf("failed to seed document: %v", err)
	}

	got, err := repo.FindByID("key-id")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if got.ID != "key-id" {
		t.Errorf("expected document key %q as id, got %q", "key-id", got.ID)
	}
}

func TestIsAuthErrorClassification(t *testing.T) {
	authErrors := []error{
		errors.New("not authorized"),
		errors.New("SQLITE_AUTH: unable to open database"),
		errors.New("unexpected status 401 Unauthorized"),
		errors.New("unexpected status 403 Forbidden"),
	}
	for _, err := range authErrors {
		if !isAuthError(err) {
			t.Errorf("expected %q to classify as an authorization failure", err)
		}
	}

	benign := []error{
		nil,
		errors.New("database is locked"),
		sql.ErrNoRows,
	}
	for _, err := range benign {
		if isAuthError(err) {
			t.Errorf("%v must not classify as an authorization failure", err)
		}
	}
}

func TestFindAllRaisesUnauthorizedOnAuthFailure(t *testing.T) {
	db := testDB(t)
	repo := NewListingRepository(db, testLogger(t))

	// Reads against a dropped table produce a plain error, never the
	// unauthorized sentinel.
	if _, err := db.Exec(`DROP TABLE listings`); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}
	_, err := repo.FindAll()
	if err == nil {
		t.Fatal("expected an error from a missing table")
	}
	if errors.Is(err, repositories.ErrUnauthorized) {
		t.Errorf("a missing table is not an authorization failure: %v", err)
	}
}

func TestSettingsRepositoryDefaultTagline(t *testing.T) {
	db := testDB(t)
	repo := NewSettingsRepository(db, testLogger(t))

	got := repo.GetTagline()
	if got != config.DefaultTagline {
		t.Errorf("expected default tagline %q, got %q", config.DefaultTagline, got)
	}
}

func TestSettingsRepositorySaveAndGetTagline(t *testing.T) {
	db := testDB(t)
	repo := NewSettingsRepository(db, testLogger(t))

	want := "Diwali deals all week"
	if err := repo.SaveTagline(want); err != nil {
		t.Fatalf("SaveTagline failed: %v", err)
	}

	if got := repo.GetTagline(); got != want {
		t.Errorf("expected tagline %q, got %q", want, got)
	}
}

func TestSettingsRepositorySavePreservesSiblingFields(t *testing.T) {
	db := testDB(t)
	repo := NewSettingsRepository(db, testLogger(t))

	if _, err := db.Exec(`INSERT INTO system_documents (id, payload) VALUES (?, ?)`,
		"settings", `{"tagline":"old","theme":"dark"}`); err != nil {
		t.Fatalf("failed to seed settings: %v", err)
	}

	if err := repo.SaveTagline("new"); err != nil {
		t.Fatalf("SaveTagline failed: %v", err)
	}

	var payload string
	if err := db.QueryRow(`SELECT payload FROM system_documents WHERE id = ?`, "settings").Scan(&payload); err != nil {
		t.Fatalf("failed to read settings back: %v", err)
	}
	if payload == "" {
		t.Fatal("settings document vanished")
	}
	// Merge semantics: tagline replaced, sibling field kept.
	for _, want := range []string{`"tagline":"new"`, `"theme":"dark"`} {
		if !strings.Contains(payload, want) {
			t.Errorf("expected payload to contain %s, got %s", want, payload)
		}
	}
}

func TestAnalyticsRepositoryZeroDefaults(t *testing.T) {
	db := testDB(t)
	repo := NewAnalyticsRepository(db, testLogger(t))

	got := repo.Get()
	if got.Views != 0 {
		t.Errorf("expected 0 views, got %d", got.Views)
	}
	if got.Clicks == nil || len(got.Clicks) != 0 {
		t.Errorf("expected empty clicks map, got %v", got.Clicks)
	}
}

func TestAnalyticsRepositoryIncrementViewsCreatesDocument(t *testing.T) {
	db := testDB(t)
	repo := NewAnalyticsRepository(db, testLogger(t))

	repo.IncrementViews()
	repo.IncrementViews()
	repo.IncrementViews()

	got := repo.Get()
	if got.Views != 3 {
		t.Errorf("expected 3 views, got %d", got.Views)
	}
}

func TestAnalyticsRepositoryIncrementClickPerListing(t *testing.T) {
	db := testDB(t)
	repo := NewAnalyticsRepository(db, testLogger(t))

	repo.IncrementClick("listing-a")
	repo.IncrementClick("listing-a")
	repo.IncrementClick("listing-b")

	got := repo.Get()
	if got.Clicks["listing-a"] != 2 {
		t.Errorf("expected 2 clicks for listing-a, got %d", got.Clicks["listing-a"])
	}
	if got.Clicks["listing-b"] != 1 {
		t.Errorf("expected 1 click for listing-b, got %d", got.Clicks["listing-b"])
	}
}

func TestAnalyticsRepositoryViewsAndClicksCoexist(t *testing.T) {
	db := testDB(t)
	repo := NewAnalyticsRepository(db, testLogger(t))

	repo.IncrementViews()
	repo.IncrementClick("listing-a")
	repo.IncrementViews()

	got := repo.Get()
	if got.Views != 2 {
		t.Errorf("expected 2 views, got %d", got.Views)
	}
	if got.Clicks["listing-a"] != 1 {
		t.Errorf("expected 1 click, got %d", got.Clicks["listing-a"])
	}
}
