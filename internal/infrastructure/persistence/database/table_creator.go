package database

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/gulbargadeals/deals-go/pkg/config"
)

var tables = []string{
	`CREATE TABLE IF NOT EXISTS listings (
		id TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS system_documents (
		id TEXT PRIMARY KEY,
		payload TEXT NOT NULL
	)`,
}

// TableCreator handles the creation of the document-store schema.
type TableCreator struct{}

// NewTableCreator creates a new TableCreator.
func NewTableCreator() *TableCreator {
	return &TableCreator{}
}

// CreateSchema executes all necessary queries to build the document tables.
func (tc *TableCreator) CreateSchema(db *sql.DB) error {
	for _, tableSQL := range tables {
		if _, err := db.Exec(tableSQL); err != nil {
			return fmt.Errorf("failed to create table for query [%s]: %w", tableSQL, err)
		}
	}
	return nil
}

// SeedInitialContent idempotently creates the settings document with the
// default tagline. The analytics document is created lazily by the first
// tracked event.
func (tc *TableCreator) SeedInitialContent(db *sql.DB) error {
	var exists bool
	err := db.QueryRow("SELECT EXISTS(SELECT 1 FROM system_documents WHERE id = 'settings')").Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check for settings document: %w", err)
	}
	if exists {
		return nil
	}

	payload, err := json.Marshal(map[string]string{"tagline": config.DefaultTagline})
	if err != nil {
		return fmt.Errorf("failed to marshal default settings: %w", err)
	}

	if _, err := db.Exec(`INSERT INTO system_documents (id, payload) VALUES ('settings', ?)`, string(payload)); err != nil {
		return fmt.Errorf("failed to insert default settings: %w", err)
	}
	return nil
}
