package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite" // Test Package
)

// SetupTestDB creates an in-memory SQLite database for testing.
// The database is automatically cleaned up when the test completes.
//
// Example usage:
//
//	func TestSomething(t *testing.T) {
//	    db := testutil.SetupTestDB(t)
//	    // db is ready to use with schema created
//	}
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	// In-memory database (destroyed when connection closes)
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = MEMORY", // Faster for tests
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			t.Fatalf("Failed to set pragma: %v", err)
		}
	}

	if err := createTestSchema(db); err != nil {
		t.Fatalf("Failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// createTestSchema creates all database tables for testing.
// Schema is synchronized with the production migrations.
func createTestSchema(db *sql.DB) error {
	schema := `
		-- Holding table
		CREATE TABLE IF NOT EXISTS holding (
			fund_code VARCHAR(6) NOT NULL PRIMARY KEY,
			share FLOAT NOT NULL DEFAULT 0 CHECK (share >= 0)
		);

		-- Finalized trade history
		CREATE TABLE IF NOT EXISTS trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			fund_code VARCHAR(6) NOT NULL,
			type VARCHAR(4) NOT NULL,
			date DATE NOT NULL,
			amount FLOAT NOT NULL,
			share FLOAT NOT NULL,
			price FLOAT NOT NULL,
			timestamp BIGINT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_trade_fund_code ON trade(fund_code);

		-- Pending trade queue
		CREATE TABLE IF NOT EXISTS pending_trade (
			id VARCHAR(36) NOT NULL PRIMARY KEY,
			fund_code VARCHAR(6) NOT NULL,
			type VARCHAR(4) NOT NULL,
			date DATE NOT NULL,
			is_after_3pm BOOLEAN NOT NULL DEFAULT FALSE,
			amount FLOAT NOT NULL DEFAULT 0,
			share FLOAT NOT NULL DEFAULT 0,
			fee_mode VARCHAR(6) NOT NULL DEFAULT 'rate',
			fee_value FLOAT NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_pending_trade_fund_code ON pending_trade(fund_code);

		-- Settings key/value store
		CREATE TABLE IF NOT EXISTS setting (
			key VARCHAR(64) NOT NULL PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := db.Exec(schema)
	return err
}
