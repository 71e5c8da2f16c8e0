package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"

	"github.com/WailSalutem-Health-Care/clinic-service/internal/db"
	_ "github.com/lib/pq"
)

// SetupTestDB connects to the database named by TEST_DATABASE_URL and makes
// sure the clinic schema exists. The test is skipped when the variable is unset.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	connStr := os.Getenv("TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	database, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := database.Ping(); err != nil {
		t.Fatalf("Failed to ping test database: %v", err)
	}

	if err := db.EnsureSchema(context.Background(), database); err != nil {
		database.Close()
		t.Fatalf("Failed to create schema: %v", err)
	}

	return database
}

// CleanupTestDB removes every record of the given kinds
func CleanupTestDB(t *testing.T, database *sql.DB, kinds ...string) {
	t.Helper()

	for _, kind := range kinds {
		if _, err := database.Exec("DELETE FROM clinic_records WHERE kind = $1", kind); err != nil {
			t.Logf("Warning: failed to cleanup %s records: %v", kind, err)
		}
	}
}
