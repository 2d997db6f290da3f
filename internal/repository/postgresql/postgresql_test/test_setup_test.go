package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/gestaorh/presenca-backend-go/internal/pkg/database"
)

// TestDatabaseSetup initializes the test database connection
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to the test database and makes sure the
// presence_events table exists. Tests skip when TEST_DATABASE_URL is
// not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping repository tests")
	}

	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	ctx := context.Background()
	_, err = db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS presence_events (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			person_name TEXT NOT NULL,
			recorded_at TIMESTAMPTZ NOT NULL,
			source_file TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		t.Fatalf("failed to create presence_events table: %v", err)
	}

	return &TestDatabaseSetup{DB: db}
}

// TruncateAllTables clears every table the engine writes to
func (s *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tables := []string{
		"presence_events",
	}

	for _, table := range tables {
		if _, err := s.DB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return err
		}
	}
	return nil
}
