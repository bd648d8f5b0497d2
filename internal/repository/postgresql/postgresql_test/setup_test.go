package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/database"
)

// These tests run against a real PostgreSQL database and are skipped unless
// TEST_DATABASE_URL is set. The schema must be migrated first:
//
//	go run ./cmd/migrate up
var testDB *database.DB

func testDatabase(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping live database tests")
	}

	if testDB == nil {
		var err error
		testDB, err = database.NewPostgreSQLDB(dsn, 5, 1)
		require.NoError(t, err, "failed to connect to test database")
	}

	return testDB
}

func truncateAll(t *testing.T, ctx context.Context) {
	t.Helper()

	tables := []string{
		"weekly_attendance",
		"processed_weeks",
		"promotion_log",
		"runs",
		"employees",
	}

	for _, table := range tables {
		_, err := testDB.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}
}

// seedFinishedRun inserts a terminal run row so foreign keys on
// processed_weeks and promotion_log can be satisfied without holding the
// run lock.
func seedFinishedRun(t *testing.T, ctx context.Context) string {
	t.Helper()

	id := uuid.NewString()
	_, err := testDB.Exec(ctx, `
		INSERT INTO runs (id, run_type, week_key, status, finished_at)
		VALUES ($1, 'PIPELINE', '2024-W01', 'FINALIZED', NOW())
	`, id)
	require.NoError(t, err)

	return id
}

func strPtr(s string) *string {
	return &s
}
