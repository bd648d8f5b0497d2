package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/attendance"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/week"
	"github.com/northwick-labs/attendance-pipeline-go/internal/repository/postgresql"
)

func seedEmployee(t *testing.T, ctx context.Context, email string) {
	t.Helper()

	repo := postgresql.NewEmployeeRepository(testDB)
	hire := time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC)
	_, err := repo.Upsert(ctx, employee.Employee{
		Email:     email,
		FirstName: "Test",
		LastName:  "Employee",
		Role:      "Staff",
		Tier:      1,
		HireDate:  &hire,
		Active:    true,
	})
	require.NoError(t, err)
}

func testFact(weekKey string, start time.Time, email string, hours float64) attendance.AttendanceFact {
	return attendance.AttendanceFact{
		WeekKey:     weekKey,
		WeekStart:   start,
		WeekEnd:     start.AddDate(0, 0, 6),
		Email:       email,
		HoursWorked: hours,
		OnTimeDays:  5,
		WorkDays:    5,
	}
}

func TestAttendanceRepository_AppendAndQuery(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	truncateAll(t, ctx)
	seedEmployee(t, ctx, "ana@example.com")

	repo := postgresql.NewAttendanceRepository(db)

	w5 := time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC)
	w6 := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)

	// Appended newest-first to prove query order comes from week start.
	require.NoError(t, repo.AppendFacts(ctx, []attendance.AttendanceFact{
		testFact("2024-W06", w6, "ana@example.com", 39.5),
	}))
	require.NoError(t, repo.AppendFacts(ctx, []attendance.AttendanceFact{
		testFact("2024-W05", w5, "ana@example.com", 40),
	}))

	facts, err := repo.FactsForEmployeeSince(ctx, "ana@example.com", time.Date(2022, 6, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, facts, 2)
	assert.Equal(t, "2024-W05", facts[0].WeekKey)
	assert.Equal(t, "2024-W06", facts[1].WeekKey)
	assert.Equal(t, 40.0, facts[0].HoursWorked)
	assert.Equal(t, "2024-01-29", facts[0].WeekStart.Format("2006-01-02"))

	// A since date past the first week trims it.
	facts, err = repo.FactsForEmployeeSince(ctx, "ana@example.com", w6)
	require.NoError(t, err)
	require.Len(t, facts, 1)
	assert.Equal(t, "2024-W06", facts[0].WeekKey)

	byWeek, err := repo.ListByWeek(ctx, "2024-W05")
	require.NoError(t, err)
	require.Len(t, byWeek, 1)
	assert.Equal(t, "ana@example.com", byWeek[0].Email)
}

func TestAttendanceRepository_DuplicatePair(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	truncateAll(t, ctx)
	seedEmployee(t, ctx, "ana@example.com")

	repo := postgresql.NewAttendanceRepository(db)
	w5 := time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.AppendFacts(ctx, []attendance.AttendanceFact{
		testFact("2024-W05", w5, "ana@example.com", 40),
	}))

	err := repo.AppendFacts(ctx, []attendance.AttendanceFact{
		testFact("2024-W05", w5, "ana@example.com", 38),
	})

	assert.ErrorIs(t, err, attendance.ErrDuplicateFact)
}

func TestAttendanceRepository_UnknownEmployee(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	truncateAll(t, ctx)

	repo := postgresql.NewAttendanceRepository(db)
	w5 := time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC)

	err := repo.AppendFacts(ctx, []attendance.AttendanceFact{
		testFact("2024-W05", w5, "ghost@example.com", 40),
	})

	assert.ErrorIs(t, err, attendance.ErrUnknownEmployee)
}

func TestLedgerRepository_MarkProcessedOnce(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	truncateAll(t, ctx)
	runID := seedFinishedRun(t, ctx)

	repo := postgresql.NewLedgerRepository(db)

	desc := week.WeekDescriptor{
		WeekKey:       "2024-W05",
		StartDate:     time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC),
		ExpectedHours: 40,
	}

	require.NoError(t, repo.MarkProcessed(ctx, desc, runID))

	processed, err := repo.IsProcessed(ctx, "2024-W05")
	require.NoError(t, err)
	assert.True(t, processed)

	stored, err := repo.GetProcessed(ctx, "2024-W05")
	require.NoError(t, err)
	assert.Equal(t, runID, stored.RunID)
	assert.Equal(t, "2024-01-29", stored.StartDate.Format("2006-01-02"))
	assert.Equal(t, 40.0, stored.ExpectedHours)
	assert.False(t, stored.ProcessedAt.IsZero())

	err = repo.MarkProcessed(ctx, desc, runID)
	assert.ErrorIs(t, err, week.ErrDuplicateWeek)

	set, err := repo.ProcessedSet(ctx)
	require.NoError(t, err)
	assert.True(t, set["2024-W05"])
	assert.False(t, set["2024-W06"])
}

// The week commit is one transaction: facts and the processed marker land
// together or not at all.
func TestWeekCommit_Atomicity(t *testing.T) {
	db := testDatabase(t)
	ctx := context.Background()
	truncateAll(t, ctx)
	seedEmployee(t, ctx, "ana@example.com")
	runID := seedFinishedRun(t, ctx)

	attRepo := postgresql.NewAttendanceRepository(db)
	ledgerRepo := postgresql.NewLedgerRepository(db)

	desc := week.WeekDescriptor{
		WeekKey:       "2024-W05",
		StartDate:     time.Date(2024, 1, 29, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 2, 4, 0, 0, 0, 0, time.UTC),
		ExpectedHours: 40,
	}
	facts := []attendance.AttendanceFact{
		testFact("2024-W05", desc.StartDate, "ana@example.com", 40),
	}

	tx, err := db.BeginTx(ctx)
	require.NoError(t, err)
	txCtx := context.WithValue(ctx, "tx", tx)

	require.NoError(t, attRepo.AppendFacts(txCtx, facts))
	require.NoError(t, ledgerRepo.MarkProcessed(txCtx, desc, runID))
	require.NoError(t, tx.Rollback(ctx))

	processed, err := ledgerRepo.IsProcessed(ctx, "2024-W05")
	require.NoError(t, err)
	assert.False(t, processed)

	byWeek, err := attRepo.ListByWeek(ctx, "2024-W05")
	require.NoError(t, err)
	assert.Empty(t, byWeek)

	tx, err = db.BeginTx(ctx)
	require.NoError(t, err)
	txCtx = context.WithValue(ctx, "tx", tx)

	require.NoError(t, attRepo.AppendFacts(txCtx, facts))
	require.NoError(t, ledgerRepo.MarkProcessed(txCtx, desc, runID))
	require.NoError(t, tx.Commit(ctx))

	processed, err = ledgerRepo.IsProcessed(ctx, "2024-W05")
	require.NoError(t, err)
	assert.True(t, processed)

	byWeek, err = attRepo.ListByWeek(ctx, "2024-W05")
	require.NoError(t, err)
	assert.Len(t, byWeek, 1)
}
