package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/attendance"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/week"
)

type stubAttendanceRepo struct {
	attendance.AttendanceRepository
	byWeek map[string][]attendance.AttendanceFact
	all    []attendance.AttendanceFact
}

func (s *stubAttendanceRepo) ListByWeek(ctx context.Context, weekKey string) ([]attendance.AttendanceFact, error) {
	return s.byWeek[weekKey], nil
}

func (s *stubAttendanceRepo) ListAll(ctx context.Context) ([]attendance.AttendanceFact, error) {
	return s.all, nil
}

type stubLedgerRepo struct {
	week.LedgerRepository
	weeks map[string]week.ProcessedWeek
}

func (s *stubLedgerRepo) GetProcessed(ctx context.Context, weekKey string) (week.ProcessedWeek, error) {
	p, ok := s.weeks[weekKey]
	if !ok {
		return week.ProcessedWeek{}, week.ErrWeekNotFound
	}
	return p, nil
}

func (s *stubLedgerRepo) ListProcessed(ctx context.Context) ([]week.ProcessedWeek, error) {
	out := make([]week.ProcessedWeek, 0, len(s.weeks))
	for _, p := range s.weeks {
		out = append(out, p)
	}
	return out, nil
}

func exportFact(weekKey, email string, hours float64, onTimeDays, workDays int) attendance.AttendanceFact {
	return attendance.AttendanceFact{
		WeekKey:     weekKey,
		WeekStart:   time.Date(2024, time.January, 29, 0, 0, 0, 0, time.UTC),
		Email:       email,
		HoursWorked: hours,
		OnTimeDays:  onTimeDays,
		WorkDays:    workDays,
	}
}

func TestWeekSummaries(t *testing.T) {
	outDir := t.TempDir()

	attendanceRepo := &stubAttendanceRepo{byWeek: map[string][]attendance.AttendanceFact{
		"2024-W05": {
			exportFact("2024-W05", "ana@example.com", 40, 5, 5),
			exportFact("2024-W05", "ben@example.com", 20, 4, 5),
			exportFact("2024-W05", "cara@example.com", 0, 0, 0),
		},
	}}
	ledgerRepo := &stubLedgerRepo{weeks: map[string]week.ProcessedWeek{
		"2024-W05": {WeekKey: "2024-W05", ExpectedHours: 40},
	}}

	svc := NewExportService(attendanceRepo, ledgerRepo, outDir)

	paths, err := svc.WeekSummaries(context.Background(), []string{"2024-W05"})
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.Equal(t, filepath.Join(outDir, "summary-2024-W05.csv"), paths[0])

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)

	want := "weekKey,email,hoursWorked,onTime%,status\n" +
		"2024-W05,ana@example.com,40,100%,PASS\n" +
		"2024-W05,ben@example.com,20,80%,WARN\n" +
		"2024-W05,cara@example.com,0,0%,FAIL\n"
	assert.Equal(t, want, string(data))
}

func TestWeekSummaries_MultipleWeeks(t *testing.T) {
	outDir := t.TempDir()

	attendanceRepo := &stubAttendanceRepo{byWeek: map[string][]attendance.AttendanceFact{
		"2024-W05": {exportFact("2024-W05", "ana@example.com", 40, 5, 5)},
		"2024-W06": {exportFact("2024-W06", "ana@example.com", 39.5, 5, 5)},
	}}
	ledgerRepo := &stubLedgerRepo{weeks: map[string]week.ProcessedWeek{
		"2024-W05": {WeekKey: "2024-W05", ExpectedHours: 40},
		"2024-W06": {WeekKey: "2024-W06", ExpectedHours: 40},
	}}

	svc := NewExportService(attendanceRepo, ledgerRepo, outDir)

	paths, err := svc.WeekSummaries(context.Background(), []string{"2024-W05", "2024-W06"})
	require.NoError(t, err)
	require.Len(t, paths, 2)
	assert.Equal(t, filepath.Join(outDir, "summary-2024-W05.csv"), paths[0])
	assert.Equal(t, filepath.Join(outDir, "summary-2024-W06.csv"), paths[1])

	data, err := os.ReadFile(paths[1])
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-W06,ana@example.com,39.5,100%,PASS")
}

func TestWeekSummaries_UnprocessedWeek(t *testing.T) {
	svc := NewExportService(
		&stubAttendanceRepo{},
		&stubLedgerRepo{weeks: map[string]week.ProcessedWeek{}},
		t.TempDir(),
	)

	_, err := svc.WeekSummaries(context.Background(), []string{"2024-W09"})
	require.Error(t, err)
	assert.ErrorIs(t, err, week.ErrWeekNotFound)
	assert.Contains(t, err.Error(), "2024-W09")
}

func TestOvertimeReport(t *testing.T) {
	outDir := t.TempDir()

	attendanceRepo := &stubAttendanceRepo{all: []attendance.AttendanceFact{
		exportFact("2024-W05", "ana@example.com", 40, 5, 5),
		exportFact("2024-W05", "ben@example.com", 39.456, 4, 5),
		exportFact("2024-W06", "ben@example.com", 38, 5, 5),
	}}
	ledgerRepo := &stubLedgerRepo{weeks: map[string]week.ProcessedWeek{
		"2024-W05": {WeekKey: "2024-W05", ExpectedHours: 40},
		"2024-W06": {WeekKey: "2024-W06", ExpectedHours: 37.5},
	}}

	svc := NewExportService(attendanceRepo, ledgerRepo, outDir)

	path, err := svc.OvertimeReport(context.Background())
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outDir, "performance_overtime.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Hours round to two decimals; status grades against each week's own
	// baseline, so 38 hours passes the 37.5-hour week.
	want := "weekKey,email,hoursWorked,onTime%,status\n" +
		"2024-W05,ana@example.com,40,100%,PASS\n" +
		"2024-W05,ben@example.com,39.46,80%,WARN\n" +
		"2024-W06,ben@example.com,38,100%,PASS\n"
	assert.Equal(t, want, string(data))
}

func TestOvertimeReport_WeekMissingFromLedger(t *testing.T) {
	outDir := t.TempDir()

	attendanceRepo := &stubAttendanceRepo{all: []attendance.AttendanceFact{
		exportFact("2024-W05", "ana@example.com", 39, 5, 5),
	}}
	svc := NewExportService(attendanceRepo, &stubLedgerRepo{}, outDir)

	path, err := svc.OvertimeReport(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	// Falls back to the default 40-hour baseline.
	assert.Contains(t, string(data), "2024-W05,ana@example.com,39,100%,WARN")
}

func TestOvertimeReport_Empty(t *testing.T) {
	outDir := t.TempDir()

	svc := NewExportService(&stubAttendanceRepo{}, &stubLedgerRepo{}, outDir)

	path, err := svc.OvertimeReport(context.Background())
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "weekKey,email,hoursWorked,onTime%,status\n", string(data))
}
