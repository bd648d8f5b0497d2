package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/attendance"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/export"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/week"
)

var csvHeader = []string{"weekKey", "email", "hoursWorked", "onTime%", "status"}

type ExportServiceImpl struct {
	attendanceRepo attendance.AttendanceRepository
	ledgerRepo     week.LedgerRepository
	outDir         string
}

func NewExportService(
	attendanceRepo attendance.AttendanceRepository,
	ledgerRepo week.LedgerRepository,
	outDir string,
) export.ExportService {
	return &ExportServiceImpl{
		attendanceRepo: attendanceRepo,
		ledgerRepo:     ledgerRepo,
		outDir:         outDir,
	}
}

// WeekSummaries implements export.ExportService. Each summary row grades the
// employee's recorded hours against the expected-hours baseline stored on
// that week's ledger entry.
func (s *ExportServiceImpl) WeekSummaries(ctx context.Context, weekKeys []string) ([]string, error) {
	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	paths := make([]string, 0, len(weekKeys))
	for _, weekKey := range weekKeys {
		processed, err := s.ledgerRepo.GetProcessed(ctx, weekKey)
		if err != nil {
			return paths, fmt.Errorf("failed to load week %s: %w", weekKey, err)
		}

		facts, err := s.attendanceRepo.ListByWeek(ctx, weekKey)
		if err != nil {
			return paths, fmt.Errorf("failed to load facts for week %s: %w", weekKey, err)
		}

		records := [][]string{csvHeader}
		for _, f := range facts {
			records = append(records, formatRow(summaryRow(f, processed.ExpectedHours)))
		}

		path := filepath.Join(s.outDir, "summary-"+sanitizeKey(weekKey)+".csv")
		if err := writeCSV(path, records); err != nil {
			return paths, err
		}
		paths = append(paths, path)

		slog.Info("Week summary exported", "week_key", weekKey, "path", path, "rows", len(facts))
	}

	return paths, nil
}

// OvertimeReport implements export.ExportService. The report is rewritten
// whole on every call so it always reflects the full fact history.
func (s *ExportServiceImpl) OvertimeReport(ctx context.Context) (string, error) {
	if err := os.MkdirAll(s.outDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	facts, err := s.attendanceRepo.ListAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load facts: %w", err)
	}

	processed, err := s.ledgerRepo.ListProcessed(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load week ledger: %w", err)
	}
	expected := make(map[string]float64, len(processed))
	for _, p := range processed {
		expected[p.WeekKey] = p.ExpectedHours
	}

	records := [][]string{csvHeader}
	for _, f := range facts {
		baseline, ok := expected[f.WeekKey]
		if !ok {
			baseline = week.DefaultExpectedHours
		}
		row := summaryRow(f, baseline)
		row.HoursWorked = math.Round(row.HoursWorked*100) / 100
		records = append(records, formatRow(row))
	}

	path := filepath.Join(s.outDir, "performance_overtime.csv")
	if err := writeCSV(path, records); err != nil {
		return "", err
	}

	slog.Info("Overtime report exported", "path", path, "rows", len(facts))

	return path, nil
}

func summaryRow(f attendance.AttendanceFact, expectedHours float64) export.SummaryRow {
	return export.SummaryRow{
		WeekKey:       f.WeekKey,
		Email:         f.Email,
		HoursWorked:   f.HoursWorked,
		OnTimePercent: int(f.OnTimeRatio() * 100),
		Status:        export.StatusFor(f.HoursWorked, expectedHours),
	}
}

func formatRow(row export.SummaryRow) []string {
	return []string{
		row.WeekKey,
		row.Email,
		strconv.FormatFloat(row.HoursWorked, 'f', -1, 64),
		strconv.Itoa(row.OnTimePercent) + "%",
		row.Status,
	}
}

// sanitizeKey makes a week key safe as a file name component.
func sanitizeKey(weekKey string) string {
	return strings.ReplaceAll(weekKey, " ", "_")
}

func writeCSV(path string, records [][]string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}
