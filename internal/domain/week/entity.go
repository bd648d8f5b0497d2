package week

import (
	"fmt"
	"time"

	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/validator"
)

type WeekDescriptor struct {
	WeekKey       string
	StartDate     time.Time
	EndDate       time.Time
	ExpectedHours float64
}

const DefaultExpectedHours = 40.0

// ProcessedWeek is a descriptor that has been fully committed, together with
// the marker that guards against re-processing.
type ProcessedWeek struct {
	WeekKey       string
	StartDate     time.Time
	EndDate       time.Time
	ExpectedHours float64
	ProcessedAt   time.Time
	RunID         string
}

// ISOWeekKey formats the ISO year-week token for a point in time, e.g.
// "2024-W05".
func ISOWeekKey(t time.Time) string {
	year, wk := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, wk)
}

// ParseWeekKey splits an ISO year-week token into its year and week number.
func ParseWeekKey(key string) (year, wk int, err error) {
	if !validator.IsValidWeekKey(key) {
		return 0, 0, fmt.Errorf("invalid week key %q", key)
	}
	if _, err := fmt.Sscanf(key, "%d-W%d", &year, &wk); err != nil {
		return 0, 0, fmt.Errorf("invalid week key %q: %w", key, err)
	}
	if wk < 1 || wk > 53 {
		return 0, 0, fmt.Errorf("invalid week key %q: week number out of range", key)
	}
	return year, wk, nil
}

// MondayOfISOWeek returns the Monday that starts the given ISO week. January 4
// always falls in ISO week 1, which anchors the calculation.
func MondayOfISOWeek(year, wk int, loc *time.Location) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, loc)
	daysSinceMonday := (int(jan4.Weekday()) + 6) % 7
	firstMonday := jan4.AddDate(0, 0, -daysSinceMonday)
	return firstMonday.AddDate(0, 0, (wk-1)*7)
}
