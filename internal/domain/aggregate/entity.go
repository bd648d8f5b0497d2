package aggregate

import (
	"time"

	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
)

// AggregateSnapshot is the since-hire rollup for one employee. It is derived
// state: recomputing against the same facts yields an identical snapshot.
type AggregateSnapshot struct {
	Email             string
	TotalHours        float64
	TotalWeeksCounted int
	OnTimeWeeks       int
	MajorIssuesSum    int
	Series            []CumulativePoint
}

// CumulativePoint is one week of the cumulative-hours-since-hire series. The
// series is non-decreasing because weekly hours are never negative.
type CumulativePoint struct {
	WeekKey         string
	WeekStart       time.Time
	Hours           float64
	CumulativeHours float64
}

// OnTimeRate is onTimeWeeks over totalWeeksCounted, zero when no weeks
// counted.
func (s AggregateSnapshot) OnTimeRate() float64 {
	if s.TotalWeeksCounted <= 0 {
		return 0
	}
	return float64(s.OnTimeWeeks) / float64(s.TotalWeeksCounted)
}

// Totals maps the snapshot onto the denormalized employee columns.
func (s AggregateSnapshot) Totals() employee.AggregateTotals {
	return employee.AggregateTotals{
		HoursTotal:  s.TotalHours,
		TotalWeeks:  s.TotalWeeksCounted,
		WeeksOnTime: s.OnTimeWeeks,
	}
}
