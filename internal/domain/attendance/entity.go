package attendance

import (
	"time"
)

// OnTimeWeekThreshold is the share of work days that must be on time for a
// week to count as an on-time week.
const OnTimeWeekThreshold = 0.90

// AttendanceFact is one employee's attendance for one reporting week. Facts
// are append-only; a (week key, email) pair is written at most once.
type AttendanceFact struct {
	WeekKey     string
	WeekStart   time.Time
	WeekEnd     time.Time
	Email       string
	HoursWorked float64
	OnTimeDays  int
	WorkDays    int
	LateCount   int
	MajorIssues int
	CreatedAt   time.Time
}

// OnTimeRatio is the on-time share of the week's work days, zero when no
// work days were recorded.
func (f AttendanceFact) OnTimeRatio() float64 {
	if f.WorkDays <= 0 {
		return 0
	}
	return float64(f.OnTimeDays) / float64(f.WorkDays)
}

// Counted reports whether the week participates in week counts and the
// on-time rate. A week without work days carries hours but is excluded from
// both sides of the on-time rate.
func (f AttendanceFact) Counted() bool {
	return f.WorkDays > 0
}

// OnTime reports whether this week is an on-time week.
func (f AttendanceFact) OnTime() bool {
	return f.Counted() && f.OnTimeRatio() >= OnTimeWeekThreshold
}
