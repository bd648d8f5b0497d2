package week

import (
	"strings"
	"time"

	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/validator"
)

// MaxWeeklyHours caps a single attendance entry. Anything above it is a feed
// defect, not overtime.
const MaxWeeklyHours = 100.0

// WeekPayload is one decoded weekly attendance file. Field names follow the
// upstream feed, which is camelCase.
type WeekPayload struct {
	WeekKey       string      `json:"weekKey"`
	WeekStart     string      `json:"weekStart"`
	WeekEnd       string      `json:"weekEnd"`
	ExpectedHours *float64    `json:"expectedHours"`
	Entries       []WeekEntry `json:"entries"`
}

type WeekEntry struct {
	Email       string  `json:"email"`
	HoursWorked float64 `json:"hoursWorked"`
	WorkDays    int     `json:"workDays"`
	OnTimeDays  int     `json:"onTimeDays"`
	LateCount   int     `json:"lateCount"`
	MajorIssues int     `json:"majorIssues"`
}

// Validate checks the descriptor-level fields of the payload. The week must
// be placeable on the calendar: either an explicit start date or an ISO-form
// week key is required, because unprocessed weeks are ingested in start-date
// order.
func (p *WeekPayload) Validate(loc *time.Location) error {
	var errs validator.ValidationErrors

	p.WeekKey = strings.TrimSpace(p.WeekKey)
	p.WeekStart = strings.TrimSpace(p.WeekStart)
	p.WeekEnd = strings.TrimSpace(p.WeekEnd)

	start, startOK := parseFlexibleDate(p.WeekStart, loc)
	if p.WeekStart != "" && !startOK {
		errs = append(errs, validator.ValidationError{
			Field:   "weekStart",
			Message: "weekStart must be a YYYY-MM-DD date or RFC3339 timestamp",
		})
	}

	end, endOK := parseFlexibleDate(p.WeekEnd, loc)
	if p.WeekEnd != "" && !endOK {
		errs = append(errs, validator.ValidationError{
			Field:   "weekEnd",
			Message: "weekEnd must be a YYYY-MM-DD date or RFC3339 timestamp",
		})
	}

	if startOK && endOK && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "weekEnd",
			Message: "weekEnd must not be before weekStart",
		})
	}

	if p.ExpectedHours != nil && *p.ExpectedHours < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "expectedHours",
			Message: "expectedHours must not be negative",
		})
	}

	if !startOK && !endOK && !validator.IsValidWeekKey(p.WeekKey) {
		if p.WeekKey == "" {
			errs = append(errs, validator.ValidationError{
				Field:   "weekKey",
				Message: "weekKey or weekStart is required",
			})
		} else {
			errs = append(errs, validator.ValidationError{
				Field:   "weekKey",
				Message: "weekKey must be ISO form (YYYY-WNN) when no dates are given",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Descriptor derives the descriptor for a payload that passed Validate. The
// week key falls back to the ISO week of the start (or end) date; the start
// date falls back to the Monday of an ISO-form week key; the end date falls
// back to six days after the start.
func (p *WeekPayload) Descriptor(loc *time.Location) WeekDescriptor {
	desc := WeekDescriptor{
		WeekKey:       p.WeekKey,
		ExpectedHours: DefaultExpectedHours,
	}
	if p.ExpectedHours != nil {
		desc.ExpectedHours = *p.ExpectedHours
	}

	start, startOK := parseFlexibleDate(p.WeekStart, loc)
	end, endOK := parseFlexibleDate(p.WeekEnd, loc)

	if desc.WeekKey == "" {
		if startOK {
			desc.WeekKey = ISOWeekKey(start)
		} else if endOK {
			desc.WeekKey = ISOWeekKey(end)
		}
	}

	if !startOK {
		if year, wk, err := ParseWeekKey(desc.WeekKey); err == nil {
			start = MondayOfISOWeek(year, wk, loc)
			startOK = true
		} else if endOK {
			start = end.AddDate(0, 0, -6)
			startOK = true
		}
	}
	desc.StartDate = start

	if endOK {
		desc.EndDate = end
	} else if startOK {
		desc.EndDate = start.AddDate(0, 0, 6)
	}

	return desc
}

// Validate checks a single attendance entry and normalizes its email.
func (e *WeekEntry) Validate() error {
	var errs validator.ValidationErrors

	e.Email = strings.ToLower(strings.TrimSpace(e.Email))

	if validator.IsEmpty(e.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(e.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is not a valid address",
		})
	}

	if e.HoursWorked < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "hoursWorked",
			Message: "hoursWorked must not be negative",
		})
	} else if e.HoursWorked > MaxWeeklyHours {
		errs = append(errs, validator.ValidationError{
			Field:   "hoursWorked",
			Message: "hoursWorked exceeds the weekly maximum of 100",
		})
	}

	if e.WorkDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "workDays",
			Message: "workDays must not be negative",
		})
	}

	if e.OnTimeDays < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "onTimeDays",
			Message: "onTimeDays must not be negative",
		})
	} else if e.WorkDays >= 0 && e.OnTimeDays > e.WorkDays {
		errs = append(errs, validator.ValidationError{
			Field:   "onTimeDays",
			Message: "onTimeDays cannot exceed workDays",
		})
	}

	if e.LateCount < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "lateCount",
			Message: "lateCount must not be negative",
		})
	}

	if e.MajorIssues < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "majorIssues",
			Message: "majorIssues must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// parseFlexibleDate accepts the two date shapes the feed produces: a bare
// date or a full timestamp. Timestamps are shifted into loc before the date
// is taken, so a payload stamped near midnight lands on the operating day.
func parseFlexibleDate(s string, loc *time.Location) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	if d, ok := validator.IsValidDate(s); ok {
		return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc), true
	}
	if ts, ok := validator.IsValidDateTime(s); ok {
		local := ts.In(loc)
		return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc), true
	}
	return time.Time{}, false
}

type ProcessedWeekResponse struct {
	WeekKey       string  `json:"week_key"`
	StartDate     string  `json:"start_date"`
	EndDate       string  `json:"end_date"`
	ExpectedHours float64 `json:"expected_hours"`
	ProcessedAt   string  `json:"processed_at"`
	RunID         string  `json:"run_id"`
}

func ToResponse(p ProcessedWeek) ProcessedWeekResponse {
	return ProcessedWeekResponse{
		WeekKey:       p.WeekKey,
		StartDate:     p.StartDate.Format("2006-01-02"),
		EndDate:       p.EndDate.Format("2006-01-02"),
		ExpectedHours: p.ExpectedHours,
		ProcessedAt:   p.ProcessedAt.Format(time.RFC3339),
		RunID:         p.RunID,
	}
}
