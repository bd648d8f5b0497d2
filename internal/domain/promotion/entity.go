package promotion

import "time"

// Promotion rule thresholds. The rule is deliberately blunt: long enough
// tenure, a clean issue record, and a consistently on-time history.
const (
	MinTenureYears      = 2
	OnTimeRateThreshold = 0.90
)

// Reason recorded on every granted promotion.
const Reason = "2y tenure, 0 major issues, >=90% on-time"

type Outcome string

const (
	OutcomePromoted Outcome = "promoted"
)

// PromotionRecord is one positive promotion decision. History is append-only;
// re-evaluation never rewrites or deletes earlier records, and an employee
// holds at most one promoted record.
type PromotionRecord struct {
	ID       string
	Email    string
	RunID    string
	Outcome  Outcome
	FromTier int
	ToTier   int
	FromRole string
	ToRole   string
	Reason   string

	// Aggregate values that justified the decision.
	TenureYears       int
	OnTimeWeeks       int
	TotalWeeksCounted int
	MajorIssuesTotal  int
	TotalHours        float64

	CreatedAt time.Time
}
