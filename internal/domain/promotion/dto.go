package promotion

import "time"

type PromotionResponse struct {
	ID                string  `json:"id"`
	Email             string  `json:"email"`
	RunID             string  `json:"run_id"`
	Outcome           string  `json:"outcome"`
	FromTier          int     `json:"from_tier"`
	ToTier            int     `json:"to_tier"`
	FromRole          string  `json:"from_role"`
	ToRole            string  `json:"to_role"`
	Reason            string  `json:"reason"`
	TenureYears       int     `json:"tenure_years"`
	OnTimeWeeks       int     `json:"on_time_weeks"`
	TotalWeeksCounted int     `json:"total_weeks_counted"`
	MajorIssuesTotal  int     `json:"major_issues_total"`
	TotalHours        float64 `json:"total_hours"`
	CreatedAt         string  `json:"created_at"`
}

func ToResponse(rec PromotionRecord) PromotionResponse {
	return PromotionResponse{
		ID:                rec.ID,
		Email:             rec.Email,
		RunID:             rec.RunID,
		Outcome:           string(rec.Outcome),
		FromTier:          rec.FromTier,
		ToTier:            rec.ToTier,
		FromRole:          rec.FromRole,
		ToRole:            rec.ToRole,
		Reason:            rec.Reason,
		TenureYears:       rec.TenureYears,
		OnTimeWeeks:       rec.OnTimeWeeks,
		TotalWeeksCounted: rec.TotalWeeksCounted,
		MajorIssuesTotal:  rec.MajorIssuesTotal,
		TotalHours:        rec.TotalHours,
		CreatedAt:         rec.CreatedAt.Format(time.RFC3339),
	}
}
