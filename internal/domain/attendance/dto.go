package attendance

import "time"

type FactResponse struct {
	WeekKey     string  `json:"week_key"`
	WeekStart   string  `json:"week_start"`
	WeekEnd     string  `json:"week_end"`
	Email       string  `json:"email"`
	HoursWorked float64 `json:"hours_worked"`
	OnTimeDays  int     `json:"on_time_days"`
	WorkDays    int     `json:"work_days"`
	OnTimeRatio float64 `json:"on_time_ratio"`
	LateCount   int     `json:"late_count"`
	MajorIssues int     `json:"major_issues"`
	CreatedAt   string  `json:"created_at"`
}

func ToResponse(f AttendanceFact) FactResponse {
	return FactResponse{
		WeekKey:     f.WeekKey,
		WeekStart:   f.WeekStart.Format("2006-01-02"),
		WeekEnd:     f.WeekEnd.Format("2006-01-02"),
		Email:       f.Email,
		HoursWorked: f.HoursWorked,
		OnTimeDays:  f.OnTimeDays,
		WorkDays:    f.WorkDays,
		OnTimeRatio: f.OnTimeRatio(),
		LateCount:   f.LateCount,
		MajorIssues: f.MajorIssues,
		CreatedAt:   f.CreatedAt.Format(time.RFC3339),
	}
}
