package aggregate

type SnapshotResponse struct {
	Email             string            `json:"email"`
	TotalHours        float64           `json:"total_hours"`
	TotalWeeksCounted int               `json:"total_weeks_counted"`
	OnTimeWeeks       int               `json:"on_time_weeks"`
	OnTimeRate        float64           `json:"on_time_rate"`
	MajorIssuesSum    int               `json:"major_issues_sum"`
	Series            []SeriesPointItem `json:"series"`
}

type SeriesPointItem struct {
	WeekKey         string  `json:"week_key"`
	WeekStart       string  `json:"week_start"`
	Hours           float64 `json:"hours"`
	CumulativeHours float64 `json:"cumulative_hours"`
}

func ToResponse(s AggregateSnapshot) SnapshotResponse {
	resp := SnapshotResponse{
		Email:             s.Email,
		TotalHours:        s.TotalHours,
		TotalWeeksCounted: s.TotalWeeksCounted,
		OnTimeWeeks:       s.OnTimeWeeks,
		OnTimeRate:        s.OnTimeRate(),
		MajorIssuesSum:    s.MajorIssuesSum,
		Series:            make([]SeriesPointItem, 0, len(s.Series)),
	}
	for _, p := range s.Series {
		resp.Series = append(resp.Series, SeriesPointItem{
			WeekKey:         p.WeekKey,
			WeekStart:       p.WeekStart.Format("2006-01-02"),
			Hours:           p.Hours,
			CumulativeHours: p.CumulativeHours,
		})
	}
	return resp
}
