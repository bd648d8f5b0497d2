package week

import (
	"testing"
	"time"

	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekPayloadValidateAndDescriptor(t *testing.T) {
	payload := WeekPayload{
		WeekStart: "2024-01-29",
		WeekEnd:   "2024-02-04",
	}

	require.NoError(t, payload.Validate(time.UTC))
	desc := payload.Descriptor(time.UTC)

	assert.Equal(t, "2024-W05", desc.WeekKey)
	assert.Equal(t, "2024-01-29", desc.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-02-04", desc.EndDate.Format("2006-01-02"))
	assert.Equal(t, DefaultExpectedHours, desc.ExpectedHours)
}

func TestWeekPayloadDescriptorFromKeyOnly(t *testing.T) {
	hours := 37.5
	payload := WeekPayload{
		WeekKey:       "2024-W05",
		ExpectedHours: &hours,
	}

	require.NoError(t, payload.Validate(time.UTC))
	desc := payload.Descriptor(time.UTC)

	assert.Equal(t, "2024-W05", desc.WeekKey)
	assert.Equal(t, "2024-01-29", desc.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-02-04", desc.EndDate.Format("2006-01-02"))
	assert.Equal(t, 37.5, desc.ExpectedHours)
}

func TestWeekPayloadDescriptorFromTimestamp(t *testing.T) {
	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	// 02:00 UTC is still the previous evening in Chicago.
	payload := WeekPayload{WeekStart: "2024-01-30T02:00:00Z"}

	require.NoError(t, payload.Validate(chicago))
	desc := payload.Descriptor(chicago)

	assert.Equal(t, "2024-01-29", desc.StartDate.Format("2006-01-02"))
	assert.Equal(t, "2024-W05", desc.WeekKey)
}

func TestWeekPayloadValidateRejects(t *testing.T) {
	cases := []struct {
		name    string
		payload WeekPayload
		field   string
	}{
		{"no key and no dates", WeekPayload{}, "weekKey"},
		{"opaque key without dates", WeekPayload{WeekKey: "sprint-five"}, "weekKey"},
		{"end before start", WeekPayload{WeekStart: "2024-02-04", WeekEnd: "2024-01-29"}, "weekEnd"},
		{"bad start date", WeekPayload{WeekKey: "2024-W05", WeekStart: "01/29/2024"}, "weekStart"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.payload.Validate(time.UTC)
			require.Error(t, err)

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), c.field)
		})
	}
}

func TestWeekPayloadNegativeExpectedHours(t *testing.T) {
	hours := -1.0
	payload := WeekPayload{WeekKey: "2024-W05", ExpectedHours: &hours}

	err := payload.Validate(time.UTC)
	require.Error(t, err)

	var errs validator.ValidationErrors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs.ToMap(), "expectedHours")
}

func TestWeekEntryValidate(t *testing.T) {
	entry := WeekEntry{
		Email:       " Jane.Doe@Example.com ",
		HoursWorked: 40,
		WorkDays:    5,
		OnTimeDays:  5,
	}

	require.NoError(t, entry.Validate())
	assert.Equal(t, "jane.doe@example.com", entry.Email)
}

func TestWeekEntryValidateRejects(t *testing.T) {
	cases := []struct {
		name  string
		entry WeekEntry
		field string
	}{
		{"missing email", WeekEntry{WorkDays: 5}, "email"},
		{"bad email", WeekEntry{Email: "not-an-email", WorkDays: 5}, "email"},
		{"negative hours", WeekEntry{Email: "a@b.co", HoursWorked: -1}, "hoursWorked"},
		{"hours over cap", WeekEntry{Email: "a@b.co", HoursWorked: 120}, "hoursWorked"},
		{"negative work days", WeekEntry{Email: "a@b.co", WorkDays: -1}, "workDays"},
		{"on-time exceeds work days", WeekEntry{Email: "a@b.co", WorkDays: 4, OnTimeDays: 5}, "onTimeDays"},
		{"negative late count", WeekEntry{Email: "a@b.co", LateCount: -2}, "lateCount"},
		{"negative major issues", WeekEntry{Email: "a@b.co", MajorIssues: -1}, "majorIssues"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			err := c.entry.Validate()
			require.Error(t, err)

			var errs validator.ValidationErrors
			require.ErrorAs(t, err, &errs)
			assert.Contains(t, errs.ToMap(), c.field)
		})
	}
}
