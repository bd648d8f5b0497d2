package promotion

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/aggregate"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/employee"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/promotion"
)

type PromotionServiceImpl struct {
	promotionRepo promotion.PromotionRepository
	now           func() time.Time
}

func NewPromotionService(promotionRepo promotion.PromotionRepository) promotion.Service {
	return &PromotionServiceImpl{
		promotionRepo: promotionRepo,
		now:           time.Now,
	}
}

// Evaluate implements promotion.Service. The rule itself never looks at the
// clock beyond computing tenure, and it never mutates the employee row; the
// promoted tier and role are recorded on the promotion log only.
func (s *PromotionServiceImpl) Evaluate(ctx context.Context, emp employee.Employee, snapshot aggregate.AggregateSnapshot, runID string) (*promotion.PromotionRecord, error) {
	if emp.HireDate == nil {
		return nil, nil
	}

	tenure := tenureYears(*emp.HireDate, s.now())
	majorIssuesTotal := emp.MajorIssues + snapshot.MajorIssuesSum

	eligible := tenure >= promotion.MinTenureYears &&
		majorIssuesTotal == 0 &&
		snapshot.TotalWeeksCounted > 0 &&
		snapshot.OnTimeRate() >= promotion.OnTimeRateThreshold
	if !eligible {
		return nil, nil
	}

	promoted, err := s.promotionRepo.HasPromoted(ctx, emp.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check promotion history for %s: %w", emp.Email, err)
	}
	if promoted {
		return nil, nil
	}

	toTier := emp.Tier + 1
	if toTier > employee.TierMax {
		toTier = employee.TierMax
	}

	rec := promotion.PromotionRecord{
		ID:                uuid.New().String(),
		Email:             emp.Email,
		RunID:             runID,
		Outcome:           promotion.OutcomePromoted,
		FromTier:          emp.Tier,
		ToTier:            toTier,
		FromRole:          emp.Role,
		ToRole:            employee.RoleForTier(toTier, emp.Role),
		Reason:            promotion.Reason,
		TenureYears:       tenure,
		OnTimeWeeks:       snapshot.OnTimeWeeks,
		TotalWeeksCounted: snapshot.TotalWeeksCounted,
		MajorIssuesTotal:  majorIssuesTotal,
		TotalHours:        snapshot.TotalHours,
	}

	saved, err := s.promotionRepo.Append(ctx, rec)
	if err != nil {
		// The partial unique index backstops HasPromoted; an existing
		// promoted record makes re-evaluation a no-op, not a failure.
		if errors.Is(err, promotion.ErrAlreadyPromoted) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to append promotion for %s: %w", emp.Email, err)
	}

	return &saved, nil
}

// tenureYears is the number of whole years between hire date and now,
// floored, never negative.
func tenureYears(hireDate, now time.Time) int {
	years := now.Year() - hireDate.Year()

	if int(now.Month()) < int(hireDate.Month()) ||
		(now.Month() == hireDate.Month() && now.Day() < hireDate.Day()) {
		years--
	}

	if years < 0 {
		years = 0
	}

	return years
}
