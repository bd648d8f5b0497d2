package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/northwick-labs/attendance-pipeline-go/internal/domain/promotion"
	"github.com/northwick-labs/attendance-pipeline-go/internal/pkg/database"
)

const promotionColumns = `id, email, run_id, outcome, from_tier, to_tier, from_role, to_role,
		reason, tenure_years, on_time_weeks, total_weeks_counted, major_issues_total,
		total_hours, created_at`

type promotionRepositoryImpl struct {
	db *database.DB
}

func NewPromotionRepository(db *database.DB) promotion.PromotionRepository {
	return &promotionRepositoryImpl{db: db}
}

// HasPromoted implements promotion.PromotionRepository.
func (p *promotionRepositoryImpl) HasPromoted(ctx context.Context, email string) (bool, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT EXISTS (SELECT 1 FROM promotion_log WHERE email = $1 AND outcome = $2)`

	var promoted bool
	if err := q.QueryRow(ctx, query, email, promotion.OutcomePromoted).Scan(&promoted); err != nil {
		return false, fmt.Errorf("failed to check promotion for %s: %w", email, err)
	}

	return promoted, nil
}

// Append implements promotion.PromotionRepository.
func (p *promotionRepositoryImpl) Append(ctx context.Context, rec promotion.PromotionRecord) (promotion.PromotionRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO promotion_log (
			id, email, run_id, outcome, from_tier, to_tier, from_role, to_role,
			reason, tenure_years, on_time_weeks, total_weeks_counted,
			major_issues_total, total_hours
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING ` + promotionColumns + `
	`

	saved, err := scanPromotion(q.QueryRow(ctx, query,
		rec.ID, rec.Email, rec.RunID, rec.Outcome, rec.FromTier, rec.ToTier,
		rec.FromRole, rec.ToRole, rec.Reason, rec.TenureYears, rec.OnTimeWeeks,
		rec.TotalWeeksCounted, rec.MajorIssuesTotal, rec.TotalHours,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
			if pgErr.ConstraintName == "promotion_log_promoted_once_idx" {
				return promotion.PromotionRecord{}, promotion.ErrAlreadyPromoted
			}
		}
		return promotion.PromotionRecord{}, fmt.Errorf("failed to append promotion for %s: %w", rec.Email, err)
	}

	return saved, nil
}

// List implements promotion.PromotionRepository.
func (p *promotionRepositoryImpl) List(ctx context.Context) ([]promotion.PromotionRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + promotionColumns + `
		FROM promotion_log
		ORDER BY created_at, email
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions: %w", err)
	}
	defer rows.Close()

	return scanPromotions(rows)
}

// ListByEmail implements promotion.PromotionRepository.
func (p *promotionRepositoryImpl) ListByEmail(ctx context.Context, email string) ([]promotion.PromotionRecord, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + promotionColumns + `
		FROM promotion_log
		WHERE email = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list promotions for %s: %w", email, err)
	}
	defer rows.Close()

	return scanPromotions(rows)
}

func scanPromotion(row pgx.Row) (promotion.PromotionRecord, error) {
	var rec promotion.PromotionRecord
	var outcome string
	err := row.Scan(
		&rec.ID, &rec.Email, &rec.RunID, &outcome, &rec.FromTier,
		&rec.ToTier, &rec.FromRole, &rec.ToRole, &rec.Reason,
		&rec.TenureYears, &rec.OnTimeWeeks, &rec.TotalWeeksCounted,
		&rec.MajorIssuesTotal, &rec.TotalHours, &rec.CreatedAt,
	)
	if err != nil {
		return promotion.PromotionRecord{}, err
	}
	rec.Outcome = promotion.Outcome(outcome)
	return rec, nil
}

func scanPromotions(rows pgx.Rows) ([]promotion.PromotionRecord, error) {
	var records []promotion.PromotionRecord
	for rows.Next() {
		rec, err := scanPromotion(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
