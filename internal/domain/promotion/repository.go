package promotion

import "context"

type PromotionRepository interface {
	// HasPromoted reports whether the employee already holds a record with
	// the promoted outcome.
	HasPromoted(ctx context.Context, email string) (bool, error)

	// Append stores a new record. It fails with ErrAlreadyPromoted when a
	// promoted record for the employee already exists.
	Append(ctx context.Context, rec PromotionRecord) (PromotionRecord, error)

	List(ctx context.Context) ([]PromotionRecord, error)
	ListByEmail(ctx context.Context, email string) ([]PromotionRecord, error)
}
