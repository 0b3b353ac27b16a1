package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amora-app/amora/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ErrReputationNotFound is returned when a user has no reputation row yet.
var ErrReputationNotFound = errors.New("reputation data not found")

// ReputationModel handles database operations for reputation data.
//
// Two disjoint column sets live in the same row: the calculation fields
// written by the recalculator and the throttle counters written by the
// messaging gate. Keeping the writers on separate methods preserves the
// two-independent-streams model.
type ReputationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewReputation creates a new reputation model.
func NewReputation(db *bun.DB, logger *zap.Logger) *ReputationModel {
	return &ReputationModel{
		db:     db,
		logger: logger.Named("db_reputation"),
	}
}

// GetReputation retrieves the reputation row for a user.
func (r *ReputationModel) GetReputation(ctx context.Context, userID uint64) (*types.ReputationData, error) {
	data := new(types.ReputationData)

	err := r.db.NewSelect().
		Model(data).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReputationNotFound
		}

		return nil, fmt.Errorf("failed to get reputation for user %d: %w", userID, err)
	}

	return data, nil
}

// CreateInitial inserts the starting reputation row for a freshly onboarded
// user. A row that already exists is left untouched, so repeating the
// onboarding call can never reset an account's earned standing.
func (r *ReputationModel) CreateInitial(ctx context.Context, data *types.ReputationData) error {
	_, err := r.db.NewInsert().
		Model(data).
		On("CONFLICT (user_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create initial reputation for user %d: %w", data.UserID, err)
	}

	return nil
}

// UpsertCalculation merge-writes the output of a reputation calculation.
// Only the calculation-owned columns are updated on conflict; the throttle
// counters and the burst override have their own writers.
func (r *ReputationModel) UpsertCalculation(ctx context.Context, data *types.ReputationData) error {
	_, err := r.db.NewInsert().
		Model(data).
		On("CONFLICT (user_id) DO UPDATE").
		Set("tier = EXCLUDED.tier").
		Set("score = EXCLUDED.score").
		Set("daily_quota = EXCLUDED.daily_quota").
		Set("min_tier_to_message = EXCLUDED.min_tier_to_message").
		Set("last_calculated_at = EXCLUDED.last_calculated_at").
		Set("tier_changed_at = EXCLUDED.tier_changed_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to upsert reputation for user %d: %w", data.UserID, err)
	}

	return nil
}

// SetBurstScore writes the transient burst override for a user.
func (r *ReputationModel) SetBurstScore(ctx context.Context, userID uint64, score float64) error {
	_, err := r.db.NewUpdate().
		Model((*types.ReputationData)(nil)).
		Set("burst_score = ?", score).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set burst score for user %d: %w", userID, err)
	}

	return nil
}

// ConsumeDailyConversation atomically takes one unit of the daily
// new-conversation quota. The rollover, the increment, and the quota bound
// are evaluated inside a single UPDATE so concurrent sends from multiple
// devices cannot both increment from the same stale counter.
//
// Returns the counter value after the increment and whether a unit was
// granted. A negative quota means unlimited.
func (r *ReputationModel) ConsumeDailyConversation(
	ctx context.Context, userID uint64, today time.Time, quota int,
) (int, bool, error) {
	var counter int

	_, err := r.db.NewUpdate().
		Model((*types.ReputationData)(nil)).
		Set("conversations_today = CASE WHEN last_counter_date = ? THEN conversations_today + 1 ELSE 1 END", today).
		Set("last_counter_date = ?", today).
		Where("user_id = ?", userID).
		Where("? < 0 OR (CASE WHEN last_counter_date = ? THEN conversations_today ELSE 0 END) < ?", quota, today, quota).
		Returning("conversations_today").
		Exec(ctx, &counter)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// The guard clause rejected the increment: quota exhausted.
			return 0, false, nil
		}

		return 0, false, fmt.Errorf("failed to consume daily conversation for user %d: %w", userID, err)
	}

	return counter, true, nil
}

// ResetDailyCounters zeroes the daily throttle counter and clears the burst
// override. Called by the nightly sweep for every eligible user.
func (r *ReputationModel) ResetDailyCounters(ctx context.Context, userID uint64) error {
	_, err := r.db.NewUpdate().
		Model((*types.ReputationData)(nil)).
		Set("conversations_today = 0").
		Set("burst_score = 0").
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset daily counters for user %d: %w", userID, err)
	}

	return nil
}
