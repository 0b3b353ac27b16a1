package reputation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amora-app/amora/internal/database"
	"github.com/amora-app/amora/internal/database/dbretry"
	"github.com/amora-app/amora/internal/database/models"
	"github.com/amora-app/amora/internal/database/types"
	"go.uber.org/zap"
)

// Overrides forces signal values that a just-recorded event must reflect
// immediately, ahead of what the aggregator would read back.
type Overrides struct {
	// BurstScore replaces the persisted burst signal when set.
	BurstScore *float64
}

// Recalculator runs the full aggregate-score-classify pipeline for one user
// and persists the result. It is the only writer of the score, tier, and
// policy columns; the messaging gate owns the counter columns.
type Recalculator struct {
	aggregator *Aggregator
	reputation reputationStore
	users      userStore
	logger     *zap.Logger
}

// NewRecalculator creates a new reputation recalculator.
func NewRecalculator(db database.Client, logger *zap.Logger) *Recalculator {
	return &Recalculator{
		aggregator: NewAggregator(db, logger),
		reputation: db.Model().Reputation(),
		users:      db.Model().User(),
		logger:     logger.Named("recalculator"),
	}
}

// Recalculate recomputes the user's score and tier from current signals and
// persists the result. TierChangedAt moves only when the tier actually
// changes, so back-to-back recalculations with no intervening events are
// idempotent. The new tier is also denormalized onto the user record.
func (r *Recalculator) Recalculate(
	ctx context.Context, userID uint64, overrides *Overrides,
) (*types.ReputationData, error) {
	signals, err := r.aggregator.Aggregate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate signals: %w", err)
	}

	if overrides != nil && overrides.BurstScore != nil {
		signals.BurstScore = clamp01(*overrides.BurstScore)
	}

	score := CalculateScore(signals)
	tier := ScoreToTier(score)

	// A missing row is treated as never calculated, not as a failure.
	prev, err := r.reputation.GetReputation(ctx, userID)
	if err != nil && !errors.Is(err, models.ErrReputationNotFound) {
		return nil, fmt.Errorf("failed to load previous reputation: %w", err)
	}

	now := time.Now()
	policy := PolicyFor(tier)

	data := &types.ReputationData{
		UserID:           userID,
		Tier:             tier,
		Score:            score,
		DailyQuota:       policy.DailyQuota,
		MinTierToMessage: policy.MinTierToMessage,
		LastCalculatedAt: now,
		TierChangedAt:    now,
		CreatedAt:        now,
	}

	tierChanged := prev == nil || prev.Tier != tier
	if prev != nil {
		data.CreatedAt = prev.CreatedAt

		if !tierChanged {
			data.TierChangedAt = prev.TierChangedAt
		}
	}

	err = dbretry.NoResult(ctx, func(ctx context.Context) error {
		return r.reputation.UpsertCalculation(ctx, data)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to persist reputation: %w", err)
	}

	if tierChanged {
		if err := r.users.SetTier(ctx, userID, tier); err != nil {
			return nil, fmt.Errorf("failed to denormalize tier: %w", err)
		}

		r.logger.Info("User tier changed",
			zap.Uint64("userID", userID),
			zap.Int("score", score),
			zap.String("tier", tier.String()))
	}

	return data, nil
}
