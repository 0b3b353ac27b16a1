package reputation

import (
	"context"
	"fmt"
	"time"

	"github.com/amora-app/amora/internal/database"
	"github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/database/types/enum"
	"go.uber.org/zap"
)

// NewUserReputation returns the reputation row every account starts from:
// the bottom tier with a zero score. Later recalculations promote from
// here; a fresh account is never classified directly from its signals,
// which would skip the new-user phase entirely.
func NewUserReputation(userID uint64, now time.Time) *types.ReputationData {
	policy := PolicyFor(enum.TierNew)

	return &types.ReputationData{
		UserID:           userID,
		Tier:             enum.TierNew,
		Score:            0,
		DailyQuota:       policy.DailyQuota,
		MinTierToMessage: policy.MinTierToMessage,
		LastCalculatedAt: now,
		TierChangedAt:    now,
		CreatedAt:        now,
	}
}

// Onboarding persists the account state that marks a user as fully signed
// up: the profile record and the starting reputation row.
type Onboarding struct {
	users      userStore
	reputation reputationStore
	logger     *zap.Logger
}

// NewOnboarding creates a new onboarding handler.
func NewOnboarding(db database.Client, logger *zap.Logger) *Onboarding {
	return &Onboarding{
		users:      db.Model().User(),
		reputation: db.Model().Reputation(),
		logger:     logger.Named("onboarding"),
	}
}

// Complete saves the user's profile with onboarding marked done and creates
// the starting reputation row. Idempotent: a repeat call updates the
// profile but leaves an existing reputation row alone.
func (o *Onboarding) Complete(ctx context.Context, user *types.User) (*types.ReputationData, error) {
	user.OnboardingCompleted = true
	user.Tier = enum.TierNew

	if err := o.users.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save onboarded user: %w", err)
	}

	rep := NewUserReputation(user.ID, time.Now())
	if err := o.reputation.CreateInitial(ctx, rep); err != nil {
		return nil, fmt.Errorf("failed to create initial reputation: %w", err)
	}

	// Read back so a repeat call returns the earned standing, not the
	// defaults it declined to write.
	stored, err := o.reputation.GetReputation(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load onboarded reputation: %w", err)
	}

	o.logger.Debug("User onboarded", zap.Uint64("userID", user.ID))

	return stored, nil
}
