package reputation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amora-app/amora/internal/database"
	"github.com/amora-app/amora/internal/database/models"
	"go.uber.org/zap"
)

// ReputationSignals is the normalized input vector for one score
// calculation. Every ratio field is clamped to [0,1] no matter how noisy the
// underlying counters are.
type ReputationSignals struct {
	ProfileCompletion   int     // [0,100]
	IdentityVerified    bool
	AccountAgeDays      int
	ResponseRate        float64 // replied / received
	ConversationQuality float64 // avg message length / 100, capped
	BlockRatio          float64 // blocks received / total interactions
	ReportRatio         float64 // reports received / total interactions
	GhostRate           float64 // started conversations that never got a reply
	BurstScore          float64 // transient burst penalty, 0 unless a burst fired
}

// Aggregator derives a ReputationSignals vector from the raw per-user
// counters. Pure read, no side effects.
type Aggregator struct {
	users      userStore
	metrics    metricsStore
	blocks     blockStore
	reports    reportStore
	reputation reputationStore
	logger     *zap.Logger
}

// NewAggregator creates a new signal aggregator.
func NewAggregator(db database.Client, logger *zap.Logger) *Aggregator {
	return &Aggregator{
		users:      db.Model().User(),
		metrics:    db.Model().Metrics(),
		blocks:     db.Model().Block(),
		reports:    db.Model().Report(),
		reputation: db.Model().Reputation(),
		logger:     logger.Named("aggregator"),
	}
}

// Aggregate reads all raw counters for the user and derives the normalized
// signal vector.
func (a *Aggregator) Aggregate(ctx context.Context, userID uint64) (*ReputationSignals, error) {
	user, err := a.users.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for aggregation: %w", err)
	}

	metrics, err := a.metrics.GetMetrics(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load message metrics for aggregation: %w", err)
	}

	blocksReceived, err := a.blocks.CountBlocksAgainst(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count blocks for aggregation: %w", err)
	}

	reportsReceived, err := a.reports.CountReportsAgainst(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count reports for aggregation: %w", err)
	}

	// An active burst penalty persists until the nightly sweep clears it.
	var burstScore float64

	rep, err := a.reputation.GetReputation(ctx, userID)
	switch {
	case err == nil:
		burstScore = rep.BurstScore
	case errors.Is(err, models.ErrReputationNotFound):
		// First calculation for this user.
	default:
		return nil, fmt.Errorf("failed to load reputation data for aggregation: %w", err)
	}

	signals := &ReputationSignals{
		ProfileCompletion: clampInt(user.ProfileCompletion, 0, 100),
		IdentityVerified:  user.IdentityVerified,
		AccountAgeDays:    int(time.Since(user.CreatedAt).Hours() / 24),
		BurstScore:        clamp01(burstScore),
	}

	if signals.AccountAgeDays < 0 {
		signals.AccountAgeDays = 0
	}

	if metrics.Received > 0 {
		signals.ResponseRate = clamp01(float64(metrics.Replied) / float64(metrics.Received))
	}

	if metrics.MessageCount > 0 {
		avgLength := float64(metrics.TotalMessageLength) / float64(metrics.MessageCount)
		signals.ConversationQuality = clamp01(avgLength / 100)
	}

	if metrics.ConversationsStarted > 0 {
		ghosted := metrics.ConversationsStarted - metrics.ConversationsWithReplies
		signals.GhostRate = clamp01(float64(ghosted) / float64(metrics.ConversationsStarted))
	}

	interactions := metrics.Received + metrics.ConversationsStarted
	if interactions > 0 {
		signals.BlockRatio = clamp01(float64(blocksReceived) / float64(interactions))
		signals.ReportRatio = clamp01(float64(reportsReceived) / float64(interactions))
	}

	return signals, nil
}

// clamp01 clamps a ratio to [0,1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}

	if v > 1 {
		return 1
	}

	return v
}

// clampInt clamps an integer to [low, high].
func clampInt(v, low, high int) int {
	if v < low {
		return low
	}

	if v > high {
		return high
	}

	return v
}
