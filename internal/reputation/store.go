package reputation

import (
	"context"
	"time"

	"github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/database/types/enum"
)

// Narrow views of the database models. Each component in this package
// depends only on the queries it actually issues, so policy logic can be
// exercised against in-memory stores.

type userStore interface {
	GetUserByID(ctx context.Context, userID uint64) (*types.User, error)
	SaveUser(ctx context.Context, user *types.User) error
	SetTier(ctx context.Context, userID uint64, tier enum.Tier) error
}

type reputationStore interface {
	GetReputation(ctx context.Context, userID uint64) (*types.ReputationData, error)
	CreateInitial(ctx context.Context, data *types.ReputationData) error
	UpsertCalculation(ctx context.Context, data *types.ReputationData) error
	SetBurstScore(ctx context.Context, userID uint64, score float64) error
	ConsumeDailyConversation(ctx context.Context, userID uint64, today time.Time, quota int) (int, bool, error)
}

type metricsStore interface {
	GetMetrics(ctx context.Context, userID uint64) (*types.MessageMetrics, error)
}

type blockStore interface {
	IsBlockedEither(ctx context.Context, userA, userB uint64) (bool, error)
	CountBlocksAgainst(ctx context.Context, userID uint64) (int, error)
}

type conversationStore interface {
	Exists(ctx context.Context, userA, userB uint64) (bool, error)
}

type reportStore interface {
	CreateReport(ctx context.Context, report *types.Report) error
	HasRecentReport(ctx context.Context, reporterID, reportedUserID uint64, since time.Time) (bool, error)
	CountReportsBySince(ctx context.Context, reporterID uint64, since time.Time) (int, error)
	CountReportsAgainst(ctx context.Context, reportedUserID uint64) (int, error)
	GetReporterStats(ctx context.Context, reporterID uint64) (*types.ReporterStats, error)
}

// recalculationRunner abstracts the recalculation pipeline for components
// that trigger it as a side effect.
type recalculationRunner interface {
	Recalculate(ctx context.Context, userID uint64, overrides *Overrides) (*types.ReputationData, error)
}
