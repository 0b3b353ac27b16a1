package reputation

import (
	"context"
	"testing"
	"time"

	"github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedHistory gives a user a clean, fully positive interaction history.
func seedHistory(store *fakeStore, userID uint64) {
	store.users[userID] = &types.User{
		ID:                  userID,
		DisplayName:         "user",
		ProfileCompletion:   100,
		IdentityVerified:    true,
		OnboardingCompleted: true,
		CreatedAt:           time.Now(),
	}
	store.metrics[userID] = &types.MessageMetrics{
		UserID:                   userID,
		Received:                 10,
		Replied:                  10,
		MessageCount:             10,
		TotalMessageLength:       1000,
		ConversationsStarted:     5,
		ConversationsWithReplies: 5,
	}
}

func TestRecalculateIdempotent(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedHistory(store, 1)
	recalculator := newTestRecalculator(store)

	first, err := recalculator.Recalculate(context.Background(), 1, nil)
	require.NoError(t, err)

	second, err := recalculator.Recalculate(context.Background(), 1, nil)
	require.NoError(t, err)

	assert.Equal(t, first.Score, second.Score)
	assert.Equal(t, first.Tier, second.Tier)
	assert.Equal(t, first.TierChangedAt, second.TierChangedAt,
		"recalculation without new events must not move tierChangedAt")
	assert.Equal(t, first.CreatedAt, second.CreatedAt)
	assert.Equal(t, second.Tier, store.users[1].Tier)
}

func TestRecalculateTierChangeMovesTimestamp(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedHistory(store, 1)
	recalculator := newTestRecalculator(store)

	first, err := recalculator.Recalculate(context.Background(), 1, nil)
	require.NoError(t, err)

	// Every interaction now ends in a block against the user.
	for blocker := uint64(100); blocker < 115; blocker++ {
		store.blocks[[2]uint64{blocker, 1}] = true
	}

	second, err := recalculator.Recalculate(context.Background(), 1, nil)
	require.NoError(t, err)

	assert.Less(t, second.Score, first.Score)
	assert.Less(t, second.Tier, first.Tier)
	assert.NotEqual(t, first.TierChangedAt, second.TierChangedAt)
	assert.Equal(t, second.Tier, store.users[1].Tier)
}

func TestRecalculatePreservesGateCounters(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedHistory(store, 1)
	rep := seedReputation(store, 1, enum.TierNew)
	rep.ConversationsToday = 2
	rep.LastCounterDate = todayUTC()

	recalculator := newTestRecalculator(store)

	_, err := recalculator.Recalculate(context.Background(), 1, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, store.reps[1].ConversationsToday)
	assert.Equal(t, todayUTC(), store.reps[1].LastCounterDate)
}

func TestRecalculateBurstOverride(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedHistory(store, 1)
	recalculator := newTestRecalculator(store)

	baseline, err := recalculator.Recalculate(context.Background(), 1, nil)
	require.NoError(t, err)

	burst := MaxBurstScore
	penalized, err := recalculator.Recalculate(context.Background(), 1, &Overrides{BurstScore: &burst})
	require.NoError(t, err)

	assert.Equal(t, baseline.Score-WeightLowBurstScore, penalized.Score)
}
