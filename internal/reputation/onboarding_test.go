package reputation

import (
	"context"
	"testing"
	"time"

	"github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestOnboarding(store *fakeStore) *Onboarding {
	return &Onboarding{
		users:      store,
		reputation: store,
		logger:     zap.NewNop(),
	}
}

func TestOnboardingStartsAtBottomTier(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	onboarding := newTestOnboarding(store)

	rep, err := onboarding.Complete(context.Background(), &types.User{
		ID:                7,
		DisplayName:       "fresh",
		ProfileCompletion: 80,
		IdentityVerified:  true,
	})
	require.NoError(t, err)

	assert.Equal(t, enum.TierNew, rep.Tier)
	assert.Zero(t, rep.Score)
	assert.Equal(t, PolicyFor(enum.TierNew).DailyQuota, rep.DailyQuota)
	assert.True(t, store.users[7].OnboardingCompleted)
	assert.Equal(t, enum.TierNew, store.users[7].Tier)
}

// A zero-history account's signals alone already classify above the bottom
// tier, so the explicit onboarding row is what gives fresh accounts their
// restricted phase.
func TestOnboardingRowGatesFreshAccounts(t *testing.T) {
	t.Parallel()

	signalTier := ScoreToTier(CalculateScore(&ReputationSignals{ProfileCompletion: 80}))
	require.Greater(t, signalTier, enum.TierNew)

	store := newFakeStore()
	onboarding := newTestOnboarding(store)

	_, err := onboarding.Complete(context.Background(), &types.User{ID: 1, DisplayName: "fresh"})
	require.NoError(t, err)

	seedUser(store, 2, false)
	seedReputation(store, 2, enum.TierTrusted)
	gate := newTestGate(store, &fakeRecalculator{})

	quota := PolicyFor(enum.TierNew).DailyQuota
	for i := 0; i < quota; i++ {
		result, err := gate.Consume(context.Background(), 1, 2)
		require.NoError(t, err)
		require.True(t, result.Allowed)
		assert.Equal(t, enum.TierNew, result.SenderTier)
	}

	result, err := gate.Consume(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, DenialHigherTierLimit, result.Reason)
}

func TestOnboardingRepeatKeepsEarnedStanding(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	onboarding := newTestOnboarding(store)

	user := &types.User{ID: 7, DisplayName: "fresh"}
	_, err := onboarding.Complete(context.Background(), user)
	require.NoError(t, err)

	// The user earns a promotion and spends some quota.
	promoted := store.reps[7]
	promoted.Tier = enum.TierActive
	promoted.DailyQuota = PolicyFor(enum.TierActive).DailyQuota
	promoted.ConversationsToday = 2
	promoted.LastCounterDate = todayUTC()
	store.users[7].Tier = enum.TierActive

	rep, err := onboarding.Complete(context.Background(), &types.User{
		ID:          7,
		DisplayName: "renamed",
	})
	require.NoError(t, err)

	assert.Equal(t, enum.TierActive, rep.Tier)
	assert.Equal(t, 2, rep.ConversationsToday)
	assert.Equal(t, enum.TierActive, store.users[7].Tier)
	assert.Equal(t, "renamed", store.users[7].DisplayName)
}

func TestNewUserReputationDefaults(t *testing.T) {
	t.Parallel()

	now := time.Now()
	rep := NewUserReputation(42, now)

	assert.Equal(t, uint64(42), rep.UserID)
	assert.Equal(t, enum.TierNew, rep.Tier)
	assert.Zero(t, rep.Score)
	assert.Equal(t, now, rep.TierChangedAt)
	assert.Equal(t, now, rep.CreatedAt)
}
