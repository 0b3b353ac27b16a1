package reputation

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/amora-app/amora/internal/database/types/enum"
	"github.com/redis/rueidis"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupBurstTest(
	t *testing.T, window time.Duration, maxMessages int, store *fakeStore, recalc recalculationRunner,
) *BurstDetector {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{mr.Addr()},
		DisableCache: true,
	})
	require.NoError(t, err)
	t.Cleanup(client.Close)

	return &BurstDetector{
		client:       client,
		reputation:   store,
		recalculator: recalc,
		window:       window,
		maxMessages:  maxMessages,
		logger:       zap.NewNop(),
	}
}

func TestBurstDetectorBelowThreshold(t *testing.T) {
	t.Parallel()

	detector := setupBurstTest(t, time.Minute, 10, newFakeStore(), &fakeRecalculator{})
	ctx := t.Context()

	// Exactly the threshold number of sends never trips detection.
	for i := range 10 {
		detected, err := detector.RecordSend(ctx, 42)
		require.NoError(t, err)
		assert.False(t, detected, "send %d tripped detection", i+1)
	}
}

func TestBurstDetectorOverThreshold(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedUser(store, 42, false)
	seedReputation(store, 42, enum.TierEstablished)
	recalc := &fakeRecalculator{}
	detector := setupBurstTest(t, time.Minute, 10, store, recalc)
	ctx := t.Context()

	for range 10 {
		detected, err := detector.RecordSend(ctx, 42)
		require.NoError(t, err)
		require.False(t, detected)
	}

	detected, err := detector.RecordSend(ctx, 42)
	require.NoError(t, err)
	assert.True(t, detected, "the send past the threshold must trip detection")

	// The maximum penalty is persisted and the recalculation sees it
	// immediately through the override.
	assert.Equal(t, MaxBurstScore, store.burstScores[42])
	assert.Equal(t, MaxBurstScore, store.reps[42].BurstScore)
	require.Len(t, recalc.calls, 1)
	assert.Equal(t, uint64(42), recalc.calls[0].userID)
	require.NotNil(t, recalc.calls[0].overrides)
	require.NotNil(t, recalc.calls[0].overrides.BurstScore)
	assert.Equal(t, MaxBurstScore, *recalc.calls[0].overrides.BurstScore)
}

func TestBurstDetectorWindowExpiry(t *testing.T) {
	t.Parallel()

	detector := setupBurstTest(t, 200*time.Millisecond, 3, newFakeStore(), &fakeRecalculator{})
	ctx := t.Context()

	for range 3 {
		detected, err := detector.RecordSend(ctx, 42)
		require.NoError(t, err)
		assert.False(t, detected)
	}

	// Old timestamps age out of the window, so a second burst of the same
	// size is still under the threshold.
	time.Sleep(250 * time.Millisecond)

	for range 3 {
		detected, err := detector.RecordSend(ctx, 42)
		require.NoError(t, err)
		assert.False(t, detected)
	}
}

func TestBurstDetectorIsolatedPerSender(t *testing.T) {
	t.Parallel()

	detector := setupBurstTest(t, time.Minute, 5, newFakeStore(), &fakeRecalculator{})
	ctx := t.Context()

	for range 5 {
		detected, err := detector.RecordSend(ctx, 1)
		require.NoError(t, err)
		assert.False(t, detected)
	}

	// A different sender starts with an empty window.
	detected, err := detector.RecordSend(ctx, 2)
	require.NoError(t, err)
	assert.False(t, detected)
}

func TestBurstDetectorClearWindow(t *testing.T) {
	t.Parallel()

	detector := setupBurstTest(t, time.Minute, 5, newFakeStore(), &fakeRecalculator{})
	ctx := t.Context()

	for range 5 {
		_, err := detector.RecordSend(ctx, 42)
		require.NoError(t, err)
	}

	require.NoError(t, detector.ClearWindow(ctx, 42))

	// With the window cleared the counter starts over.
	for range 5 {
		detected, err := detector.RecordSend(ctx, 42)
		require.NoError(t, err)
		assert.False(t, detected)
	}
}
