package reputation

import (
	"context"
	"testing"
	"time"

	"github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/database/types/enum"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedReport(store *fakeStore, reporterID, reportedUserID uint64, age time.Duration, status enum.ReportStatus) {
	store.reports = append(store.reports, &types.Report{
		ID:             uuid.New(),
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		Reason:         enum.ReportReasonSpam,
		Status:         status,
		CreatedAt:      time.Now().Add(-age),
	})
}

func TestFileReportSelfDenied(t *testing.T) {
	t.Parallel()

	limiter := newTestLimiter(newFakeStore(), &fakeRecalculator{})

	result, err := limiter.FileReport(
		context.Background(), 1, 1, enum.ReportReasonSpam, "", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReportDenialSelf, result.Reason)
}

func TestFileReportDuplicateCountsOnce(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedReputation(store, 1, enum.TierActive)
	recalc := &fakeRecalculator{}
	limiter := newTestLimiter(store, recalc)

	first, err := limiter.FileReport(
		context.Background(), 1, 2, enum.ReportReasonSpam, "spam", uuid.Nil)
	require.NoError(t, err)
	require.True(t, first.Allowed)
	assert.NotEqual(t, uuid.Nil, first.ReportID)
	assert.Equal(t, 1, first.DailyUsed)
	assert.Equal(t, 1, first.WeeklyUsed)
	require.Len(t, recalc.calls, 1)
	assert.Equal(t, uint64(2), recalc.calls[0].userID)

	second, err := limiter.FileReport(
		context.Background(), 1, 2, enum.ReportReasonHarassment, "again", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, second.Allowed)
	assert.Equal(t, ReportDenialDuplicate, second.Reason)
	assert.Equal(t, uuid.Nil, second.ReportID)

	// The denied duplicate left exactly one row behind, so derived usage
	// moved exactly once.
	assert.Len(t, store.reports, 1)

	used, err := store.CountReportsBySince(context.Background(), 1, time.Now().Add(-dailyWindow))
	require.NoError(t, err)
	assert.Equal(t, 1, used)
	assert.Len(t, recalc.calls, 1, "a denied report must not recalculate anyone")
}

func TestFileReportRestrictedReporter(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedReputation(store, 1, enum.TierTrusted)

	// Six submissions, four dismissed: past the abuse threshold.
	for i := uint64(0); i < 6; i++ {
		status := enum.ReportStatusDismissed
		if i >= 4 {
			status = enum.ReportStatusActioned
		}

		seedReport(store, 1, 100+i, 30*24*time.Hour, status)
	}

	limiter := newTestLimiter(store, &fakeRecalculator{})

	result, err := limiter.FileReport(
		context.Background(), 1, 50, enum.ReportReasonScam, "", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReportDenialRestricted, result.Reason)
}

func TestFileReportDailyCap(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedReputation(store, 1, enum.TierNew)

	limit := PolicyFor(enum.TierNew).DailyReportLimit
	for i := 0; i < limit; i++ {
		seedReport(store, 1, 100+uint64(i), time.Hour, enum.ReportStatusPending)
	}

	limiter := newTestLimiter(store, &fakeRecalculator{})

	result, err := limiter.FileReport(
		context.Background(), 1, 50, enum.ReportReasonSpam, "", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReportDenialDailyLimit, result.Reason)
	assert.Equal(t, limit, result.DailyUsed)
}

func TestFileReportWeeklyCap(t *testing.T) {
	t.Parallel()

	store := newFakeStore()
	seedReputation(store, 1, enum.TierNew)

	// Old enough to clear the daily window, young enough to count weekly.
	limit := PolicyFor(enum.TierNew).WeeklyReportLimit
	for i := 0; i < limit; i++ {
		seedReport(store, 1, 100+uint64(i), 2*24*time.Hour, enum.ReportStatusPending)
	}

	limiter := newTestLimiter(store, &fakeRecalculator{})

	result, err := limiter.FileReport(
		context.Background(), 1, 50, enum.ReportReasonSpam, "", uuid.Nil)
	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, ReportDenialWeeklyLimit, result.Reason)
	assert.Zero(t, result.DailyUsed)
	assert.Equal(t, limit, result.WeeklyUsed)
}
