package reputation_test

import (
	"testing"

	"github.com/amora-app/amora/internal/database/types/enum"
	"github.com/amora-app/amora/internal/reputation"
	"github.com/stretchr/testify/assert"
)

func TestScoreToTierThresholds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		score int
		tier  enum.Tier
	}{
		{0, enum.TierNew},
		{199, enum.TierNew},
		{200, enum.TierActive},
		{399, enum.TierActive},
		{400, enum.TierEstablished},
		{599, enum.TierEstablished},
		{600, enum.TierTrusted},
		{799, enum.TierTrusted},
		{800, enum.TierDistinguished},
		{1000, enum.TierDistinguished},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.tier, reputation.ScoreToTier(tt.score), "score %d", tt.score)
	}
}

func TestScoreToTierMonotonicPartition(t *testing.T) {
	t.Parallel()

	// Every score maps to exactly one tier and the mapping never decreases.
	prev := reputation.ScoreToTier(0)
	for score := 1; score <= reputation.MaxScore; score++ {
		tier := reputation.ScoreToTier(score)
		assert.GreaterOrEqual(t, tier, prev, "tier dropped at score %d", score)
		assert.LessOrEqual(t, tier-prev, enum.Tier(1), "tier skipped at score %d", score)

		prev = tier
	}
}

func TestPolicyQuotaMonotonicity(t *testing.T) {
	t.Parallel()

	tiers := enum.TierValues()
	for i := 1; i < len(tiers); i++ {
		lower := reputation.PolicyFor(tiers[i-1])
		higher := reputation.PolicyFor(tiers[i])

		// Unlimited sorts as greatest.
		if lower.DailyQuota == reputation.UnlimitedQuota {
			assert.Equal(t, reputation.UnlimitedQuota, higher.DailyQuota,
				"quota shrank from %s to %s", tiers[i-1], tiers[i])
			continue
		}

		if higher.DailyQuota != reputation.UnlimitedQuota {
			assert.GreaterOrEqual(t, higher.DailyQuota, lower.DailyQuota,
				"quota shrank from %s to %s", tiers[i-1], tiers[i])
		}

		assert.GreaterOrEqual(t, higher.DailyReportLimit, lower.DailyReportLimit)
		assert.GreaterOrEqual(t, higher.WeeklyReportLimit, lower.WeeklyReportLimit)
	}
}

func TestPolicyDistinguishedUnlimited(t *testing.T) {
	t.Parallel()

	policy := reputation.PolicyFor(enum.TierDistinguished)
	assert.Equal(t, reputation.UnlimitedQuota, policy.DailyQuota)
}

func TestPolicyForUnknownTier(t *testing.T) {
	t.Parallel()

	// Out-of-range values fall back to the most restrictive policy.
	assert.Equal(t, reputation.PolicyFor(enum.TierNew), reputation.PolicyFor(enum.Tier(99)))
	assert.Equal(t, reputation.PolicyFor(enum.TierNew), reputation.PolicyFor(enum.Tier(-1)))
}
