package reputation_test

import (
	"testing"

	"github.com/amora-app/amora/internal/reputation"
	"github.com/stretchr/testify/assert"
)

func TestCalculateScoreBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		signals reputation.ReputationSignals
	}{
		{
			name:    "zero value signals",
			signals: reputation.ReputationSignals{},
		},
		{
			name: "best possible signals",
			signals: reputation.ReputationSignals{
				ProfileCompletion:   100,
				IdentityVerified:    true,
				AccountAgeDays:      1000,
				ResponseRate:        1,
				ConversationQuality: 1,
			},
		},
		{
			name: "worst possible signals",
			signals: reputation.ReputationSignals{
				BlockRatio:  1,
				ReportRatio: 1,
				GhostRate:   1,
				BurstScore:  1,
			},
		},
		{
			name: "mixed signals",
			signals: reputation.ReputationSignals{
				ProfileCompletion:   70,
				AccountAgeDays:      45,
				ResponseRate:        0.6,
				ConversationQuality: 0.3,
				BlockRatio:          0.1,
				ReportRatio:         0.05,
				GhostRate:           0.4,
				BurstScore:          1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			score := reputation.CalculateScore(&tt.signals)
			assert.GreaterOrEqual(t, score, 0)
			assert.LessOrEqual(t, score, reputation.MaxScore)
		})
	}
}

func TestCalculateScoreExtremes(t *testing.T) {
	t.Parallel()

	perfect := &reputation.ReputationSignals{
		ProfileCompletion:   100,
		IdentityVerified:    true,
		AccountAgeDays:      365,
		ResponseRate:        1,
		ConversationQuality: 1,
	}
	assert.Equal(t, reputation.MaxScore, reputation.CalculateScore(perfect))

	worst := &reputation.ReputationSignals{
		BlockRatio:  1,
		ReportRatio: 1,
		GhostRate:   1,
		BurstScore:  1,
	}
	assert.Equal(t, 0, reputation.CalculateScore(worst))
}

func TestCalculateScoreWeightsSumToMax(t *testing.T) {
	t.Parallel()

	total := reputation.WeightProfileCompletion +
		reputation.WeightIdentityVerified +
		reputation.WeightAccountAge +
		reputation.WeightResponseRate +
		reputation.WeightConversationQuality +
		reputation.WeightLowBlockRatio +
		reputation.WeightLowReportRatio +
		reputation.WeightLowGhostRate +
		reputation.WeightLowBurstScore

	assert.Equal(t, reputation.MaxScore, total)
}

func TestCalculateScoreAccountAgeSaturates(t *testing.T) {
	t.Parallel()

	yearOld := &reputation.ReputationSignals{AccountAgeDays: 365}
	decadeOld := &reputation.ReputationSignals{AccountAgeDays: 3650}

	assert.Equal(t, reputation.CalculateScore(yearOld), reputation.CalculateScore(decadeOld))
}

func TestCalculateScoreBurstPenalty(t *testing.T) {
	t.Parallel()

	clean := &reputation.ReputationSignals{ProfileCompletion: 80, ResponseRate: 0.9}

	bursting := *clean
	bursting.BurstScore = 1

	assert.Equal(t, reputation.WeightLowBurstScore,
		reputation.CalculateScore(clean)-reputation.CalculateScore(&bursting))
}
