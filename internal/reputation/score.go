package reputation

import "math"

// Scoring weights. Each weight is the maximum contribution of its signal to
// the final score; together they sum to MaxScore. These values are product
// policy, not tuning parameters.
const (
	WeightProfileCompletion   = 150
	WeightIdentityVerified    = 100
	WeightAccountAge          = 100
	WeightResponseRate        = 150
	WeightConversationQuality = 100
	WeightLowBlockRatio       = 120
	WeightLowReportRatio      = 130
	WeightLowGhostRate        = 100
	WeightLowBurstScore       = 50

	// MaxScore is the upper bound of the reputation score.
	MaxScore = 1000

	// accountAgeCapDays is the age at which the account-age signal saturates.
	accountAgeCapDays = 365
)

// CalculateScore converts a signal vector into a score in [0, MaxScore].
// Each signal is normalized to [0,1], multiplied by its weight, and summed;
// the negative signals (blocks, reports, ghosting, bursts) contribute
// inverted, so a clean record earns their full weight.
func CalculateScore(signals *ReputationSignals) int {
	verified := 0.0
	if signals.IdentityVerified {
		verified = 1.0
	}

	accountAge := clamp01(float64(signals.AccountAgeDays) / accountAgeCapDays)

	sum := float64(signals.ProfileCompletion)/100*WeightProfileCompletion +
		verified*WeightIdentityVerified +
		accountAge*WeightAccountAge +
		signals.ResponseRate*WeightResponseRate +
		signals.ConversationQuality*WeightConversationQuality +
		(1-signals.BlockRatio)*WeightLowBlockRatio +
		(1-signals.ReportRatio)*WeightLowReportRatio +
		(1-signals.GhostRate)*WeightLowGhostRate +
		(1-signals.BurstScore)*WeightLowBurstScore

	score := int(math.Round(sum))
	if score < 0 {
		return 0
	}

	if score > MaxScore {
		return MaxScore
	}

	return score
}
