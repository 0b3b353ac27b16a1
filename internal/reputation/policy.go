package reputation

import "github.com/amora-app/amora/internal/database/types/enum"

// UnlimitedQuota marks a quota with no daily cap.
const UnlimitedQuota = -1

// Ascending score thresholds for each tier above the lowest. Together they
// partition [0, MaxScore] with no gaps or overlaps.
const (
	activeMinScore        = 200
	establishedMinScore   = 400
	trustedMinScore       = 600
	distinguishedMinScore = 800
)

// TierPolicy is the static policy record attached to each tier.
type TierPolicy struct {
	// DailyQuota is the number of new conversations a user at this tier may
	// start per day with higher-tier users. UnlimitedQuota means no cap.
	DailyQuota int

	// MinTierToMessage is the lowest tier a sender must hold to start a
	// conversation with a user at this tier. TierNew accepts anyone.
	MinTierToMessage enum.Tier

	// DailyReportLimit and WeeklyReportLimit cap how many reports a user at
	// this tier may file.
	DailyReportLimit  int
	WeeklyReportLimit int
}

// tierPolicies is indexed by tier ordinal so every tier is statically
// guaranteed a complete policy record. Quotas and report limits grow
// monotonically with tier.
var tierPolicies = [...]TierPolicy{
	enum.TierNew:           {DailyQuota: 3, MinTierToMessage: enum.TierNew, DailyReportLimit: 3, WeeklyReportLimit: 10},
	enum.TierActive:        {DailyQuota: 5, MinTierToMessage: enum.TierNew, DailyReportLimit: 5, WeeklyReportLimit: 20},
	enum.TierEstablished:   {DailyQuota: 10, MinTierToMessage: enum.TierNew, DailyReportLimit: 8, WeeklyReportLimit: 35},
	enum.TierTrusted:       {DailyQuota: 25, MinTierToMessage: enum.TierNew, DailyReportLimit: 12, WeeklyReportLimit: 50},
	enum.TierDistinguished: {DailyQuota: UnlimitedQuota, MinTierToMessage: enum.TierNew, DailyReportLimit: 20, WeeklyReportLimit: 80},
}

// ScoreToTier maps a score to its tier. Monotonic: a higher score never maps
// to a lower tier.
func ScoreToTier(score int) enum.Tier {
	switch {
	case score >= distinguishedMinScore:
		return enum.TierDistinguished
	case score >= trustedMinScore:
		return enum.TierTrusted
	case score >= establishedMinScore:
		return enum.TierEstablished
	case score >= activeMinScore:
		return enum.TierActive
	default:
		return enum.TierNew
	}
}

// PolicyFor returns the policy record for a tier. Unknown values fall back
// to the most restrictive tier.
func PolicyFor(tier enum.Tier) TierPolicy {
	if int(tier) < 0 || int(tier) >= len(tierPolicies) {
		return tierPolicies[enum.TierNew]
	}

	return tierPolicies[tier]
}
