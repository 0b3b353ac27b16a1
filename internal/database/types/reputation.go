package types

import (
	"time"

	"github.com/amora-app/amora/internal/database/types/enum"
)

// ReputationData holds the persisted output of a reputation calculation for
// one user, plus the tier policy snapshot and the daily throttle counter.
//
// Two writer roles touch disjoint column sets: the recalculator owns the
// score/tier/policy columns, the messaging gate owns the counter columns.
// The raw score is internal and never serialized to clients.
type ReputationData struct {
	UserID           uint64    `bun:",pk"      json:"userId"`
	Tier             enum.Tier `bun:",notnull" json:"tier"`
	Score            int       `bun:",notnull" json:"-"`
	DailyQuota       int       `bun:",notnull" json:"dailyQuota"`
	MinTierToMessage enum.Tier `bun:",notnull" json:"minTierToMessage"`

	// BurstScore is a transient override set by the burst detector and
	// cleared by the nightly sweep. Zero means no active burst penalty.
	BurstScore float64 `bun:",notnull" json:"-"`

	// ConversationsToday is only meaningful while LastCounterDate is the
	// current day; any other date makes it logically zero.
	ConversationsToday int       `bun:",notnull"  json:"conversationsToday"`
	LastCounterDate    time.Time `bun:",nullzero" json:"lastCounterDate"`

	LastCalculatedAt time.Time `bun:",notnull" json:"lastCalculatedAt"`
	TierChangedAt    time.Time `bun:",notnull" json:"tierChangedAt"`
	CreatedAt        time.Time `bun:",notnull" json:"createdAt"`
}
