package types

import (
	"time"

	"github.com/google/uuid"
)

// Conversation records that a thread exists between two users. The pair is
// stored normalized (lower ID first) so existence checks need only one row.
type Conversation struct {
	ID         uuid.UUID `bun:",pk,type:uuid" json:"id"`
	UserLowID  uint64    `bun:",notnull"      json:"userLowId"`
	UserHighID uint64    `bun:",notnull"      json:"userHighId"`
	StartedBy  uint64    `bun:",notnull"      json:"startedBy"`
	Replied    bool      `bun:",notnull"      json:"replied"`
	CreatedAt  time.Time `bun:",notnull"      json:"createdAt"`
}

// NormalizePair orders two user IDs into the (low, high) form used by the
// conversations table.
func NormalizePair(a, b uint64) (uint64, uint64) {
	if a > b {
		return b, a
	}
	return a, b
}
