package types

import "time"

// BlockRelation is a directional block from one user to another. Lookups are
// bidirectional: either direction existing means the pair is blocked.
type BlockRelation struct {
	BlockerID uint64    `bun:",pk"      json:"blockerId"`
	BlockedID uint64    `bun:",pk"      json:"blockedId"`
	CreatedAt time.Time `bun:",notnull" json:"createdAt"`
}
