package types

import (
	"time"

	"github.com/amora-app/amora/internal/database/types/enum"
	"github.com/google/uuid"
)

// Report records one user reporting another. Immutable once created except
// for the status/review fields, which are set by the moderation flow.
type Report struct {
	ID             uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	ReporterID     uint64            `bun:",notnull"      json:"reporterId"`
	ReportedUserID uint64            `bun:",notnull"      json:"reportedUserId"`
	ReporterTier   enum.Tier         `bun:",notnull"      json:"reporterTier"`
	Reason         enum.ReportReason `bun:",notnull"      json:"reason"`
	Details        string            `bun:",nullzero"     json:"details,omitempty"`
	ConversationID uuid.UUID         `bun:",nullzero,type:uuid" json:"conversationId,omitempty"`

	Status      enum.ReportStatus `bun:",notnull"  json:"status"`
	ReviewedBy  uint64            `bun:",nullzero" json:"reviewedBy,omitempty"`
	ActionTaken string            `bun:",nullzero" json:"actionTaken,omitempty"`

	CreatedAt time.Time `bun:",notnull"  json:"createdAt"`
	UpdatedAt time.Time `bun:",notnull"  json:"updatedAt"`
}

// ReporterStats summarizes a reporter's history for the abuse check.
type ReporterStats struct {
	Submitted int `bun:"submitted"`
	Dismissed int `bun:"dismissed"`
}
