package types

import "time"

// MessageMetrics holds the raw per-user message counters written by the send
// path and read by the signal aggregator. All mutations go through atomic
// SQL increments; see models.MessageMetricsModel.
type MessageMetrics struct {
	UserID                   uint64    `bun:",pk"       json:"userId"`
	MessageCount             int64     `bun:",notnull"  json:"messageCount"`
	TotalMessageLength       int64     `bun:",notnull"  json:"totalMessageLength"`
	SentToday                int       `bun:",notnull"  json:"sentToday"`
	LastSentDate             time.Time `bun:",nullzero" json:"lastSentDate"`
	ConversationsStarted     int       `bun:",notnull"  json:"conversationsStarted"`
	ConversationsWithReplies int       `bun:",notnull"  json:"conversationsWithReplies"`
	Received                 int       `bun:",notnull"  json:"received"`
	Replied                  int       `bun:",notnull"  json:"replied"`
	PendingResponses         int       `bun:",notnull"  json:"pendingResponses"`
	LastReceivedAt           time.Time `bun:",nullzero" json:"lastReceivedAt"`
	UpdatedAt                time.Time `bun:",notnull"  json:"updatedAt"`
}
