package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amora-app/amora/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// MessageMetricsModel handles database operations for per-user message
// counters. Every mutation is a single upsert or update statement so that
// concurrent sends never read-modify-write a stale counter.
type MessageMetricsModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewMessageMetrics creates a new message metrics model.
func NewMessageMetrics(db *bun.DB, logger *zap.Logger) *MessageMetricsModel {
	return &MessageMetricsModel{
		db:     db,
		logger: logger.Named("db_message_metrics"),
	}
}

// GetMetrics retrieves the metrics row for a user. A user with no row yet
// gets zeroed metrics rather than an error.
func (r *MessageMetricsModel) GetMetrics(ctx context.Context, userID uint64) (*types.MessageMetrics, error) {
	metrics := new(types.MessageMetrics)

	err := r.db.NewSelect().
		Model(metrics).
		Where("user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &types.MessageMetrics{UserID: userID}, nil
		}

		return nil, fmt.Errorf("failed to get message metrics for user %d: %w", userID, err)
	}

	return metrics, nil
}

// RecordSent counts one outgoing message for a sender. The daily counter
// rolls over inside the statement when the stored date is not today.
func (r *MessageMetricsModel) RecordSent(
	ctx context.Context, senderID uint64, messageLength int, today time.Time, startedConversation bool,
) error {
	started := 0
	if startedConversation {
		started = 1
	}

	row := &types.MessageMetrics{
		UserID:               senderID,
		MessageCount:         1,
		TotalMessageLength:   int64(messageLength),
		SentToday:            1,
		LastSentDate:         today,
		ConversationsStarted: started,
		UpdatedAt:            time.Now(),
	}

	_, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (user_id) DO UPDATE").
		Set("message_count = message_metrics.message_count + 1").
		Set("total_message_length = message_metrics.total_message_length + EXCLUDED.total_message_length").
		Set("sent_today = CASE WHEN message_metrics.last_sent_date = EXCLUDED.last_sent_date"+
			" THEN message_metrics.sent_today + 1 ELSE 1 END").
		Set("last_sent_date = EXCLUDED.last_sent_date").
		Set("conversations_started = message_metrics.conversations_started + EXCLUDED.conversations_started").
		Set("replied = message_metrics.replied + CASE WHEN message_metrics.pending_responses > 0 THEN 1 ELSE 0 END").
		Set("pending_responses = GREATEST(message_metrics.pending_responses - 1, 0)").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record sent message for user %d: %w", senderID, err)
	}

	return nil
}

// RecordReceived counts one incoming message for a recipient and opens a
// pending response slot that a later send by the recipient will consume.
func (r *MessageMetricsModel) RecordReceived(ctx context.Context, recipientID uint64) error {
	now := time.Now()

	row := &types.MessageMetrics{
		UserID:           recipientID,
		Received:         1,
		PendingResponses: 1,
		LastReceivedAt:   now,
		UpdatedAt:        now,
	}

	_, err := r.db.NewInsert().
		Model(row).
		On("CONFLICT (user_id) DO UPDATE").
		Set("received = message_metrics.received + 1").
		Set("pending_responses = message_metrics.pending_responses + 1").
		Set("last_received_at = EXCLUDED.last_received_at").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to record received message for user %d: %w", recipientID, err)
	}

	return nil
}

// IncrementConversationsWithReplies credits a conversation starter the first
// time the other party replies.
func (r *MessageMetricsModel) IncrementConversationsWithReplies(ctx context.Context, starterID uint64) error {
	_, err := r.db.NewUpdate().
		Model((*types.MessageMetrics)(nil)).
		Set("conversations_with_replies = conversations_with_replies + 1").
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", starterID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to increment conversations with replies for user %d: %w", starterID, err)
	}

	return nil
}

// ResetDailyCounters zeroes the per-day send counter. Called by the nightly
// sweep.
func (r *MessageMetricsModel) ResetDailyCounters(ctx context.Context, userID uint64) error {
	_, err := r.db.NewUpdate().
		Model((*types.MessageMetrics)(nil)).
		Set("sent_today = 0").
		Set("updated_at = ?", time.Now()).
		Where("user_id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to reset daily metrics for user %d: %w", userID, err)
	}

	return nil
}
