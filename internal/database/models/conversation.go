package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amora-app/amora/internal/database/types"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ConversationModel handles database operations for conversation records.
type ConversationModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewConversation creates a new conversation model.
func NewConversation(db *bun.DB, logger *zap.Logger) *ConversationModel {
	return &ConversationModel{
		db:     db,
		logger: logger.Named("db_conversation"),
	}
}

// Exists reports whether a conversation between the two users already exists.
func (r *ConversationModel) Exists(ctx context.Context, userA, userB uint64) (bool, error) {
	low, high := types.NormalizePair(userA, userB)

	exists, err := r.db.NewSelect().
		Model((*types.Conversation)(nil)).
		Where("user_low_id = ?", low).
		Where("user_high_id = ?", high).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check conversation between %d and %d: %w", userA, userB, err)
	}

	return exists, nil
}

// GetByPair retrieves the conversation between two users, if any.
func (r *ConversationModel) GetByPair(ctx context.Context, userA, userB uint64) (*types.Conversation, error) {
	low, high := types.NormalizePair(userA, userB)
	conv := new(types.Conversation)

	err := r.db.NewSelect().
		Model(conv).
		Where("user_low_id = ?", low).
		Where("user_high_id = ?", high).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to get conversation between %d and %d: %w", userA, userB, err)
	}

	return conv, nil
}

// Create inserts a conversation for the pair. A concurrent create of the
// same pair is absorbed by the unique pair index.
func (r *ConversationModel) Create(ctx context.Context, starterID, otherID uint64) (*types.Conversation, error) {
	low, high := types.NormalizePair(starterID, otherID)

	conv := &types.Conversation{
		ID:         uuid.New(),
		UserLowID:  low,
		UserHighID: high,
		StartedBy:  starterID,
		CreatedAt:  time.Now(),
	}

	_, err := r.db.NewInsert().
		Model(conv).
		On("CONFLICT (user_low_id, user_high_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create conversation between %d and %d: %w", starterID, otherID, err)
	}

	return conv, nil
}

// MarkReplied flips the replied flag the first time someone other than the
// starter sends in the conversation. Returns the starter ID and whether this
// call performed the transition, so the caller can credit the starter's
// conversations-with-replies counter exactly once.
func (r *ConversationModel) MarkReplied(ctx context.Context, userA, userB, senderID uint64) (uint64, bool, error) {
	low, high := types.NormalizePair(userA, userB)

	var starterID uint64

	_, err := r.db.NewUpdate().
		Model((*types.Conversation)(nil)).
		Set("replied = TRUE").
		Where("user_low_id = ?", low).
		Where("user_high_id = ?", high).
		Where("NOT replied").
		Where("started_by != ?", senderID).
		Returning("started_by").
		Exec(ctx, &starterID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Already replied, or the sender is the starter.
			return 0, false, nil
		}

		return 0, false, fmt.Errorf("failed to mark conversation replied between %d and %d: %w", userA, userB, err)
	}

	return starterID, true, nil
}
