package models

import (
	"context"
	"fmt"
	"time"

	"github.com/amora-app/amora/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// BlockModel handles database operations for block relations.
type BlockModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewBlock creates a new block model.
func NewBlock(db *bun.DB, logger *zap.Logger) *BlockModel {
	return &BlockModel{
		db:     db,
		logger: logger.Named("db_block"),
	}
}

// Block records a directional block. Blocking an already-blocked user is a
// no-op.
func (r *BlockModel) Block(ctx context.Context, blockerID, blockedID uint64) error {
	relation := &types.BlockRelation{
		BlockerID: blockerID,
		BlockedID: blockedID,
		CreatedAt: time.Now(),
	}

	_, err := r.db.NewInsert().
		Model(relation).
		On("CONFLICT (blocker_id, blocked_id) DO NOTHING").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to block user %d by %d: %w", blockedID, blockerID, err)
	}

	return nil
}

// Unblock removes a directional block.
func (r *BlockModel) Unblock(ctx context.Context, blockerID, blockedID uint64) error {
	_, err := r.db.NewDelete().
		Model((*types.BlockRelation)(nil)).
		Where("blocker_id = ?", blockerID).
		Where("blocked_id = ?", blockedID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to unblock user %d by %d: %w", blockedID, blockerID, err)
	}

	return nil
}

// IsBlockedEither reports whether either user has blocked the other.
func (r *BlockModel) IsBlockedEither(ctx context.Context, userA, userB uint64) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*types.BlockRelation)(nil)).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)",
			userA, userB, userB, userA).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check block between %d and %d: %w", userA, userB, err)
	}

	return exists, nil
}

// CountBlocksAgainst counts how many users have blocked the given user.
// Feeds the block-ratio signal.
func (r *BlockModel) CountBlocksAgainst(ctx context.Context, userID uint64) (int, error) {
	count, err := r.db.NewSelect().
		Model((*types.BlockRelation)(nil)).
		Where("blocked_id = ?", userID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count blocks against user %d: %w", userID, err)
	}

	return count, nil
}
