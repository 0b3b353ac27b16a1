package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/database/types/enum"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// UserModel handles database operations for user accounts.
type UserModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewUser creates a new user model.
func NewUser(db *bun.DB, logger *zap.Logger) *UserModel {
	return &UserModel{
		db:     db,
		logger: logger.Named("db_user"),
	}
}

// GetUserByID retrieves a user account by ID.
func (r *UserModel) GetUserByID(ctx context.Context, userID uint64) (*types.User, error) {
	user := new(types.User)

	err := r.db.NewSelect().
		Model(user).
		Where("id = ?", userID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, types.ErrUserNotFound
		}

		return nil, fmt.Errorf("failed to get user %d: %w", userID, err)
	}

	return user, nil
}

// SaveUser inserts or updates a user account.
func (r *UserModel) SaveUser(ctx context.Context, user *types.User) error {
	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}

	user.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(user).
		On("CONFLICT (id) DO UPDATE").
		Set("display_name = EXCLUDED.display_name").
		Set("profile_completion = EXCLUDED.profile_completion").
		Set("identity_verified = EXCLUDED.identity_verified").
		Set("premium = EXCLUDED.premium").
		Set("onboarding_completed = EXCLUDED.onboarding_completed").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save user %d: %w", user.ID, err)
	}

	return nil
}

// SetTier denormalizes the calculated tier onto the primary user record so
// collaborators can filter on it without joining reputation data.
func (r *UserModel) SetTier(ctx context.Context, userID uint64, tier enum.Tier) error {
	_, err := r.db.NewUpdate().
		Model((*types.User)(nil)).
		Set("tier = ?", tier).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", userID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to set tier for user %d: %w", userID, err)
	}

	return nil
}

// GetEligibleUserIDs pages through users with completed onboarding, returning
// up to limit IDs greater than afterID in ascending order. Used by the
// nightly sweep for keyset pagination.
func (r *UserModel) GetEligibleUserIDs(ctx context.Context, afterID uint64, limit int) ([]uint64, error) {
	var userIDs []uint64

	err := r.db.NewSelect().
		Model((*types.User)(nil)).
		Column("id").
		Where("onboarding_completed").
		Where("id > ?", afterID).
		OrderExpr("id ASC").
		Limit(limit).
		Scan(ctx, &userIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to get eligible users after %d: %w", afterID, err)
	}

	return userIDs, nil
}
