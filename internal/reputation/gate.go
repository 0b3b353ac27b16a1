package reputation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amora-app/amora/internal/database"
	"github.com/amora-app/amora/internal/database/models"
	"github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/database/types/enum"
	"go.uber.org/zap"
)

// DenialReason identifies why the gate refused a send. Denials are expected
// outcomes surfaced as values, never as errors.
type DenialReason string

const (
	DenialSelf            DenialReason = "self"
	DenialBlocked         DenialReason = "blocked"
	DenialTierRestricted  DenialReason = "tier_restricted"
	DenialHigherTierLimit DenialReason = "higher_tier_limit_reached"
)

// PermissionResult carries the gate's decision plus everything a client
// needs to render it: both tiers and the quota numbers.
type PermissionResult struct {
	Allowed           bool         `json:"allowed"`
	Reason            DenialReason `json:"reason,omitempty"`
	SenderTier        enum.Tier    `json:"senderTier"`
	RecipientTier     enum.Tier    `json:"recipientTier"`
	IsPremium         bool         `json:"isPremium"`
	IsNewConversation bool         `json:"isNewConversation"`

	// QuotaLimit is UnlimitedQuota when no daily cap applies.
	QuotaLimit     int `json:"quotaLimit"`
	QuotaUsedToday int `json:"quotaUsedToday"`
	QuotaRemaining int `json:"quotaRemaining"`
}

// Gate decides whether a sender may message a recipient. Check is the
// side-effect-free variant for speculative pre-flight calls; Consume
// additionally claims one unit of the sender's daily quota when the send
// counts against it.
type Gate struct {
	users         userStore
	blocks        blockStore
	reputation    reputationStore
	conversations conversationStore
	recalculator  recalculationRunner
	logger        *zap.Logger
}

// NewGate creates a new messaging permission gate.
func NewGate(db database.Client, recalculator *Recalculator, logger *zap.Logger) *Gate {
	return &Gate{
		users:         db.Model().User(),
		blocks:        db.Model().Block(),
		reputation:    db.Model().Reputation(),
		conversations: db.Model().Conversation(),
		recalculator:  recalculator,
		logger:        logger.Named("gate"),
	}
}

// Check evaluates permission without consuming quota. Safe to call any
// number of times.
func (g *Gate) Check(ctx context.Context, senderID, recipientID uint64) (*PermissionResult, error) {
	return g.evaluate(ctx, senderID, recipientID, false)
}

// Consume evaluates permission and, when the send counts against the
// sender's daily quota, atomically claims one unit of it. Callers use this
// at actual send time.
func (g *Gate) Consume(ctx context.Context, senderID, recipientID uint64) (*PermissionResult, error) {
	return g.evaluate(ctx, senderID, recipientID, true)
}

// evaluate applies the gate policy in order: self, block, premium bypass,
// existing conversation, recipient tier floor, then the higher-tier daily
// quota. Blocks are checked before the premium bypass on purpose.
func (g *Gate) evaluate(
	ctx context.Context, senderID, recipientID uint64, consume bool,
) (*PermissionResult, error) {
	if senderID == recipientID {
		return &PermissionResult{Reason: DenialSelf, QuotaLimit: UnlimitedQuota}, nil
	}

	blocked, err := g.blocks.IsBlockedEither(ctx, senderID, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check block state: %w", err)
	}

	if blocked {
		return &PermissionResult{Reason: DenialBlocked, QuotaLimit: UnlimitedQuota}, nil
	}

	sender, err := g.users.GetUserByID(ctx, senderID)
	if err != nil {
		return nil, fmt.Errorf("failed to load sender: %w", err)
	}

	senderRep, err := g.reputationFor(ctx, senderID)
	if err != nil {
		return nil, err
	}

	recipientRep, err := g.reputationFor(ctx, recipientID)
	if err != nil {
		return nil, err
	}

	result := &PermissionResult{
		SenderTier:    senderRep.Tier,
		RecipientTier: recipientRep.Tier,
		IsPremium:     sender.Premium,
		QuotaLimit:    UnlimitedQuota,
	}

	if sender.Premium {
		result.Allowed = true

		return result, nil
	}

	exists, err := g.conversations.Exists(ctx, senderID, recipientID)
	if err != nil {
		return nil, fmt.Errorf("failed to check conversation existence: %w", err)
	}

	if exists {
		// Messaging within an existing thread is never throttled.
		result.Allowed = true

		return result, nil
	}

	result.IsNewConversation = true

	if senderRep.Tier < recipientRep.MinTierToMessage {
		result.Reason = DenialTierRestricted

		return result, nil
	}

	if recipientRep.Tier <= senderRep.Tier {
		// Same or lower tier starts are always free.
		result.Allowed = true

		return result, nil
	}

	return g.applyQuota(ctx, senderRep, result, consume)
}

// applyQuota enforces the sender's daily quota for new conversations with
// higher-tier users and fills in the quota numbers for client display.
func (g *Gate) applyQuota(
	ctx context.Context, senderRep *types.ReputationData, result *PermissionResult, consume bool,
) (*PermissionResult, error) {
	today := todayUTC()
	quota := senderRep.DailyQuota
	used := counterToday(senderRep, today)

	result.QuotaLimit = quota
	result.QuotaUsedToday = used
	result.QuotaRemaining = UnlimitedQuota

	if !consume {
		switch {
		case quota == UnlimitedQuota:
			result.Allowed = true
		case used < quota:
			result.Allowed = true
			result.QuotaRemaining = quota - used
		default:
			result.Reason = DenialHigherTierLimit
			result.QuotaRemaining = 0
		}

		return result, nil
	}

	counter, granted, err := g.reputation.
		ConsumeDailyConversation(ctx, senderRep.UserID, today, quota)
	if err != nil {
		return nil, fmt.Errorf("failed to consume daily quota: %w", err)
	}

	if !granted {
		result.Reason = DenialHigherTierLimit
		result.QuotaUsedToday = quota
		result.QuotaRemaining = 0

		return result, nil
	}

	result.Allowed = true
	result.QuotaUsedToday = counter

	if quota != UnlimitedQuota {
		result.QuotaRemaining = quota - counter
	}

	return result, nil
}

// reputationFor loads a user's reputation, computing it fresh when the row
// is missing so a gap in the data never fails the request.
func (g *Gate) reputationFor(ctx context.Context, userID uint64) (*types.ReputationData, error) {
	rep, err := g.reputation.GetReputation(ctx, userID)
	if err == nil {
		return rep, nil
	}

	if !errors.Is(err, models.ErrReputationNotFound) {
		return nil, fmt.Errorf("failed to load reputation: %w", err)
	}

	g.logger.Debug("Reputation missing, calculating fresh", zap.Uint64("userID", userID))

	rep, err = g.recalculator.Recalculate(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate missing reputation: %w", err)
	}

	return rep, nil
}

// todayUTC returns the current day truncated to midnight UTC, the reference
// point for all daily counters.
func todayUTC() time.Time {
	return time.Now().UTC().Truncate(24 * time.Hour)
}

// counterToday reads the daily counter, treating a stale LastCounterDate as
// zero regardless of the stored value.
func counterToday(rep *types.ReputationData, today time.Time) int {
	if !rep.LastCounterDate.Equal(today) {
		return 0
	}

	return rep.ConversationsToday
}
