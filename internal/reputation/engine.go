package reputation

import (
	"context"
	"errors"
	"fmt"

	"github.com/amora-app/amora/internal/database"
	"github.com/amora-app/amora/internal/database/models"
	"github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/database/types/enum"
	"github.com/amora-app/amora/internal/setup/config"
	"github.com/google/uuid"
	"github.com/redis/rueidis"
	"go.uber.org/zap"
)

// ReputationStatus is the client-facing view of a user's standing. The raw
// score stays internal.
type ReputationStatus struct {
	Tier       enum.Tier `json:"tier"`
	DailyQuota int       `json:"dailyQuota"`
	UsedToday  int       `json:"usedToday"`
	Remaining  int       `json:"remaining"`
}

// Engine bundles the reputation subsystem behind the operations the message
// send path and the report path consume.
type Engine struct {
	db           database.Client
	recalculator *Recalculator
	gate         *Gate
	burst        *BurstDetector
	reports      *ReportLimiter
	onboarding   *Onboarding
	logger       *zap.Logger
}

// NewEngine wires the full reputation engine.
func NewEngine(
	db database.Client, redisClient rueidis.Client, cfg *config.Reputation, logger *zap.Logger,
) *Engine {
	recalculator := NewRecalculator(db, logger)

	return &Engine{
		db:           db,
		recalculator: recalculator,
		gate:         NewGate(db, recalculator, logger),
		burst:        NewBurstDetector(redisClient, db, recalculator, cfg, logger),
		reports:      NewReportLimiter(db, recalculator, logger),
		onboarding:   NewOnboarding(db, logger),
		logger:       logger.Named("reputation"),
	}
}

// CompleteOnboarding persists the user's profile and creates the starting
// reputation row at the bottom tier. Every account passes through this
// before the recalculation pipeline ever classifies it.
func (e *Engine) CompleteOnboarding(ctx context.Context, user *types.User) (*types.ReputationData, error) {
	return e.onboarding.Complete(ctx, user)
}

// Recalculator exposes the recalculation pipeline for the batch sweep.
func (e *Engine) Recalculator() *Recalculator {
	return e.recalculator
}

// Burst exposes the burst detector for the batch sweep's window reset.
func (e *Engine) Burst() *BurstDetector {
	return e.burst
}

// CheckMessagePermission is the side-effect-free pre-flight permission
// check.
func (e *Engine) CheckMessagePermission(
	ctx context.Context, senderID, recipientID uint64,
) (*PermissionResult, error) {
	return e.gate.Check(ctx, senderID, recipientID)
}

// RecordMessageSent runs the full send path: claim permission, persist the
// conversation state, update both users' message metrics, and run burst
// detection. Returns the gate decision; a denial carries no side effects.
func (e *Engine) RecordMessageSent(
	ctx context.Context, senderID, recipientID uint64, messageLength int,
) (*PermissionResult, error) {
	result, err := e.gate.Consume(ctx, senderID, recipientID)
	if err != nil {
		return nil, err
	}

	if !result.Allowed {
		return result, nil
	}

	if result.IsNewConversation || result.IsPremium {
		if err := e.recordConversation(ctx, senderID, recipientID, result); err != nil {
			return nil, err
		}
	} else if err := e.recordReply(ctx, senderID, recipientID); err != nil {
		return nil, err
	}

	err = e.db.Model().Metrics().
		RecordSent(ctx, senderID, messageLength, todayUTC(), result.IsNewConversation)
	if err != nil {
		return nil, fmt.Errorf("failed to record sent message: %w", err)
	}

	if err := e.db.Model().Metrics().RecordReceived(ctx, recipientID); err != nil {
		return nil, fmt.Errorf("failed to record received message: %w", err)
	}

	if _, err := e.burst.RecordSend(ctx, senderID); err != nil {
		return nil, err
	}

	return result, nil
}

// recordConversation ensures the conversation row exists, marking the sender
// as the starter on first creation. Premium sends skip the existence check
// in the gate, so the row may or may not exist yet.
func (e *Engine) recordConversation(
	ctx context.Context, senderID, recipientID uint64, result *PermissionResult,
) error {
	existing, err := e.db.Model().Conversation().GetByPair(ctx, senderID, recipientID)
	if err != nil {
		return fmt.Errorf("failed to load conversation: %w", err)
	}

	if existing == nil {
		result.IsNewConversation = true

		if _, err := e.db.Model().Conversation().Create(ctx, senderID, recipientID); err != nil {
			return fmt.Errorf("failed to create conversation: %w", err)
		}

		return nil
	}

	result.IsNewConversation = false

	return e.recordReply(ctx, senderID, recipientID)
}

// recordReply flips the conversation's replied flag if this send is the
// first answer to the starter, crediting the starter exactly once.
func (e *Engine) recordReply(ctx context.Context, senderID, recipientID uint64) error {
	starterID, transitioned, err := e.db.Model().Conversation().
		MarkReplied(ctx, senderID, recipientID, senderID)
	if err != nil {
		return fmt.Errorf("failed to mark conversation replied: %w", err)
	}

	if !transitioned {
		return nil
	}

	if err := e.db.Model().Metrics().IncrementConversationsWithReplies(ctx, starterID); err != nil {
		return fmt.Errorf("failed to credit conversation reply: %w", err)
	}

	return nil
}

// ResolveReport records a moderation decision on a report. Dismissals feed
// the reporter abuse check through the derived reporter stats.
func (e *Engine) ResolveReport(
	ctx context.Context, reportID uuid.UUID, status enum.ReportStatus, reviewedBy uint64, actionTaken string,
) error {
	if err := e.db.Model().Report().UpdateReportStatus(ctx, reportID, status, reviewedBy, actionTaken); err != nil {
		return fmt.Errorf("failed to resolve report: %w", err)
	}

	return nil
}

// FileReport submits a report through the rate limiter.
func (e *Engine) FileReport(
	ctx context.Context, reporterID, reportedUserID uint64,
	reason enum.ReportReason, details string, conversationID uuid.UUID,
) (*ReportResult, error) {
	return e.reports.FileReport(ctx, reporterID, reportedUserID, reason, details, conversationID)
}

// GetReputationStatus returns a user's tier and quota standing, computing
// reputation fresh when no row exists yet.
func (e *Engine) GetReputationStatus(ctx context.Context, userID uint64) (*ReputationStatus, error) {
	rep, err := e.db.Model().Reputation().GetReputation(ctx, userID)
	if errors.Is(err, models.ErrReputationNotFound) {
		rep, err = e.recalculator.Recalculate(ctx, userID, nil)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to load reputation status: %w", err)
	}

	status := &ReputationStatus{
		Tier:       rep.Tier,
		DailyQuota: rep.DailyQuota,
		UsedToday:  counterToday(rep, todayUTC()),
		Remaining:  UnlimitedQuota,
	}

	if rep.DailyQuota != UnlimitedQuota {
		status.Remaining = rep.DailyQuota - status.UsedToday
		if status.Remaining < 0 {
			status.Remaining = 0
		}
	}

	return status, nil
}
