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
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReportDenialReason identifies why a report was refused.
type ReportDenialReason string

const (
	ReportDenialSelf        ReportDenialReason = "self"
	ReportDenialRestricted  ReportDenialReason = "restricted"
	ReportDenialDuplicate   ReportDenialReason = "duplicate"
	ReportDenialDailyLimit  ReportDenialReason = "daily_limit"
	ReportDenialWeeklyLimit ReportDenialReason = "weekly_limit"
)

// Reporter abuse thresholds: a reporter with at least this many submissions
// and a dismissal rate above one half is cut off until manually reinstated.
const (
	abuseMinSubmitted = 5
)

const (
	duplicateWindow = 24 * time.Hour
	dailyWindow     = 24 * time.Hour
	weeklyWindow    = 7 * 24 * time.Hour
)

// ReportResult carries the outcome of a report attempt along with the
// limits needed to render a denial.
type ReportResult struct {
	Allowed  bool               `json:"allowed"`
	Reason   ReportDenialReason `json:"reason,omitempty"`
	ReportID uuid.UUID          `json:"reportId,omitempty"`

	DailyLimit  int `json:"dailyLimit"`
	WeeklyLimit int `json:"weeklyLimit"`
	DailyUsed   int `json:"dailyUsed"`
	WeeklyUsed  int `json:"weeklyUsed"`
}

// ReportLimiter guards report submission with tier-scaled caps, duplicate
// suppression, and the serial-reporter abuse check. On an accepted report it
// recalculates the reported user in real time so the effect on their tier is
// visible to the very next permission check.
type ReportLimiter struct {
	reports      reportStore
	reputation   reputationStore
	recalculator recalculationRunner
	logger       *zap.Logger
}

// NewReportLimiter creates a new report rate limiter.
func NewReportLimiter(db database.Client, recalculator *Recalculator, logger *zap.Logger) *ReportLimiter {
	return &ReportLimiter{
		reports:      db.Model().Report(),
		reputation:   db.Model().Reputation(),
		recalculator: recalculator,
		logger:       logger.Named("report_limiter"),
	}
}

// FileReport validates a report attempt and, when allowed, creates the
// report record and recalculates the reported user. Denials come back as
// structured results, not errors.
func (l *ReportLimiter) FileReport(
	ctx context.Context, reporterID, reportedUserID uint64,
	reason enum.ReportReason, details string, conversationID uuid.UUID,
) (*ReportResult, error) {
	if reporterID == reportedUserID {
		return &ReportResult{Reason: ReportDenialSelf}, nil
	}

	stats, err := l.reports.GetReporterStats(ctx, reporterID)
	if err != nil {
		return nil, fmt.Errorf("failed to load reporter stats: %w", err)
	}

	if stats.Submitted >= abuseMinSubmitted && stats.Dismissed*2 > stats.Submitted {
		l.logger.Warn("Restricted reporter denied",
			zap.Uint64("reporterID", reporterID),
			zap.Int("submitted", stats.Submitted),
			zap.Int("dismissed", stats.Dismissed))

		return &ReportResult{Reason: ReportDenialRestricted}, nil
	}

	now := time.Now()

	duplicate, err := l.reports.
		HasRecentReport(ctx, reporterID, reportedUserID, now.Add(-duplicateWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to check duplicate reports: %w", err)
	}

	if duplicate {
		return &ReportResult{Reason: ReportDenialDuplicate}, nil
	}

	reporterRep, err := l.reputationFor(ctx, reporterID)
	if err != nil {
		return nil, err
	}

	policy := PolicyFor(reporterRep.Tier)

	result := &ReportResult{
		DailyLimit:  policy.DailyReportLimit,
		WeeklyLimit: policy.WeeklyReportLimit,
	}

	result.DailyUsed, err = l.reports.
		CountReportsBySince(ctx, reporterID, now.Add(-dailyWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count daily reports: %w", err)
	}

	if result.DailyUsed >= policy.DailyReportLimit {
		result.Reason = ReportDenialDailyLimit

		return result, nil
	}

	result.WeeklyUsed, err = l.reports.
		CountReportsBySince(ctx, reporterID, now.Add(-weeklyWindow))
	if err != nil {
		return nil, fmt.Errorf("failed to count weekly reports: %w", err)
	}

	if result.WeeklyUsed >= policy.WeeklyReportLimit {
		result.Reason = ReportDenialWeeklyLimit

		return result, nil
	}

	report := &types.Report{
		ID:             uuid.New(),
		ReporterID:     reporterID,
		ReportedUserID: reportedUserID,
		ReporterTier:   reporterRep.Tier,
		Reason:         reason,
		Details:        details,
		ConversationID: conversationID,
		Status:         enum.ReportStatusPending,
	}

	if err := l.reports.CreateReport(ctx, report); err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	// The fresh report row is already visible to the aggregator, so the
	// reported user's next permission check reflects it.
	if _, err := l.recalculator.Recalculate(ctx, reportedUserID, nil); err != nil {
		return nil, fmt.Errorf("failed to recalculate reported user: %w", err)
	}

	result.Allowed = true
	result.ReportID = report.ID
	result.DailyUsed++
	result.WeeklyUsed++

	return result, nil
}

// reputationFor loads the reporter's reputation, computing it fresh when no
// row exists yet.
func (l *ReportLimiter) reputationFor(ctx context.Context, userID uint64) (*types.ReputationData, error) {
	rep, err := l.reputation.GetReputation(ctx, userID)
	if err == nil {
		return rep, nil
	}

	if !errors.Is(err, models.ErrReputationNotFound) {
		return nil, fmt.Errorf("failed to load reporter reputation: %w", err)
	}

	rep, err = l.recalculator.Recalculate(ctx, userID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate reporter reputation: %w", err)
	}

	return rep, nil
}
