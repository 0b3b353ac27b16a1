package models

import (
	"context"
	"fmt"
	"time"

	"github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/database/types/enum"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// ReportModel handles database operations for user reports.
type ReportModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewReport creates a new report model.
func NewReport(db *bun.DB, logger *zap.Logger) *ReportModel {
	return &ReportModel{
		db:     db,
		logger: logger.Named("db_report"),
	}
}

// CreateReport inserts a new report record.
func (r *ReportModel) CreateReport(ctx context.Context, report *types.Report) error {
	now := time.Now()
	report.CreatedAt = now
	report.UpdatedAt = now

	_, err := r.db.NewInsert().
		Model(report).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create report %s: %w", report.ID, err)
	}

	return nil
}

// HasRecentReport checks whether the reporter already filed against the same
// target after the given cutoff.
func (r *ReportModel) HasRecentReport(
	ctx context.Context, reporterID, reportedUserID uint64, since time.Time,
) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*types.Report)(nil)).
		Where("reporter_id = ?", reporterID).
		Where("reported_user_id = ?", reportedUserID).
		Where("created_at > ?", since).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check recent report by %d against %d: %w",
			reporterID, reportedUserID, err)
	}

	return exists, nil
}

// CountReportsBySince counts reports filed by a reporter after the cutoff.
func (r *ReportModel) CountReportsBySince(ctx context.Context, reporterID uint64, since time.Time) (int, error) {
	count, err := r.db.NewSelect().
		Model((*types.Report)(nil)).
		Where("reporter_id = ?", reporterID).
		Where("created_at > ?", since).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count reports by user %d: %w", reporterID, err)
	}

	return count, nil
}

// CountReportsAgainst counts all reports ever filed against a user. Feeds the
// report-ratio signal.
func (r *ReportModel) CountReportsAgainst(ctx context.Context, reportedUserID uint64) (int, error) {
	count, err := r.db.NewSelect().
		Model((*types.Report)(nil)).
		Where("reported_user_id = ?", reportedUserID).
		Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count reports against user %d: %w", reportedUserID, err)
	}

	return count, nil
}

// GetReporterStats returns a reporter's total submitted and dismissed report
// counts for the abuse check.
func (r *ReportModel) GetReporterStats(ctx context.Context, reporterID uint64) (*types.ReporterStats, error) {
	stats := new(types.ReporterStats)

	err := r.db.NewSelect().
		Model((*types.Report)(nil)).
		ColumnExpr("COUNT(*) AS submitted").
		ColumnExpr("COUNT(*) FILTER (WHERE status = ?) AS dismissed", enum.ReportStatusDismissed).
		Where("reporter_id = ?", reporterID).
		Scan(ctx, stats)
	if err != nil {
		return nil, fmt.Errorf("failed to get reporter stats for user %d: %w", reporterID, err)
	}

	return stats, nil
}

// UpdateReportStatus records a moderation decision on a report.
func (r *ReportModel) UpdateReportStatus(
	ctx context.Context, reportID uuid.UUID, status enum.ReportStatus, reviewedBy uint64, actionTaken string,
) error {
	res, err := r.db.NewUpdate().
		Model((*types.Report)(nil)).
		Set("status = ?", status).
		Set("reviewed_by = ?", reviewedBy).
		Set("action_taken = ?", actionTaken).
		Set("updated_at = ?", time.Now()).
		Where("id = ?", reportID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update report %s: %w", reportID, err)
	}

	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		r.logger.Warn("Report status update matched no rows", zap.String("reportID", reportID.String()))
	}

	return nil
}
