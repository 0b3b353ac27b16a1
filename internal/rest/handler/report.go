package handler

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"

	dbtypes "github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/database/types/enum"
	"github.com/amora-app/amora/internal/reputation"
	resttypes "github.com/amora-app/amora/internal/rest/types"
	"github.com/google/uuid"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ReportHandler files reports through the rate limiter.
type ReportHandler struct {
	engine *reputation.Engine
	logger *zap.Logger
}

// NewReportHandler creates a new report handler.
func NewReportHandler(engine *reputation.Engine, logger *zap.Logger) *ReportHandler {
	return &ReportHandler{
		engine: engine,
		logger: logger,
	}
}

// FileReport submits a report. A malformed reason is rejected before any
// read; rate-limit denials come back with HTTP 200 and a structured reason.
func (h *ReportHandler) FileReport(w http.ResponseWriter, req bunrouter.Request) error {
	var body resttypes.FileReportRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	if body.ReporterID == 0 || body.ReportedUserID == 0 {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	reason, err := enum.ReportReasonString(body.Reason)
	if err != nil {
		http.Error(w, "Invalid report reason", http.StatusBadRequest)
		return nil
	}

	var conversationID uuid.UUID

	if body.ConversationID != "" {
		conversationID, err = uuid.Parse(body.ConversationID)
		if err != nil {
			http.Error(w, "Invalid conversation ID", http.StatusBadRequest)
			return nil
		}
	}

	result, err := h.engine.FileReport(
		req.Context(), body.ReporterID, body.ReportedUserID, reason, body.Details, conversationID,
	)
	if err != nil {
		if errors.Is(err, dbtypes.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to file report",
			zap.Uint64("reporterID", body.ReporterID),
			zap.Uint64("reportedUserID", body.ReportedUserID),
			zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, result)
}

// UpdateStatus records a moderation decision on a filed report. Only the
// post-review statuses are accepted; a report cannot be moved back to
// pending.
func (h *ReportHandler) UpdateStatus(w http.ResponseWriter, req bunrouter.Request) error {
	reportID, err := uuid.Parse(req.Param("id"))
	if err != nil {
		http.Error(w, "Invalid report ID", http.StatusBadRequest)
		return nil
	}

	var body resttypes.UpdateReportStatusRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	status, err := enum.ReportStatusString(body.Status)
	if err != nil || status == enum.ReportStatusPending || body.ReviewedBy == 0 {
		http.Error(w, "Invalid report status", http.StatusBadRequest)
		return nil
	}

	err = h.engine.ResolveReport(req.Context(), reportID, status, body.ReviewedBy, body.ActionTaken)
	if err != nil {
		h.logger.Error("Failed to update report status",
			zap.String("reportID", reportID.String()),
			zap.String("status", status.String()),
			zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	w.WriteHeader(http.StatusNoContent)

	return nil
}
