package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/reputation"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// ReputationHandler serves reputation status and pre-flight permission
// checks.
type ReputationHandler struct {
	engine *reputation.Engine
	logger *zap.Logger
}

// NewReputationHandler creates a new reputation handler.
func NewReputationHandler(engine *reputation.Engine, logger *zap.Logger) *ReputationHandler {
	return &ReputationHandler{
		engine: engine,
		logger: logger,
	}
}

// GetReputation returns a user's tier and quota standing. The numeric score
// is never included.
func (h *ReputationHandler) GetReputation(w http.ResponseWriter, req bunrouter.Request) error {
	userID, err := strconv.ParseUint(req.Param("id"), 10, 64)
	if err != nil || userID == 0 {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return nil
	}

	status, err := h.engine.GetReputationStatus(req.Context(), userID)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to get reputation status", zap.Uint64("userID", userID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, status)
}

// CheckPermission runs the read-only permission check for a sender and
// recipient pair.
func (h *ReputationHandler) CheckPermission(w http.ResponseWriter, req bunrouter.Request) error {
	query := req.URL.Query()

	senderID, err := strconv.ParseUint(query.Get("sender"), 10, 64)
	if err != nil || senderID == 0 {
		http.Error(w, "Invalid sender ID", http.StatusBadRequest)
		return nil
	}

	recipientID, err := strconv.ParseUint(query.Get("recipient"), 10, 64)
	if err != nil || recipientID == 0 {
		http.Error(w, "Invalid recipient ID", http.StatusBadRequest)
		return nil
	}

	result, err := h.engine.CheckMessagePermission(req.Context(), senderID, recipientID)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to check message permission",
			zap.Uint64("senderID", senderID),
			zap.Uint64("recipientID", recipientID),
			zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, result)
}
