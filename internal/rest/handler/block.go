package handler

import (
	"net/http"
	"strconv"

	"github.com/amora-app/amora/internal/database"
	resttypes "github.com/amora-app/amora/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// BlockHandler manages block relations, the gate's hardest override.
type BlockHandler struct {
	db     database.Client
	logger *zap.Logger
}

// NewBlockHandler creates a new block handler.
func NewBlockHandler(db database.Client, logger *zap.Logger) *BlockHandler {
	return &BlockHandler{
		db:     db,
		logger: logger,
	}
}

// Block records a block by the caller against the user in the path.
// Idempotent: blocking an already-blocked user succeeds.
func (h *BlockHandler) Block(w http.ResponseWriter, req bunrouter.Request) error {
	blockerID, blockedID, ok := h.parseIDs(w, req)
	if !ok {
		return nil
	}

	if err := h.db.Model().Block().Block(req.Context(), blockerID, blockedID); err != nil {
		h.logger.Error("Failed to create block",
			zap.Uint64("blockerID", blockerID),
			zap.Uint64("blockedID", blockedID),
			zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, resttypes.BlockResponse{
		BlockerID: blockerID,
		BlockedID: blockedID,
		Blocked:   true,
	})
}

// Unblock removes a block by the caller against the user in the path.
func (h *BlockHandler) Unblock(w http.ResponseWriter, req bunrouter.Request) error {
	blockerID, blockedID, ok := h.parseIDs(w, req)
	if !ok {
		return nil
	}

	if err := h.db.Model().Block().Unblock(req.Context(), blockerID, blockedID); err != nil {
		h.logger.Error("Failed to remove block",
			zap.Uint64("blockerID", blockerID),
			zap.Uint64("blockedID", blockedID),
			zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, resttypes.BlockResponse{
		BlockerID: blockerID,
		BlockedID: blockedID,
		Blocked:   false,
	})
}

func (h *BlockHandler) parseIDs(w http.ResponseWriter, req bunrouter.Request) (uint64, uint64, bool) {
	blockedID, err := strconv.ParseUint(req.Param("id"), 10, 64)
	if err != nil || blockedID == 0 {
		http.Error(w, "Invalid user ID", http.StatusBadRequest)
		return 0, 0, false
	}

	blockerID, err := strconv.ParseUint(req.URL.Query().Get("blocker"), 10, 64)
	if err != nil || blockerID == 0 {
		http.Error(w, "Invalid blocker ID", http.StatusBadRequest)
		return 0, 0, false
	}

	if blockerID == blockedID {
		http.Error(w, "Cannot block yourself", http.StatusBadRequest)
		return 0, 0, false
	}

	return blockerID, blockedID, true
}
