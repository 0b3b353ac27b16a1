package handler

import (
	"errors"
	"net/http"

	"github.com/bytedance/sonic"

	dbtypes "github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/reputation"
	resttypes "github.com/amora-app/amora/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// MessageHandler records message sends through the permission gate.
type MessageHandler struct {
	engine *reputation.Engine
	logger *zap.Logger
}

// NewMessageHandler creates a new message handler.
func NewMessageHandler(engine *reputation.Engine, logger *zap.Logger) *MessageHandler {
	return &MessageHandler{
		engine: engine,
		logger: logger,
	}
}

// SendMessage runs the gate's consume variant and, when allowed, records the
// message against both users' metrics. Denials come back with HTTP 200 and a
// structured reason.
func (h *MessageHandler) SendMessage(w http.ResponseWriter, req bunrouter.Request) error {
	var body resttypes.SendMessageRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	if body.SenderID == 0 || body.RecipientID == 0 || body.MessageLength < 0 {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	result, err := h.engine.RecordMessageSent(req.Context(), body.SenderID, body.RecipientID, body.MessageLength)
	if err != nil {
		if errors.Is(err, dbtypes.ErrUserNotFound) {
			http.Error(w, "User not found", http.StatusNotFound)
			return nil
		}

		h.logger.Error("Failed to record message",
			zap.Uint64("senderID", body.SenderID),
			zap.Uint64("recipientID", body.RecipientID),
			zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	return bunrouter.JSON(w, result)
}
