package handler

import (
	"net/http"

	"github.com/bytedance/sonic"

	dbtypes "github.com/amora-app/amora/internal/database/types"
	"github.com/amora-app/amora/internal/reputation"
	resttypes "github.com/amora-app/amora/internal/rest/types"
	"github.com/uptrace/bunrouter"
	"go.uber.org/zap"
)

// UserHandler serves account lifecycle operations.
type UserHandler struct {
	engine *reputation.Engine
	logger *zap.Logger
}

// NewUserHandler creates a new user handler.
func NewUserHandler(engine *reputation.Engine, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		engine: engine,
		logger: logger,
	}
}

// CompleteOnboarding saves the user's profile and creates the starting
// reputation row at the bottom tier. Calling it again for an existing user
// updates the profile without resetting earned standing.
func (h *UserHandler) CompleteOnboarding(w http.ResponseWriter, req bunrouter.Request) error {
	var body resttypes.OnboardUserRequest
	if err := sonic.ConfigDefault.NewDecoder(req.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	if body.ID == 0 || body.DisplayName == "" {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return nil
	}

	user := &dbtypes.User{
		ID:                body.ID,
		DisplayName:       body.DisplayName,
		ProfileCompletion: body.ProfileCompletion,
		IdentityVerified:  body.IdentityVerified,
		Premium:           body.Premium,
	}

	rep, err := h.engine.CompleteOnboarding(req.Context(), user)
	if err != nil {
		h.logger.Error("Failed to complete onboarding", zap.Uint64("userID", body.ID), zap.Error(err))
		http.Error(w, "Internal server error", http.StatusInternalServerError)

		return nil
	}

	w.WriteHeader(http.StatusCreated)

	return bunrouter.JSON(w, rep)
}
