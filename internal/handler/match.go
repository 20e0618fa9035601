package handler

import (
	"net/http"

	"github.com/snuhangout/api/internal/middleware"
	"github.com/snuhangout/api/internal/model"
	"github.com/snuhangout/api/internal/service"
)

// MatchHandler handles match list and compatibility endpoints
type MatchHandler struct {
	matchService *service.MatchService
}

// NewMatchHandler creates a new match handler
func NewMatchHandler(matchService *service.MatchService) *MatchHandler {
	return &MatchHandler{
		matchService: matchService,
	}
}

// ListMatches handles GET /v1/dating/matches - ranked compatible profiles
func (h *MatchHandler) ListMatches(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	matches, err := h.matchService.ListMatches(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list matches"))
		return
	}

	WriteCollection(w, http.StatusOK, matches, nil, map[string]string{
		"self":    "/v1/dating/matches",
		"profile": "/v1/dating/profile",
	})
}

// GetCompatibility handles GET /v1/dating/compatibility/{userId} - full score breakdown
func (h *MatchHandler) GetCompatibility(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	otherUserID := r.PathValue("userId")
	if !model.IsUserRecordID(otherUserID) {
		WriteError(w, model.NewBadRequestError("user ID required"))
		return
	}

	result, err := h.matchService.Compatibility(r.Context(), userID, otherUserID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "calculate compatibility"))
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"self": "/v1/dating/compatibility/" + otherUserID,
	})
}
