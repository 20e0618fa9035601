package handler

import (
	"net/http"

	"github.com/snuhangout/api/internal/middleware"
	"github.com/snuhangout/api/internal/model"
	"github.com/snuhangout/api/internal/service"
)

// DatingHandler handles dating profile and questionnaire endpoints
type DatingHandler struct {
	datingService *service.DatingService
}

// NewDatingHandler creates a new dating handler
func NewDatingHandler(datingService *service.DatingService) *DatingHandler {
	return &DatingHandler{
		datingService: datingService,
	}
}

func profileLinks() map[string]string {
	return map[string]string{
		"self":    "/v1/dating/profile",
		"answers": "/v1/dating/profile/answers",
		"matches": "/v1/dating/matches",
	}
}

// GetProfile handles GET /v1/dating/profile - get own dating profile
func (h *DatingHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	profile, err := h.datingService.GetProfile(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get dating profile"))
		return
	}

	WriteData(w, http.StatusOK, profile, profileLinks())
}

// UpsertProfile handles PUT /v1/dating/profile - create or update own dating profile
func (h *DatingHandler) UpsertProfile(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.UpsertDatingProfileRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	profile, created, err := h.datingService.UpsertProfile(r.Context(), userID, &req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "save dating profile"))
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	WriteData(w, status, profile, profileLinks())
}

// UpdateAnswers handles PUT /v1/dating/profile/answers - replace questionnaire answers
func (h *DatingHandler) UpdateAnswers(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.UpdateAnswersRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	profile, err := h.datingService.UpdateAnswers(r.Context(), userID, &req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "save answers"))
		return
	}

	WriteData(w, http.StatusOK, profile, profileLinks())
}

// ListQuestions handles GET /v1/dating/questions - list the questionnaire
func (h *DatingHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	WriteCollection(w, http.StatusOK, h.datingService.Questions(), nil, map[string]string{
		"self":       "/v1/dating/questions",
		"categories": "/v1/dating/categories",
	})
}

// ListCategories handles GET /v1/dating/categories - list scoring categories
func (h *DatingHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	WriteCollection(w, http.StatusOK, h.datingService.Categories(), nil, map[string]string{
		"self":      "/v1/dating/categories",
		"questions": "/v1/dating/questions",
	})
}
