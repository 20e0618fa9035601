package handler

import (
	"net/http"

	"github.com/snuhangout/api/internal/middleware"
	"github.com/snuhangout/api/internal/model"
	"github.com/snuhangout/api/internal/service"
)

// ConnectionHandler handles connection request endpoints
type ConnectionHandler struct {
	connectionService *service.ConnectionService
}

// NewConnectionHandler creates a new connection handler
func NewConnectionHandler(connectionService *service.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{
		connectionService: connectionService,
	}
}

// Create handles POST /v1/dating/connections - send a connection request
func (h *ConnectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	var req model.CreateConnectionRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	conn, err := h.connectionService.SendRequest(r.Context(), userID, &req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "send connection request"))
		return
	}

	WriteData(w, http.StatusCreated, conn, map[string]string{
		"requests": "/v1/dating/connections/requests",
	})
}

// ListRequests handles GET /v1/dating/connections/requests - pending requests sent to me
func (h *ConnectionHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	requests, err := h.connectionService.ListRequests(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list connection requests"))
		return
	}

	WriteCollection(w, http.StatusOK, requests, nil, map[string]string{
		"self": "/v1/dating/connections/requests",
	})
}

// Accept handles POST /v1/dating/connections/{id}/accept
func (h *ConnectionHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, model.ConnectionAccepted)
}

// Reject handles POST /v1/dating/connections/{id}/reject
func (h *ConnectionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, model.ConnectionRejected)
}

func (h *ConnectionHandler) respond(w http.ResponseWriter, r *http.Request, status model.ConnectionStatus) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		WriteError(w, model.NewUnauthorizedError("authentication required"))
		return
	}

	connectionID := r.PathValue("id")
	if connectionID == "" {
		WriteError(w, model.NewBadRequestError("connection ID required"))
		return
	}
	if !model.IsConnectionRecordID(connectionID) {
		WriteError(w, model.NewNotFoundError("connection request"))
		return
	}

	conn, err := h.connectionService.Respond(r.Context(), userID, connectionID, status)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "respond to connection request"))
		return
	}

	WriteData(w, http.StatusOK, conn, map[string]string{
		"requests": "/v1/dating/connections/requests",
	})
}
