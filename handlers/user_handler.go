package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cmartsolutions/bookstore-api/services"
	"github.com/cmartsolutions/bookstore-api/utils"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UpdateRolesRequest is the body of PUT /User/{id}/roles
type UpdateRolesRequest struct {
	Roles []string `json:"roles"`
}

// UserHandler handles account management requests
type UserHandler struct {
	svc    services.UserService
	logger *zap.Logger
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(svc services.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		svc:    svc,
		logger: logger,
	}
}

// Register handles POST /User/register (anonymous)
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input services.RegisterInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.WriteBadRequest(w, "username and password required")
		return
	}
	if input.Username == "" || input.Password == "" {
		utils.WriteBadRequest(w, "username and password required")
		return
	}

	user, err := h.svc.Register(r.Context(), input)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}
	_ = utils.WriteCreated(w, user)
}

// List handles GET /User
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUsers(r.Context())
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, users)
}

// ListUnverified handles GET /User/unverified
func (h *UserHandler) ListUnverified(w http.ResponseWriter, r *http.Request) {
	users, err := h.svc.ListUnverified(r.Context())
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, users)
}

// Get handles GET /User/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	user, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, user)
}

// Verify handles PUT /User/{id}/verify
func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	if err := h.svc.VerifyUser(r.Context(), id); err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, map[string]string{"message": "User verified."})
}

// UpdateRoles handles PUT /User/{id}/roles
func (h *UserHandler) UpdateRoles(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUserID(w, r)
	if !ok {
		return
	}

	var req UpdateRolesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteBadRequest(w, "At least one role is required.")
		return
	}

	if err := h.svc.UpdateRoles(r.Context(), id, req.Roles); err != nil {
		HandleServiceError(w, r, err, h.logger)
		return
	}
	_ = utils.WriteOK(w, map[string]string{"message": "Roles updated."})
}

func parseUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	if raw == "" {
		utils.WriteBadRequest(w, "User ID cannot be null or empty.")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.WriteBadRequest(w, "Invalid user ID.")
		return uuid.Nil, false
	}
	return id, true
}
