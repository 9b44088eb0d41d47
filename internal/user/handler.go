package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/frahmantamala/service-tracking/internal"
	"github.com/frahmantamala/service-tracking/internal/transport"
	"github.com/go-chi/chi/v5"
)

type ServiceAPI interface {
	GetUser(id int64) (*User, error)
	GetUsers() ([]*User, error)
	GetRoles() ([]*Role, error)
	ChangeRole(userID, roleID int64) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

// GetCurrentUser handles GET /users/me using the user ID the auth middleware
// put on the context.
func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	rawID := internal.UserIDFromContext(r.Context())
	if rawID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	userID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	u, err := h.Service.GetUser(userID)
	if err != nil {
		h.writeUserError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	u, err := h.Service.GetUser(id)
	if err != nil {
		h.writeUserError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.GetUsers()
	if err != nil {
		h.Logger.Error("GetUsers: failed to list users", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get users")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

func (h *Handler) GetRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.Service.GetRoles()
	if err != nil {
		h.Logger.Error("GetRoles: failed to list roles", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get roles")
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"roles": roles})
}

func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid user id")
		return
	}

	var body struct {
		RoleID int64 `json:"role_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RoleID <= 0 {
		h.WriteError(w, http.StatusBadRequest, "role_id is required")
		return
	}

	u, err := h.Service.ChangeRole(id, body.RoleID)
	if err != nil {
		h.writeUserError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, u)
}

func (h *Handler) writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeUserNotFound))
	case errors.Is(err, ErrRoleNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeRoleNotFound))
	default:
		h.WriteAppError(w, internal.NewInternalError("internal server error", err))
	}
}
