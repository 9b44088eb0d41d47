package vehicle

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
	CreateVehicle(dto CreateVehicleDTO) (*Vehicle, error)
	UpdateVehicle(id int64, dto UpdateVehicleDTO) (*Vehicle, error)
	GetVehicle(id int64) (*Vehicle, error)
	GetVehicles(status string, routeID int64) ([]*Vehicle, error)
	DeleteVehicle(id int64) error
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

func (h *Handler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var dto CreateVehicleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Service.CreateVehicle(dto)
	if err != nil {
		h.writeVehicleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := h.vehicleID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	var dto UpdateVehicleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Service.UpdateVehicle(id, dto)
	if err != nil {
		h.writeVehicleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := h.vehicleID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	v, err := h.Service.GetVehicle(id)
	if err != nil {
		h.writeVehicleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, v)
}

func (h *Handler) GetVehicles(w http.ResponseWriter, r *http.Request) {
	var routeID int64
	if raw := r.URL.Query().Get("route_id"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid route_id")
			return
		}
		routeID = parsed
	}

	vehicles, err := h.Service.GetVehicles(r.URL.Query().Get("status"), routeID)
	if err != nil {
		h.Logger.Error("GetVehicles: failed to list vehicles", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get vehicles")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"vehicles": vehicles})
}

func (h *Handler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := h.vehicleID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	if err := h.Service.DeleteVehicle(id); err != nil {
		h.writeVehicleError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "vehicle deleted"})
}

func (h *Handler) vehicleID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) writeVehicleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrVehicleNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeVehicleNotFound))
	case errors.Is(err, ErrRouteNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeRouteNotFound))
	case errors.Is(err, ErrDuplicatePlate):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeDuplicatePlate))
	case errors.Is(err, ErrVehicleInUse):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeEntityInUse))
	default:
		h.WriteAppError(w, internal.NewInternalError("internal server error", err))
	}
}
