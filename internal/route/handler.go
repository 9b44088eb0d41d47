package route

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
	CreateRoute(dto CreateRouteDTO) (*Route, error)
	UpdateRoute(id int64, dto UpdateRouteDTO) (*Route, error)
	GetRoute(id int64) (*Route, error)
	GetRoutes() ([]*Route, error)
	GetRouteStatistics(id int64) (*RouteStatistics, error)
	DeleteRoute(id int64) error
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

func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var dto CreateRouteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Service.CreateRoute(dto)
	if err != nil {
		h.writeRouteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	id, err := h.routeID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid route id")
		return
	}

	var dto UpdateRouteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Service.UpdateRoute(id, dto)
	if err != nil {
		h.writeRouteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) GetRoute(w http.ResponseWriter, r *http.Request) {
	id, err := h.routeID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid route id")
		return
	}

	rt, err := h.Service.GetRoute(id)
	if err != nil {
		h.writeRouteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, rt)
}

func (h *Handler) GetRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.Service.GetRoutes()
	if err != nil {
		h.Logger.Error("GetRoutes: failed to list routes", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get routes")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"routes": routes})
}

func (h *Handler) GetRouteStatistics(w http.ResponseWriter, r *http.Request) {
	id, err := h.routeID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid route id")
		return
	}

	stats, err := h.Service.GetRouteStatistics(id)
	if err != nil {
		h.writeRouteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, stats)
}

func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	id, err := h.routeID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid route id")
		return
	}

	if err := h.Service.DeleteRoute(id); err != nil {
		h.writeRouteError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "route deleted"})
}

func (h *Handler) routeID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) writeRouteError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRouteNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeRouteNotFound))
	case errors.Is(err, ErrDuplicateName):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeDuplicateRoute))
	case errors.Is(err, ErrRouteInUse):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeEntityInUse))
	default:
		h.WriteAppError(w, internal.NewInternalError("internal server error", err))
	}
}
