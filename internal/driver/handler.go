package driver

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
	CreateDriver(dto CreateDriverDTO) (*Driver, error)
	UpdateDriver(id int64, dto UpdateDriverDTO) (*Driver, error)
	GetDriver(id int64) (*Driver, error)
	GetDrivers(status string) ([]*Driver, error)
	DeleteDriver(id int64) error
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

func (h *Handler) CreateDriver(w http.ResponseWriter, r *http.Request) {
	var dto CreateDriverDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Service.CreateDriver(dto)
	if err != nil {
		h.writeDriverError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) UpdateDriver(w http.ResponseWriter, r *http.Request) {
	id, err := h.driverID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid driver id")
		return
	}

	var dto UpdateDriverDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Service.UpdateDriver(id, dto)
	if err != nil {
		h.writeDriverError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) GetDriver(w http.ResponseWriter, r *http.Request) {
	id, err := h.driverID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid driver id")
		return
	}

	d, err := h.Service.GetDriver(id)
	if err != nil {
		h.writeDriverError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, d)
}

func (h *Handler) GetDrivers(w http.ResponseWriter, r *http.Request) {
	drivers, err := h.Service.GetDrivers(r.URL.Query().Get("status"))
	if err != nil {
		h.Logger.Error("GetDrivers: failed to list drivers", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get drivers")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"drivers": drivers})
}

func (h *Handler) DeleteDriver(w http.ResponseWriter, r *http.Request) {
	id, err := h.driverID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid driver id")
		return
	}

	if err := h.Service.DeleteDriver(id); err != nil {
		h.writeDriverError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "driver deleted"})
}

func (h *Handler) driverID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) writeDriverError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrDriverNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeDriverNotFound))
	case errors.Is(err, ErrDriverInUse):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeEntityInUse))
	default:
		h.WriteAppError(w, internal.NewInternalError("internal server error", err))
	}
}
