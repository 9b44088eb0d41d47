package shift

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
	CreateShift(dto CreateShiftDTO) (*Shift, error)
	UpdateShift(id int64, dto UpdateShiftDTO) (*Shift, error)
	GetShift(id int64) (*Shift, error)
	GetAllShifts() ([]*Shift, error)
	GetActiveShifts() ([]*Shift, error)
	CurrentShift() (*Shift, error)
	DeleteShift(id int64) error
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

func (h *Handler) CreateShift(w http.ResponseWriter, r *http.Request) {
	var dto CreateShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	shift, err := h.Service.CreateShift(dto)
	if err != nil {
		h.writeShiftError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, shift)
}

func (h *Handler) UpdateShift(w http.ResponseWriter, r *http.Request) {
	id, err := h.shiftID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	var dto UpdateShiftDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	shift, err := h.Service.UpdateShift(id, dto)
	if err != nil {
		h.writeShiftError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, shift)
}

func (h *Handler) GetShift(w http.ResponseWriter, r *http.Request) {
	id, err := h.shiftID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	shift, err := h.Service.GetShift(id)
	if err != nil {
		h.writeShiftError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, shift)
}

func (h *Handler) GetShifts(w http.ResponseWriter, r *http.Request) {
	var (
		shifts []*Shift
		err    error
	)
	if r.URL.Query().Get("status") == StatusActive {
		shifts, err = h.Service.GetActiveShifts()
	} else {
		shifts, err = h.Service.GetAllShifts()
	}
	if err != nil {
		h.Logger.Error("GetShifts: failed to list shifts", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get shifts")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"shifts": shifts})
}

// GetCurrentShift resolves which active shift window contains the server's
// current local time.
func (h *Handler) GetCurrentShift(w http.ResponseWriter, r *http.Request) {
	shift, err := h.Service.CurrentShift()
	if err != nil {
		h.writeShiftError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, shift)
}

func (h *Handler) DeleteShift(w http.ResponseWriter, r *http.Request) {
	id, err := h.shiftID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	if err := h.Service.DeleteShift(id); err != nil {
		h.writeShiftError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "shift deleted"})
}

func (h *Handler) shiftID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) writeShiftError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrShiftNotFound), errors.Is(err, ErrNoCurrentShift):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeShiftNotFound))
	case errors.Is(err, ErrDuplicateName):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeDuplicateShift))
	case errors.Is(err, ErrWindowOverlap):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeShiftOverlap))
	case errors.Is(err, ErrShiftInUse):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeEntityInUse))
	case errors.Is(err, ErrSameStartEnd):
		h.WriteAppError(w, internal.NewValidationError(err.Error(), internal.ErrCodeInvalidTimeRange))
	default:
		h.WriteAppError(w, internal.NewInternalError("internal server error", err))
	}
}
