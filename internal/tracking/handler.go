package tracking

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/frahmantamala/service-tracking/internal"
	"github.com/frahmantamala/service-tracking/internal/transport"
	"github.com/go-chi/chi/v5"
)

type ServiceAPI interface {
	RecordEntry(dto RecordMovementDTO) (*Movement, error)
	RecordExit(dto RecordMovementDTO) (*Movement, error)
	VehicleState(vehicleID int64) (*VehicleState, error)
	ActiveVehicles() ([]ActiveVehicle, error)
	DailyReport(date time.Time) (*DailyReport, error)
	GetMovement(id int64) (*Movement, error)
	MovementsByVehicle(vehicleID int64, limit int) ([]*Movement, error)
	MovementsByShift(shiftID int64, limit int) ([]*Movement, error)
	DeleteMovement(id int64) error
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

func (h *Handler) RecordEntry(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decodeMovement(w, r)
	if !ok {
		return
	}

	m, err := h.Service.RecordEntry(dto)
	if err != nil {
		h.writeTrackingError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) RecordExit(w http.ResponseWriter, r *http.Request) {
	dto, ok := h.decodeMovement(w, r)
	if !ok {
		return
	}

	m, err := h.Service.RecordExit(dto)
	if err != nil {
		h.writeTrackingError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, m)
}

func (h *Handler) GetVehicleState(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.ParseInt(chi.URLParam(r, "vehicleID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	state, err := h.Service.VehicleState(vehicleID)
	if err != nil {
		h.writeTrackingError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, state)
}

func (h *Handler) GetActiveVehicles(w http.ResponseWriter, r *http.Request) {
	active, err := h.Service.ActiveVehicles()
	if err != nil {
		h.Logger.Error("GetActiveVehicles: failed to list", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get active vehicles")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"vehicles": active})
}

// GetDailyReport defaults to today when no date is given.
func (h *Handler) GetDailyReport(w http.ResponseWriter, r *http.Request) {
	date := time.Now()
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
			return
		}
		date = parsed
	}

	report, err := h.Service.DailyReport(date)
	if err != nil {
		h.Logger.Error("GetDailyReport: failed to build report", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to build report")
		return
	}
	h.WriteJSON(w, http.StatusOK, report)
}

func (h *Handler) GetVehicleMovements(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := strconv.ParseInt(chi.URLParam(r, "vehicleID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 && l <= 500 {
			limit = l
		}
	}

	movements, err := h.Service.MovementsByVehicle(vehicleID, limit)
	if err != nil {
		h.writeTrackingError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"movements": movements})
}

func (h *Handler) GetShiftMovements(w http.ResponseWriter, r *http.Request) {
	shiftID, err := strconv.ParseInt(chi.URLParam(r, "shiftID"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid shift id")
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if l, err := strconv.Atoi(raw); err == nil && l > 0 && l <= 500 {
			limit = l
		}
	}

	movements, err := h.Service.MovementsByShift(shiftID, limit)
	if err != nil {
		h.writeTrackingError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"movements": movements})
}

func (h *Handler) DeleteMovement(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid movement id")
		return
	}

	if err := h.Service.DeleteMovement(id); err != nil {
		h.writeTrackingError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "movement deleted"})
}

func (h *Handler) decodeMovement(w http.ResponseWriter, r *http.Request) (RecordMovementDTO, bool) {
	var dto RecordMovementDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return dto, false
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return dto, false
	}
	return dto, true
}

func (h *Handler) writeTrackingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrMovementNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeMovementNotFound))
	case errors.Is(err, ErrVehicleNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeVehicleNotFound))
	case errors.Is(err, ErrShiftNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeShiftNotFound))
	case errors.Is(err, ErrVehicleAlreadyInside):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeVehicleInside))
	case errors.Is(err, ErrVehicleNotInside):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeVehicleNotInside))
	case errors.Is(err, ErrVehicleNotActive), errors.Is(err, ErrShiftNotActive):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeInvalidStatus))
	default:
		h.WriteAppError(w, internal.NewInternalError("internal server error", err))
	}
}
