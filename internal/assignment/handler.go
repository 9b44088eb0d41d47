package assignment

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
	CreateDriverAssignment(dto CreateDriverAssignmentDTO) (*DriverAssignment, error)
	EndDriverAssignment(id int64) (*DriverAssignment, error)
	UpdateDriverAssignment(id int64, dto UpdateDriverAssignmentDTO) (*DriverAssignment, error)
	GetDriverAssignment(id int64) (*DriverAssignment, error)
	DriverAssignmentsByVehicle(vehicleID int64) ([]*DriverAssignment, error)
	DriverAssignmentsByDriver(driverID int64) ([]*DriverAssignment, error)
	ActiveDriverAssignments() ([]*DriverAssignment, error)

	CreateShiftAssignment(dto CreateShiftAssignmentDTO) (*ShiftAssignment, error)
	CreateBulkShiftAssignments(dto BulkShiftAssignmentDTO) (*BulkShiftAssignmentResult, error)
	GetShiftAssignment(id int64) (*ShiftAssignment, error)
	DeleteShiftAssignment(id int64) error
	ShiftAssignmentsByVehicle(vehicleID int64) ([]*ShiftAssignment, error)
	ShiftAssignmentsByShift(shiftID int64) ([]*ShiftAssignment, error)
	ShiftAssignmentsByDate(date time.Time) ([]*ShiftAssignment, error)
	TodayShiftAssignments() ([]*ShiftAssignment, error)
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

func (h *Handler) CreateDriverAssignment(w http.ResponseWriter, r *http.Request) {
	var dto CreateDriverAssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Service.CreateDriverAssignment(dto)
	if err != nil {
		h.writeAssignmentError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) EndDriverAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid assignment id")
		return
	}

	ended, err := h.Service.EndDriverAssignment(id)
	if err != nil {
		h.writeAssignmentError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, ended)
}

func (h *Handler) UpdateDriverAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid assignment id")
		return
	}

	var dto UpdateDriverAssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := h.Service.UpdateDriverAssignment(id, dto)
	if err != nil {
		h.writeAssignmentError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) GetDriverAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid assignment id")
		return
	}

	a, err := h.Service.GetDriverAssignment(id)
	if err != nil {
		h.writeAssignmentError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

// GetDriverAssignments lists driver assignments filtered by vehicle_id,
// driver_id or active=true. Without filters it returns the active set.
func (h *Handler) GetDriverAssignments(w http.ResponseWriter, r *http.Request) {
	var (
		assignments []*DriverAssignment
		err         error
	)
	query := r.URL.Query()
	switch {
	case query.Get("vehicle_id") != "":
		var vehicleID int64
		vehicleID, err = strconv.ParseInt(query.Get("vehicle_id"), 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid vehicle_id")
			return
		}
		assignments, err = h.Service.DriverAssignmentsByVehicle(vehicleID)
	case query.Get("driver_id") != "":
		var driverID int64
		driverID, err = strconv.ParseInt(query.Get("driver_id"), 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid driver_id")
			return
		}
		assignments, err = h.Service.DriverAssignmentsByDriver(driverID)
	default:
		assignments, err = h.Service.ActiveDriverAssignments()
	}
	if err != nil {
		h.Logger.Error("GetDriverAssignments: failed to list", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get assignments")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"assignments": assignments})
}

func (h *Handler) CreateShiftAssignment(w http.ResponseWriter, r *http.Request) {
	var dto CreateShiftAssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	created, err := h.Service.CreateShiftAssignment(dto)
	if err != nil {
		h.writeAssignmentError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusCreated, created)
}

// CreateBulkShiftAssignments always answers 200 with a per-item breakdown so
// callers can tell which combinations were skipped.
func (h *Handler) CreateBulkShiftAssignments(w http.ResponseWriter, r *http.Request) {
	var dto BulkShiftAssignmentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := dto.Validate(); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.Service.CreateBulkShiftAssignments(dto)
	if err != nil {
		h.writeAssignmentError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetShiftAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid assignment id")
		return
	}

	a, err := h.Service.GetShiftAssignment(id)
	if err != nil {
		h.writeAssignmentError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, a)
}

func (h *Handler) DeleteShiftAssignment(w http.ResponseWriter, r *http.Request) {
	id, err := h.pathID(r)
	if err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid assignment id")
		return
	}

	if err := h.Service.DeleteShiftAssignment(id); err != nil {
		h.writeAssignmentError(w, err)
		return
	}
	h.WriteJSON(w, http.StatusOK, map[string]string{"message": "assignment deleted"})
}

// GetShiftAssignments lists shift assignments filtered by vehicle_id,
// shift_id or date. Without filters it returns today's bookings.
func (h *Handler) GetShiftAssignments(w http.ResponseWriter, r *http.Request) {
	var (
		assignments []*ShiftAssignment
		err         error
	)
	query := r.URL.Query()
	switch {
	case query.Get("vehicle_id") != "":
		var vehicleID int64
		vehicleID, err = strconv.ParseInt(query.Get("vehicle_id"), 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid vehicle_id")
			return
		}
		assignments, err = h.Service.ShiftAssignmentsByVehicle(vehicleID)
	case query.Get("shift_id") != "":
		var shiftID int64
		shiftID, err = strconv.ParseInt(query.Get("shift_id"), 10, 64)
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "invalid shift_id")
			return
		}
		assignments, err = h.Service.ShiftAssignmentsByShift(shiftID)
	case query.Get("date") != "":
		var date time.Time
		date, err = time.Parse(DateLayout, query.Get("date"))
		if err != nil {
			h.WriteError(w, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
			return
		}
		assignments, err = h.Service.ShiftAssignmentsByDate(date)
	default:
		assignments, err = h.Service.TodayShiftAssignments()
	}
	if err != nil {
		h.Logger.Error("GetShiftAssignments: failed to list", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get assignments")
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{"assignments": assignments})
}

func (h *Handler) pathID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (h *Handler) writeAssignmentError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrAssignmentNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeAssignmentNotFound))
	case errors.Is(err, ErrVehicleNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeVehicleNotFound))
	case errors.Is(err, ErrDriverNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeDriverNotFound))
	case errors.Is(err, ErrShiftNotFound):
		h.WriteAppError(w, internal.NewNotFoundError(err.Error(), internal.ErrCodeShiftNotFound))
	case errors.Is(err, ErrAlreadyEnded):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeAssignmentEnded))
	case errors.Is(err, ErrAssignmentInUse):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeEntityInUse))
	case errors.Is(err, ErrVehicleBusy),
		errors.Is(err, ErrDriverBusy),
		errors.Is(err, ErrVehicleDateTaken),
		errors.Is(err, ErrShiftDateTaken),
		errors.Is(err, ErrDuplicateAssignment):
		h.WriteAppError(w, internal.NewConflictError(err.Error(), internal.ErrCodeDuplicateAssignment))
	default:
		h.WriteAppError(w, internal.NewInternalError("internal server error", err))
	}
}
