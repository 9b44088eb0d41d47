package assignment

import (
	"errors"
	"time"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

type CreateDriverAssignmentDTO struct {
	VehicleID int64  `json:"vehicle_id"`
	DriverID  int64  `json:"driver_id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
}

func (dto CreateDriverAssignmentDTO) Validate() error {
	if dto.VehicleID <= 0 {
		return errors.New("vehicle_id is required")
	}
	if dto.DriverID <= 0 {
		return errors.New("driver_id is required")
	}
	if dto.StartDate != "" {
		if _, err := time.Parse(DateLayout, dto.StartDate); err != nil {
			return errors.New("start_date must be formatted as YYYY-MM-DD")
		}
	}
	if dto.EndDate != "" {
		end, err := time.Parse(DateLayout, dto.EndDate)
		if err != nil {
			return errors.New("end_date must be formatted as YYYY-MM-DD")
		}
		if end.Before(dto.ParsedStartDate()) {
			return errors.New("end_date must not be before start_date")
		}
	}
	return nil
}

// ParsedStartDate returns the start date, defaulting to today when omitted.
func (dto CreateDriverAssignmentDTO) ParsedStartDate() time.Time {
	if dto.StartDate == "" {
		return TruncateToDay(time.Now())
	}
	t, _ := time.Parse(DateLayout, dto.StartDate)
	return t
}

// ParsedEndDate returns the end date, or nil for an open assignment.
func (dto CreateDriverAssignmentDTO) ParsedEndDate() *time.Time {
	if dto.EndDate == "" {
		return nil
	}
	t, _ := time.Parse(DateLayout, dto.EndDate)
	return &t
}

type UpdateDriverAssignmentDTO struct {
	VehicleID *int64  `json:"vehicle_id,omitempty"`
	DriverID  *int64  `json:"driver_id,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

func (dto UpdateDriverAssignmentDTO) Validate() error {
	if dto.VehicleID != nil && *dto.VehicleID <= 0 {
		return errors.New("vehicle_id must be positive")
	}
	if dto.DriverID != nil && *dto.DriverID <= 0 {
		return errors.New("driver_id must be positive")
	}
	if dto.StartDate != nil {
		if _, err := time.Parse(DateLayout, *dto.StartDate); err != nil {
			return errors.New("start_date must be formatted as YYYY-MM-DD")
		}
	}
	if dto.EndDate != nil && *dto.EndDate != "" {
		if _, err := time.Parse(DateLayout, *dto.EndDate); err != nil {
			return errors.New("end_date must be formatted as YYYY-MM-DD")
		}
	}
	return nil
}

type CreateShiftAssignmentDTO struct {
	VehicleID      int64  `json:"vehicle_id"`
	ShiftID        int64  `json:"shift_id"`
	AssignmentDate string `json:"assignment_date"`
}

func (dto CreateShiftAssignmentDTO) Validate() error {
	if dto.VehicleID <= 0 {
		return errors.New("vehicle_id is required")
	}
	if dto.ShiftID <= 0 {
		return errors.New("shift_id is required")
	}
	if dto.AssignmentDate == "" {
		return errors.New("assignment_date is required")
	}
	if _, err := time.Parse(DateLayout, dto.AssignmentDate); err != nil {
		return errors.New("assignment_date must be formatted as YYYY-MM-DD")
	}
	return nil
}

func (dto CreateShiftAssignmentDTO) ParsedDate() time.Time {
	t, _ := time.Parse(DateLayout, dto.AssignmentDate)
	return t
}

// BulkShiftAssignmentDTO fans (vehicle, shift) pairs out over a set of dates.
type BulkShiftAssignmentDTO struct {
	Pairs []ShiftAssignmentPair `json:"pairs"`
	Dates []string              `json:"dates"`
}

type ShiftAssignmentPair struct {
	VehicleID int64 `json:"vehicle_id"`
	ShiftID   int64 `json:"shift_id"`
}

func (dto BulkShiftAssignmentDTO) Validate() error {
	if len(dto.Pairs) == 0 {
		return errors.New("at least one vehicle/shift pair is required")
	}
	if len(dto.Dates) == 0 {
		return errors.New("at least one date is required")
	}
	for _, pair := range dto.Pairs {
		if pair.VehicleID <= 0 || pair.ShiftID <= 0 {
			return errors.New("pairs must carry positive vehicle_id and shift_id")
		}
	}
	for _, date := range dto.Dates {
		if _, err := time.Parse(DateLayout, date); err != nil {
			return errors.New("dates must be formatted as YYYY-MM-DD")
		}
	}
	return nil
}

// BulkItemError reports one combination that could not be created. The rest
// of the batch is unaffected.
type BulkItemError struct {
	VehicleID int64  `json:"vehicle_id"`
	ShiftID   int64  `json:"shift_id"`
	Date      string `json:"date"`
	Message   string `json:"message"`
}

type BulkShiftAssignmentResult struct {
	CreatedCount int             `json:"created_count"`
	Errors       []BulkItemError `json:"errors,omitempty"`
}

// Domain errors
var (
	ErrAssignmentNotFound  = errors.New("assignment not found")
	ErrVehicleNotFound     = errors.New("vehicle not found")
	ErrDriverNotFound      = errors.New("driver not found")
	ErrShiftNotFound       = errors.New("shift not found")
	ErrVehicleBusy         = errors.New("vehicle already has an active driver assignment")
	ErrDriverBusy          = errors.New("driver already has an active vehicle assignment")
	ErrAlreadyEnded        = errors.New("assignment has already ended")
	ErrVehicleDateTaken    = errors.New("vehicle is already assigned to a shift on this date")
	ErrShiftDateTaken      = errors.New("shift is already assigned to a vehicle on this date")
	ErrDuplicateAssignment = errors.New("assignment already exists for this vehicle, shift and date")
	ErrAssignmentInUse     = errors.New("assignment has movement records and cannot be deleted")
)
