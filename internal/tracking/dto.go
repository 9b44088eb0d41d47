package tracking

import "errors"

type RecordMovementDTO struct {
	VehicleID int64 `json:"vehicle_id"`
	ShiftID   int64 `json:"shift_id"`
}

func (dto RecordMovementDTO) Validate() error {
	if dto.VehicleID <= 0 {
		return errors.New("vehicle_id is required")
	}
	if dto.ShiftID <= 0 {
		return errors.New("shift_id is required")
	}
	return nil
}

// Domain errors
var (
	ErrMovementNotFound     = errors.New("movement not found")
	ErrVehicleNotFound      = errors.New("vehicle not found")
	ErrShiftNotFound        = errors.New("shift not found")
	ErrVehicleNotActive     = errors.New("vehicle is not active")
	ErrShiftNotActive       = errors.New("shift is not active")
	ErrVehicleAlreadyInside = errors.New("vehicle is already inside")
	ErrVehicleNotInside     = errors.New("vehicle is not inside")
)
