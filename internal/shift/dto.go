package shift

import "errors"

type CreateShiftDTO struct {
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Status    string `json:"status"`
}

type UpdateShiftDTO struct {
	Name      *string `json:"name,omitempty"`
	StartTime *string `json:"start_time,omitempty"`
	EndTime   *string `json:"end_time,omitempty"`
	Status    *string `json:"status,omitempty"`
}

func (dto CreateShiftDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if !ValidTimeOfDay(dto.StartTime) {
		return errors.New("start_time must be a valid HH:MM time")
	}
	if !ValidTimeOfDay(dto.EndTime) {
		return errors.New("end_time must be a valid HH:MM time")
	}
	if dto.StartTime == dto.EndTime {
		return errors.New("start_time and end_time must differ")
	}
	if dto.Status != "" && dto.Status != StatusActive && dto.Status != StatusInactive {
		return errors.New("status must be Active or Inactive")
	}
	return nil
}

func (dto UpdateShiftDTO) Validate() error {
	if dto.StartTime != nil && !ValidTimeOfDay(*dto.StartTime) {
		return errors.New("start_time must be a valid HH:MM time")
	}
	if dto.EndTime != nil && !ValidTimeOfDay(*dto.EndTime) {
		return errors.New("end_time must be a valid HH:MM time")
	}
	if dto.Status != nil && *dto.Status != StatusActive && *dto.Status != StatusInactive {
		return errors.New("status must be Active or Inactive")
	}
	return nil
}

// Domain errors
var (
	ErrShiftNotFound  = errors.New("shift not found")
	ErrDuplicateName  = errors.New("shift name already exists")
	ErrSameStartEnd   = errors.New("start_time and end_time must differ")
	ErrWindowOverlap  = errors.New("shift times overlap with an existing active shift")
	ErrShiftInUse     = errors.New("shift has active assignments and cannot be deleted")
	ErrNoCurrentShift = errors.New("no active shift covers the current time")
)
