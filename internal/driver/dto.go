package driver

import "errors"

type CreateDriverDTO struct {
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone,omitempty"`
	Status   string  `json:"status"`
}

func (dto CreateDriverDTO) Validate() error {
	if dto.FullName == "" {
		return errors.New("full_name is required")
	}
	if dto.Status != "" && !ValidStatus(dto.Status) {
		return errors.New("status must be Active, OnLeave or Inactive")
	}
	return nil
}

type UpdateDriverDTO struct {
	FullName *string `json:"full_name,omitempty"`
	Phone    *string `json:"phone,omitempty"`
	Status   *string `json:"status,omitempty"`
}

func (dto UpdateDriverDTO) Validate() error {
	if dto.FullName != nil && *dto.FullName == "" {
		return errors.New("full_name cannot be empty")
	}
	if dto.Status != nil && !ValidStatus(*dto.Status) {
		return errors.New("status must be Active, OnLeave or Inactive")
	}
	return nil
}

// Domain errors
var (
	ErrDriverNotFound = errors.New("driver not found")
	ErrDriverInUse    = errors.New("driver has assignments and cannot be deleted")
)
