package vehicle

import "errors"

type CreateVehicleDTO struct {
	PlateNumber string  `json:"plate_number"`
	Brand       *string `json:"brand,omitempty"`
	Model       *string `json:"model,omitempty"`
	Capacity    int     `json:"capacity"`
	Status      string  `json:"status"`
	RouteID     int64   `json:"route_id"`
}

func (dto CreateVehicleDTO) Validate() error {
	if dto.PlateNumber == "" {
		return errors.New("plate_number is required")
	}
	if dto.Capacity <= 0 {
		return errors.New("capacity must be positive")
	}
	if dto.RouteID <= 0 {
		return errors.New("route_id is required")
	}
	if dto.Status != "" && !ValidStatus(dto.Status) {
		return errors.New("status must be Active, Inactive or Maintenance")
	}
	return nil
}

type UpdateVehicleDTO struct {
	PlateNumber *string `json:"plate_number,omitempty"`
	Brand       *string `json:"brand,omitempty"`
	Model       *string `json:"model,omitempty"`
	Capacity    *int    `json:"capacity,omitempty"`
	Status      *string `json:"status,omitempty"`
	RouteID     *int64  `json:"route_id,omitempty"`
}

func (dto UpdateVehicleDTO) Validate() error {
	if dto.PlateNumber != nil && *dto.PlateNumber == "" {
		return errors.New("plate_number cannot be empty")
	}
	if dto.Capacity != nil && *dto.Capacity <= 0 {
		return errors.New("capacity must be positive")
	}
	if dto.RouteID != nil && *dto.RouteID <= 0 {
		return errors.New("route_id must be positive")
	}
	if dto.Status != nil && !ValidStatus(*dto.Status) {
		return errors.New("status must be Active, Inactive or Maintenance")
	}
	return nil
}

// Domain errors
var (
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrDuplicatePlate  = errors.New("plate number already registered")
	ErrRouteNotFound   = errors.New("route not found")
	ErrVehicleInUse    = errors.New("vehicle has assignments or movement records and cannot be deleted")
)
