package route

import "errors"

type CreateRouteDTO struct {
	Name                 string   `json:"name"`
	Description          *string  `json:"description,omitempty"`
	DistanceKM           *float64 `json:"distance_km,omitempty"`
	EstimatedDurationMin *int     `json:"estimated_duration_min,omitempty"`
	Status               string   `json:"status"`
}

func (dto CreateRouteDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.DistanceKM != nil && *dto.DistanceKM <= 0 {
		return errors.New("distance_km must be positive")
	}
	if dto.EstimatedDurationMin != nil && *dto.EstimatedDurationMin <= 0 {
		return errors.New("estimated_duration_min must be positive")
	}
	if dto.Status != "" && dto.Status != StatusActive && dto.Status != StatusInactive {
		return errors.New("status must be Active or Inactive")
	}
	return nil
}

type UpdateRouteDTO struct {
	Name                 *string  `json:"name,omitempty"`
	Description          *string  `json:"description,omitempty"`
	DistanceKM           *float64 `json:"distance_km,omitempty"`
	EstimatedDurationMin *int     `json:"estimated_duration_min,omitempty"`
	Status               *string  `json:"status,omitempty"`
}

func (dto UpdateRouteDTO) Validate() error {
	if dto.Name != nil && *dto.Name == "" {
		return errors.New("name cannot be empty")
	}
	if dto.DistanceKM != nil && *dto.DistanceKM <= 0 {
		return errors.New("distance_km must be positive")
	}
	if dto.EstimatedDurationMin != nil && *dto.EstimatedDurationMin <= 0 {
		return errors.New("estimated_duration_min must be positive")
	}
	if dto.Status != nil && *dto.Status != StatusActive && *dto.Status != StatusInactive {
		return errors.New("status must be Active or Inactive")
	}
	return nil
}

// Domain errors
var (
	ErrRouteNotFound = errors.New("route not found")
	ErrDuplicateName = errors.New("route name already exists")
	ErrRouteInUse    = errors.New("route has vehicles and cannot be deleted")
)
