package vehicle

import (
	"time"

	vehicleDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/vehicle"
)

const (
	StatusActive      = "Active"
	StatusInactive    = "Inactive"
	StatusMaintenance = "Maintenance"
)

type Vehicle struct {
	ID          int64      `json:"id"`
	PlateNumber string     `json:"plate_number"`
	Brand       *string    `json:"brand,omitempty"`
	Model       *string    `json:"model,omitempty"`
	Capacity    int        `json:"capacity"`
	Status      string     `json:"status"`
	RouteID     int64      `json:"route_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (v *Vehicle) IsActive() bool {
	return v.Status == StatusActive
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusInactive, StatusMaintenance:
		return true
	}
	return false
}

func ToDataModel(v *Vehicle) *vehicleDatamodel.Vehicle {
	return &vehicleDatamodel.Vehicle{
		ID:          v.ID,
		PlateNumber: v.PlateNumber,
		Brand:       v.Brand,
		Model:       v.Model,
		Capacity:    v.Capacity,
		Status:      v.Status,
		RouteID:     v.RouteID,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func FromDataModel(v *vehicleDatamodel.Vehicle) *Vehicle {
	return &Vehicle{
		ID:          v.ID,
		PlateNumber: v.PlateNumber,
		Brand:       v.Brand,
		Model:       v.Model,
		Capacity:    v.Capacity,
		Status:      v.Status,
		RouteID:     v.RouteID,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   v.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*vehicleDatamodel.Vehicle) []*Vehicle {
	result := make([]*Vehicle, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
