package route

import (
	"time"

	routeDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/route"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Route struct {
	ID                   int64      `json:"id"`
	Name                 string     `json:"name"`
	Description          *string    `json:"description,omitempty"`
	DistanceKM           *float64   `json:"distance_km,omitempty"`
	EstimatedDurationMin *int       `json:"estimated_duration_min,omitempty"`
	Status               string     `json:"status"`
	CreatedAt            time.Time  `json:"created_at"`
	UpdatedAt            *time.Time `json:"updated_at,omitempty"`
}

// RouteStatistics aggregates the vehicle fleet currently serving a route.
type RouteStatistics struct {
	RouteID        int64  `json:"route_id"`
	RouteName      string `json:"route_name"`
	VehicleCount   int64  `json:"vehicle_count"`
	ActiveVehicles int64  `json:"active_vehicles"`
	TotalCapacity  int64  `json:"total_capacity"`
}

func ToDataModel(r *Route) *routeDatamodel.Route {
	return &routeDatamodel.Route{
		ID:                   r.ID,
		Name:                 r.Name,
		Description:          r.Description,
		DistanceKM:           r.DistanceKM,
		EstimatedDurationMin: r.EstimatedDurationMin,
		Status:               r.Status,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func FromDataModel(r *routeDatamodel.Route) *Route {
	return &Route{
		ID:                   r.ID,
		Name:                 r.Name,
		Description:          r.Description,
		DistanceKM:           r.DistanceKM,
		EstimatedDurationMin: r.EstimatedDurationMin,
		Status:               r.Status,
		CreatedAt:            r.CreatedAt,
		UpdatedAt:            r.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*routeDatamodel.Route) []*Route {
	result := make([]*Route, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
