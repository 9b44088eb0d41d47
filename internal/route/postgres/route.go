package postgres

import (
	"errors"

	routeDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/route"
	vehicleDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/vehicle"
	"github.com/frahmantamala/service-tracking/internal/route"
	"gorm.io/gorm"
)

// RouteRepository implements route.Repository using GORM.
type RouteRepository struct {
	db *gorm.DB
}

func NewRouteRepository(db *gorm.DB) route.Repository {
	return &RouteRepository{db: db}
}

func (r *RouteRepository) Create(rt *route.Route) error {
	record := route.ToDataModel(rt)
	if err := r.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return route.ErrDuplicateName
		}
		return err
	}
	rt.ID = record.ID
	rt.CreatedAt = record.CreatedAt
	return nil
}

func (r *RouteRepository) GetByID(id int64) (*route.Route, error) {
	var record routeDatamodel.Route
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, route.ErrRouteNotFound
		}
		return nil, err
	}
	return route.FromDataModel(&record), nil
}

func (r *RouteRepository) GetAll() ([]*route.Route, error) {
	var records []*routeDatamodel.Route
	err := r.db.Order("name ASC").Find(&records).Error
	return route.FromDataModelSlice(records), err
}

func (r *RouteRepository) NameExists(name string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.Model(&routeDatamodel.Route{}).Where("name = ?", name)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *RouteRepository) Update(rt *route.Route) error {
	return r.db.Save(route.ToDataModel(rt)).Error
}

func (r *RouteRepository) Delete(id int64) error {
	return r.db.Delete(&routeDatamodel.Route{}, id).Error
}

func (r *RouteRepository) Statistics(routeID int64) (*route.RouteStatistics, error) {
	var stats route.RouteStatistics
	err := r.db.Raw(`
		SELECT COUNT(*) AS vehicle_count,
		       COUNT(*) FILTER (WHERE status = 'Active') AS active_vehicles,
		       COALESCE(SUM(capacity), 0) AS total_capacity
		FROM vehicles
		WHERE route_id = ?
	`, routeID).Scan(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *RouteRepository) HasVehicles(routeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&vehicleDatamodel.Vehicle{}).
		Where("route_id = ?", routeID).
		Count(&count).Error
	return count > 0, err
}
