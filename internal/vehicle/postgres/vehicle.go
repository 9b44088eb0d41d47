package postgres

import (
	"errors"

	assignmentDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/assignment"
	routeDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/route"
	trackingDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/tracking"
	vehicleDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/vehicle"
	"github.com/frahmantamala/service-tracking/internal/vehicle"
	"gorm.io/gorm"
)

// VehicleRepository implements vehicle.Repository using GORM.
type VehicleRepository struct {
	db *gorm.DB
}

func NewVehicleRepository(db *gorm.DB) vehicle.Repository {
	return &VehicleRepository{db: db}
}

func (r *VehicleRepository) Create(v *vehicle.Vehicle) error {
	record := vehicle.ToDataModel(v)
	if err := r.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return vehicle.ErrDuplicatePlate
		}
		return err
	}
	v.ID = record.ID
	v.CreatedAt = record.CreatedAt
	return nil
}

func (r *VehicleRepository) GetByID(id int64) (*vehicle.Vehicle, error) {
	var record vehicleDatamodel.Vehicle
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, vehicle.ErrVehicleNotFound
		}
		return nil, err
	}
	return vehicle.FromDataModel(&record), nil
}

func (r *VehicleRepository) GetAll() ([]*vehicle.Vehicle, error) {
	var records []*vehicleDatamodel.Vehicle
	err := r.db.Order("plate_number ASC").Find(&records).Error
	return vehicle.FromDataModelSlice(records), err
}

func (r *VehicleRepository) GetByStatus(status string) ([]*vehicle.Vehicle, error) {
	var records []*vehicleDatamodel.Vehicle
	err := r.db.Where("status = ?", status).
		Order("plate_number ASC").
		Find(&records).Error
	return vehicle.FromDataModelSlice(records), err
}

func (r *VehicleRepository) GetByRoute(routeID int64) ([]*vehicle.Vehicle, error) {
	var records []*vehicleDatamodel.Vehicle
	err := r.db.Where("route_id = ?", routeID).
		Order("plate_number ASC").
		Find(&records).Error
	return vehicle.FromDataModelSlice(records), err
}

func (r *VehicleRepository) PlateExists(plate string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.Model(&vehicleDatamodel.Vehicle{}).Where("plate_number = ?", plate)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *VehicleRepository) RouteExists(routeID int64) (bool, error) {
	var count int64
	err := r.db.Model(&routeDatamodel.Route{}).Where("id = ?", routeID).Count(&count).Error
	return count > 0, err
}

func (r *VehicleRepository) Update(v *vehicle.Vehicle) error {
	return r.db.Save(vehicle.ToDataModel(v)).Error
}

func (r *VehicleRepository) Delete(id int64) error {
	return r.db.Delete(&vehicleDatamodel.Vehicle{}, id).Error
}

func (r *VehicleRepository) HasAssignmentsOrMovements(vehicleID int64) (bool, error) {
	var count int64
	err := r.db.Model(&assignmentDatamodel.DriverAssignment{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&count).Error
	if err != nil || count > 0 {
		return count > 0, err
	}

	err = r.db.Model(&assignmentDatamodel.ShiftAssignment{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&count).Error
	if err != nil || count > 0 {
		return count > 0, err
	}

	err = r.db.Model(&trackingDatamodel.Movement{}).
		Where("vehicle_id = ?", vehicleID).
		Count(&count).Error
	return count > 0, err
}
