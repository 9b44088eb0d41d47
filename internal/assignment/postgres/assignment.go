package postgres

import (
	"errors"
	"time"

	"github.com/frahmantamala/service-tracking/internal/assignment"
	assignmentDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/assignment"
	driverDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/driver"
	shiftDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/shift"
	trackingDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/tracking"
	vehicleDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/vehicle"
	"gorm.io/gorm"
)

// AssignmentRepository implements assignment.Repository using GORM.
type AssignmentRepository struct {
	db *gorm.DB
}

func NewAssignmentRepository(db *gorm.DB) assignment.Repository {
	return &AssignmentRepository{db: db}
}

// CreateDriverAssignment leans on the two partial unique indexes to close the
// race between the existence pre-check and the insert. Error translation
// drops the constraint name, so on a duplicate we re-check which side holds
// the open assignment before picking the conflict error.
func (r *AssignmentRepository) CreateDriverAssignment(a *assignment.DriverAssignment) error {
	record := assignment.ToDriverDataModel(a)
	if err := r.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return r.driverAssignmentConflict(a)
		}
		return err
	}
	a.ID = record.ID
	a.CreatedAt = record.CreatedAt
	return nil
}

func (r *AssignmentRepository) driverAssignmentConflict(a *assignment.DriverAssignment) error {
	busy, err := r.ActiveDriverAssignmentExistsForDriver(a.DriverID, time.Now())
	if err == nil && busy {
		return assignment.ErrDriverBusy
	}
	return assignment.ErrVehicleBusy
}

func (r *AssignmentRepository) GetDriverAssignmentByID(id int64) (*assignment.DriverAssignment, error) {
	var record assignmentDatamodel.DriverAssignment
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assignment.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment.FromDriverDataModel(&record), nil
}

func (r *AssignmentRepository) UpdateDriverAssignment(a *assignment.DriverAssignment) error {
	return r.db.Save(assignment.ToDriverDataModel(a)).Error
}

func (r *AssignmentRepository) ActiveDriverAssignmentExistsForVehicle(vehicleID int64, now time.Time) (bool, error) {
	return r.activeDriverAssignmentExists("vehicle_id", vehicleID, now)
}

func (r *AssignmentRepository) ActiveDriverAssignmentExistsForDriver(driverID int64, now time.Time) (bool, error) {
	return r.activeDriverAssignmentExists("driver_id", driverID, now)
}

func (r *AssignmentRepository) activeDriverAssignmentExists(column string, id int64, now time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&assignmentDatamodel.DriverAssignment{}).
		Where(column+" = ? AND (end_date IS NULL OR end_date > ?)", id, now).
		Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) DriverAssignmentsByVehicle(vehicleID int64) ([]*assignment.DriverAssignment, error) {
	var records []*assignmentDatamodel.DriverAssignment
	err := r.db.Where("vehicle_id = ?", vehicleID).
		Order("start_date DESC").
		Find(&records).Error
	return assignment.FromDriverDataModelSlice(records), err
}

func (r *AssignmentRepository) DriverAssignmentsByDriver(driverID int64) ([]*assignment.DriverAssignment, error) {
	var records []*assignmentDatamodel.DriverAssignment
	err := r.db.Where("driver_id = ?", driverID).
		Order("start_date DESC").
		Find(&records).Error
	return assignment.FromDriverDataModelSlice(records), err
}

func (r *AssignmentRepository) ActiveDriverAssignments(now time.Time) ([]*assignment.DriverAssignment, error) {
	var records []*assignmentDatamodel.DriverAssignment
	err := r.db.Where("end_date IS NULL OR end_date > ?", now).
		Order("start_date DESC").
		Find(&records).Error
	return assignment.FromDriverDataModelSlice(records), err
}

func (r *AssignmentRepository) CreateShiftAssignment(a *assignment.ShiftAssignment) error {
	record := assignment.ToShiftDataModel(a)
	if err := r.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return assignment.ErrDuplicateAssignment
		}
		return err
	}
	a.ID = record.ID
	a.CreatedAt = record.CreatedAt
	return nil
}

func (r *AssignmentRepository) GetShiftAssignmentByID(id int64) (*assignment.ShiftAssignment, error) {
	var record assignmentDatamodel.ShiftAssignment
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, assignment.ErrAssignmentNotFound
		}
		return nil, err
	}
	return assignment.FromShiftDataModel(&record), nil
}

func (r *AssignmentRepository) DeleteShiftAssignment(id int64) error {
	return r.db.Delete(&assignmentDatamodel.ShiftAssignment{}, id).Error
}

func (r *AssignmentRepository) VehicleAssignedOnDate(vehicleID int64, date time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&assignmentDatamodel.ShiftAssignment{}).
		Where("vehicle_id = ? AND assignment_date = ?", vehicleID, date).
		Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) ShiftAssignedOnDate(shiftID int64, date time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&assignmentDatamodel.ShiftAssignment{}).
		Where("shift_id = ? AND assignment_date = ?", shiftID, date).
		Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) ShiftAssignmentTripleExists(vehicleID, shiftID int64, date time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&assignmentDatamodel.ShiftAssignment{}).
		Where("vehicle_id = ? AND shift_id = ? AND assignment_date = ?", vehicleID, shiftID, date).
		Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) ShiftAssignmentsByVehicle(vehicleID int64) ([]*assignment.ShiftAssignment, error) {
	var records []*assignmentDatamodel.ShiftAssignment
	err := r.db.Where("vehicle_id = ?", vehicleID).
		Order("assignment_date DESC").
		Find(&records).Error
	return assignment.FromShiftDataModelSlice(records), err
}

func (r *AssignmentRepository) ShiftAssignmentsByShift(shiftID int64) ([]*assignment.ShiftAssignment, error) {
	var records []*assignmentDatamodel.ShiftAssignment
	err := r.db.Where("shift_id = ?", shiftID).
		Order("assignment_date DESC").
		Find(&records).Error
	return assignment.FromShiftDataModelSlice(records), err
}

func (r *AssignmentRepository) ShiftAssignmentsByDate(date time.Time) ([]*assignment.ShiftAssignment, error) {
	var records []*assignmentDatamodel.ShiftAssignment
	err := r.db.Where("assignment_date = ?", date).
		Order("vehicle_id ASC").
		Find(&records).Error
	return assignment.FromShiftDataModelSlice(records), err
}

func (r *AssignmentRepository) HasMovements(vehicleID, shiftID int64) (bool, error) {
	var count int64
	err := r.db.Model(&trackingDatamodel.Movement{}).
		Where("vehicle_id = ? AND shift_id = ?", vehicleID, shiftID).
		Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) VehicleExists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&vehicleDatamodel.Vehicle{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) DriverExists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&driverDatamodel.Driver{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *AssignmentRepository) ShiftExists(id int64) (bool, error) {
	var count int64
	err := r.db.Model(&shiftDatamodel.Shift{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}
