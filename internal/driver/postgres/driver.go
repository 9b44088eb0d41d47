package postgres

import (
	"errors"

	assignmentDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/assignment"
	driverDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/driver"
	"github.com/frahmantamala/service-tracking/internal/driver"
	"gorm.io/gorm"
)

// DriverRepository implements driver.Repository using GORM.
type DriverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) driver.Repository {
	return &DriverRepository{db: db}
}

func (r *DriverRepository) Create(d *driver.Driver) error {
	record := driver.ToDataModel(d)
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	d.ID = record.ID
	d.CreatedAt = record.CreatedAt
	return nil
}

func (r *DriverRepository) GetByID(id int64) (*driver.Driver, error) {
	var record driverDatamodel.Driver
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, driver.ErrDriverNotFound
		}
		return nil, err
	}
	return driver.FromDataModel(&record), nil
}

func (r *DriverRepository) GetAll() ([]*driver.Driver, error) {
	var records []*driverDatamodel.Driver
	err := r.db.Order("full_name ASC").Find(&records).Error
	return driver.FromDataModelSlice(records), err
}

func (r *DriverRepository) GetByStatus(status string) ([]*driver.Driver, error) {
	var records []*driverDatamodel.Driver
	err := r.db.Where("status = ?", status).
		Order("full_name ASC").
		Find(&records).Error
	return driver.FromDataModelSlice(records), err
}

func (r *DriverRepository) Update(d *driver.Driver) error {
	return r.db.Save(driver.ToDataModel(d)).Error
}

func (r *DriverRepository) Delete(id int64) error {
	return r.db.Delete(&driverDatamodel.Driver{}, id).Error
}

func (r *DriverRepository) HasAssignments(driverID int64) (bool, error) {
	var count int64
	err := r.db.Model(&assignmentDatamodel.DriverAssignment{}).
		Where("driver_id = ?", driverID).
		Count(&count).Error
	return count > 0, err
}
