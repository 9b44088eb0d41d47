package postgres

import (
	"errors"
	"time"

	assignmentDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/assignment"
	shiftDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/shift"
	"github.com/frahmantamala/service-tracking/internal/shift"
	"gorm.io/gorm"
)

// ShiftRepository implements the shift.Repository interface using GORM.
type ShiftRepository struct {
	db *gorm.DB
}

func NewShiftRepository(db *gorm.DB) shift.Repository {
	return &ShiftRepository{db: db}
}

func (r *ShiftRepository) Create(s *shift.Shift) error {
	record := shift.ToDataModel(s)
	if err := r.db.Create(record).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shift.ErrDuplicateName
		}
		return err
	}
	s.ID = record.ID
	s.CreatedAt = record.CreatedAt
	return nil
}

func (r *ShiftRepository) GetByID(id int64) (*shift.Shift, error) {
	var record shiftDatamodel.Shift
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shift.ErrShiftNotFound
		}
		return nil, err
	}
	return shift.FromDataModel(&record), nil
}

func (r *ShiftRepository) GetAll() ([]*shift.Shift, error) {
	var records []*shiftDatamodel.Shift
	err := r.db.Order("start_time ASC").Find(&records).Error
	return shift.FromDataModelSlice(records), err
}

func (r *ShiftRepository) GetActive() ([]*shift.Shift, error) {
	var records []*shiftDatamodel.Shift
	err := r.db.Where("status = ?", shift.StatusActive).
		Order("start_time ASC").
		Find(&records).Error
	return shift.FromDataModelSlice(records), err
}

func (r *ShiftRepository) NameExists(name string, excludeID int64) (bool, error) {
	var count int64
	q := r.db.Model(&shiftDatamodel.Shift{}).Where("name = ?", name)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *ShiftRepository) ActiveShiftsExcept(excludeID int64) ([]*shift.Shift, error) {
	var records []*shiftDatamodel.Shift
	q := r.db.Where("status = ?", shift.StatusActive)
	if excludeID > 0 {
		q = q.Where("id <> ?", excludeID)
	}
	err := q.Find(&records).Error
	return shift.FromDataModelSlice(records), err
}

func (r *ShiftRepository) Update(s *shift.Shift) error {
	return r.db.Save(shift.ToDataModel(s)).Error
}

func (r *ShiftRepository) Delete(id int64) error {
	return r.db.Delete(&shiftDatamodel.Shift{}, id).Error
}

func (r *ShiftRepository) HasAssignmentsOnOrAfter(shiftID int64, date time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&assignmentDatamodel.ShiftAssignment{}).
		Where("shift_id = ? AND assignment_date >= ?", shiftID, date).
		Count(&count).Error
	return count > 0, err
}
