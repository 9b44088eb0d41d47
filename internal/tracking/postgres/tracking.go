package postgres

import (
	"errors"
	"time"

	shiftDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/shift"
	trackingDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/tracking"
	vehicleDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/vehicle"
	"github.com/frahmantamala/service-tracking/internal/tracking"
	"gorm.io/gorm"
)

// TrackingRepository implements tracking.Repository using GORM.
type TrackingRepository struct {
	db *gorm.DB
}

func NewTrackingRepository(db *gorm.DB) tracking.Repository {
	return &TrackingRepository{db: db}
}

// movementLockClass namespaces the per-vehicle advisory locks taken while
// appending to the movement log.
const movementLockClass = 1

// CreateMovement re-checks the alternation rule inside a transaction holding
// a per-vehicle advisory lock, so two concurrent appends for the same vehicle
// serialize and the loser sees the winner's record. The service-level check
// alone is a race window between read and insert.
func (r *TrackingRepository) CreateMovement(m *tracking.Movement) error {
	record := tracking.ToDataModel(m)
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", movementLockClass, m.VehicleID).Error; err != nil {
			return err
		}

		var latest trackingDatamodel.Movement
		err := tx.Where("vehicle_id = ?", m.VehicleID).
			Order("tracked_at DESC, id DESC").
			First(&latest).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		var latestMovement *tracking.Movement
		if err == nil {
			latestMovement = tracking.FromDataModel(&latest)
		}

		state := tracking.StateFromLatest(latestMovement)
		if m.MovementType == tracking.MovementEntry && state == tracking.StateInside {
			return tracking.ErrVehicleAlreadyInside
		}
		if m.MovementType == tracking.MovementExit && state != tracking.StateInside {
			return tracking.ErrVehicleNotInside
		}

		return tx.Create(record).Error
	})
	if err != nil {
		return err
	}
	m.ID = record.ID
	m.CreatedAt = record.CreatedAt
	return nil
}

func (r *TrackingRepository) GetMovementByID(id int64) (*tracking.Movement, error) {
	var record trackingDatamodel.Movement
	err := r.db.Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, tracking.ErrMovementNotFound
		}
		return nil, err
	}
	return tracking.FromDataModel(&record), nil
}

func (r *TrackingRepository) DeleteMovement(id int64) error {
	return r.db.Delete(&trackingDatamodel.Movement{}, id).Error
}

// LatestMovementForVehicle orders by tracked_at with id as tiebreak so two
// records sharing a timestamp resolve deterministically.
func (r *TrackingRepository) LatestMovementForVehicle(vehicleID int64) (*tracking.Movement, error) {
	var record trackingDatamodel.Movement
	err := r.db.Where("vehicle_id = ?", vehicleID).
		Order("tracked_at DESC, id DESC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return tracking.FromDataModel(&record), nil
}

func (r *TrackingRepository) LatestMovementsPerVehicle() ([]*tracking.Movement, error) {
	var records []*trackingDatamodel.Movement
	err := r.db.Raw(`
		SELECT DISTINCT ON (vehicle_id) *
		FROM movements
		ORDER BY vehicle_id, tracked_at DESC, id DESC
	`).Scan(&records).Error
	return tracking.FromDataModelSlice(records), err
}

func (r *TrackingRepository) MovementsByVehicle(vehicleID int64, limit int) ([]*tracking.Movement, error) {
	var records []*trackingDatamodel.Movement
	err := r.db.Where("vehicle_id = ?", vehicleID).
		Order("tracked_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	return tracking.FromDataModelSlice(records), err
}

func (r *TrackingRepository) MovementsByShift(shiftID int64, limit int) ([]*tracking.Movement, error) {
	var records []*trackingDatamodel.Movement
	err := r.db.Where("shift_id = ?", shiftID).
		Order("tracked_at DESC, id DESC").
		Limit(limit).
		Find(&records).Error
	return tracking.FromDataModelSlice(records), err
}

func (r *TrackingRepository) MovementsBetween(from, to time.Time) ([]*tracking.Movement, error) {
	var records []*trackingDatamodel.Movement
	err := r.db.Where("tracked_at >= ? AND tracked_at < ?", from, to).
		Order("tracked_at ASC, id ASC").
		Find(&records).Error
	return tracking.FromDataModelSlice(records), err
}

func (r *TrackingRepository) VehicleStatus(id int64) (string, error) {
	var record vehicleDatamodel.Vehicle
	err := r.db.Select("status").Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", tracking.ErrVehicleNotFound
		}
		return "", err
	}
	return record.Status, nil
}

func (r *TrackingRepository) ShiftStatus(id int64) (string, error) {
	var record shiftDatamodel.Shift
	err := r.db.Select("status").Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", tracking.ErrShiftNotFound
		}
		return "", err
	}
	return record.Status, nil
}
