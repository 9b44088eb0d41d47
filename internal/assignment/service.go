package assignment

import (
	"fmt"
	"log/slog"
	"time"
)

// Repository defines the data access methods for both assignment kinds and
// the referenced-entity existence checks the service needs.
type Repository interface {
	CreateDriverAssignment(a *DriverAssignment) error
	GetDriverAssignmentByID(id int64) (*DriverAssignment, error)
	UpdateDriverAssignment(a *DriverAssignment) error
	ActiveDriverAssignmentExistsForVehicle(vehicleID int64, now time.Time) (bool, error)
	ActiveDriverAssignmentExistsForDriver(driverID int64, now time.Time) (bool, error)
	DriverAssignmentsByVehicle(vehicleID int64) ([]*DriverAssignment, error)
	DriverAssignmentsByDriver(driverID int64) ([]*DriverAssignment, error)
	ActiveDriverAssignments(now time.Time) ([]*DriverAssignment, error)

	CreateShiftAssignment(a *ShiftAssignment) error
	GetShiftAssignmentByID(id int64) (*ShiftAssignment, error)
	DeleteShiftAssignment(id int64) error
	VehicleAssignedOnDate(vehicleID int64, date time.Time) (bool, error)
	ShiftAssignedOnDate(shiftID int64, date time.Time) (bool, error)
	ShiftAssignmentTripleExists(vehicleID, shiftID int64, date time.Time) (bool, error)
	ShiftAssignmentsByVehicle(vehicleID int64) ([]*ShiftAssignment, error)
	ShiftAssignmentsByShift(shiftID int64) ([]*ShiftAssignment, error)
	ShiftAssignmentsByDate(date time.Time) ([]*ShiftAssignment, error)
	HasMovements(vehicleID, shiftID int64) (bool, error)

	VehicleExists(id int64) (bool, error)
	DriverExists(id int64) (bool, error)
	ShiftExists(id int64) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateDriverAssignment opens an assignment after checking that neither the
// vehicle nor the driver already has an active one. Active means the end date
// is unset or still in the future.
func (s *Service) CreateDriverAssignment(dto CreateDriverAssignmentDTO) (*DriverAssignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.requireVehicle(dto.VehicleID); err != nil {
		return nil, err
	}
	exists, err := s.repo.DriverExists(dto.DriverID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrDriverNotFound
	}

	now := time.Now()
	busy, err := s.repo.ActiveDriverAssignmentExistsForVehicle(dto.VehicleID, now)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, ErrVehicleBusy
	}
	busy, err = s.repo.ActiveDriverAssignmentExistsForDriver(dto.DriverID, now)
	if err != nil {
		return nil, err
	}
	if busy {
		return nil, ErrDriverBusy
	}

	a := &DriverAssignment{
		VehicleID: dto.VehicleID,
		DriverID:  dto.DriverID,
		StartDate: dto.ParsedStartDate(),
		EndDate:   dto.ParsedEndDate(),
		CreatedAt: now,
	}
	if err := s.repo.CreateDriverAssignment(a); err != nil {
		s.logger.Error("failed to create driver assignment",
			"vehicle_id", dto.VehicleID, "driver_id", dto.DriverID, "error", err)
		return nil, err
	}

	s.logger.Info("driver assignment created",
		"assignment_id", a.ID, "vehicle_id", a.VehicleID, "driver_id", a.DriverID)
	return a, nil
}

// EndDriverAssignment closes an open assignment by stamping the end date.
func (s *Service) EndDriverAssignment(id int64) (*DriverAssignment, error) {
	a, err := s.repo.GetDriverAssignmentByID(id)
	if err != nil {
		return nil, ErrAssignmentNotFound
	}

	now := time.Now()
	if a.Ended(now) {
		return nil, ErrAlreadyEnded
	}

	a.EndDate = &now
	if err := s.repo.UpdateDriverAssignment(a); err != nil {
		s.logger.Error("failed to end driver assignment", "assignment_id", id, "error", err)
		return nil, err
	}

	s.logger.Info("driver assignment ended", "assignment_id", id)
	return a, nil
}

func (s *Service) UpdateDriverAssignment(id int64, dto UpdateDriverAssignmentDTO) (*DriverAssignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	a, err := s.repo.GetDriverAssignmentByID(id)
	if err != nil {
		return nil, ErrAssignmentNotFound
	}

	if dto.VehicleID != nil && *dto.VehicleID != a.VehicleID {
		if err := s.requireVehicle(*dto.VehicleID); err != nil {
			return nil, err
		}
		a.VehicleID = *dto.VehicleID
	}
	if dto.DriverID != nil && *dto.DriverID != a.DriverID {
		exists, err := s.repo.DriverExists(*dto.DriverID)
		if err != nil {
			return nil, err
		}
		if !exists {
			return nil, ErrDriverNotFound
		}
		a.DriverID = *dto.DriverID
	}
	if dto.StartDate != nil {
		start, _ := time.Parse(DateLayout, *dto.StartDate)
		a.StartDate = start
	}
	if dto.EndDate != nil {
		if *dto.EndDate == "" {
			a.EndDate = nil
		} else {
			end, _ := time.Parse(DateLayout, *dto.EndDate)
			a.EndDate = &end
		}
	}

	if err := s.repo.UpdateDriverAssignment(a); err != nil {
		s.logger.Error("failed to update driver assignment", "assignment_id", id, "error", err)
		return nil, err
	}
	return a, nil
}

func (s *Service) GetDriverAssignment(id int64) (*DriverAssignment, error) {
	a, err := s.repo.GetDriverAssignmentByID(id)
	if err != nil {
		return nil, ErrAssignmentNotFound
	}
	return a, nil
}

func (s *Service) DriverAssignmentsByVehicle(vehicleID int64) ([]*DriverAssignment, error) {
	return s.repo.DriverAssignmentsByVehicle(vehicleID)
}

func (s *Service) DriverAssignmentsByDriver(driverID int64) ([]*DriverAssignment, error) {
	return s.repo.DriverAssignmentsByDriver(driverID)
}

func (s *Service) ActiveDriverAssignments() ([]*DriverAssignment, error) {
	return s.repo.ActiveDriverAssignments(time.Now())
}

// CreateShiftAssignment books a vehicle onto a shift for one day. Both the
// (vehicle, date) and (shift, date) slots must be free.
func (s *Service) CreateShiftAssignment(dto CreateShiftAssignmentDTO) (*ShiftAssignment, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if err := s.requireVehicle(dto.VehicleID); err != nil {
		return nil, err
	}
	exists, err := s.repo.ShiftExists(dto.ShiftID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrShiftNotFound
	}

	date := TruncateToDay(dto.ParsedDate())
	taken, err := s.repo.VehicleAssignedOnDate(dto.VehicleID, date)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrVehicleDateTaken
	}
	taken, err = s.repo.ShiftAssignedOnDate(dto.ShiftID, date)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrShiftDateTaken
	}

	a := &ShiftAssignment{
		VehicleID:      dto.VehicleID,
		ShiftID:        dto.ShiftID,
		AssignmentDate: date,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.CreateShiftAssignment(a); err != nil {
		s.logger.Error("failed to create shift assignment",
			"vehicle_id", dto.VehicleID, "shift_id", dto.ShiftID, "error", err)
		return nil, err
	}

	s.logger.Info("shift assignment created",
		"assignment_id", a.ID, "vehicle_id", a.VehicleID, "shift_id", a.ShiftID)
	return a, nil
}

// CreateBulkShiftAssignments attempts every (pair, date) combination
// independently. A combination whose exact triple already exists produces a
// per-item error; the batch never aborts.
func (s *Service) CreateBulkShiftAssignments(dto BulkShiftAssignmentDTO) (*BulkShiftAssignmentResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	result := &BulkShiftAssignmentResult{}
	for _, rawDate := range dto.Dates {
		parsed, _ := time.Parse(DateLayout, rawDate)
		date := TruncateToDay(parsed)

		for _, pair := range dto.Pairs {
			if err := s.createBulkItem(pair, date); err != nil {
				result.Errors = append(result.Errors, BulkItemError{
					VehicleID: pair.VehicleID,
					ShiftID:   pair.ShiftID,
					Date:      rawDate,
					Message:   err.Error(),
				})
				continue
			}
			result.CreatedCount++
		}
	}

	s.logger.Info("bulk shift assignments processed",
		"created", result.CreatedCount, "failed", len(result.Errors))
	return result, nil
}

func (s *Service) createBulkItem(pair ShiftAssignmentPair, date time.Time) error {
	exists, err := s.repo.VehicleExists(pair.VehicleID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrVehicleNotFound
	}
	exists, err = s.repo.ShiftExists(pair.ShiftID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrShiftNotFound
	}

	taken, err := s.repo.ShiftAssignmentTripleExists(pair.VehicleID, pair.ShiftID, date)
	if err != nil {
		return err
	}
	if taken {
		return ErrDuplicateAssignment
	}

	a := &ShiftAssignment{
		VehicleID:      pair.VehicleID,
		ShiftID:        pair.ShiftID,
		AssignmentDate: date,
		CreatedAt:      time.Now(),
	}
	if err := s.repo.CreateShiftAssignment(a); err != nil {
		return fmt.Errorf("create shift assignment: %w", err)
	}
	return nil
}

func (s *Service) GetShiftAssignment(id int64) (*ShiftAssignment, error) {
	a, err := s.repo.GetShiftAssignmentByID(id)
	if err != nil {
		return nil, ErrAssignmentNotFound
	}
	return a, nil
}

// DeleteShiftAssignment refuses to remove a booking that already has movement
// records for the same vehicle and shift.
func (s *Service) DeleteShiftAssignment(id int64) error {
	a, err := s.repo.GetShiftAssignmentByID(id)
	if err != nil {
		return ErrAssignmentNotFound
	}

	inUse, err := s.repo.HasMovements(a.VehicleID, a.ShiftID)
	if err != nil {
		return err
	}
	if inUse {
		return ErrAssignmentInUse
	}

	if err := s.repo.DeleteShiftAssignment(id); err != nil {
		s.logger.Error("failed to delete shift assignment", "assignment_id", id, "error", err)
		return err
	}

	s.logger.Info("shift assignment deleted", "assignment_id", id)
	return nil
}

func (s *Service) ShiftAssignmentsByVehicle(vehicleID int64) ([]*ShiftAssignment, error) {
	return s.repo.ShiftAssignmentsByVehicle(vehicleID)
}

func (s *Service) ShiftAssignmentsByShift(shiftID int64) ([]*ShiftAssignment, error) {
	return s.repo.ShiftAssignmentsByShift(shiftID)
}

func (s *Service) ShiftAssignmentsByDate(date time.Time) ([]*ShiftAssignment, error) {
	return s.repo.ShiftAssignmentsByDate(TruncateToDay(date))
}

func (s *Service) TodayShiftAssignments() ([]*ShiftAssignment, error) {
	return s.repo.ShiftAssignmentsByDate(TruncateToDay(time.Now()))
}

func (s *Service) requireVehicle(id int64) error {
	exists, err := s.repo.VehicleExists(id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrVehicleNotFound
	}
	return nil
}
