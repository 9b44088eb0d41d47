package shift

import (
	"log/slog"
	"time"
)

// Repository defines the data access methods for shifts.
type Repository interface {
	Create(shift *Shift) error
	GetByID(id int64) (*Shift, error)
	GetAll() ([]*Shift, error)
	GetActive() ([]*Shift, error)
	NameExists(name string, excludeID int64) (bool, error)
	ActiveShiftsExcept(excludeID int64) ([]*Shift, error)
	Update(shift *Shift) error
	Delete(id int64) error
	HasAssignmentsOnOrAfter(shiftID int64, date time.Time) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateShift validates the window and rejects overlaps with other Active
// shifts. Inactive shifts are exempt from overlap checks on both sides.
func (s *Service) CreateShift(dto CreateShiftDTO) (*Shift, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(dto.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicateName
	}

	status := dto.Status
	if status == "" {
		status = StatusActive
	}

	if status == StatusActive {
		if err := s.checkOverlap(dto.StartTime, dto.EndTime, 0); err != nil {
			return nil, err
		}
	}

	shift := &Shift{
		Name:      dto.Name,
		StartTime: dto.StartTime,
		EndTime:   dto.EndTime,
		Status:    status,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(shift); err != nil {
		s.logger.Error("failed to create shift", "name", dto.Name, "error", err)
		return nil, err
	}

	s.logger.Info("shift created", "shift_id", shift.ID, "name", shift.Name)
	return shift, nil
}

func (s *Service) UpdateShift(id int64, dto UpdateShiftDTO) (*Shift, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	shift, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrShiftNotFound
	}

	if dto.Name != nil && *dto.Name != shift.Name {
		exists, err := s.repo.NameExists(*dto.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateName
		}
		shift.Name = *dto.Name
	}
	if dto.StartTime != nil {
		shift.StartTime = *dto.StartTime
	}
	if dto.EndTime != nil {
		shift.EndTime = *dto.EndTime
	}
	if dto.Status != nil {
		shift.Status = *dto.Status
	}

	if shift.StartTime == shift.EndTime {
		return nil, ErrSameStartEnd
	}

	if shift.IsActive() {
		if err := s.checkOverlap(shift.StartTime, shift.EndTime, id); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	shift.UpdatedAt = &now
	if err := s.repo.Update(shift); err != nil {
		s.logger.Error("failed to update shift", "shift_id", id, "error", err)
		return nil, err
	}

	return shift, nil
}

func (s *Service) GetShift(id int64) (*Shift, error) {
	shift, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrShiftNotFound
	}
	return shift, nil
}

func (s *Service) GetAllShifts() ([]*Shift, error) {
	return s.repo.GetAll()
}

func (s *Service) GetActiveShifts() ([]*Shift, error) {
	return s.repo.GetActive()
}

// CurrentShift returns the active shift whose window contains the current
// time of day, if any.
func (s *Service) CurrentShift() (*Shift, error) {
	shifts, err := s.repo.GetActive()
	if err != nil {
		return nil, err
	}

	now := Now()
	for _, shift := range shifts {
		if InWindow(now, shift.StartTime, shift.EndTime) {
			return shift, nil
		}
	}
	return nil, ErrNoCurrentShift
}

// DeleteShift refuses to remove a shift that still has assignments dated
// today or later; callers should set the shift Inactive instead.
func (s *Service) DeleteShift(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrShiftNotFound
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	inUse, err := s.repo.HasAssignmentsOnOrAfter(id, today)
	if err != nil {
		return err
	}
	if inUse {
		return ErrShiftInUse
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete shift", "shift_id", id, "error", err)
		return err
	}

	s.logger.Info("shift deleted", "shift_id", id)
	return nil
}

func (s *Service) checkOverlap(start, end string, excludeID int64) error {
	others, err := s.repo.ActiveShiftsExcept(excludeID)
	if err != nil {
		return err
	}
	for _, other := range others {
		if Overlaps(start, end, other.StartTime, other.EndTime) {
			return ErrWindowOverlap
		}
	}
	return nil
}
