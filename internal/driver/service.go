package driver

import (
	"log/slog"
	"time"
)

// Repository defines the data access methods for drivers.
type Repository interface {
	Create(d *Driver) error
	GetByID(id int64) (*Driver, error)
	GetAll() ([]*Driver, error)
	GetByStatus(status string) ([]*Driver, error)
	Update(d *Driver) error
	Delete(id int64) error
	HasAssignments(driverID int64) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateDriver(dto CreateDriverDTO) (*Driver, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	status := dto.Status
	if status == "" {
		status = StatusActive
	}

	d := &Driver{
		FullName:  dto.FullName,
		Phone:     dto.Phone,
		Status:    status,
		CreatedAt: time.Now(),
	}
	if err := s.repo.Create(d); err != nil {
		s.logger.Error("failed to create driver", "full_name", dto.FullName, "error", err)
		return nil, err
	}

	s.logger.Info("driver created", "driver_id", d.ID, "full_name", d.FullName)
	return d, nil
}

func (s *Service) UpdateDriver(id int64, dto UpdateDriverDTO) (*Driver, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrDriverNotFound
	}

	if dto.FullName != nil {
		d.FullName = *dto.FullName
	}
	if dto.Phone != nil {
		d.Phone = dto.Phone
	}
	if dto.Status != nil {
		d.Status = *dto.Status
	}

	now := time.Now()
	d.UpdatedAt = &now
	if err := s.repo.Update(d); err != nil {
		s.logger.Error("failed to update driver", "driver_id", id, "error", err)
		return nil, err
	}
	return d, nil
}

func (s *Service) GetDriver(id int64) (*Driver, error) {
	d, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrDriverNotFound
	}
	return d, nil
}

func (s *Service) GetDrivers(status string) ([]*Driver, error) {
	if status != "" {
		return s.repo.GetByStatus(status)
	}
	return s.repo.GetAll()
}

// DeleteDriver refuses to remove a driver that any assignment references,
// open or closed.
func (s *Service) DeleteDriver(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrDriverNotFound
	}

	inUse, err := s.repo.HasAssignments(id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrDriverInUse
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete driver", "driver_id", id, "error", err)
		return err
	}

	s.logger.Info("driver deleted", "driver_id", id)
	return nil
}
