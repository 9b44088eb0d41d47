package vehicle

import (
	"log/slog"
	"time"
)

// Repository defines the data access methods for vehicles.
type Repository interface {
	Create(v *Vehicle) error
	GetByID(id int64) (*Vehicle, error)
	GetAll() ([]*Vehicle, error)
	GetByStatus(status string) ([]*Vehicle, error)
	GetByRoute(routeID int64) ([]*Vehicle, error)
	PlateExists(plate string, excludeID int64) (bool, error)
	RouteExists(routeID int64) (bool, error)
	Update(v *Vehicle) error
	Delete(id int64) error
	HasAssignmentsOrMovements(vehicleID int64) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateVehicle(dto CreateVehicleDTO) (*Vehicle, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.PlateExists(dto.PlateNumber, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrDuplicatePlate
	}

	routeExists, err := s.repo.RouteExists(dto.RouteID)
	if err != nil {
		return nil, err
	}
	if !routeExists {
		return nil, ErrRouteNotFound
	}

	status := dto.Status
	if status == "" {
		status = StatusActive
	}

	v := &Vehicle{
		PlateNumber: dto.PlateNumber,
		Brand:       dto.Brand,
		Model:       dto.Model,
		Capacity:    dto.Capacity,
		Status:      status,
		RouteID:     dto.RouteID,
		CreatedAt:   time.Now(),
	}
	if err := s.repo.Create(v); err != nil {
		s.logger.Error("failed to create vehicle", "plate_number", dto.PlateNumber, "error", err)
		return nil, err
	}

	s.logger.Info("vehicle created", "vehicle_id", v.ID, "plate_number", v.PlateNumber)
	return v, nil
}

func (s *Service) UpdateVehicle(id int64, dto UpdateVehicleDTO) (*Vehicle, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	v, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrVehicleNotFound
	}

	if dto.PlateNumber != nil && *dto.PlateNumber != v.PlateNumber {
		exists, err := s.repo.PlateExists(*dto.PlateNumber, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicatePlate
		}
		v.PlateNumber = *dto.PlateNumber
	}
	if dto.RouteID != nil && *dto.RouteID != v.RouteID {
		routeExists, err := s.repo.RouteExists(*dto.RouteID)
		if err != nil {
			return nil, err
		}
		if !routeExists {
			return nil, ErrRouteNotFound
		}
		v.RouteID = *dto.RouteID
	}
	if dto.Brand != nil {
		v.Brand = dto.Brand
	}
	if dto.Model != nil {
		v.Model = dto.Model
	}
	if dto.Capacity != nil {
		v.Capacity = *dto.Capacity
	}
	if dto.Status != nil {
		v.Status = *dto.Status
	}

	now := time.Now()
	v.UpdatedAt = &now
	if err := s.repo.Update(v); err != nil {
		s.logger.Error("failed to update vehicle", "vehicle_id", id, "error", err)
		return nil, err
	}
	return v, nil
}

func (s *Service) GetVehicle(id int64) (*Vehicle, error) {
	v, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrVehicleNotFound
	}
	return v, nil
}

func (s *Service) GetVehicles(status string, routeID int64) ([]*Vehicle, error) {
	switch {
	case status != "":
		return s.repo.GetByStatus(status)
	case routeID > 0:
		return s.repo.GetByRoute(routeID)
	default:
		return s.repo.GetAll()
	}
}

// DeleteVehicle refuses to remove a vehicle that is referenced by any
// assignment or movement record.
func (s *Service) DeleteVehicle(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrVehicleNotFound
	}

	inUse, err := s.repo.HasAssignmentsOrMovements(id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrVehicleInUse
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete vehicle", "vehicle_id", id, "error", err)
		return err
	}

	s.logger.Info("vehicle deleted", "vehicle_id", id)
	return nil
}
