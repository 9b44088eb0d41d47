package route

import (
	"log/slog"
	"time"
)

// Repository defines the data access methods for routes.
type Repository interface {
	Create(rt *Route) error
	GetByID(id int64) (*Route, error)
	GetAll() ([]*Route, error)
	NameExists(name string, excludeID int64) (bool, error)
	Update(rt *Route) error
	Delete(id int64) error
	HasVehicles(routeID int64) (bool, error)
	Statistics(routeID int64) (*RouteStatistics, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) CreateRoute(dto CreateRouteDTO) (*Route, error) {
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

	rt := &Route{
		Name:                 dto.Name,
		Description:          dto.Description,
		DistanceKM:           dto.DistanceKM,
		EstimatedDurationMin: dto.EstimatedDurationMin,
		Status:               status,
		CreatedAt:            time.Now(),
	}
	if err := s.repo.Create(rt); err != nil {
		s.logger.Error("failed to create route", "name", dto.Name, "error", err)
		return nil, err
	}

	s.logger.Info("route created", "route_id", rt.ID, "name", rt.Name)
	return rt, nil
}

func (s *Service) UpdateRoute(id int64, dto UpdateRouteDTO) (*Route, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	rt, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrRouteNotFound
	}

	if dto.Name != nil && *dto.Name != rt.Name {
		exists, err := s.repo.NameExists(*dto.Name, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, ErrDuplicateName
		}
		rt.Name = *dto.Name
	}
	if dto.Description != nil {
		rt.Description = dto.Description
	}
	if dto.DistanceKM != nil {
		rt.DistanceKM = dto.DistanceKM
	}
	if dto.EstimatedDurationMin != nil {
		rt.EstimatedDurationMin = dto.EstimatedDurationMin
	}
	if dto.Status != nil {
		rt.Status = *dto.Status
	}

	now := time.Now()
	rt.UpdatedAt = &now
	if err := s.repo.Update(rt); err != nil {
		s.logger.Error("failed to update route", "route_id", id, "error", err)
		return nil, err
	}
	return rt, nil
}

func (s *Service) GetRoute(id int64) (*Route, error) {
	rt, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrRouteNotFound
	}
	return rt, nil
}

func (s *Service) GetRoutes() ([]*Route, error) {
	return s.repo.GetAll()
}

// GetRouteStatistics summarizes the vehicles serving a route.
func (s *Service) GetRouteStatistics(id int64) (*RouteStatistics, error) {
	rt, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrRouteNotFound
	}

	stats, err := s.repo.Statistics(id)
	if err != nil {
		return nil, err
	}
	stats.RouteID = rt.ID
	stats.RouteName = rt.Name
	return stats, nil
}

// DeleteRoute refuses to remove a route that still has vehicles on it.
func (s *Service) DeleteRoute(id int64) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return ErrRouteNotFound
	}

	inUse, err := s.repo.HasVehicles(id)
	if err != nil {
		return err
	}
	if inUse {
		return ErrRouteInUse
	}

	if err := s.repo.Delete(id); err != nil {
		s.logger.Error("failed to delete route", "route_id", id, "error", err)
		return err
	}

	s.logger.Info("route deleted", "route_id", id)
	return nil
}
