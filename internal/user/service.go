package user

import "log/slog"

// Repository defines the data access methods for user administration.
type Repository interface {
	GetByID(id int64) (*User, error)
	GetAll() ([]*User, error)
	GetRoles() ([]*Role, error)
	UpdateRole(userID, roleID int64) error
	RoleExists(roleID int64) (bool, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

func (s *Service) GetUser(id int64) (*User, error) {
	u, err := s.repo.GetByID(id)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (s *Service) GetUsers() ([]*User, error) {
	return s.repo.GetAll()
}

func (s *Service) GetRoles() ([]*Role, error) {
	return s.repo.GetRoles()
}

// ChangeRole reassigns a user to another role.
func (s *Service) ChangeRole(userID, roleID int64) (*User, error) {
	if _, err := s.repo.GetByID(userID); err != nil {
		return nil, ErrUserNotFound
	}

	exists, err := s.repo.RoleExists(roleID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrRoleNotFound
	}

	if err := s.repo.UpdateRole(userID, roleID); err != nil {
		s.logger.Error("failed to change role", "user_id", userID, "role_id", roleID, "error", err)
		return nil, err
	}

	s.logger.Info("user role changed", "user_id", userID, "role_id", roleID)
	return s.repo.GetByID(userID)
}
