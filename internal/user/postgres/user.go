package postgres

import (
	userDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/user"
	"github.com/frahmantamala/service-tracking/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements user.Repository using GORM.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) user.Repository {
	return &UserRepository{db: db}
}

const userSelect = `
	SELECT u.id, u.full_name, u.username, u.email, u.role_id, r.name AS role_name,
	       u.created_at, u.updated_at
	FROM users u
	JOIN roles r ON r.id = u.role_id
`

func (r *UserRepository) GetByID(id int64) (*user.User, error) {
	row := r.db.Raw(userSelect+" WHERE u.id = ?", id).Row()

	var u user.User
	err := row.Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.RoleID, &u.RoleName,
		&u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, user.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) GetAll() ([]*user.User, error) {
	rows, err := r.db.Raw(userSelect + " ORDER BY u.username ASC").Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		var u user.User
		if err := rows.Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.RoleID, &u.RoleName,
			&u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func (r *UserRepository) GetRoles() ([]*user.Role, error) {
	var records []*userDatamodel.Role
	if err := r.db.Order("id ASC").Find(&records).Error; err != nil {
		return nil, err
	}

	roles := make([]*user.Role, len(records))
	for i, record := range records {
		roles[i] = user.RoleFromDataModel(record)
	}
	return roles, nil
}

func (r *UserRepository) UpdateRole(userID, roleID int64) error {
	result := r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Update("role_id", roleID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) RoleExists(roleID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.Role{}).Where("id = ?", roleID).Count(&count).Error
	return count > 0, err
}
