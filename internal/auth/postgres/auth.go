package postgres

import (
	"database/sql"
	"errors"
	"time"

	"github.com/frahmantamala/service-tracking/internal/auth"
	userDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

const userSelect = `SELECT u.id, u.full_name, u.username, u.email, u.password_hash, u.role_id,
       r.name AS role_name, u.refresh_token, u.refresh_token_expires_at
  FROM users u
  JOIN roles r ON r.id = u.role_id`

func (r *Repository) scanUser(row *sql.Row) (*auth.User, error) {
	var u auth.User
	err := row.Scan(&u.ID, &u.FullName, &u.Username, &u.Email, &u.PasswordHash,
		&u.RoleID, &u.RoleName, &u.RefreshToken, &u.RefreshTokenExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, auth.ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repository) GetByUsernameOrEmail(login string) (*auth.User, error) {
	row := r.db.Raw(userSelect+` WHERE u.username = ? OR u.email = ?`, login, login).Row()
	return r.scanUser(row)
}

func (r *Repository) GetByID(userID int64) (*auth.User, error) {
	row := r.db.Raw(userSelect+` WHERE u.id = ?`, userID).Row()
	return r.scanUser(row)
}

func (r *Repository) GetByRefreshToken(token string) (*auth.User, error) {
	row := r.db.Raw(userSelect+` WHERE u.refresh_token = ?`, token).Row()
	return r.scanUser(row)
}

func (r *Repository) UsernameOrEmailExists(username, email string) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	return count > 0, err
}

func (r *Repository) RoleExists(roleID int64) (bool, error) {
	var count int64
	err := r.db.Model(&userDatamodel.Role{}).Where("id = ?", roleID).Count(&count).Error
	return count > 0, err
}

func (r *Repository) RoleName(roleID int64) (string, error) {
	var name string
	row := r.db.Raw(`SELECT name FROM roles WHERE id = ?`, roleID).Row()
	if err := row.Scan(&name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", auth.ErrRoleNotFound
		}
		return "", err
	}
	return name, nil
}

func (r *Repository) Create(user *auth.User) error {
	record := &userDatamodel.User{
		FullName:     user.FullName,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		RoleID:       user.RoleID,
	}
	if err := r.db.Create(record).Error; err != nil {
		return err
	}
	user.ID = record.ID
	user.CreatedAt = record.CreatedAt
	if user.RoleName == "" {
		if name, err := r.RoleName(user.RoleID); err == nil {
			user.RoleName = name
		}
	}
	return nil
}

func (r *Repository) UpdatePassword(userID int64, passwordHash string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		}).Error
}

func (r *Repository) StoreRefreshToken(userID int64, token string, expiresAt time.Time) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token":            token,
			"refresh_token_expires_at": expiresAt,
		}).Error
}

func (r *Repository) ClearRefreshToken(userID int64) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"refresh_token":            nil,
			"refresh_token_expires_at": nil,
		}).Error
}
