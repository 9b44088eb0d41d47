package user

import (
	"errors"
	"time"

	userDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/user"
)

// User is the administrative view of an account. Password and refresh-token
// state stay in the auth package.
type User struct {
	ID        int64      `json:"id"`
	FullName  string     `json:"full_name"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	RoleID    int64      `json:"role_id"`
	RoleName  string     `json:"role_name"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type Role struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Domain errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrRoleNotFound = errors.New("role not found")
)

func RoleFromDataModel(r *userDatamodel.Role) *Role {
	return &Role{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
	}
}
