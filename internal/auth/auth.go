package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// User is the internal domain model used by the auth service. PasswordHash and
// refresh-token state never leave this package.
type User struct {
	ID                    int64
	FullName              string
	Username              string
	Email                 string
	PasswordHash          string
	RoleID                int64
	RoleName              string
	RefreshToken          *string
	RefreshTokenExpiresAt *time.Time
	CreatedAt             time.Time
	UpdatedAt             *time.Time
}

// Claims are the access-token claims. Subject carries the user ID.
type Claims struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthTokens is the login/refresh response pair. The refresh token is opaque
// and only ever validated against the persisted copy on the user row.
type AuthTokens struct {
	AccessToken           string    `json:"access_token"`
	AccessTokenExpiresAt  time.Time `json:"access_token_expires_at"`
	RefreshToken          string    `json:"refresh_token"`
	RefreshTokenExpiresAt time.Time `json:"refresh_token_expires_at"`
}

// UserInfo is the API-ready view of a user returned alongside tokens.
type UserInfo struct {
	UserID   int64  `json:"user_id"`
	FullName string `json:"full_name"`
	Username string `json:"username"`
	Email    string `json:"email"`
	RoleName string `json:"role_name"`
}

type ServiceAPI interface {
	Authenticate(dto LoginDTO) (AuthTokens, *UserInfo, error)
	RefreshTokens(refreshToken string) (AuthTokens, error)
	ValidateAccessToken(tokenString string) (*Claims, error)
	Register(dto RegisterDTO) (*UserInfo, error)
	ChangePassword(dto ChangePasswordDTO) error
}

type RepositoryAPI interface {
	GetByUsernameOrEmail(login string) (*User, error)
	GetByID(userID int64) (*User, error)
	GetByRefreshToken(token string) (*User, error)
	UsernameOrEmailExists(username, email string) (bool, error)
	RoleExists(roleID int64) (bool, error)
	RoleName(roleID int64) (string, error)
	Create(user *User) error
	UpdatePassword(userID int64, passwordHash string) error
	StoreRefreshToken(userID int64, token string, expiresAt time.Time) error
	ClearRefreshToken(userID int64) error
}

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrUserExists         = errors.New("username or email already exists")
	ErrRoleNotFound       = errors.New("role not found")
	ErrUserNotFound       = errors.New("user not found")
	ErrWrongPassword      = errors.New("current password is incorrect")
)

func (u *User) ToInfo() *UserInfo {
	return &UserInfo{
		UserID:   u.ID,
		FullName: u.FullName,
		Username: u.Username,
		Email:    u.Email,
		RoleName: u.RoleName,
	}
}
