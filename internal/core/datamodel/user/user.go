package user

import "time"

type User struct {
	ID                    int64      `gorm:"primaryKey"`
	FullName              string     `gorm:"column:full_name;not null"`
	Username              string     `gorm:"column:username;uniqueIndex;not null"`
	Email                 string     `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash          string     `gorm:"column:password_hash;not null"`
	RoleID                int64      `gorm:"column:role_id;not null"`
	RefreshToken          *string    `gorm:"column:refresh_token"`
	RefreshTokenExpiresAt *time.Time `gorm:"column:refresh_token_expires_at"`
	CreatedAt             time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt             *time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

type Role struct {
	ID          int64     `gorm:"primaryKey"`
	Name        string    `gorm:"column:name;uniqueIndex;not null"`
	Description string    `gorm:"column:description"`
	CreatedAt   time.Time `gorm:"column:created_at;default:now()"`
}

func (Role) TableName() string {
	return "roles"
}
