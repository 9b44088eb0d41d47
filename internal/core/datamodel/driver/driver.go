package driver

import "time"

type Driver struct {
	ID        int64      `gorm:"primaryKey"`
	FullName  string     `gorm:"column:full_name;not null"`
	Phone     *string    `gorm:"column:phone"`
	Status    string     `gorm:"column:status;default:Active;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
}

func (Driver) TableName() string {
	return "drivers"
}
