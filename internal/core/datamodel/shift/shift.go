package shift

import "time"

// StartTime and EndTime are zero-padded "HH:MM" times of day. An EndTime
// numerically below StartTime means the shift crosses midnight.
type Shift struct {
	ID        int64      `gorm:"primaryKey"`
	Name      string     `gorm:"column:name;uniqueIndex;not null"`
	StartTime string     `gorm:"column:start_time;not null"`
	EndTime   string     `gorm:"column:end_time;not null"`
	Status    string     `gorm:"column:status;default:Active;not null"`
	CreatedAt time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt *time.Time `gorm:"column:updated_at"`
}

func (Shift) TableName() string {
	return "shifts"
}
