package vehicle

import "time"

type Vehicle struct {
	ID          int64      `gorm:"primaryKey"`
	PlateNumber string     `gorm:"column:plate_number;uniqueIndex;not null"`
	Brand       *string    `gorm:"column:brand"`
	Model       *string    `gorm:"column:model"`
	Capacity    int        `gorm:"column:capacity;not null"`
	Status      string     `gorm:"column:status;default:Active;not null"`
	RouteID     int64      `gorm:"column:route_id;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt   *time.Time `gorm:"column:updated_at"`
}

func (Vehicle) TableName() string {
	return "vehicles"
}
