package route

import "time"

type Route struct {
	ID                   int64      `gorm:"primaryKey"`
	Name                 string     `gorm:"column:name;uniqueIndex;not null"`
	Description          *string    `gorm:"column:description"`
	DistanceKM           *float64   `gorm:"column:distance_km"`
	EstimatedDurationMin *int       `gorm:"column:estimated_duration_min"`
	Status               string     `gorm:"column:status;default:Active;not null"`
	CreatedAt            time.Time  `gorm:"column:created_at;default:now()"`
	UpdatedAt            *time.Time `gorm:"column:updated_at"`
}

func (Route) TableName() string {
	return "routes"
}
