package tracking

import "time"

// Movement is one row of the append-only entry/exit log. Rows are never
// updated; a vehicle's inside/outside state is always derived from its most
// recent row (TrackedAt desc, ID desc as tiebreak).
type Movement struct {
	ID           int64     `gorm:"primaryKey"`
	VehicleID    int64     `gorm:"column:vehicle_id;not null"`
	ShiftID      int64     `gorm:"column:shift_id;not null"`
	TrackedAt    time.Time `gorm:"column:tracked_at;not null"`
	MovementType string    `gorm:"column:movement_type;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;default:now()"`
}

func (Movement) TableName() string {
	return "movements"
}
