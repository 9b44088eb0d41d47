package assignment

import "time"

// DriverAssignment links a driver to a vehicle. A NULL EndDate means the
// assignment is open; ending it is a mutation of EndDate, never a deletion.
// Partial unique indexes (see migrations) allow at most one open row per
// vehicle and per driver.
type DriverAssignment struct {
	ID        int64      `gorm:"primaryKey"`
	VehicleID int64      `gorm:"column:vehicle_id;not null"`
	DriverID  int64      `gorm:"column:driver_id;not null"`
	StartDate time.Time  `gorm:"column:start_date;not null"`
	EndDate   *time.Time `gorm:"column:end_date"`
	CreatedAt time.Time  `gorm:"column:created_at;default:now()"`
}

func (DriverAssignment) TableName() string {
	return "vehicle_driver_assignments"
}

// ShiftAssignment books a vehicle onto a shift for a calendar day. The date is
// stored with the time component truncated. Unique indexes cover both
// (vehicle_id, assignment_date) and (shift_id, assignment_date).
type ShiftAssignment struct {
	ID             int64     `gorm:"primaryKey"`
	VehicleID      int64     `gorm:"column:vehicle_id;not null"`
	ShiftID        int64     `gorm:"column:shift_id;not null"`
	AssignmentDate time.Time `gorm:"column:assignment_date;not null"`
	CreatedAt      time.Time `gorm:"column:created_at;default:now()"`
}

func (ShiftAssignment) TableName() string {
	return "vehicle_shift_assignments"
}
