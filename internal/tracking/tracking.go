package tracking

import (
	"time"

	trackingDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/tracking"
)

const (
	MovementEntry = "Entry"
	MovementExit  = "Exit"
)

// Derived vehicle states. Never persisted; always computed from the latest
// movement record.
const (
	StateInside     = "Inside"
	StateOutside    = "Outside"
	StateNoActivity = "NoActivity"
)

// Movement is one row of the append-only entry/exit log.
type Movement struct {
	ID           int64     `json:"id"`
	VehicleID    int64     `json:"vehicle_id"`
	ShiftID      int64     `json:"shift_id"`
	TrackedAt    time.Time `json:"tracked_at"`
	MovementType string    `json:"movement_type"`
	CreatedAt    time.Time `json:"created_at"`
}

// VehicleState is the derived position of one vehicle.
type VehicleState struct {
	VehicleID    int64      `json:"vehicle_id"`
	State        string     `json:"state"`
	ShiftID      *int64     `json:"shift_id,omitempty"`
	LastActivity *time.Time `json:"last_activity,omitempty"`
}

// ActiveVehicle is a vehicle whose latest movement is an Entry.
type ActiveVehicle struct {
	VehicleID int64     `json:"vehicle_id"`
	ShiftID   int64     `json:"shift_id"`
	EnteredAt time.Time `json:"entered_at"`
}

// DailyReport aggregates one day of movements.
type DailyReport struct {
	Date            string               `json:"date"`
	TotalEntries    int                  `json:"total_entries"`
	TotalExits      int                  `json:"total_exits"`
	CurrentlyActive int                  `json:"currently_active"`
	Vehicles        []VehicleDayActivity `json:"vehicles"`
}

type VehicleDayActivity struct {
	VehicleID int64 `json:"vehicle_id"`
	Entries   int   `json:"entries"`
	Exits     int   `json:"exits"`
}

// StateFromLatest derives a vehicle's state from its most recent movement.
func StateFromLatest(latest *Movement) string {
	if latest == nil {
		return StateNoActivity
	}
	if latest.MovementType == MovementEntry {
		return StateInside
	}
	return StateOutside
}

func ToDataModel(m *Movement) *trackingDatamodel.Movement {
	return &trackingDatamodel.Movement{
		ID:           m.ID,
		VehicleID:    m.VehicleID,
		ShiftID:      m.ShiftID,
		TrackedAt:    m.TrackedAt,
		MovementType: m.MovementType,
		CreatedAt:    m.CreatedAt,
	}
}

func FromDataModel(m *trackingDatamodel.Movement) *Movement {
	return &Movement{
		ID:           m.ID,
		VehicleID:    m.VehicleID,
		ShiftID:      m.ShiftID,
		TrackedAt:    m.TrackedAt,
		MovementType: m.MovementType,
		CreatedAt:    m.CreatedAt,
	}
}

func FromDataModelSlice(rows []*trackingDatamodel.Movement) []*Movement {
	result := make([]*Movement, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
