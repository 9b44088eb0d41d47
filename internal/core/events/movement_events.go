package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeVehicleEntered = "movement.vehicle_entered"
	EventTypeVehicleExited  = "movement.vehicle_exited"
)

// VehicleMovementEvent is emitted after an entry or exit record is written.
type VehicleMovementEvent struct {
	BaseEvent
	MovementID int64     `json:"movement_id"`
	VehicleID  int64     `json:"vehicle_id"`
	ShiftID    int64     `json:"shift_id"`
	TrackedAt  time.Time `json:"tracked_at"`
}

func NewVehicleEnteredEvent(movementID, vehicleID, shiftID int64, trackedAt time.Time) *VehicleMovementEvent {
	return newMovementEvent(EventTypeVehicleEntered, movementID, vehicleID, shiftID, trackedAt)
}

func NewVehicleExitedEvent(movementID, vehicleID, shiftID int64, trackedAt time.Time) *VehicleMovementEvent {
	return newMovementEvent(EventTypeVehicleExited, movementID, vehicleID, shiftID, trackedAt)
}

func newMovementEvent(eventType string, movementID, vehicleID, shiftID int64, trackedAt time.Time) *VehicleMovementEvent {
	return &VehicleMovementEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      eventType,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"movement_id": movementID,
				"vehicle_id":  vehicleID,
				"shift_id":    shiftID,
				"tracked_at":  trackedAt,
			},
		},
		MovementID: movementID,
		VehicleID:  vehicleID,
		ShiftID:    shiftID,
		TrackedAt:  trackedAt,
	}
}
