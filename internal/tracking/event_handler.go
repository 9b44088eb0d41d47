package tracking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/frahmantamala/service-tracking/internal/core/events"
)

// EventHandler writes an audit line for every movement event. Handlers run
// off the request path, so a failure here never affects the original write.
type EventHandler struct {
	logger *slog.Logger
}

func NewEventHandler(logger *slog.Logger) *EventHandler {
	return &EventHandler{logger: logger}
}

func (h *EventHandler) HandleVehicleMovement(ctx context.Context, event events.Event) error {
	movementEvent, ok := event.(*events.VehicleMovementEvent)
	if !ok {
		h.logger.Error("invalid event type for movement handler", "event_type", event.EventType())
		return fmt.Errorf("expected VehicleMovementEvent, got %T", event)
	}

	h.logger.Info("movement audit",
		"event_type", movementEvent.EventType(),
		"event_id", movementEvent.EventID(),
		"movement_id", movementEvent.MovementID,
		"vehicle_id", movementEvent.VehicleID,
		"shift_id", movementEvent.ShiftID,
		"tracked_at", movementEvent.TrackedAt)

	return nil
}

func (h *EventHandler) RegisterEventHandlers(eventBus *events.EventBus) {
	eventBus.Subscribe(events.EventTypeVehicleEntered, h.HandleVehicleMovement)
	eventBus.Subscribe(events.EventTypeVehicleExited, h.HandleVehicleMovement)

	h.logger.Info("movement event handlers registered",
		"handlers", []string{events.EventTypeVehicleEntered, events.EventTypeVehicleExited})
}
