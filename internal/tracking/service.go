package tracking

import (
	"context"
	"log/slog"
	"sort"
	"time"

	"github.com/frahmantamala/service-tracking/internal/core/events"
	"github.com/frahmantamala/service-tracking/internal/shift"
	"github.com/frahmantamala/service-tracking/internal/vehicle"
)

// Repository defines the data access methods for the movement log.
// LatestMovementForVehicle returns nil without error when the vehicle has no
// records yet. CreateMovement re-validates the alternation rule atomically
// against the live log and returns ErrVehicleAlreadyInside or
// ErrVehicleNotInside when a concurrent writer got there first.
type Repository interface {
	CreateMovement(m *Movement) error
	GetMovementByID(id int64) (*Movement, error)
	DeleteMovement(id int64) error
	LatestMovementForVehicle(vehicleID int64) (*Movement, error)
	LatestMovementsPerVehicle() ([]*Movement, error)
	MovementsByVehicle(vehicleID int64, limit int) ([]*Movement, error)
	MovementsByShift(shiftID int64, limit int) ([]*Movement, error)
	MovementsBetween(from, to time.Time) ([]*Movement, error)

	VehicleStatus(id int64) (string, error)
	ShiftStatus(id int64) (string, error)
}

type Service struct {
	repo     Repository
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{repo: repo, eventBus: eventBus, logger: logger}
}

// RecordEntry appends an Entry record for a vehicle that is currently
// outside. Both the vehicle and the shift must exist and be Active.
func (s *Service) RecordEntry(dto RecordMovementDTO) (*Movement, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	vehicleStatus, err := s.repo.VehicleStatus(dto.VehicleID)
	if err != nil {
		return nil, ErrVehicleNotFound
	}
	if vehicleStatus != vehicle.StatusActive {
		return nil, ErrVehicleNotActive
	}

	shiftStatus, err := s.repo.ShiftStatus(dto.ShiftID)
	if err != nil {
		return nil, ErrShiftNotFound
	}
	if shiftStatus != shift.StatusActive {
		return nil, ErrShiftNotActive
	}

	latest, err := s.repo.LatestMovementForVehicle(dto.VehicleID)
	if err != nil {
		return nil, err
	}
	if StateFromLatest(latest) == StateInside {
		return nil, ErrVehicleAlreadyInside
	}

	m := &Movement{
		VehicleID:    dto.VehicleID,
		ShiftID:      dto.ShiftID,
		TrackedAt:    time.Now(),
		MovementType: MovementEntry,
	}
	if err := s.repo.CreateMovement(m); err != nil {
		s.logger.Error("failed to record entry",
			"vehicle_id", dto.VehicleID, "shift_id", dto.ShiftID, "error", err)
		return nil, err
	}

	s.logger.Info("vehicle entered", "movement_id", m.ID, "vehicle_id", m.VehicleID, "shift_id", m.ShiftID)
	s.publish(events.NewVehicleEnteredEvent(m.ID, m.VehicleID, m.ShiftID, m.TrackedAt))
	return m, nil
}

// RecordExit appends an Exit record for a vehicle that is currently inside.
func (s *Service) RecordExit(dto RecordMovementDTO) (*Movement, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.VehicleStatus(dto.VehicleID); err != nil {
		return nil, ErrVehicleNotFound
	}
	if _, err := s.repo.ShiftStatus(dto.ShiftID); err != nil {
		return nil, ErrShiftNotFound
	}

	latest, err := s.repo.LatestMovementForVehicle(dto.VehicleID)
	if err != nil {
		return nil, err
	}
	if StateFromLatest(latest) != StateInside {
		return nil, ErrVehicleNotInside
	}

	m := &Movement{
		VehicleID:    dto.VehicleID,
		ShiftID:      dto.ShiftID,
		TrackedAt:    time.Now(),
		MovementType: MovementExit,
	}
	if err := s.repo.CreateMovement(m); err != nil {
		s.logger.Error("failed to record exit",
			"vehicle_id", dto.VehicleID, "shift_id", dto.ShiftID, "error", err)
		return nil, err
	}

	s.logger.Info("vehicle exited", "movement_id", m.ID, "vehicle_id", m.VehicleID, "shift_id", m.ShiftID)
	s.publish(events.NewVehicleExitedEvent(m.ID, m.VehicleID, m.ShiftID, m.TrackedAt))
	return m, nil
}

// VehicleState derives a vehicle's position from its latest movement record.
func (s *Service) VehicleState(vehicleID int64) (*VehicleState, error) {
	if _, err := s.repo.VehicleStatus(vehicleID); err != nil {
		return nil, ErrVehicleNotFound
	}

	latest, err := s.repo.LatestMovementForVehicle(vehicleID)
	if err != nil {
		return nil, err
	}

	state := &VehicleState{
		VehicleID: vehicleID,
		State:     StateFromLatest(latest),
	}
	if latest != nil {
		state.ShiftID = &latest.ShiftID
		state.LastActivity = &latest.TrackedAt
	}
	return state, nil
}

// ActiveVehicles lists vehicles whose latest movement is an Entry.
func (s *Service) ActiveVehicles() ([]ActiveVehicle, error) {
	latest, err := s.repo.LatestMovementsPerVehicle()
	if err != nil {
		return nil, err
	}

	active := make([]ActiveVehicle, 0, len(latest))
	for _, m := range latest {
		if m.MovementType != MovementEntry {
			continue
		}
		active = append(active, ActiveVehicle{
			VehicleID: m.VehicleID,
			ShiftID:   m.ShiftID,
			EnteredAt: m.TrackedAt,
		})
	}
	return active, nil
}

// DailyReport aggregates one calendar day of movements. Currently-active is
// simply entries minus exits for the day.
func (s *Service) DailyReport(date time.Time) (*DailyReport, error) {
	from := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	to := from.AddDate(0, 0, 1)

	movements, err := s.repo.MovementsBetween(from, to)
	if err != nil {
		return nil, err
	}

	report := &DailyReport{Date: from.Format("2006-01-02")}
	perVehicle := make(map[int64]*VehicleDayActivity)
	for _, m := range movements {
		activity, ok := perVehicle[m.VehicleID]
		if !ok {
			activity = &VehicleDayActivity{VehicleID: m.VehicleID}
			perVehicle[m.VehicleID] = activity
		}
		if m.MovementType == MovementEntry {
			report.TotalEntries++
			activity.Entries++
		} else {
			report.TotalExits++
			activity.Exits++
		}
	}
	report.CurrentlyActive = report.TotalEntries - report.TotalExits

	report.Vehicles = make([]VehicleDayActivity, 0, len(perVehicle))
	for _, activity := range perVehicle {
		report.Vehicles = append(report.Vehicles, *activity)
	}
	sort.Slice(report.Vehicles, func(i, j int) bool {
		return report.Vehicles[i].VehicleID < report.Vehicles[j].VehicleID
	})

	return report, nil
}

func (s *Service) GetMovement(id int64) (*Movement, error) {
	m, err := s.repo.GetMovementByID(id)
	if err != nil {
		return nil, ErrMovementNotFound
	}
	return m, nil
}

func (s *Service) MovementsByVehicle(vehicleID int64, limit int) ([]*Movement, error) {
	if _, err := s.repo.VehicleStatus(vehicleID); err != nil {
		return nil, ErrVehicleNotFound
	}
	return s.repo.MovementsByVehicle(vehicleID, limit)
}

func (s *Service) MovementsByShift(shiftID int64, limit int) ([]*Movement, error) {
	if _, err := s.repo.ShiftStatus(shiftID); err != nil {
		return nil, ErrShiftNotFound
	}
	return s.repo.MovementsByShift(shiftID, limit)
}

// DeleteMovement removes a single record. Administrative fix for a mistaken
// scan; downstream derived state shifts to the previous record.
func (s *Service) DeleteMovement(id int64) error {
	if _, err := s.repo.GetMovementByID(id); err != nil {
		return ErrMovementNotFound
	}

	if err := s.repo.DeleteMovement(id); err != nil {
		s.logger.Error("failed to delete movement", "movement_id", id, "error", err)
		return err
	}

	s.logger.Info("movement deleted", "movement_id", id)
	return nil
}

func (s *Service) publish(event events.Event) {
	if s.eventBus == nil {
		return
	}
	if err := s.eventBus.Publish(context.Background(), event); err != nil {
		s.logger.Error("failed to publish movement event",
			"event_type", event.EventType(), "error", err)
	}
}
