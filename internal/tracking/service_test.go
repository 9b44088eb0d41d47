package tracking_test

import (
	"log/slog"
	"os"
	"sort"
	"testing"
	"time"

	"github.com/frahmantamala/service-tracking/internal/core/events"
	"github.com/frahmantamala/service-tracking/internal/shift"
	"github.com/frahmantamala/service-tracking/internal/tracking"
	"github.com/frahmantamala/service-tracking/internal/vehicle"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTrackingService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Tracking Service Suite")
}

// MockRepository implements tracking.Repository for testing. staleLatest
// makes LatestMovementForVehicle report no records while CreateMovement still
// validates against the real log, standing in for a concurrent writer landing
// between the service's read and its insert.
type MockRepository struct {
	movements       []*tracking.Movement
	nextID          int64
	vehicleStatuses map[int64]string
	shiftStatuses   map[int64]string
	shouldFail      bool
	failError       error
	staleLatest     bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		nextID:          1,
		vehicleStatuses: make(map[int64]string),
		shiftStatuses:   make(map[int64]string),
	}
}

func (m *MockRepository) CreateMovement(mv *tracking.Movement) error {
	if m.shouldFail {
		return m.failError
	}
	latest := m.latestFor(mv.VehicleID)
	state := tracking.StateFromLatest(latest)
	if mv.MovementType == tracking.MovementEntry && state == tracking.StateInside {
		return tracking.ErrVehicleAlreadyInside
	}
	if mv.MovementType == tracking.MovementExit && state != tracking.StateInside {
		return tracking.ErrVehicleNotInside
	}
	mv.ID = m.nextID
	m.nextID++
	m.movements = append(m.movements, mv)
	return nil
}

func (m *MockRepository) GetMovementByID(id int64) (*tracking.Movement, error) {
	for _, mv := range m.movements {
		if mv.ID == id {
			return mv, nil
		}
	}
	return nil, tracking.ErrMovementNotFound
}

func (m *MockRepository) DeleteMovement(id int64) error {
	for i, mv := range m.movements {
		if mv.ID == id {
			m.movements = append(m.movements[:i], m.movements[i+1:]...)
			return nil
		}
	}
	return tracking.ErrMovementNotFound
}

func (m *MockRepository) LatestMovementForVehicle(vehicleID int64) (*tracking.Movement, error) {
	if m.staleLatest {
		return nil, nil
	}
	return m.latestFor(vehicleID), nil
}

func (m *MockRepository) latestFor(vehicleID int64) *tracking.Movement {
	var latest *tracking.Movement
	for _, mv := range m.movements {
		if mv.VehicleID != vehicleID {
			continue
		}
		if latest == nil || mv.TrackedAt.After(latest.TrackedAt) ||
			(mv.TrackedAt.Equal(latest.TrackedAt) && mv.ID > latest.ID) {
			latest = mv
		}
	}
	return latest
}

func (m *MockRepository) LatestMovementsPerVehicle() ([]*tracking.Movement, error) {
	latest := make(map[int64]*tracking.Movement)
	for _, mv := range m.movements {
		current, ok := latest[mv.VehicleID]
		if !ok || mv.TrackedAt.After(current.TrackedAt) ||
			(mv.TrackedAt.Equal(current.TrackedAt) && mv.ID > current.ID) {
			latest[mv.VehicleID] = mv
		}
	}
	result := make([]*tracking.Movement, 0, len(latest))
	for _, mv := range latest {
		result = append(result, mv)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].VehicleID < result[j].VehicleID })
	return result, nil
}

func (m *MockRepository) MovementsByVehicle(vehicleID int64, limit int) ([]*tracking.Movement, error) {
	var result []*tracking.Movement
	for _, mv := range m.movements {
		if mv.VehicleID == vehicleID {
			result = append(result, mv)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockRepository) MovementsByShift(shiftID int64, limit int) ([]*tracking.Movement, error) {
	var result []*tracking.Movement
	for _, mv := range m.movements {
		if mv.ShiftID == shiftID {
			result = append(result, mv)
		}
	}
	if limit > 0 && len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *MockRepository) MovementsBetween(from, to time.Time) ([]*tracking.Movement, error) {
	var result []*tracking.Movement
	for _, mv := range m.movements {
		if !mv.TrackedAt.Before(from) && mv.TrackedAt.Before(to) {
			result = append(result, mv)
		}
	}
	return result, nil
}

func (m *MockRepository) VehicleStatus(id int64) (string, error) {
	status, ok := m.vehicleStatuses[id]
	if !ok {
		return "", tracking.ErrVehicleNotFound
	}
	return status, nil
}

func (m *MockRepository) ShiftStatus(id int64) (string, error) {
	status, ok := m.shiftStatuses[id]
	if !ok {
		return "", tracking.ErrShiftNotFound
	}
	return status, nil
}

var _ = Describe("Tracking Service", func() {
	var (
		mockRepo *MockRepository
		service  *tracking.Service
		logger   *slog.Logger
	)

	entry := func(vehicleID int64) (*tracking.Movement, error) {
		return service.RecordEntry(tracking.RecordMovementDTO{VehicleID: vehicleID, ShiftID: 100})
	}
	exit := func(vehicleID int64) (*tracking.Movement, error) {
		return service.RecordExit(tracking.RecordMovementDTO{VehicleID: vehicleID, ShiftID: 100})
	}

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = tracking.NewService(mockRepo, events.NewEventBus(logger), logger)

		mockRepo.vehicleStatuses[1] = vehicle.StatusActive
		mockRepo.vehicleStatuses[2] = vehicle.StatusActive
		mockRepo.vehicleStatuses[3] = vehicle.StatusMaintenance
		mockRepo.shiftStatuses[100] = shift.StatusActive
		mockRepo.shiftStatuses[101] = shift.StatusInactive
	})

	Describe("RecordEntry", func() {
		It("should record an entry for a vehicle with no activity", func() {
			m, err := entry(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.MovementType).To(Equal(tracking.MovementEntry))
		})

		It("should reject an entry while the vehicle is inside", func() {
			_, err := entry(1)
			Expect(err).NotTo(HaveOccurred())

			_, err = entry(1)
			Expect(err).To(MatchError(tracking.ErrVehicleAlreadyInside))
		})

		It("should reject an unknown vehicle", func() {
			_, err := service.RecordEntry(tracking.RecordMovementDTO{VehicleID: 99, ShiftID: 100})
			Expect(err).To(MatchError(tracking.ErrVehicleNotFound))
		})

		It("should reject a vehicle that is not Active", func() {
			_, err := entry(3)
			Expect(err).To(MatchError(tracking.ErrVehicleNotActive))
		})

		It("should reject an inactive shift", func() {
			_, err := service.RecordEntry(tracking.RecordMovementDTO{VehicleID: 1, ShiftID: 101})
			Expect(err).To(MatchError(tracking.ErrShiftNotActive))
		})

		It("should reject an unknown shift", func() {
			_, err := service.RecordEntry(tracking.RecordMovementDTO{VehicleID: 1, ShiftID: 999})
			Expect(err).To(MatchError(tracking.ErrShiftNotFound))
		})

		It("should reject a duplicate entry landed by a concurrent writer", func() {
			_, err := entry(1)
			Expect(err).NotTo(HaveOccurred())

			mockRepo.staleLatest = true
			_, err = entry(1)
			Expect(err).To(MatchError(tracking.ErrVehicleAlreadyInside))

			movements, err := mockRepo.MovementsByVehicle(1, 0)
			Expect(err).NotTo(HaveOccurred())
			Expect(movements).To(HaveLen(1))
		})
	})

	Describe("RecordExit", func() {
		It("should reject an exit for a vehicle with no activity", func() {
			_, err := exit(1)
			Expect(err).To(MatchError(tracking.ErrVehicleNotInside))
		})

		It("should record an exit after an entry", func() {
			_, err := entry(1)
			Expect(err).NotTo(HaveOccurred())

			m, err := exit(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.MovementType).To(Equal(tracking.MovementExit))
		})

		It("should reject a second exit in a row", func() {
			_, err := entry(1)
			Expect(err).NotTo(HaveOccurred())
			_, err = exit(1)
			Expect(err).NotTo(HaveOccurred())

			_, err = exit(1)
			Expect(err).To(MatchError(tracking.ErrVehicleNotInside))
		})

		It("should allow an exit for a vehicle in maintenance", func() {
			mockRepo.vehicleStatuses[3] = vehicle.StatusActive
			_, err := entry(3)
			Expect(err).NotTo(HaveOccurred())
			mockRepo.vehicleStatuses[3] = vehicle.StatusMaintenance

			m, err := exit(3)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.MovementType).To(Equal(tracking.MovementExit))
		})
	})

	Describe("movement alternation", func() {
		It("should keep entries and exits strictly alternating per vehicle", func() {
			for i := 0; i < 3; i++ {
				_, err := entry(1)
				Expect(err).NotTo(HaveOccurred())
				_, err = exit(1)
				Expect(err).NotTo(HaveOccurred())
			}

			movements, err := service.MovementsByVehicle(1, 100)
			Expect(err).NotTo(HaveOccurred())
			Expect(movements).To(HaveLen(6))
			for i, m := range movements {
				if i%2 == 0 {
					Expect(m.MovementType).To(Equal(tracking.MovementEntry))
				} else {
					Expect(m.MovementType).To(Equal(tracking.MovementExit))
				}
			}
		})

		It("should track vehicles independently", func() {
			_, err := entry(1)
			Expect(err).NotTo(HaveOccurred())

			_, err = entry(2)
			Expect(err).NotTo(HaveOccurred())

			_, err = exit(1)
			Expect(err).NotTo(HaveOccurred())

			state, err := service.VehicleState(2)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.State).To(Equal(tracking.StateInside))
		})
	})

	Describe("VehicleState", func() {
		It("should report NoActivity for a vehicle with no records", func() {
			state, err := service.VehicleState(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.State).To(Equal(tracking.StateNoActivity))
			Expect(state.LastActivity).To(BeNil())
		})

		It("should report Inside after an entry", func() {
			_, err := entry(1)
			Expect(err).NotTo(HaveOccurred())

			state, err := service.VehicleState(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.State).To(Equal(tracking.StateInside))
			Expect(state.LastActivity).NotTo(BeNil())
		})

		It("should report Outside after an exit", func() {
			_, err := entry(1)
			Expect(err).NotTo(HaveOccurred())
			_, err = exit(1)
			Expect(err).NotTo(HaveOccurred())

			state, err := service.VehicleState(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.State).To(Equal(tracking.StateOutside))
		})
	})

	Describe("ActiveVehicles", func() {
		It("should list only vehicles whose latest movement is an entry", func() {
			_, err := entry(1)
			Expect(err).NotTo(HaveOccurred())
			_, err = entry(2)
			Expect(err).NotTo(HaveOccurred())
			_, err = exit(2)
			Expect(err).NotTo(HaveOccurred())

			active, err := service.ActiveVehicles()
			Expect(err).NotTo(HaveOccurred())
			Expect(active).To(HaveLen(1))
			Expect(active[0].VehicleID).To(Equal(int64(1)))
		})

		It("should return an empty list with no movements", func() {
			active, err := service.ActiveVehicles()
			Expect(err).NotTo(HaveOccurred())
			Expect(active).To(BeEmpty())
		})
	})

	Describe("DailyReport", func() {
		It("should count entries, exits and currently active", func() {
			_, err := entry(1)
			Expect(err).NotTo(HaveOccurred())
			_, err = entry(2)
			Expect(err).NotTo(HaveOccurred())
			_, err = exit(2)
			Expect(err).NotTo(HaveOccurred())

			report, err := service.DailyReport(time.Now())
			Expect(err).NotTo(HaveOccurred())
			Expect(report.TotalEntries).To(Equal(2))
			Expect(report.TotalExits).To(Equal(1))
			Expect(report.CurrentlyActive).To(Equal(1))
			Expect(report.Vehicles).To(HaveLen(2))
		})

		It("should return zeros for a day without movements", func() {
			report, err := service.DailyReport(time.Now().AddDate(0, 0, -7))
			Expect(err).NotTo(HaveOccurred())
			Expect(report.TotalEntries).To(BeZero())
			Expect(report.TotalExits).To(BeZero())
			Expect(report.CurrentlyActive).To(BeZero())
		})

		It("should bound the day by calendar midnights in the requested zone", func() {
			loc := time.FixedZone("UTC+7", 7*3600)
			mockRepo.movements = append(mockRepo.movements,
				&tracking.Movement{ID: 900, VehicleID: 1, ShiftID: 100,
					TrackedAt: time.Date(2026, 3, 8, 23, 59, 0, 0, loc), MovementType: tracking.MovementEntry},
				&tracking.Movement{ID: 901, VehicleID: 2, ShiftID: 100,
					TrackedAt: time.Date(2026, 3, 9, 0, 1, 0, 0, loc), MovementType: tracking.MovementEntry},
			)

			report, err := service.DailyReport(time.Date(2026, 3, 8, 10, 0, 0, 0, loc))
			Expect(err).NotTo(HaveOccurred())
			Expect(report.TotalEntries).To(Equal(1))
			Expect(report.Vehicles).To(HaveLen(1))
			Expect(report.Vehicles[0].VehicleID).To(Equal(int64(1)))
		})
	})

	Describe("MovementsByShift", func() {
		It("should list only movements recorded for the shift", func() {
			_, err := entry(1)
			Expect(err).NotTo(HaveOccurred())
			_, err = exit(1)
			Expect(err).NotTo(HaveOccurred())
			mockRepo.shiftStatuses[101] = shift.StatusActive
			_, err = service.RecordEntry(tracking.RecordMovementDTO{VehicleID: 2, ShiftID: 101})
			Expect(err).NotTo(HaveOccurred())

			movements, err := service.MovementsByShift(100, 50)
			Expect(err).NotTo(HaveOccurred())
			Expect(movements).To(HaveLen(2))
			for _, m := range movements {
				Expect(m.ShiftID).To(Equal(int64(100)))
			}
		})

		It("should return ErrShiftNotFound for an unknown shift", func() {
			_, err := service.MovementsByShift(999, 50)
			Expect(err).To(MatchError(tracking.ErrShiftNotFound))
		})
	})

	Describe("DeleteMovement", func() {
		It("should shift the derived state to the previous record", func() {
			_, err := entry(1)
			Expect(err).NotTo(HaveOccurred())
			latestExit, err := exit(1)
			Expect(err).NotTo(HaveOccurred())

			Expect(service.DeleteMovement(latestExit.ID)).To(Succeed())

			state, err := service.VehicleState(1)
			Expect(err).NotTo(HaveOccurred())
			Expect(state.State).To(Equal(tracking.StateInside))
		})

		It("should return ErrMovementNotFound for an unknown id", func() {
			Expect(service.DeleteMovement(999)).To(MatchError(tracking.ErrMovementNotFound))
		})
	})
})
