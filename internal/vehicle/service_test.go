package vehicle_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"

	"github.com/frahmantamala/service-tracking/internal/vehicle"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestVehicleService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Vehicle Module Suite")
}

type MockRepository struct {
	vehicles   map[int64]*vehicle.Vehicle
	routes     map[int64]bool
	inUse      map[int64]bool
	nextID     int64
	shouldFail bool
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		vehicles: make(map[int64]*vehicle.Vehicle),
		routes:   map[int64]bool{1: true, 2: true},
		inUse:    make(map[int64]bool),
		nextID:   1,
	}
}

func (m *MockRepository) Create(v *vehicle.Vehicle) error {
	if m.shouldFail {
		return errors.New("database error")
	}
	v.ID = m.nextID
	m.nextID++
	m.vehicles[v.ID] = v
	return nil
}

func (m *MockRepository) GetByID(id int64) (*vehicle.Vehicle, error) {
	if m.shouldFail {
		return nil, errors.New("database error")
	}
	if v, ok := m.vehicles[id]; ok {
		return v, nil
	}
	return nil, errors.New("record not found")
}

func (m *MockRepository) GetAll() ([]*vehicle.Vehicle, error) {
	if m.shouldFail {
		return nil, errors.New("database error")
	}
	result := make([]*vehicle.Vehicle, 0, len(m.vehicles))
	for _, v := range m.vehicles {
		result = append(result, v)
	}
	return result, nil
}

func (m *MockRepository) GetByStatus(status string) ([]*vehicle.Vehicle, error) {
	if m.shouldFail {
		return nil, errors.New("database error")
	}
	var result []*vehicle.Vehicle
	for _, v := range m.vehicles {
		if v.Status == status {
			result = append(result, v)
		}
	}
	return result, nil
}

func (m *MockRepository) GetByRoute(routeID int64) ([]*vehicle.Vehicle, error) {
	if m.shouldFail {
		return nil, errors.New("database error")
	}
	var result []*vehicle.Vehicle
	for _, v := range m.vehicles {
		if v.RouteID == routeID {
			result = append(result, v)
		}
	}
	return result, nil
}

func (m *MockRepository) PlateExists(plate string, excludeID int64) (bool, error) {
	if m.shouldFail {
		return false, errors.New("database error")
	}
	for _, v := range m.vehicles {
		if v.PlateNumber == plate && v.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockRepository) RouteExists(routeID int64) (bool, error) {
	if m.shouldFail {
		return false, errors.New("database error")
	}
	return m.routes[routeID], nil
}

func (m *MockRepository) Update(v *vehicle.Vehicle) error {
	if m.shouldFail {
		return errors.New("database error")
	}
	if _, ok := m.vehicles[v.ID]; !ok {
		return errors.New("record not found")
	}
	m.vehicles[v.ID] = v
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	if m.shouldFail {
		return errors.New("database error")
	}
	if _, ok := m.vehicles[id]; !ok {
		return errors.New("record not found")
	}
	delete(m.vehicles, id)
	return nil
}

func (m *MockRepository) HasAssignmentsOrMovements(vehicleID int64) (bool, error) {
	if m.shouldFail {
		return false, errors.New("database error")
	}
	return m.inUse[vehicleID], nil
}

var _ = Describe("Vehicle Service", func() {
	var (
		svc  *vehicle.Service
		repo *MockRepository
	)

	BeforeEach(func() {
		repo = NewMockRepository()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc = vehicle.NewService(repo, slogger)
	})

	Describe("CreateVehicle", func() {
		It("should default status to Active", func() {
			v, err := svc.CreateVehicle(vehicle.CreateVehicleDTO{
				PlateNumber: "B 7001 TX",
				Capacity:    40,
				RouteID:     1,
			})

			Expect(err).NotTo(HaveOccurred())
			Expect(v.Status).To(Equal(vehicle.StatusActive))
		})

		It("should reject a duplicate plate number", func() {
			_, err := svc.CreateVehicle(vehicle.CreateVehicleDTO{PlateNumber: "B 7001 TX", Capacity: 40, RouteID: 1})
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.CreateVehicle(vehicle.CreateVehicleDTO{PlateNumber: "B 7001 TX", Capacity: 54, RouteID: 2})
			Expect(err).To(Equal(vehicle.ErrDuplicatePlate))
		})

		It("should reject an unknown route", func() {
			_, err := svc.CreateVehicle(vehicle.CreateVehicleDTO{PlateNumber: "B 7001 TX", Capacity: 40, RouteID: 99})

			Expect(err).To(Equal(vehicle.ErrRouteNotFound))
		})

		It("should reject an invalid status", func() {
			_, err := svc.CreateVehicle(vehicle.CreateVehicleDTO{
				PlateNumber: "B 7001 TX",
				Capacity:    40,
				RouteID:     1,
				Status:      "Scrapped",
			})

			Expect(err).To(HaveOccurred())
		})

		It("should reject non-positive capacity", func() {
			_, err := svc.CreateVehicle(vehicle.CreateVehicleDTO{PlateNumber: "B 7001 TX", Capacity: 0, RouteID: 1})

			Expect(err).To(HaveOccurred())
		})
	})

	Describe("UpdateVehicle", func() {
		var existing *vehicle.Vehicle

		BeforeEach(func() {
			var err error
			existing, err = svc.CreateVehicle(vehicle.CreateVehicleDTO{PlateNumber: "B 7001 TX", Capacity: 40, RouteID: 1})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should move a vehicle into maintenance", func() {
			status := vehicle.StatusMaintenance
			updated, err := svc.UpdateVehicle(existing.ID, vehicle.UpdateVehicleDTO{Status: &status})

			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(vehicle.StatusMaintenance))
			Expect(updated.UpdatedAt).NotTo(BeNil())
		})

		It("should allow keeping its own plate number", func() {
			plate := "B 7001 TX"
			_, err := svc.UpdateVehicle(existing.ID, vehicle.UpdateVehicleDTO{PlateNumber: &plate})

			Expect(err).NotTo(HaveOccurred())
		})

		It("should reject a plate taken by another vehicle", func() {
			other, err := svc.CreateVehicle(vehicle.CreateVehicleDTO{PlateNumber: "B 7002 TX", Capacity: 40, RouteID: 1})
			Expect(err).NotTo(HaveOccurred())

			plate := "B 7001 TX"
			_, err = svc.UpdateVehicle(other.ID, vehicle.UpdateVehicleDTO{PlateNumber: &plate})
			Expect(err).To(Equal(vehicle.ErrDuplicatePlate))
		})

		It("should reject moving to an unknown route", func() {
			routeID := int64(99)
			_, err := svc.UpdateVehicle(existing.ID, vehicle.UpdateVehicleDTO{RouteID: &routeID})

			Expect(err).To(Equal(vehicle.ErrRouteNotFound))
		})

		It("should return not found for an unknown vehicle", func() {
			capacity := 50
			_, err := svc.UpdateVehicle(99, vehicle.UpdateVehicleDTO{Capacity: &capacity})

			Expect(err).To(Equal(vehicle.ErrVehicleNotFound))
		})
	})

	Describe("GetVehicles", func() {
		BeforeEach(func() {
			_, err := svc.CreateVehicle(vehicle.CreateVehicleDTO{PlateNumber: "B 7001 TX", Capacity: 40, RouteID: 1})
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.CreateVehicle(vehicle.CreateVehicleDTO{PlateNumber: "B 7002 TX", Capacity: 54, RouteID: 2, Status: vehicle.StatusMaintenance})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should filter by status when given", func() {
			vehicles, err := svc.GetVehicles(vehicle.StatusMaintenance, 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(vehicles).To(HaveLen(1))
			Expect(vehicles[0].PlateNumber).To(Equal("B 7002 TX"))
		})

		It("should filter by route when given", func() {
			vehicles, err := svc.GetVehicles("", 1)

			Expect(err).NotTo(HaveOccurred())
			Expect(vehicles).To(HaveLen(1))
			Expect(vehicles[0].RouteID).To(Equal(int64(1)))
		})

		It("should list everything by default", func() {
			vehicles, err := svc.GetVehicles("", 0)

			Expect(err).NotTo(HaveOccurred())
			Expect(vehicles).To(HaveLen(2))
		})
	})

	Describe("DeleteVehicle", func() {
		It("should refuse when the vehicle has assignments or movements", func() {
			v, err := svc.CreateVehicle(vehicle.CreateVehicleDTO{PlateNumber: "B 7001 TX", Capacity: 40, RouteID: 1})
			Expect(err).NotTo(HaveOccurred())
			repo.inUse[v.ID] = true

			err = svc.DeleteVehicle(v.ID)

			Expect(err).To(Equal(vehicle.ErrVehicleInUse))
		})

		It("should delete an unreferenced vehicle", func() {
			v, err := svc.CreateVehicle(vehicle.CreateVehicleDTO{PlateNumber: "B 7001 TX", Capacity: 40, RouteID: 1})
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.DeleteVehicle(v.ID)).To(Succeed())
			_, err = svc.GetVehicle(v.ID)
			Expect(err).To(Equal(vehicle.ErrVehicleNotFound))
		})

		It("should return not found for an unknown vehicle", func() {
			Expect(svc.DeleteVehicle(42)).To(Equal(vehicle.ErrVehicleNotFound))
		})
	})
})
