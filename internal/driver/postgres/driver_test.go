package postgres_test

import (
	"testing"
	"time"

	"github.com/frahmantamala/service-tracking/internal/driver"
	driverPostgres "github.com/frahmantamala/service-tracking/internal/driver/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDriverPostgres(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Driver Postgres Suite")
}

// SQLiteDriver is a SQLite-compatible model for testing
type SQLiteDriver struct {
	ID        int64     `gorm:"primaryKey"`
	FullName  string    `gorm:"column:full_name;not null"`
	Phone     *string   `gorm:"column:phone"`
	Status    string    `gorm:"column:status;default:Active"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (SQLiteDriver) TableName() string {
	return "drivers"
}

// SQLiteDriverAssignment backs the HasAssignments lookups
type SQLiteDriverAssignment struct {
	ID        int64      `gorm:"primaryKey"`
	VehicleID int64      `gorm:"column:vehicle_id;not null"`
	DriverID  int64      `gorm:"column:driver_id;not null"`
	StartDate time.Time  `gorm:"column:start_date"`
	EndDate   *time.Time `gorm:"column:end_date"`
	CreatedAt time.Time  `gorm:"column:created_at"`
}

func (SQLiteDriverAssignment) TableName() string {
	return "vehicle_driver_assignments"
}

var _ = Describe("Driver Repository", func() {
	var (
		db   *gorm.DB
		repo driver.Repository
	)

	BeforeEach(func() {
		var err error
		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&SQLiteDriver{}, &SQLiteDriverAssignment{})
		Expect(err).NotTo(HaveOccurred())

		repo = driverPostgres.NewDriverRepository(db)
	})

	Describe("Create and GetByID", func() {
		It("should persist a driver and assign an ID", func() {
			phone := "+62-811-1000-001"
			d := &driver.Driver{FullName: "Budi Santoso", Phone: &phone, Status: driver.StatusActive}

			Expect(repo.Create(d)).To(Succeed())
			Expect(d.ID).To(BeNumerically(">", 0))

			got, err := repo.GetByID(d.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.FullName).To(Equal("Budi Santoso"))
			Expect(got.Phone).NotTo(BeNil())
			Expect(*got.Phone).To(Equal(phone))
		})

		It("should return the domain error for an unknown id", func() {
			_, err := repo.GetByID(42)

			Expect(err).To(Equal(driver.ErrDriverNotFound))
		})
	})

	Describe("GetAll and GetByStatus", func() {
		BeforeEach(func() {
			for _, d := range []*driver.Driver{
				{FullName: "Siti Rahayu", Status: driver.StatusActive},
				{FullName: "Agus Wijaya", Status: driver.StatusOnLeave},
				{FullName: "Budi Santoso", Status: driver.StatusActive},
			} {
				Expect(repo.Create(d)).To(Succeed())
			}
		})

		It("should list all drivers ordered by name", func() {
			drivers, err := repo.GetAll()

			Expect(err).NotTo(HaveOccurred())
			Expect(drivers).To(HaveLen(3))
			Expect(drivers[0].FullName).To(Equal("Agus Wijaya"))
			Expect(drivers[2].FullName).To(Equal("Siti Rahayu"))
		})

		It("should filter by status", func() {
			drivers, err := repo.GetByStatus(driver.StatusOnLeave)

			Expect(err).NotTo(HaveOccurred())
			Expect(drivers).To(HaveLen(1))
			Expect(drivers[0].FullName).To(Equal("Agus Wijaya"))
		})
	})

	Describe("Update", func() {
		It("should persist status changes", func() {
			d := &driver.Driver{FullName: "Budi Santoso", Status: driver.StatusActive}
			Expect(repo.Create(d)).To(Succeed())

			d.Status = driver.StatusOnLeave
			now := time.Now()
			d.UpdatedAt = &now
			Expect(repo.Update(d)).To(Succeed())

			got, err := repo.GetByID(d.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(got.Status).To(Equal(driver.StatusOnLeave))
		})
	})

	Describe("HasAssignments and Delete", func() {
		It("should report assignment history including ended rows", func() {
			d := &driver.Driver{FullName: "Budi Santoso", Status: driver.StatusActive}
			Expect(repo.Create(d)).To(Succeed())

			ended := time.Now().Add(-time.Hour)
			Expect(db.Create(&SQLiteDriverAssignment{
				VehicleID: 1,
				DriverID:  d.ID,
				StartDate: time.Now().Add(-48 * time.Hour),
				EndDate:   &ended,
			}).Error).To(Succeed())

			has, err := repo.HasAssignments(d.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(has).To(BeTrue())
		})

		It("should report no assignments for a fresh driver", func() {
			d := &driver.Driver{FullName: "Budi Santoso", Status: driver.StatusActive}
			Expect(repo.Create(d)).To(Succeed())

			has, err := repo.HasAssignments(d.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(has).To(BeFalse())
		})

		It("should delete a driver row", func() {
			d := &driver.Driver{FullName: "Budi Santoso", Status: driver.StatusActive}
			Expect(repo.Create(d)).To(Succeed())

			Expect(repo.Delete(d.ID)).To(Succeed())

			_, err := repo.GetByID(d.ID)
			Expect(err).To(Equal(driver.ErrDriverNotFound))
		})
	})
})
