package shift_test

import (
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/frahmantamala/service-tracking/internal/shift"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestShiftService(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Shift Service Suite")
}

// MockRepository implements shift.Repository for testing
type MockRepository struct {
	shifts     map[int64]*shift.Shift
	nextID     int64
	inUse      map[int64]bool
	shouldFail bool
	failError  error
	lastCutoff time.Time
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		shifts: make(map[int64]*shift.Shift),
		nextID: 1,
		inUse:  make(map[int64]bool),
	}
}

func (m *MockRepository) Create(s *shift.Shift) error {
	if m.shouldFail {
		return m.failError
	}
	s.ID = m.nextID
	m.nextID++
	m.shifts[s.ID] = s
	return nil
}

func (m *MockRepository) GetByID(id int64) (*shift.Shift, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	s, ok := m.shifts[id]
	if !ok {
		return nil, shift.ErrShiftNotFound
	}
	return s, nil
}

func (m *MockRepository) GetAll() ([]*shift.Shift, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*shift.Shift
	for _, s := range m.shifts {
		result = append(result, s)
	}
	return result, nil
}

func (m *MockRepository) GetActive() ([]*shift.Shift, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*shift.Shift
	for _, s := range m.shifts {
		if s.IsActive() {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *MockRepository) NameExists(name string, excludeID int64) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	for _, s := range m.shifts {
		if s.Name == name && s.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockRepository) ActiveShiftsExcept(excludeID int64) ([]*shift.Shift, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	var result []*shift.Shift
	for _, s := range m.shifts {
		if s.IsActive() && s.ID != excludeID {
			result = append(result, s)
		}
	}
	return result, nil
}

func (m *MockRepository) Update(s *shift.Shift) error {
	if m.shouldFail {
		return m.failError
	}
	m.shifts[s.ID] = s
	return nil
}

func (m *MockRepository) Delete(id int64) error {
	if m.shouldFail {
		return m.failError
	}
	delete(m.shifts, id)
	return nil
}

func (m *MockRepository) HasAssignmentsOnOrAfter(shiftID int64, date time.Time) (bool, error) {
	if m.shouldFail {
		return false, m.failError
	}
	m.lastCutoff = date
	return m.inUse[shiftID], nil
}

func (m *MockRepository) AddShift(s *shift.Shift) {
	if s.ID == 0 {
		s.ID = m.nextID
		m.nextID++
	}
	m.shifts[s.ID] = s
}

func (m *MockRepository) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

var _ = Describe("Shift Service", func() {
	var (
		mockRepo *MockRepository
		service  *shift.Service
		logger   *slog.Logger
	)

	BeforeEach(func() {
		mockRepo = NewMockRepository()
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = shift.NewService(mockRepo, logger)
	})

	Describe("CreateShift", func() {
		It("should create a shift and default status to Active", func() {
			created, err := service.CreateShift(shift.CreateShiftDTO{
				Name:      "Morning",
				StartTime: "06:00",
				EndTime:   "14:00",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(BeNumerically(">", 0))
			Expect(created.Status).To(Equal(shift.StatusActive))
		})

		It("should allow a window that crosses midnight", func() {
			created, err := service.CreateShift(shift.CreateShiftDTO{
				Name:      "Night",
				StartTime: "22:00",
				EndTime:   "06:00",
			})
			Expect(err).NotTo(HaveOccurred())
			Expect(created.StartTime).To(Equal("22:00"))
			Expect(created.EndTime).To(Equal("06:00"))
		})

		It("should reject a window where start equals end", func() {
			_, err := service.CreateShift(shift.CreateShiftDTO{
				Name:      "Degenerate",
				StartTime: "08:00",
				EndTime:   "08:00",
			})
			Expect(err).To(HaveOccurred())
		})

		It("should reject malformed times", func() {
			_, err := service.CreateShift(shift.CreateShiftDTO{
				Name:      "Sloppy",
				StartTime: "8:00",
				EndTime:   "16:00",
			})
			Expect(err).To(HaveOccurred())
		})

		Context("when a shift with the same name exists", func() {
			BeforeEach(func() {
				mockRepo.AddShift(&shift.Shift{
					Name:      "Morning",
					StartTime: "06:00",
					EndTime:   "14:00",
					Status:    shift.StatusActive,
				})
			})

			It("should return ErrDuplicateName", func() {
				_, err := service.CreateShift(shift.CreateShiftDTO{
					Name:      "Morning",
					StartTime: "15:00",
					EndTime:   "23:00",
				})
				Expect(err).To(MatchError(shift.ErrDuplicateName))
			})
		})

		Context("when an active shift occupies an overlapping window", func() {
			BeforeEach(func() {
				mockRepo.AddShift(&shift.Shift{
					Name:      "Day",
					StartTime: "08:00",
					EndTime:   "16:00",
					Status:    shift.StatusActive,
				})
			})

			It("should reject an overlapping active shift", func() {
				_, err := service.CreateShift(shift.CreateShiftDTO{
					Name:      "Late Start",
					StartTime: "12:00",
					EndTime:   "20:00",
				})
				Expect(err).To(MatchError(shift.ErrWindowOverlap))
			})

			It("should accept an adjacent window sharing only a boundary", func() {
				created, err := service.CreateShift(shift.CreateShiftDTO{
					Name:      "Evening",
					StartTime: "16:00",
					EndTime:   "23:00",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(created).NotTo(BeNil())
			})

			It("should accept an overlapping shift created as Inactive", func() {
				created, err := service.CreateShift(shift.CreateShiftDTO{
					Name:      "Standby",
					StartTime: "12:00",
					EndTime:   "20:00",
					Status:    shift.StatusInactive,
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(created.Status).To(Equal(shift.StatusInactive))
			})
		})

		Context("when only an inactive shift occupies the window", func() {
			BeforeEach(func() {
				mockRepo.AddShift(&shift.Shift{
					Name:      "Retired",
					StartTime: "08:00",
					EndTime:   "16:00",
					Status:    shift.StatusInactive,
				})
			})

			It("should allow the overlapping active shift", func() {
				created, err := service.CreateShift(shift.CreateShiftDTO{
					Name:      "Day",
					StartTime: "10:00",
					EndTime:   "18:00",
				})
				Expect(err).NotTo(HaveOccurred())
				Expect(created).NotTo(BeNil())
			})
		})
	})

	Describe("UpdateShift", func() {
		var existing *shift.Shift

		BeforeEach(func() {
			existing = &shift.Shift{
				Name:      "Morning",
				StartTime: "06:00",
				EndTime:   "14:00",
				Status:    shift.StatusActive,
			}
			mockRepo.AddShift(existing)
		})

		It("should apply partial updates", func() {
			newEnd := "13:00"
			updated, err := service.UpdateShift(existing.ID, shift.UpdateShiftDTO{EndTime: &newEnd})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.EndTime).To(Equal("13:00"))
			Expect(updated.StartTime).To(Equal("06:00"))
		})

		It("should return ErrShiftNotFound for an unknown id", func() {
			name := "Renamed"
			_, err := service.UpdateShift(999, shift.UpdateShiftDTO{Name: &name})
			Expect(err).To(MatchError(shift.ErrShiftNotFound))
		})

		It("should reject an update that collapses the window", func() {
			sameAsStart := "06:00"
			_, err := service.UpdateShift(existing.ID, shift.UpdateShiftDTO{EndTime: &sameAsStart})
			Expect(err).To(MatchError(shift.ErrSameStartEnd))
		})

		Context("with a second active shift", func() {
			BeforeEach(func() {
				mockRepo.AddShift(&shift.Shift{
					Name:      "Evening",
					StartTime: "14:00",
					EndTime:   "22:00",
					Status:    shift.StatusActive,
				})
			})

			It("should reject moving the window into the other shift", func() {
				newEnd := "15:00"
				_, err := service.UpdateShift(existing.ID, shift.UpdateShiftDTO{EndTime: &newEnd})
				Expect(err).To(MatchError(shift.ErrWindowOverlap))
			})

			It("should not compare the shift against itself", func() {
				newEnd := "13:30"
				_, err := service.UpdateShift(existing.ID, shift.UpdateShiftDTO{EndTime: &newEnd})
				Expect(err).NotTo(HaveOccurred())
			})

			It("should reject renaming to the other shift's name", func() {
				name := "Evening"
				_, err := service.UpdateShift(existing.ID, shift.UpdateShiftDTO{Name: &name})
				Expect(err).To(MatchError(shift.ErrDuplicateName))
			})
		})

		It("should skip overlap checks when the shift is set Inactive", func() {
			mockRepo.AddShift(&shift.Shift{
				Name:      "Overlapping",
				StartTime: "06:00",
				EndTime:   "14:00",
				Status:    shift.StatusActive,
				ID:        50,
			})
			inactive := shift.StatusInactive
			updated, err := service.UpdateShift(existing.ID, shift.UpdateShiftDTO{Status: &inactive})
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Status).To(Equal(shift.StatusInactive))
		})
	})

	Describe("CurrentShift", func() {
		It("should return ErrNoCurrentShift when no window matches", func() {
			// A degenerate active set that can never contain the current time.
			mockRepo.AddShift(&shift.Shift{
				Name:      "Never",
				StartTime: "23:59",
				EndTime:   "00:00",
				Status:    shift.StatusActive,
			})
			_, err := service.CurrentShift()
			Expect(err).To(MatchError(shift.ErrNoCurrentShift))
		})

		It("should return the active shift covering the current time", func() {
			mockRepo.AddShift(&shift.Shift{
				Name:      "All Day",
				StartTime: "00:00",
				EndTime:   "23:59",
				Status:    shift.StatusActive,
			})
			current, err := service.CurrentShift()
			Expect(err).NotTo(HaveOccurred())
			Expect(current.Name).To(Equal("All Day"))
		})

		It("should ignore inactive shifts", func() {
			mockRepo.AddShift(&shift.Shift{
				Name:      "All Day Inactive",
				StartTime: "00:00",
				EndTime:   "23:59",
				Status:    shift.StatusInactive,
			})
			_, err := service.CurrentShift()
			Expect(err).To(MatchError(shift.ErrNoCurrentShift))
		})
	})

	Describe("DeleteShift", func() {
		var existing *shift.Shift

		BeforeEach(func() {
			existing = &shift.Shift{
				Name:      "Morning",
				StartTime: "06:00",
				EndTime:   "14:00",
				Status:    shift.StatusActive,
			}
			mockRepo.AddShift(existing)
		})

		It("should delete a shift without upcoming assignments", func() {
			Expect(service.DeleteShift(existing.ID)).To(Succeed())
			_, err := service.GetShift(existing.ID)
			Expect(err).To(MatchError(shift.ErrShiftNotFound))
		})

		It("should refuse to delete a shift with upcoming assignments", func() {
			mockRepo.inUse[existing.ID] = true
			Expect(service.DeleteShift(existing.ID)).To(MatchError(shift.ErrShiftInUse))
		})

		It("should return ErrShiftNotFound for an unknown id", func() {
			Expect(service.DeleteShift(999)).To(MatchError(shift.ErrShiftNotFound))
		})

		It("should cut off at today's UTC midnight", func() {
			Expect(service.DeleteShift(existing.ID)).To(Succeed())

			now := time.Now().UTC()
			want := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
			Expect(mockRepo.lastCutoff).To(Equal(want))
		})
	})

	Describe("repository failures", func() {
		It("should surface errors from the repository", func() {
			mockRepo.SetShouldFail(true, errors.New("database error"))
			_, err := service.CreateShift(shift.CreateShiftDTO{
				Name:      "Morning",
				StartTime: "06:00",
				EndTime:   "14:00",
			})
			Expect(err).To(HaveOccurred())
			Expect(err.Error()).To(ContainSubstring("database error"))
		})
	})
})
