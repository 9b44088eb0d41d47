package assignment

import (
	"time"

	assignmentDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/assignment"
)

// DriverAssignment binds a driver to a vehicle from StartDate until EndDate.
// A nil EndDate means the assignment is open.
type DriverAssignment struct {
	ID        int64      `json:"id"`
	VehicleID int64      `json:"vehicle_id"`
	DriverID  int64      `json:"driver_id"`
	StartDate time.Time  `json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// ActiveAt reports whether the assignment is active at t. An assignment stays
// active while its end date is unset or still in the future.
func (a *DriverAssignment) ActiveAt(t time.Time) bool {
	return a.EndDate == nil || a.EndDate.After(t)
}

// Ended reports whether the assignment has an end date at or before t.
func (a *DriverAssignment) Ended(t time.Time) bool {
	return a.EndDate != nil && !a.EndDate.After(t)
}

// ShiftAssignment books a vehicle onto a shift for one calendar day.
type ShiftAssignment struct {
	ID             int64     `json:"id"`
	VehicleID      int64     `json:"vehicle_id"`
	ShiftID        int64     `json:"shift_id"`
	AssignmentDate time.Time `json:"assignment_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// TruncateToDay drops the time-of-day component, keeping the date in UTC.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ToDriverDataModel(a *DriverAssignment) *assignmentDatamodel.DriverAssignment {
	return &assignmentDatamodel.DriverAssignment{
		ID:        a.ID,
		VehicleID: a.VehicleID,
		DriverID:  a.DriverID,
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
		CreatedAt: a.CreatedAt,
	}
}

func FromDriverDataModel(a *assignmentDatamodel.DriverAssignment) *DriverAssignment {
	return &DriverAssignment{
		ID:        a.ID,
		VehicleID: a.VehicleID,
		DriverID:  a.DriverID,
		StartDate: a.StartDate,
		EndDate:   a.EndDate,
		CreatedAt: a.CreatedAt,
	}
}

func FromDriverDataModelSlice(rows []*assignmentDatamodel.DriverAssignment) []*DriverAssignment {
	result := make([]*DriverAssignment, len(rows))
	for i, row := range rows {
		result[i] = FromDriverDataModel(row)
	}
	return result
}

func ToShiftDataModel(a *ShiftAssignment) *assignmentDatamodel.ShiftAssignment {
	return &assignmentDatamodel.ShiftAssignment{
		ID:             a.ID,
		VehicleID:      a.VehicleID,
		ShiftID:        a.ShiftID,
		AssignmentDate: a.AssignmentDate,
		CreatedAt:      a.CreatedAt,
	}
}

func FromShiftDataModel(a *assignmentDatamodel.ShiftAssignment) *ShiftAssignment {
	return &ShiftAssignment{
		ID:             a.ID,
		VehicleID:      a.VehicleID,
		ShiftID:        a.ShiftID,
		AssignmentDate: a.AssignmentDate,
		CreatedAt:      a.CreatedAt,
	}
}

func FromShiftDataModelSlice(rows []*assignmentDatamodel.ShiftAssignment) []*ShiftAssignment {
	result := make([]*ShiftAssignment, len(rows))
	for i, row := range rows {
		result[i] = FromShiftDataModel(row)
	}
	return result
}
