package shift

import (
	"time"

	shiftDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/shift"
)

const (
	StatusActive   = "Active"
	StatusInactive = "Inactive"
)

type Shift struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	StartTime string     `json:"start_time"`
	EndTime   string     `json:"end_time"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func (s *Shift) IsActive() bool {
	return s.Status == StatusActive
}

// ValidTimeOfDay reports whether v is a zero-padded "HH:MM" time of day.
// Zero-padded times compare correctly as strings, which is what the overlap
// check and the current-shift query rely on.
func ValidTimeOfDay(v string) bool {
	_, err := time.Parse("15:04", v)
	return err == nil && len(v) == 5
}

// Overlaps reports whether the [aStart, aEnd) window collides with
// [bStart, bEnd). The three-clause disjunction is applied literally to the
// stored pairs; windows that cross midnight (end < start) are not unwrapped
// into two sub-intervals, so overlap detection for such shifts follows the
// raw comparison only.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return (aStart >= bStart && aStart < bEnd) ||
		(aEnd > bStart && aEnd <= bEnd) ||
		(aStart <= bStart && aEnd >= bEnd)
}

// Now returns the current wall-clock time as "HH:MM".
func Now() string {
	return time.Now().Format("15:04")
}

// InWindow reports whether the time of day t falls inside [start, end).
func InWindow(t, start, end string) bool {
	return start <= t && t < end
}

func ToDataModel(s *Shift) *shiftDatamodel.Shift {
	return &shiftDatamodel.Shift{
		ID:        s.ID,
		Name:      s.Name,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func FromDataModel(s *shiftDatamodel.Shift) *Shift {
	return &Shift{
		ID:        s.ID,
		Name:      s.Name,
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Status:    s.Status,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func FromDataModelSlice(shifts []*shiftDatamodel.Shift) []*Shift {
	result := make([]*Shift, len(shifts))
	for i, s := range shifts {
		result[i] = FromDataModel(s)
	}
	return result
}
