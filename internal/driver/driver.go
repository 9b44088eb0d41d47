package driver

import (
	"time"

	driverDatamodel "github.com/frahmantamala/service-tracking/internal/core/datamodel/driver"
)

const (
	StatusActive   = "Active"
	StatusOnLeave  = "OnLeave"
	StatusInactive = "Inactive"
)

type Driver struct {
	ID        int64      `json:"id"`
	FullName  string     `json:"full_name"`
	Phone     *string    `json:"phone,omitempty"`
	Status    string     `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

func ValidStatus(status string) bool {
	switch status {
	case StatusActive, StatusOnLeave, StatusInactive:
		return true
	}
	return false
}

func ToDataModel(d *Driver) *driverDatamodel.Driver {
	return &driverDatamodel.Driver{
		ID:        d.ID,
		FullName:  d.FullName,
		Phone:     d.Phone,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func FromDataModel(d *driverDatamodel.Driver) *Driver {
	return &Driver{
		ID:        d.ID,
		FullName:  d.FullName,
		Phone:     d.Phone,
		Status:    d.Status,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

func FromDataModelSlice(rows []*driverDatamodel.Driver) []*Driver {
	result := make([]*Driver, len(rows))
	for i, row := range rows {
		result[i] = FromDataModel(row)
	}
	return result
}
