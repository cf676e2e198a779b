package store

import (
	"gorm.io/gorm"

	"fleet-service-backend/internal/model"
)

// Page controls listing pagination. Export mode returns the full
// filtered, scoped collection as a flat list.
type Page struct {
	Number int
	Size   int
	Export bool
}

func (p Page) apply(db *gorm.DB) *gorm.DB {
	if p.Export {
		return db
	}
	size := p.Size
	if size <= 0 {
		size = 50
	}
	number := p.Number
	if number <= 0 {
		number = 1
	}
	return db.Limit(size).Offset((number - 1) * size)
}

// MachineFilter narrows a machine listing. All fields are optional.
type MachineFilter struct {
	MachineModelID      *uint
	EngineModelID       *uint
	TransmissionModelID *uint
	DriveAxleModelID    *uint
	SteerAxleModelID    *uint
	SerialContains      string
	Page                Page
}

// MaintenanceFilter narrows a maintenance listing per the shared
// ledger filtering contract.
type MaintenanceFilter struct {
	MaintenanceTypeID *uint
	ServiceCompanyID  *uint
	MachineSerial     string
	MachineSerialLike string
	Date              *model.Date
	DateFrom          *model.Date
	DateTo            *model.Date
	Page              Page
}

// ClaimFilter narrows a claim listing per the shared ledger filtering
// contract.
type ClaimFilter struct {
	FailureNodeID     *uint
	RepairMethodID    *uint
	ServiceCompanyID  *uint
	MachineSerial     string
	MachineSerialLike string
	Date              *model.Date
	DateFrom          *model.Date
	DateTo            *model.Date
	Page              Page
}

// ReferenceFilter narrows the catalog listing.
type ReferenceFilter struct {
	Category model.Category
	Name     string
}

// ReferencePatch carries a partial catalog update. Nil fields are left
// untouched.
type ReferencePatch struct {
	Category    *model.Category
	Name        *string
	Description *string
}
