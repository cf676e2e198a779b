package model

import "time"

// Maintenance is one service-history record for a machine. Records are
// append-only: there are no update or delete endpoints.
type Maintenance struct {
	ID uint `gorm:"primaryKey"`

	MaintenanceTypeID uint          `gorm:"not null"`
	MaintenanceType   ReferenceItem `gorm:"constraint:OnDelete:RESTRICT"`

	MaintenanceDate Date `gorm:"not null;index"`

	// Operating hours at the time of maintenance; optional but never
	// negative.
	OperatingTime *int64

	WorkOrderNumber string `gorm:"size:100"`
	WorkOrderDate   *Date

	ServiceOrganizationID *uint
	ServiceOrganization   *ReferenceItem `gorm:"constraint:OnDelete:RESTRICT"`

	MachineID uint    `gorm:"not null;index"`
	Machine   Machine `gorm:"constraint:OnDelete:CASCADE"`

	ServiceCompanyID *uint
	ServiceCompany   *User `gorm:"constraint:OnDelete:SET NULL"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
