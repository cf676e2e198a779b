package model

import "time"

// Machine is the root fleet entity. The five *Model references point at
// catalog items of their matching category; client and service_company
// are nullable weak references to users.
type Machine struct {
	ID           uint   `gorm:"primaryKey"`
	SerialNumber string `gorm:"size:50;uniqueIndex;not null"`

	MachineModelID uint          `gorm:"not null"`
	MachineModel   ReferenceItem `gorm:"constraint:OnDelete:RESTRICT"`

	EngineModelID      uint          `gorm:"not null"`
	EngineModel        ReferenceItem `gorm:"constraint:OnDelete:RESTRICT"`
	EngineSerialNumber string        `gorm:"size:50"`

	TransmissionModelID      uint          `gorm:"not null"`
	TransmissionModel        ReferenceItem `gorm:"constraint:OnDelete:RESTRICT"`
	TransmissionSerialNumber string        `gorm:"size:50"`

	DriveAxleModelID      uint          `gorm:"not null"`
	DriveAxleModel        ReferenceItem `gorm:"constraint:OnDelete:RESTRICT"`
	DriveAxleSerialNumber string        `gorm:"size:50"`

	SteerAxleModelID      uint          `gorm:"not null"`
	SteerAxleModel        ReferenceItem `gorm:"constraint:OnDelete:RESTRICT"`
	SteerAxleSerialNumber string        `gorm:"size:50"`

	ContractNumberAndDate string `gorm:"size:255"`
	ShipmentDate          *Date
	Consignee             string `gorm:"size:255"`
	DeliveryAddress       string `gorm:"size:255"`
	Options               string

	ClientID *uint
	Client   *User `gorm:"constraint:OnDelete:SET NULL"`

	ServiceCompanyID *uint
	ServiceCompany   *User `gorm:"constraint:OnDelete:SET NULL"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
