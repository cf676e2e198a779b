package model

import "time"

// Category identifies which catalog a ReferenceItem belongs to. Every
// reference column elsewhere is constrained to one category.
type Category string

const (
	CategoryMachineModel        Category = "machine_model"
	CategoryEngineModel         Category = "engine_model"
	CategoryTransmissionModel   Category = "transmission_model"
	CategoryDriveAxleModel      Category = "drive_axle_model"
	CategorySteerAxleModel      Category = "steer_axle_model"
	CategoryMaintenanceType     Category = "maintenance_type"
	CategoryFailureNode         Category = "failure_node"
	CategoryRepairMethod        Category = "repair_method"
	CategoryServiceOrganization Category = "service_organization"
)

// Categories lists every valid catalog category.
var Categories = []Category{
	CategoryMachineModel,
	CategoryEngineModel,
	CategoryTransmissionModel,
	CategoryDriveAxleModel,
	CategorySteerAxleModel,
	CategoryMaintenanceType,
	CategoryFailureNode,
	CategoryRepairMethod,
	CategoryServiceOrganization,
}

// Valid reports whether c is one of the nine known categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ReferenceItem is a single catalog entry (a machine model, a failure
// node, a repair method, ...). Items are shared lookup values; rows that
// reference them protect against deletion.
type ReferenceItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Category    Category  `gorm:"size:50;index;not null" json:"category"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
