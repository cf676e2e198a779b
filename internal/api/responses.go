package api

import (
	"time"

	"fleet-service-backend/internal/model"
)

// UserShortResponse is the reduced user projection embedded in machine
// and ledger payloads and returned by /api/me.
type UserShortResponse struct {
	ID               uint       `json:"id"`
	Username         string     `json:"username"`
	FirstName        string     `json:"first_name"`
	LastName         string     `json:"last_name"`
	Role             model.Role `json:"role"`
	OrganizationName string     `json:"organization_name"`
	Phone            string     `json:"phone"`
}

func userShort(u *model.User) *UserShortResponse {
	if u == nil || u.ID == 0 {
		return nil
	}
	return &UserShortResponse{
		ID:               u.ID,
		Username:         u.Username,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Role:             u.Role,
		OrganizationName: u.OrganizationName,
		Phone:            u.Phone,
	}
}

// MachineShortResponse identifies a machine inside ledger payloads.
type MachineShortResponse struct {
	ID           uint                `json:"id"`
	SerialNumber string              `json:"serial_number"`
	MachineModel model.ReferenceItem `json:"machine_model"`
}

func machineShort(m *model.Machine) MachineShortResponse {
	return MachineShortResponse{
		ID:           m.ID,
		SerialNumber: m.SerialNumber,
		MachineModel: m.MachineModel,
	}
}

// MachineResponse is the full authenticated machine projection.
type MachineResponse struct {
	ID           uint   `json:"id"`
	SerialNumber string `json:"serial_number"`

	MachineModel model.ReferenceItem `json:"machine_model"`

	EngineModel        model.ReferenceItem `json:"engine_model"`
	EngineSerialNumber string              `json:"engine_serial_number"`

	TransmissionModel        model.ReferenceItem `json:"transmission_model"`
	TransmissionSerialNumber string              `json:"transmission_serial_number"`

	DriveAxleModel        model.ReferenceItem `json:"drive_axle_model"`
	DriveAxleSerialNumber string              `json:"drive_axle_serial_number"`

	SteerAxleModel        model.ReferenceItem `json:"steer_axle_model"`
	SteerAxleSerialNumber string              `json:"steer_axle_serial_number"`

	ContractNumberAndDate string      `json:"contract_number_and_date"`
	ShipmentDate          *model.Date `json:"shipment_date"`
	Consignee             string      `json:"consignee"`
	DeliveryAddress       string      `json:"delivery_address"`
	Options               string      `json:"options"`

	Client         *UserShortResponse `json:"client"`
	ServiceCompany *UserShortResponse `json:"service_company"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func machineResponse(m *model.Machine) MachineResponse {
	return MachineResponse{
		ID:                       m.ID,
		SerialNumber:             m.SerialNumber,
		MachineModel:             m.MachineModel,
		EngineModel:              m.EngineModel,
		EngineSerialNumber:       m.EngineSerialNumber,
		TransmissionModel:        m.TransmissionModel,
		TransmissionSerialNumber: m.TransmissionSerialNumber,
		DriveAxleModel:           m.DriveAxleModel,
		DriveAxleSerialNumber:    m.DriveAxleSerialNumber,
		SteerAxleModel:           m.SteerAxleModel,
		SteerAxleSerialNumber:    m.SteerAxleSerialNumber,
		ContractNumberAndDate:    m.ContractNumberAndDate,
		ShipmentDate:             m.ShipmentDate,
		Consignee:                m.Consignee,
		DeliveryAddress:          m.DeliveryAddress,
		Options:                  m.Options,
		Client:                   userShort(m.Client),
		ServiceCompany:           userShort(m.ServiceCompany),
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

// MachinePublicResponse is the anonymous lookup projection: the ten
// catalog/identity fields, nothing about contract, delivery or
// ownership.
type MachinePublicResponse struct {
	SerialNumber string `json:"serial_number"`

	MachineModel model.ReferenceItem `json:"machine_model"`

	EngineModel        model.ReferenceItem `json:"engine_model"`
	EngineSerialNumber string              `json:"engine_serial_number"`

	TransmissionModel        model.ReferenceItem `json:"transmission_model"`
	TransmissionSerialNumber string              `json:"transmission_serial_number"`

	DriveAxleModel        model.ReferenceItem `json:"drive_axle_model"`
	DriveAxleSerialNumber string              `json:"drive_axle_serial_number"`

	SteerAxleModel        model.ReferenceItem `json:"steer_axle_model"`
	SteerAxleSerialNumber string              `json:"steer_axle_serial_number"`
}

func machinePublicResponse(m *model.Machine) MachinePublicResponse {
	return MachinePublicResponse{
		SerialNumber:             m.SerialNumber,
		MachineModel:             m.MachineModel,
		EngineModel:              m.EngineModel,
		EngineSerialNumber:       m.EngineSerialNumber,
		TransmissionModel:        m.TransmissionModel,
		TransmissionSerialNumber: m.TransmissionSerialNumber,
		DriveAxleModel:           m.DriveAxleModel,
		DriveAxleSerialNumber:    m.DriveAxleSerialNumber,
		SteerAxleModel:           m.SteerAxleModel,
		SteerAxleSerialNumber:    m.SteerAxleSerialNumber,
	}
}

// MaintenanceResponse is the maintenance-record projection.
type MaintenanceResponse struct {
	ID                  uint                 `json:"id"`
	MaintenanceType     model.ReferenceItem  `json:"maintenance_type"`
	MaintenanceDate     model.Date           `json:"maintenance_date"`
	OperatingTime       *int64               `json:"operating_time"`
	WorkOrderNumber     string               `json:"work_order_number"`
	WorkOrderDate       *model.Date          `json:"work_order_date"`
	ServiceOrganization *model.ReferenceItem `json:"service_organization"`
	Machine             MachineShortResponse `json:"machine"`
	ServiceCompany      *UserShortResponse   `json:"service_company"`
	CreatedAt           time.Time            `json:"created_at"`
	UpdatedAt           time.Time            `json:"updated_at"`
}

func maintenanceResponse(rec *model.Maintenance) MaintenanceResponse {
	return MaintenanceResponse{
		ID:                  rec.ID,
		MaintenanceType:     rec.MaintenanceType,
		MaintenanceDate:     rec.MaintenanceDate,
		OperatingTime:       rec.OperatingTime,
		WorkOrderNumber:     rec.WorkOrderNumber,
		WorkOrderDate:       rec.WorkOrderDate,
		ServiceOrganization: rec.ServiceOrganization,
		Machine:             machineShort(&rec.Machine),
		ServiceCompany:      userShort(rec.ServiceCompany),
		CreatedAt:           rec.CreatedAt,
		UpdatedAt:           rec.UpdatedAt,
	}
}

// ClaimResponse is the claim projection. Downtime is server-derived.
type ClaimResponse struct {
	ID                 uint                 `json:"id"`
	FailureDate        model.Date           `json:"failure_date"`
	OperatingTime      *int64               `json:"operating_time"`
	FailureNode        model.ReferenceItem  `json:"failure_node"`
	FailureDescription string               `json:"failure_description"`
	RepairMethod       model.ReferenceItem  `json:"repair_method"`
	SpareParts         string               `json:"spare_parts"`
	RecoveryDate       *model.Date          `json:"recovery_date"`
	Downtime           *int64               `json:"downtime"`
	Machine            MachineShortResponse `json:"machine"`
	ServiceCompany     *UserShortResponse   `json:"service_company"`
	CreatedAt          time.Time            `json:"created_at"`
	UpdatedAt          time.Time            `json:"updated_at"`
}

func claimResponse(rec *model.Claim) ClaimResponse {
	return ClaimResponse{
		ID:                 rec.ID,
		FailureDate:        rec.FailureDate,
		OperatingTime:      rec.OperatingTime,
		FailureNode:        rec.FailureNode,
		FailureDescription: rec.FailureDescription,
		RepairMethod:       rec.RepairMethod,
		SpareParts:         rec.SpareParts,
		RecoveryDate:       rec.RecoveryDate,
		Downtime:           rec.Downtime,
		Machine:            machineShort(&rec.Machine),
		ServiceCompany:     userShort(rec.ServiceCompany),
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
	}
}
