package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-service-backend/internal/model"
	"fleet-service-backend/internal/mw"
	"fleet-service-backend/internal/store"
)

// ListMaintenance handles GET /api/maintenance.
func (h *Handler) ListMaintenance(c *gin.Context) {
	f := store.MaintenanceFilter{
		MachineSerial:     c.Query("machine_serial"),
		MachineSerialLike: c.Query("machine_serial_contains"),
		Page:              h.pageQuery(c),
	}

	var ok bool
	if f.MaintenanceTypeID, ok = uintQuery(c, "maintenance_type"); !ok {
		return
	}
	if f.ServiceCompanyID, ok = uintQuery(c, "service_company"); !ok {
		return
	}
	if f.Date, ok = dateQuery(c, "maintenance_date"); !ok {
		return
	}
	if f.DateFrom, ok = dateQuery(c, "maintenance_date_gte"); !ok {
		return
	}
	if f.DateTo, ok = dateQuery(c, "maintenance_date_lte"); !ok {
		return
	}

	records, err := h.store.ListMaintenance(c.Request.Context(), mw.Principal(c), f)
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]MaintenanceResponse, 0, len(records))
	for i := range records {
		responses = append(responses, maintenanceResponse(&records[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetMaintenance handles GET /api/maintenance/:id.
func (h *Handler) GetMaintenance(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	rec, err := h.store.GetMaintenance(c.Request.Context(), mw.Principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, maintenanceResponse(rec))
}

type createMaintenanceRequest struct {
	MachineID             uint        `json:"machine_id"`
	MaintenanceTypeID     uint        `json:"maintenance_type_id"`
	MaintenanceDate       model.Date  `json:"maintenance_date"`
	OperatingTime         *int64      `json:"operating_time"`
	WorkOrderNumber       string      `json:"work_order_number"`
	WorkOrderDate         *model.Date `json:"work_order_date"`
	ServiceOrganizationID *uint       `json:"service_organization_id"`
}

// CreateMaintenance handles POST /api/maintenance. Who may create for
// which machine, and which service company ends up on the record, is
// decided by the scoping policy; the payload has no say in it.
func (h *Handler) CreateMaintenance(c *gin.Context) {
	var req createMaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec := model.Maintenance{
		MachineID:             req.MachineID,
		MaintenanceTypeID:     req.MaintenanceTypeID,
		MaintenanceDate:       req.MaintenanceDate,
		OperatingTime:         req.OperatingTime,
		WorkOrderNumber:       req.WorkOrderNumber,
		WorkOrderDate:         req.WorkOrderDate,
		ServiceOrganizationID: req.ServiceOrganizationID,
	}

	if err := h.store.CreateMaintenance(c.Request.Context(), mw.Principal(c), &rec); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, maintenanceResponse(&rec))
}
