package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-service-backend/internal/mw"
	"fleet-service-backend/internal/store"
)

// ListMachines handles GET /api/machines. The visible set is scoped to
// the caller's role before any filter applies.
func (h *Handler) ListMachines(c *gin.Context) {
	f := store.MachineFilter{
		SerialContains: c.Query("serial"),
		Page:           h.pageQuery(c),
	}

	var ok bool
	if f.MachineModelID, ok = uintQuery(c, "machine_model"); !ok {
		return
	}
	if f.EngineModelID, ok = uintQuery(c, "engine_model"); !ok {
		return
	}
	if f.TransmissionModelID, ok = uintQuery(c, "transmission_model"); !ok {
		return
	}
	if f.DriveAxleModelID, ok = uintQuery(c, "drive_axle_model"); !ok {
		return
	}
	if f.SteerAxleModelID, ok = uintQuery(c, "steer_axle_model"); !ok {
		return
	}

	machines, err := h.store.ListMachines(c.Request.Context(), mw.Principal(c), f)
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]MachineResponse, 0, len(machines))
	for i := range machines {
		responses = append(responses, machineResponse(&machines[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetMachine handles GET /api/machines/:id. Out-of-scope ids report 404
// exactly like nonexistent ones.
func (h *Handler) GetMachine(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	machine, err := h.store.GetMachine(c.Request.Context(), mw.Principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, machineResponse(machine))
}
