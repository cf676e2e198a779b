package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PublicMachineSearch handles GET /api/public/machines/search. It is
// the only anonymous data endpoint: a missing serial parameter is a bad
// request, an unknown serial is not found, and a hit returns only the
// ten catalog/identity fields.
func (h *Handler) PublicMachineSearch(c *gin.Context) {
	serial := c.Query("serial")
	if serial == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query parameter 'serial' is required"})
		return
	}

	machine, err := h.store.MachineBySerial(c.Request.Context(), serial)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, machinePublicResponse(machine))
}
