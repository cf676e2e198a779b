package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-service-backend/internal/model"
	"fleet-service-backend/internal/mw"
	"fleet-service-backend/internal/store"
)

// ListClaims handles GET /api/claims.
func (h *Handler) ListClaims(c *gin.Context) {
	f := store.ClaimFilter{
		MachineSerial:     c.Query("machine_serial"),
		MachineSerialLike: c.Query("machine_serial_contains"),
		Page:              h.pageQuery(c),
	}

	var ok bool
	if f.FailureNodeID, ok = uintQuery(c, "failure_node"); !ok {
		return
	}
	if f.RepairMethodID, ok = uintQuery(c, "repair_method"); !ok {
		return
	}
	if f.ServiceCompanyID, ok = uintQuery(c, "service_company"); !ok {
		return
	}
	if f.Date, ok = dateQuery(c, "failure_date"); !ok {
		return
	}
	if f.DateFrom, ok = dateQuery(c, "failure_date_gte"); !ok {
		return
	}
	if f.DateTo, ok = dateQuery(c, "failure_date_lte"); !ok {
		return
	}

	claims, err := h.store.ListClaims(c.Request.Context(), mw.Principal(c), f)
	if err != nil {
		writeError(c, err)
		return
	}

	responses := make([]ClaimResponse, 0, len(claims))
	for i := range claims {
		responses = append(responses, claimResponse(&claims[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// GetClaim handles GET /api/claims/:id.
func (h *Handler) GetClaim(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	claim, err := h.store.GetClaim(c.Request.Context(), mw.Principal(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, claimResponse(claim))
}

type createClaimRequest struct {
	MachineID          uint        `json:"machine_id"`
	FailureDate        model.Date  `json:"failure_date"`
	OperatingTime      *int64      `json:"operating_time"`
	FailureNodeID      uint        `json:"failure_node_id"`
	FailureDescription string      `json:"failure_description"`
	RepairMethodID     uint        `json:"repair_method_id"`
	SpareParts         string      `json:"spare_parts"`
	RecoveryDate       *model.Date `json:"recovery_date"`
}

// CreateClaim handles POST /api/claims. Clients are read-only for
// claims; downtime is not part of the request shape at all and is
// derived from the two dates at the write boundary.
func (h *Handler) CreateClaim(c *gin.Context) {
	var req createClaimRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	claim := model.Claim{
		MachineID:          req.MachineID,
		FailureDate:        req.FailureDate,
		OperatingTime:      req.OperatingTime,
		FailureNodeID:      req.FailureNodeID,
		FailureDescription: req.FailureDescription,
		RepairMethodID:     req.RepairMethodID,
		SpareParts:         req.SpareParts,
		RecoveryDate:       req.RecoveryDate,
	}

	if err := h.store.CreateClaim(c.Request.Context(), mw.Principal(c), &claim); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, claimResponse(&claim))
}
