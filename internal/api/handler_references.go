package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-service-backend/internal/model"
	"fleet-service-backend/internal/mw"
	"fleet-service-backend/internal/store"
)

// ListReferences handles GET /api/references. Reading the catalog is
// open to any authenticated principal.
func (h *Handler) ListReferences(c *gin.Context) {
	f := store.ReferenceFilter{
		Category: model.Category(c.Query("category")),
		Name:     c.Query("name"),
	}
	if f.Category != "" && !f.Category.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown catalog category"})
		return
	}

	items, err := h.store.ListReferences(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// GetReference handles GET /api/references/:id.
func (h *Handler) GetReference(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	item, err := h.store.GetReference(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type createReferenceRequest struct {
	Category    model.Category `json:"category" binding:"required"`
	Name        string         `json:"name" binding:"required"`
	Description string         `json:"description"`
}

// CreateReference handles POST /api/references (manager only).
func (h *Handler) CreateReference(c *gin.Context) {
	var req createReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item := model.ReferenceItem{
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := h.store.CreateReference(c.Request.Context(), mw.Principal(c), &item); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type updateReferenceRequest struct {
	Category    *model.Category `json:"category"`
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
}

// UpdateReference handles PATCH /api/references/:id (manager only).
func (h *Handler) UpdateReference(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req updateReferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.store.UpdateReference(c.Request.Context(), mw.Principal(c), id, store.ReferencePatch{
		Category:    req.Category,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// DeleteReference handles DELETE /api/references/:id (manager only).
// Items still referenced by a machine, maintenance record or claim are
// reported as a conflict, not deleted.
func (h *Handler) DeleteReference(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.store.DeleteReference(c.Request.Context(), mw.Principal(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
