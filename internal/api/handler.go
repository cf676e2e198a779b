package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet-service-backend/config"
	"fleet-service-backend/internal/auth"
	"fleet-service-backend/internal/model"
	"fleet-service-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store  store.Store
	issuer *auth.Issuer
	cfg    *config.Config
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, issuer *auth.Issuer, cfg *config.Config) *Handler {
	return &Handler{
		store:  s,
		issuer: issuer,
		cfg:    cfg,
	}
}

// uintParam parses a numeric path parameter.
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(v), true
}

// uintQuery parses an optional numeric query parameter.
func uintQuery(c *gin.Context, name string) (*uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return nil, false
	}
	u := uint(v)
	return &u, true
}

// dateQuery parses an optional YYYY-MM-DD query parameter.
func dateQuery(c *gin.Context, name string) (*model.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	d, err := model.ParseDate(raw)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name + ", expected YYYY-MM-DD"})
		return nil, false
	}
	return &d, true
}

// pageQuery reads pagination controls. export=1 disables pagination and
// returns the full filtered collection.
func (h *Handler) pageQuery(c *gin.Context) store.Page {
	page := store.Page{
		Number: 1,
		Size:   h.cfg.Server.PageSize,
		Export: c.Query("export") == "1",
	}
	if n, err := strconv.Atoi(c.Query("page")); err == nil && n > 0 {
		page.Number = n
	}
	if size, err := strconv.Atoi(c.Query("page_size")); err == nil && size > 0 {
		if size > h.cfg.Server.MaxPageSize {
			size = h.cfg.Server.MaxPageSize
		}
		page.Size = size
	}
	return page
}
