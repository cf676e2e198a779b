package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"fleet-service-backend/config"
	"fleet-service-backend/internal/auth"
	"fleet-service-backend/internal/mw"
	"fleet-service-backend/internal/store"
)

// NewRouter creates and configures the Gin router.
func NewRouter(s store.Store, issuer *auth.Issuer, cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), mw.RequestID(), mw.RequestLogger())

	handler := NewHandler(s, issuer, cfg)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst)

	cacheTTL := time.Duration(cfg.Server.CacheTTLSeconds) * time.Second
	publicCache := mw.Cache(cache.New(cacheTTL, 2*cacheTTL), cacheTTL)

	api := r.Group("/api")
	api.Use(rateLimiter, mw.Authenticate(issuer))
	{
		api.POST("/auth/token", handler.Login)
		api.POST("/auth/token/refresh", handler.RefreshToken)

		// Anonymous lookup by serial number, reduced projection.
		api.GET("/public/machines/search", publicCache, handler.PublicMachineSearch)

		authed := api.Group("")
		authed.Use(mw.RequireAuth())
		{
			authed.GET("/me", handler.CurrentUser)

			authed.GET("/machines", handler.ListMachines)
			authed.GET("/machines/:id", handler.GetMachine)

			authed.GET("/maintenance", handler.ListMaintenance)
			authed.POST("/maintenance", handler.CreateMaintenance)
			authed.GET("/maintenance/:id", handler.GetMaintenance)

			authed.GET("/claims", handler.ListClaims)
			authed.POST("/claims", handler.CreateClaim)
			authed.GET("/claims/:id", handler.GetClaim)

			authed.GET("/references", handler.ListReferences)
			authed.POST("/references", handler.CreateReference)
			authed.GET("/references/:id", handler.GetReference)
			authed.PATCH("/references/:id", handler.UpdateReference)
			authed.DELETE("/references/:id", handler.DeleteReference)
		}
	}

	return r
}
