package api

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"timeclock-kiosk/config"
	"timeclock-kiosk/internal/mw"
)

// NewRouter creates and configures the kiosk HTTP router.
func NewRouter(h *Handler, cfg *config.ServerConfig) *gin.Engine {
	r := gin.Default()

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst)

	reportTTL := time.Duration(cfg.ReportCacheTTLSeconds) * time.Second
	cacheStore := cache.New(reportTTL, 2*reportTTL)
	caching := mw.Cache(cacheStore, reportTTL)

	api := r.Group("/api")
	api.Use(rateLimiter)
	{
		api.GET("/employees", h.ListEmployees)
		api.POST("/employees", h.SaveEmployee)

		// Clock operations and status stay uncached: the gates and the
		// projection must be re-evaluated on every call.
		api.POST("/employees/:id/clock-in", h.ClockIn)
		api.POST("/employees/:id/clock-out", h.ClockOut)
		api.GET("/employees/:id/status", h.Status)

		api.POST("/manager/session", h.AuthenticateManager)
		api.GET("/manager/session", h.ManagerSession)
		api.PUT("/manager/shifts/:shift_id", h.CorrectShift)
		api.DELETE("/manager/shifts", h.DeleteShifts)

		api.GET("/reports/shifts", caching, h.ReportShifts)
		api.GET("/reports/summary", caching, h.ReportSummary)
		api.GET("/reports/export", h.ExportReport)
	}

	return r
}
