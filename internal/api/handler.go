package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"timeclock-kiosk/internal/clock"
	"timeclock-kiosk/internal/employee"
	"timeclock-kiosk/internal/manager"
	"timeclock-kiosk/internal/report"
	"timeclock-kiosk/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	engine    *clock.Engine
	corrector *manager.Corrector
	session   *manager.Session
	reports   *report.Service
	employees employee.Directory
	store     store.ShiftStore
}

// NewHandler creates a new API handler.
func NewHandler(
	engine *clock.Engine,
	corrector *manager.Corrector,
	session *manager.Session,
	reports *report.Service,
	employees employee.Directory,
	shiftStore store.ShiftStore,
) *Handler {
	return &Handler{
		engine:    engine,
		corrector: corrector,
		session:   session,
		reports:   reports,
		employees: employees,
		store:     shiftStore,
	}
}

// respondFailure maps lifecycle failure kinds to HTTP statuses, keeping the
// kind in the payload so the UI can branch without parsing messages.
func respondFailure(c *gin.Context, err error) {
	f := clock.AsFailure(err)
	if f == nil {
		var se *store.StoreError
		if errors.As(err, &se) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": "storage failure, please try again"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	status := http.StatusConflict
	switch f.Kind {
	case clock.KindEmployeeNotFound, clock.KindShiftNotFound:
		status = http.StatusNotFound
	case clock.KindManagerAuthRequired:
		status = http.StatusUnauthorized
	case clock.KindNegativeOrZeroDuration:
		status = http.StatusUnprocessableEntity
	case clock.KindPersistenceFailed:
		status = http.StatusServiceUnavailable
	}

	payload := gin.H{"error": f.Message, "kind": string(f.Kind)}
	if f.Kind == clock.KindCooldownActive {
		payload["remainingSeconds"] = int(f.Remaining.Seconds())
		payload["nextAllowed"] = f.NextAllowed
	}
	c.JSON(status, payload)
}
