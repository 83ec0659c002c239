package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

func employeeIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid employee id"})
		return 0, false
	}
	return id, true
}

// ClockIn handles POST /api/employees/{id}/clock-in.
func (h *Handler) ClockIn(c *gin.Context) {
	id, ok := employeeIDParam(c)
	if !ok {
		return
	}

	rec, err := h.engine.ClockIn(c.Request.Context(), id)
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusCreated, rec)
}

// ClockOut handles POST /api/employees/{id}/clock-out.
func (h *Handler) ClockOut(c *gin.Context) {
	id, ok := employeeIDParam(c)
	if !ok {
		return
	}

	res, err := h.engine.ClockOut(c.Request.Context(), id)
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"record":    res.Record,
		"longShift": res.LongShift,
	})
}

// Status handles GET /api/employees/{id}/status. Never cached: working hours
// are recomputed on every call.
func (h *Handler) Status(c *gin.Context) {
	id, ok := employeeIDParam(c)
	if !ok {
		return
	}

	status, err := h.engine.GetStatus(c.Request.Context(), id)
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}
