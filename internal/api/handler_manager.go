package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"timeclock-kiosk/internal/manager"
)

type pinRequest struct {
	PIN string `json:"pin" binding:"required"`
}

// AuthenticateManager handles POST /api/manager/session.
func (h *Handler) AuthenticateManager(c *gin.Context) {
	var req pinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	if !h.session.Authenticate(req.PIN) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid PIN"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"valid":            true,
		"remainingSeconds": int(h.session.Remaining().Seconds()),
	})
}

// ManagerSession handles GET /api/manager/session.
func (h *Handler) ManagerSession(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"valid":            h.session.IsValid(),
		"remainingSeconds": int(h.session.Remaining().Seconds()),
	})
}

type correctShiftRequest struct {
	EmployeeID int64      `json:"employeeId" binding:"required"`
	ClockIn    *time.Time `json:"clockIn"`
	ClockOut   *time.Time `json:"clockOut"`
	Note       *string    `json:"note"`
}

// CorrectShift handles PUT /api/manager/shifts/{shift_id}.
func (h *Handler) CorrectShift(c *gin.Context) {
	shiftID, err := strconv.ParseInt(c.Param("shift_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid shift id"})
		return
	}

	var req correctShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rec, err := h.corrector.CorrectShift(c.Request.Context(), req.EmployeeID, shiftID, manager.Correction{
		ClockIn:  req.ClockIn,
		ClockOut: req.ClockOut,
		Note:     req.Note,
	})
	if err != nil {
		respondFailure(c, err)
		return
	}
	c.JSON(http.StatusOK, rec)
}

// DeleteShifts handles DELETE /api/manager/shifts (manager only). Either a
// single date or an inclusive start/end range must be given.
func (h *Handler) DeleteShifts(c *gin.Context) {
	if !h.session.IsValid() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "manager authentication required"})
		return
	}

	employeeID, err := strconv.ParseInt(c.Query("employee_id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee_id"})
		return
	}

	ctx := c.Request.Context()
	date, start, end := c.Query("date"), c.Query("start"), c.Query("end")
	switch {
	case date != "":
		if !validDate(date) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, use YYYY-MM-DD"})
			return
		}
		if err := h.store.DeleteForDate(ctx, employeeID, date); err != nil {
			respondFailure(c, err)
			return
		}
	case start != "" && end != "":
		if !validDate(start) || !validDate(end) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid range, use YYYY-MM-DD"})
			return
		}
		if err := h.store.DeleteRange(ctx, employeeID, start, end); err != nil {
			respondFailure(c, err)
			return
		}
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "date or start/end required"})
		return
	}
	c.Status(http.StatusNoContent)
}
