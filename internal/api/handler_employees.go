package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"timeclock-kiosk/internal/model"
)

// ListEmployees handles GET /api/employees.
func (h *Handler) ListEmployees(c *gin.Context) {
	emps, err := h.employees.ListEmployees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list employees"})
		return
	}
	c.JSON(http.StatusOK, emps)
}

type saveEmployeeRequest struct {
	ID        int64   `json:"id"`
	FirstName string  `json:"firstName" binding:"required"`
	LastName  string  `json:"lastName" binding:"required"`
	JobTitle  string  `json:"jobTitle"`
	PayRate   float64 `json:"payRate"`
	IsActive  *bool   `json:"isActive"`
}

// SaveEmployee handles POST /api/employees (manager only).
func (h *Handler) SaveEmployee(c *gin.Context) {
	if !h.session.IsValid() {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "manager authentication required"})
		return
	}

	var req saveEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	emp := model.Employee{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		JobTitle:  req.JobTitle,
		PayRate:   req.PayRate,
		IsActive:  true,
	}
	if req.IsActive != nil {
		emp.IsActive = *req.IsActive
	}

	if err := h.employees.SaveEmployee(c.Request.Context(), &emp); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save employee"})
		return
	}
	c.JSON(http.StatusOK, emp)
}
