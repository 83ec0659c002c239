package api

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"timeclock-kiosk/internal/model"
	"timeclock-kiosk/internal/report"
)

func validDate(value string) bool {
	_, err := time.Parse(model.DateLayout, value)
	return err == nil
}

func reportParams(c *gin.Context) (start, end string, filter report.Filter, ok bool) {
	start, end = c.Query("start"), c.Query("end")
	if !validDate(start) || !validDate(end) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "start and end are required, use YYYY-MM-DD"})
		return "", "", report.Filter{}, false
	}

	if raw := c.Query("employee_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid employee_id"})
			return "", "", report.Filter{}, false
		}
		filter.EmployeeID = id
	}
	filter.JobTitle = c.Query("job_title")
	return start, end, filter, true
}

// ReportShifts handles GET /api/reports/shifts.
func (h *Handler) ReportShifts(c *gin.Context) {
	start, end, filter, ok := reportParams(c)
	if !ok {
		return
	}

	rows, err := h.reports.Rows(c.Request.Context(), start, end, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query shifts"})
		return
	}
	c.JSON(http.StatusOK, rows)
}

// ReportSummary handles GET /api/reports/summary.
func (h *Handler) ReportSummary(c *gin.Context) {
	start, end, filter, ok := reportParams(c)
	if !ok {
		return
	}

	groupBy := report.GroupBy(c.DefaultQuery("group_by", string(report.GroupByEmployee)))
	summaries, err := h.reports.Summarize(c.Request.Context(), start, end, groupBy, filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

// ExportReport handles GET /api/reports/export: the same rows and summary as
// the JSON endpoints, rendered as a workbook.
func (h *Handler) ExportReport(c *gin.Context) {
	start, end, filter, ok := reportParams(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()
	rows, err := h.reports.Rows(ctx, start, end, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to query shifts"})
		return
	}

	groupBy := report.GroupBy(c.DefaultQuery("group_by", string(report.GroupByEmployee)))
	summaries, err := h.reports.Summarize(ctx, start, end, groupBy, filter)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	f, err := report.ExportXLSX(rows, summaries)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build workbook"})
		return
	}
	defer f.Close()

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to write workbook"})
		return
	}

	filename := fmt.Sprintf("shifts_%s_%s.xlsx", start, end)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}
