package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"timeclock-kiosk/internal/model"
	"timeclock-kiosk/internal/report"
)

// TestKioskLifecycle drives one shift through the whole HTTP surface: clock
// in, clock out, manager correction, reporting, and record removal.
func TestKioskLifecycle(t *testing.T) {
	router, st := setupRouter(t)
	ctx := context.Background()

	// Clock in and backdate the open shift eight hours so the clock-out
	// exercises the break deduction.
	w := doJSON(t, router, "POST", "/api/employees/1/clock-in", "")
	require.Equal(t, http.StatusCreated, w.Code)

	active, err := st.GetActiveShift(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, active)
	start := active.ActualClockIn.Add(-8 * time.Hour)
	active.ActualClockIn = &start
	require.NoError(t, st.Save(ctx, active))

	w = doJSON(t, router, "POST", "/api/employees/1/clock-out", "")
	require.Equal(t, http.StatusOK, w.Code)

	var out struct {
		Record model.ShiftRecord `json:"record"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.InDelta(t, 7.5, out.Record.TotalHours, 0.02)
	assert.InDelta(t, 112.5, out.Record.GrossPay, 0.3)

	// Manager fixes the clock-out to six hours after the start; six hours
	// is under the break threshold, so nothing is deducted.
	w = doJSON(t, router, "POST", "/api/manager/session", `{"pin":"`+testPIN+`"}`)
	require.Equal(t, http.StatusOK, w.Code)

	fixedOut := start.Add(6 * time.Hour)
	body := fmt.Sprintf(`{"employeeId":1,"clockOut":%q}`, fixedOut.Format(time.RFC3339Nano))
	w = doJSON(t, router, "PUT", fmt.Sprintf("/api/manager/shifts/%d", out.Record.ID), body)
	require.Equal(t, http.StatusOK, w.Code)

	var corrected model.ShiftRecord
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &corrected))
	assert.InDelta(t, 6.0, corrected.TotalHours, 0.001)
	assert.InDelta(t, 90.0, corrected.GrossPay, 0.001)

	// The corrected shift shows up in reports for its bucketed date.
	date := corrected.ShiftDate
	w = doJSON(t, router, "GET", "/api/reports/shifts?start="+date+"&end="+date, "")
	require.Equal(t, http.StatusOK, w.Code)

	var rows []report.Row
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Dana", rows[0].FirstName)
	assert.InDelta(t, 6.0, rows[0].TotalHours, 0.001)

	w = doJSON(t, router, "GET", "/api/reports/summary?start="+date+"&end="+date, "")
	require.Equal(t, http.StatusOK, w.Code)

	var summaries []report.Summary
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &summaries))
	require.Len(t, summaries, 1)
	assert.Equal(t, 1, summaries[0].Shifts)
	assert.InDelta(t, 90.0, summaries[0].TotalPay, 0.001)

	w = doJSON(t, router, "GET", "/api/reports/export?start="+date+"&end="+date, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "shifts_"+date)
	assert.NotZero(t, w.Body.Len())

	// Manager removes the day's records; without a session the delete is
	// rejected outright.
	w = doJSON(t, router, "DELETE", "/api/manager/shifts?employee_id=1&date="+date, "")
	require.Equal(t, http.StatusNoContent, w.Code)

	// A distinct query string sidesteps the report cache from the earlier
	// read.
	w = doJSON(t, router, "GET", "/api/reports/shifts?start="+date+"&end="+date+"&employee_id=1", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &rows))
	assert.Empty(t, rows)
}

func TestDeleteShiftsRequiresSession(t *testing.T) {
	router, _ := setupRouter(t)

	w := doJSON(t, router, "DELETE", "/api/manager/shifts?employee_id=1&date=2024-03-01", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
