package clock

import (
	"context"

	"timeclock-kiosk/internal/model"
)

// GetStatus computes the human-facing status projection for an employee. It
// is a pure read: working hours are recomputed live on every call and the
// result is never cached or persisted.
func (e *Engine) GetStatus(ctx context.Context, employeeID int64) (*model.EmployeeShiftStatus, error) {
	status := &model.EmployeeShiftStatus{EmployeeID: employeeID}
	now := e.now()
	today := now.Format(model.DateLayout)

	active, err := e.store.GetActiveShift(ctx, employeeID)
	if err != nil {
		return nil, persistenceFailure(err)
	}

	if active != nil {
		start := shiftStart(active)
		status.IsWorking = true
		status.ShiftStarted = &start
		status.WorkingHours = now.Sub(start).Hours()
		status.IsCrossMidnight = start.Format(model.DateLayout) < today
		return status, nil
	}

	completed, err := e.store.GetShiftsInRange(ctx, employeeID, today, today)
	if err != nil {
		return nil, persistenceFailure(err)
	}
	for _, rec := range completed {
		if rec.Completed() {
			status.TodayCompletedHours += rec.TotalHours
		}
	}

	last, err := e.store.LastCompletedShift(ctx, employeeID)
	if err != nil {
		return nil, persistenceFailure(err)
	}
	if last != nil {
		status.LastClockOut = last.ActualClockOut
	}
	return status, nil
}
