package manager

import (
	"context"
	"time"

	"timeclock-kiosk/internal/clock"
	"timeclock-kiosk/internal/employee"
	"timeclock-kiosk/internal/model"
	"timeclock-kiosk/internal/payroll"
	"timeclock-kiosk/internal/store"
)

// Corrector is the manager-authenticated override of a shift's recorded
// times. It bypasses the lifecycle engine's gates (this is how a >16h shift
// gets authorized) but reuses the duration calculator and rejects any
// correction that would not leave a strictly positive duration.
type Corrector struct {
	store     store.ShiftStore
	employees employee.Directory
	session   *Session
	rules     clock.Rules
}

// NewCorrector wires the correction workflow.
func NewCorrector(s store.ShiftStore, d employee.Directory, session *Session, rules clock.Rules) *Corrector {
	return &Corrector{store: s, employees: d, session: session, rules: rules}
}

// Correction holds the fields a manager may override. Nil means "leave as
// recorded".
type Correction struct {
	ClockIn  *time.Time
	ClockOut *time.Time
	Note     *string
}

// CorrectShift applies a correction to the given shift. When both instants
// are present afterwards, hours and pay are recomputed; when the corrected
// clock-in moves to a different calendar date, the shift is re-bucketed to
// that date. Nothing is persisted on rejection.
func (c *Corrector) CorrectShift(ctx context.Context, employeeID, shiftID int64, chg Correction) (*model.ShiftRecord, error) {
	if !c.session.IsValid() {
		return nil, &clock.Failure{Kind: clock.KindManagerAuthRequired, Message: "manager authentication required"}
	}

	emp, err := c.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, &clock.Failure{Kind: clock.KindPersistenceFailed, Message: "could not load employee", Err: err}
	}
	if emp == nil {
		return nil, &clock.Failure{Kind: clock.KindEmployeeNotFound, Message: "no such employee"}
	}

	rec, err := c.store.GetShiftByID(ctx, employeeID, shiftID)
	if err != nil {
		return nil, &clock.Failure{Kind: clock.KindPersistenceFailed, Message: "could not load shift", Err: err}
	}
	if rec == nil {
		return nil, &clock.Failure{Kind: clock.KindShiftNotFound, Message: "no such shift for this employee"}
	}

	if chg.ClockIn != nil {
		rec.ActualClockIn = chg.ClockIn
		rec.ClockInTime = chg.ClockIn.Format(model.TimeOfDayLayout)
	}
	if chg.ClockOut != nil {
		rec.ActualClockOut = chg.ClockOut
		rec.ClockOutTime = chg.ClockOut.Format(model.TimeOfDayLayout)
		rec.IsActive = false
	}
	if chg.Note != nil {
		rec.Notes = *chg.Note
	}

	if rec.ActualClockIn != nil && rec.ActualClockOut != nil {
		hours, err := payroll.ComputeHours(*rec.ActualClockIn, *rec.ActualClockOut, c.rules.BreakThreshold, c.rules.BreakDuration)
		if err != nil {
			return nil, &clock.Failure{
				Kind:    clock.KindNegativeOrZeroDuration,
				Message: "corrected clock-out must be after corrected clock-in",
				Err:     err,
			}
		}
		rec.TotalHours = hours
		rec.GrossPay = payroll.GrossPay(hours, emp.PayRate)
	}

	// Re-bucket so reporting groups the shift under its corrected date.
	if rec.ActualClockIn != nil {
		if date := rec.ActualClockIn.Format(model.DateLayout); date != rec.ShiftDate {
			rec.ShiftDate = date
		}
	}

	if err := c.store.Save(ctx, rec); err != nil {
		return nil, &clock.Failure{Kind: clock.KindPersistenceFailed, Message: "could not persist the correction, please try again", Err: err}
	}
	return rec, nil
}
