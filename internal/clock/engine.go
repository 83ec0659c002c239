package clock

import (
	"context"
	"log"
	"sync"
	"time"

	"timeclock-kiosk/config"
	"timeclock-kiosk/internal/employee"
	"timeclock-kiosk/internal/model"
	"timeclock-kiosk/internal/payroll"
	"timeclock-kiosk/internal/photo"
	"timeclock-kiosk/internal/store"
)

// Rules holds the lifecycle policy knobs.
type Rules struct {
	Cooldown       time.Duration
	MinShift       time.Duration
	WarnShift      time.Duration
	MaxShift       time.Duration
	BreakThreshold time.Duration
	BreakDuration  time.Duration
}

// RulesFromConfig converts the YAML policy section into engine rules.
func RulesFromConfig(cfg config.ClockConfig) Rules {
	return Rules{
		Cooldown:       cfg.Cooldown(),
		MinShift:       cfg.MinShift(),
		WarnShift:      cfg.WarnShift(),
		MaxShift:       cfg.MaxShift(),
		BreakThreshold: cfg.BreakThreshold(),
		BreakDuration:  cfg.BreakDuration(),
	}
}

// DefaultRules returns the documented default policy: 4h cooldown, 1m
// minimum shift, 12h soft warning, 16h hard maximum, 30m break after 6h.
func DefaultRules() Rules {
	return Rules{
		Cooldown:       4 * time.Hour,
		MinShift:       time.Minute,
		WarnShift:      12 * time.Hour,
		MaxShift:       16 * time.Hour,
		BreakThreshold: 6 * time.Hour,
		BreakDuration:  30 * time.Minute,
	}
}

// Engine is the shift lifecycle state machine: Available -> Working ->
// Available, with cooldown as a derived restriction on Available. All
// time-tracking writes for one employee funnel through a per-employee lock;
// the "already active" and "too soon" gates are re-evaluated on every call,
// never cached, which is what absorbs UI double-taps.
type Engine struct {
	store     store.ShiftStore
	employees employee.Directory
	photos    photo.Capture
	rules     Rules
	now       func() time.Time

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// NewEngine wires the lifecycle engine with its collaborators.
func NewEngine(s store.ShiftStore, d employee.Directory, p photo.Capture, rules Rules) *Engine {
	return &Engine{
		store:     s,
		employees: d,
		photos:    p,
		rules:     rules,
		now:       time.Now,
		locks:     map[int64]*sync.Mutex{},
	}
}

// ClockOutResult carries the updated record plus the soft long-shift signal
// for shifts between the warn and max thresholds. LongShift never blocks;
// what the UI renders for it is a presentation decision.
type ClockOutResult struct {
	Record    *model.ShiftRecord
	LongShift bool
	Elapsed   time.Duration
}

func (e *Engine) lockFor(employeeID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	l, ok := e.locks[employeeID]
	if !ok {
		l = &sync.Mutex{}
		e.locks[employeeID] = l
	}
	return l
}

func (e *Engine) validEmployee(ctx context.Context, employeeID int64) (*model.Employee, error) {
	emp, err := e.employees.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, persistenceFailure(err)
	}
	if emp == nil {
		return nil, failf(KindEmployeeNotFound, "no employee with id %d", employeeID)
	}
	if !emp.IsActive {
		return nil, failf(KindEmployeeInactive, "%s is not an active employee", emp.FullName())
	}
	return emp, nil
}

// ClockIn opens a new shift for the employee. The new record starts with
// shiftDate = today, the authoritative clock-in instant, isActive = true and
// zero hours. A missing photo never blocks the operation.
func (e *Engine) ClockIn(ctx context.Context, employeeID int64) (*model.ShiftRecord, error) {
	emp, err := e.validEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	l := e.lockFor(employeeID)
	l.Lock()
	defer l.Unlock()

	active, err := e.store.GetActiveShift(ctx, employeeID)
	if err != nil {
		return nil, persistenceFailure(err)
	}
	if active != nil {
		return nil, failf(KindAlreadyClockedIn, "already clocked in since %s", clockInLabel(active))
	}

	now := e.now()
	last, err := e.store.LastCompletedShift(ctx, employeeID)
	if err != nil {
		return nil, persistenceFailure(err)
	}
	if last != nil && last.ActualClockOut != nil {
		rested := now.Sub(*last.ActualClockOut)
		if rested < e.rules.Cooldown {
			remaining := e.rules.Cooldown - rested
			f := failf(KindCooldownActive, "cooldown active for another %s", remaining.Round(time.Minute))
			f.Remaining = remaining
			f.NextAllowed = last.ActualClockOut.Add(e.rules.Cooldown)
			return nil, f
		}
	}

	rec := &model.ShiftRecord{
		EmployeeID:    emp.ID,
		ShiftDate:     now.Format(model.DateLayout),
		ClockInTime:   now.Format(model.TimeOfDayLayout),
		ActualClockIn: &now,
		IsActive:      true,
	}

	if handle, err := e.photos.Capture(ctx, emp.ID, photo.EventClockIn); err != nil {
		log.Printf("Clock-in photo unavailable for employee %d: %v", emp.ID, err)
	} else {
		rec.ClockInPhoto = handle
	}

	if err := e.store.Save(ctx, rec); err != nil {
		return nil, persistenceFailure(err)
	}
	return rec, nil
}

// ClockOut closes the employee's active shift, computing stored hours and
// gross pay from the authoritative instants.
func (e *Engine) ClockOut(ctx context.Context, employeeID int64) (*ClockOutResult, error) {
	emp, err := e.validEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	l := e.lockFor(employeeID)
	l.Lock()
	defer l.Unlock()

	active, err := e.store.GetActiveShift(ctx, employeeID)
	if err != nil {
		return nil, persistenceFailure(err)
	}
	if active == nil {
		return nil, failf(KindNotClockedIn, "%s is not clocked in", emp.FullName())
	}

	now := e.now()
	start := shiftStart(active)
	elapsed := now.Sub(start)

	if elapsed < e.rules.MinShift {
		return nil, failf(KindTooSoon, "shift started %d seconds ago, wait at least %s before clocking out",
			int(elapsed.Seconds()), e.rules.MinShift)
	}
	if elapsed > e.rules.MaxShift {
		return nil, failf(KindMaxDurationExceeded,
			"shift exceeds the %s maximum, a manager must authorize it via a correction", e.rules.MaxShift)
	}

	hours, err := payroll.ComputeHours(start, now, e.rules.BreakThreshold, e.rules.BreakDuration)
	if err != nil {
		// Cannot happen once elapsed passed the minimum-shift gate; the
		// calculator still refuses on its own terms.
		return nil, &Failure{Kind: KindNegativeOrZeroDuration, Message: "computed shift duration is not positive", Err: err}
	}

	active.ActualClockOut = &now
	active.ClockOutTime = now.Format(model.TimeOfDayLayout)
	active.IsActive = false
	active.TotalHours = hours
	active.GrossPay = payroll.GrossPay(hours, emp.PayRate)

	if handle, err := e.photos.Capture(ctx, emp.ID, photo.EventClockOut); err != nil {
		log.Printf("Clock-out photo unavailable for employee %d: %v", emp.ID, err)
	} else {
		active.ClockOutPhoto = handle
	}

	if err := e.store.Save(ctx, active); err != nil {
		return nil, persistenceFailure(err)
	}

	return &ClockOutResult{
		Record:    active,
		LongShift: elapsed >= e.rules.WarnShift,
		Elapsed:   elapsed,
	}, nil
}

// IsClockedIn is the single source of truth for "currently working".
func (e *Engine) IsClockedIn(ctx context.Context, employeeID int64) (bool, error) {
	active, err := e.store.GetActiveShift(ctx, employeeID)
	if err != nil {
		return false, persistenceFailure(err)
	}
	return active != nil, nil
}

// shiftStart returns the authoritative start instant, falling back to the
// legacy display fields for rows that predate full timestamps.
func shiftStart(rec *model.ShiftRecord) time.Time {
	if rec.ActualClockIn != nil {
		return *rec.ActualClockIn
	}
	if t, err := time.ParseInLocation(
		model.DateLayout+" "+model.TimeOfDayLayout,
		rec.ShiftDate+" "+rec.ClockInTime, time.Local); err == nil {
		return t
	}
	return rec.CreatedAt
}

func clockInLabel(rec *model.ShiftRecord) string {
	if rec.ActualClockIn != nil {
		return rec.ActualClockIn.Format("2006-01-02 15:04")
	}
	return rec.ShiftDate + " " + rec.ClockInTime
}
