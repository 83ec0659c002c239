package monitor

import (
	"context"
	"log"
	"time"

	"timeclock-kiosk/internal/model"
	"timeclock-kiosk/internal/store"
)

// Watcher periodically scans for shifts that have been open past the warn
// threshold, so a forgotten clock-out shows up in the logs long before the
// employee hits the hard maximum. It only observes; records are only closed
// by clock-out or a manager correction.
type Watcher struct {
	store     store.ShiftStore
	warnAfter time.Duration
	interval  time.Duration
	now       func() time.Time
}

// NewWatcher creates a Watcher flagging shifts open longer than warnAfter.
func NewWatcher(s store.ShiftStore, warnAfter, interval time.Duration) *Watcher {
	return &Watcher{store: s, warnAfter: warnAfter, interval: interval, now: time.Now}
}

// Run starts the watch loop until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) {
	log.Println("Starting long-shift watcher...")
	w.CheckOnce(ctx)

	timer := time.NewTimer(w.interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Long-shift watcher shutting down.")
			return
		case <-timer.C:
			w.CheckOnce(ctx)
			timer.Reset(w.interval)
		}
	}
}

// CheckOnce performs a single scan and returns the overlong shifts.
func (w *Watcher) CheckOnce(ctx context.Context) []model.ShiftRecord {
	active, err := w.store.ActiveShifts(ctx)
	if err != nil {
		log.Printf("Long-shift scan failed: %v", err)
		return nil
	}

	now := w.now()
	var overlong []model.ShiftRecord
	for _, rec := range active {
		if rec.ActualClockIn == nil {
			continue
		}
		elapsed := now.Sub(*rec.ActualClockIn)
		if elapsed >= w.warnAfter {
			log.Printf("Employee %d has been clocked in for %s (since %s)",
				rec.EmployeeID, elapsed.Round(time.Minute), rec.ActualClockIn.Format("2006-01-02 15:04"))
			overlong = append(overlong, rec)
		}
	}
	return overlong
}
