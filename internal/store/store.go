package store

import (
	"context"
	"errors"
	"log"

	"gorm.io/gorm"

	"timeclock-kiosk/internal/model"
)

// ShiftStore defines all persistence operations over shift records. Lookups
// that find nothing return (nil, nil); every failure is a *StoreError.
type ShiftStore interface {
	// GetActiveShift returns the employee's single open shift regardless of
	// its shift date, which is what keeps cross-midnight shifts discoverable.
	GetActiveShift(ctx context.Context, employeeID int64) (*model.ShiftRecord, error)
	GetShiftByID(ctx context.Context, employeeID, shiftID int64) (*model.ShiftRecord, error)
	GetShiftForDate(ctx context.Context, employeeID int64, date string) (*model.ShiftRecord, error)
	GetShiftsInRange(ctx context.Context, employeeID int64, start, end string) ([]model.ShiftRecord, error)
	// LastCompletedShift returns the most recently finished shift, used for
	// cooldown enforcement and the last-clock-out projection.
	LastCompletedShift(ctx context.Context, employeeID int64) (*model.ShiftRecord, error)
	ActiveShifts(ctx context.Context) ([]model.ShiftRecord, error)
	Save(ctx context.Context, rec *model.ShiftRecord) error
	DeleteForDate(ctx context.Context, employeeID int64, date string) error
	DeleteRange(ctx context.Context, employeeID int64, start, end string) error
	DB() *gorm.DB
}

// shiftColumns is the full column set the current build knows about. The
// store intersects it with what actually exists so it stays usable against a
// snapshot that has not been upgraded yet; absent columns read as defaults.
var shiftColumns = []string{
	"id", "employee_id", "shift_date",
	"clock_in_time", "clock_out_time",
	"actual_clock_in", "actual_clock_out",
	"is_active", "total_hours", "gross_pay",
	"notes", "clock_in_photo", "clock_out_photo",
	"created_at", "updated_at",
}

type gormShiftStore struct {
	db   *gorm.DB
	cols []string
	has  map[string]bool
}

// NewGormStore creates a gorm-backed ShiftStore. The column probe runs once
// here; a store opened mid-migration simply sees the columns that exist.
func NewGormStore(db *gorm.DB) ShiftStore {
	s := &gormShiftStore{db: db, has: map[string]bool{}}

	types, err := db.Migrator().ColumnTypes(&model.ShiftRecord{})
	if err != nil {
		// No probe means no tolerance: assume the full shape and let the
		// first query surface the real problem.
		log.Printf("Warning: could not probe shift_records columns: %v", err)
		s.cols = shiftColumns
		for _, c := range shiftColumns {
			s.has[c] = true
		}
		return s
	}

	existing := map[string]bool{}
	for _, ct := range types {
		existing[ct.Name()] = true
	}
	for _, c := range shiftColumns {
		if existing[c] {
			s.cols = append(s.cols, c)
			s.has[c] = true
		}
	}
	return s
}

func (s *gormShiftStore) DB() *gorm.DB {
	return s.db
}

// shifts starts a query that selects only the columns present in the probed
// schema, so rows from an older shape hydrate with zero-value defaults.
func (s *gormShiftStore) shifts(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&model.ShiftRecord{}).Select(s.cols)
}

// activeClause returns the predicate for an open shift. Pre-v3 snapshots have
// no is_active column, so the legacy "no clock-out recorded" convention is
// the only signal available there.
func (s *gormShiftStore) activeClause(q *gorm.DB) *gorm.DB {
	if s.has["is_active"] {
		return q.Where("is_active = ?", true)
	}
	q = q.Where("clock_out_time IS NULL OR clock_out_time = ''")
	if s.has["actual_clock_out"] {
		q = q.Where("actual_clock_out IS NULL")
	}
	return q
}

func (s *gormShiftStore) GetActiveShift(ctx context.Context, employeeID int64) (*model.ShiftRecord, error) {
	q := s.activeClause(s.shifts(ctx).Where("employee_id = ?", employeeID))
	if s.has["actual_clock_in"] {
		q = q.Order("actual_clock_in DESC")
	} else {
		q = q.Order("id DESC")
	}

	var rec model.ShiftRecord
	err := q.First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get active shift", err)
	}
	return &rec, nil
}

func (s *gormShiftStore) GetShiftByID(ctx context.Context, employeeID, shiftID int64) (*model.ShiftRecord, error) {
	var rec model.ShiftRecord
	err := s.shifts(ctx).
		Where("id = ? AND employee_id = ?", shiftID, employeeID).
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get shift by id", err)
	}
	return &rec, nil
}

func (s *gormShiftStore) GetShiftForDate(ctx context.Context, employeeID int64, date string) (*model.ShiftRecord, error) {
	var rec model.ShiftRecord
	err := s.shifts(ctx).
		Where("employee_id = ? AND shift_date = ?", employeeID, date).
		Order("id DESC").
		First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("get shift for date", err)
	}
	return &rec, nil
}

func (s *gormShiftStore) GetShiftsInRange(ctx context.Context, employeeID int64, start, end string) ([]model.ShiftRecord, error) {
	var recs []model.ShiftRecord
	err := s.shifts(ctx).
		Where("employee_id = ? AND shift_date BETWEEN ? AND ?", employeeID, start, end).
		Order("shift_date ASC, id ASC").
		Find(&recs).Error
	if err != nil {
		return nil, wrap("get shifts in range", err)
	}
	return recs, nil
}

func (s *gormShiftStore) LastCompletedShift(ctx context.Context, employeeID int64) (*model.ShiftRecord, error) {
	if !s.has["actual_clock_out"] {
		// Legacy snapshot carries no authoritative end instants; there is
		// nothing meaningful to enforce a cooldown against.
		return nil, nil
	}

	q := s.shifts(ctx).
		Where("employee_id = ? AND actual_clock_out IS NOT NULL", employeeID)
	if s.has["is_active"] {
		q = q.Where("is_active = ?", false)
	}

	var rec model.ShiftRecord
	err := q.Order("actual_clock_out DESC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap("last completed shift", err)
	}
	return &rec, nil
}

func (s *gormShiftStore) ActiveShifts(ctx context.Context) ([]model.ShiftRecord, error) {
	var recs []model.ShiftRecord
	err := s.activeClause(s.shifts(ctx)).Find(&recs).Error
	if err != nil {
		return nil, wrap("active shifts", err)
	}
	return recs, nil
}

// Save inserts when the record has no id yet and otherwise updates all
// mutable fields in one transaction.
func (s *gormShiftStore) Save(ctx context.Context, rec *model.ShiftRecord) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if rec.ID == 0 {
			return tx.Create(rec).Error
		}
		return tx.Save(rec).Error
	})
	return wrap("save shift", err)
}

func (s *gormShiftStore) DeleteForDate(ctx context.Context, employeeID int64, date string) error {
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND shift_date = ?", employeeID, date).
		Delete(&model.ShiftRecord{}).Error
	return wrap("delete shift for date", err)
}

func (s *gormShiftStore) DeleteRange(ctx context.Context, employeeID int64, start, end string) error {
	err := s.db.WithContext(ctx).
		Where("employee_id = ? AND shift_date BETWEEN ? AND ?", employeeID, start, end).
		Delete(&model.ShiftRecord{}).Error
	return wrap("delete shift range", err)
}
