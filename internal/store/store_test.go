package store

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"timeclock-kiosk/internal/db"
	"timeclock-kiosk/internal/model"
)

func newTestStore(t *testing.T) ShiftStore {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(memoryDSN(t)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(gdb))
	return NewGormStore(gdb)
}

func ts(value string) *time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestGetActiveShiftIgnoresShiftDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Clocked in before midnight; the query date has since rolled over.
	rec := &model.ShiftRecord{
		EmployeeID:    1,
		ShiftDate:     "2024-03-01",
		ClockInTime:   "23:30",
		ActualClockIn: ts("2024-03-01T23:30:00Z"),
		IsActive:      true,
	}
	require.NoError(t, s.Save(ctx, rec))

	found, err := s.GetActiveShift(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, rec.ID, found.ID)
	assert.Equal(t, "2024-03-01", found.ShiftDate)
	assert.True(t, found.IsActive)

	none, err := s.GetActiveShift(ctx, 2)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestSaveInsertThenUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	rec := &model.ShiftRecord{
		EmployeeID:    3,
		ShiftDate:     "2024-03-02",
		ClockInTime:   "08:00",
		ActualClockIn: ts("2024-03-02T08:00:00Z"),
		IsActive:      true,
	}
	require.NoError(t, s.Save(ctx, rec))
	require.NotZero(t, rec.ID)

	rec.IsActive = false
	rec.ClockOutTime = "16:30"
	rec.ActualClockOut = ts("2024-03-02T16:30:00Z")
	rec.TotalHours = 8.0
	rec.GrossPay = 120.0
	require.NoError(t, s.Save(ctx, rec))

	reloaded, err := s.GetShiftByID(ctx, 3, rec.ID)
	require.NoError(t, err)
	require.NotNil(t, reloaded)
	assert.False(t, reloaded.IsActive)
	assert.Equal(t, 8.0, reloaded.TotalHours)
	assert.Equal(t, 120.0, reloaded.GrossPay)
	assert.Equal(t, "16:30", reloaded.ClockOutTime)
}

func TestGetShiftsInRangeInclusiveAscending(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, date := range []string{"2024-03-05", "2024-03-03", "2024-03-01", "2024-03-07"} {
		require.NoError(t, s.Save(ctx, &model.ShiftRecord{
			EmployeeID: 4,
			ShiftDate:  date,
			TotalHours: 8,
		}))
	}

	recs, err := s.GetShiftsInRange(ctx, 4, "2024-03-01", "2024-03-05")
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, "2024-03-01", recs[0].ShiftDate)
	assert.Equal(t, "2024-03-03", recs[1].ShiftDate)
	assert.Equal(t, "2024-03-05", recs[2].ShiftDate)
}

func TestLastCompletedShiftPicksMostRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := &model.ShiftRecord{
		EmployeeID:     5,
		ShiftDate:      "2024-03-01",
		ActualClockIn:  ts("2024-03-01T08:00:00Z"),
		ActualClockOut: ts("2024-03-01T16:00:00Z"),
		TotalHours:     7.5,
	}
	newer := &model.ShiftRecord{
		EmployeeID:     5,
		ShiftDate:      "2024-03-02",
		ActualClockIn:  ts("2024-03-02T08:00:00Z"),
		ActualClockOut: ts("2024-03-02T17:00:00Z"),
		TotalHours:     8.5,
	}
	active := &model.ShiftRecord{
		EmployeeID:    5,
		ShiftDate:     "2024-03-03",
		ActualClockIn: ts("2024-03-03T08:00:00Z"),
		IsActive:      true,
	}
	for _, rec := range []*model.ShiftRecord{older, newer, active} {
		require.NoError(t, s.Save(ctx, rec))
	}

	last, err := s.LastCompletedShift(ctx, 5)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, newer.ID, last.ID)
}

func TestDeleteForDate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, &model.ShiftRecord{EmployeeID: 6, ShiftDate: "2024-03-01"}))
	require.NoError(t, s.Save(ctx, &model.ShiftRecord{EmployeeID: 6, ShiftDate: "2024-03-02"}))

	require.NoError(t, s.DeleteForDate(ctx, 6, "2024-03-01"))

	gone, err := s.GetShiftForDate(ctx, 6, "2024-03-01")
	require.NoError(t, err)
	assert.Nil(t, gone)

	kept, err := s.GetShiftForDate(ctx, 6, "2024-03-02")
	require.NoError(t, err)
	assert.NotNil(t, kept)
}

// TestLegacySchemaTolerantReads opens a store against the original
// time-of-day-only table shape: lookups still work via the legacy open-shift
// convention and the missing columns hydrate as defaults.
func TestLegacySchemaTolerantReads(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(memoryDSN(t)), &gorm.Config{})
	require.NoError(t, err)

	ddl := `CREATE TABLE shift_records (
		id integer PRIMARY KEY AUTOINCREMENT,
		employee_id integer NOT NULL,
		shift_date text NOT NULL,
		clock_in_time text,
		clock_out_time text,
		total_hours real NOT NULL DEFAULT 0,
		created_at datetime,
		updated_at datetime
	)`
	require.NoError(t, gdb.Exec(ddl).Error)
	require.NoError(t, gdb.Exec(
		`INSERT INTO shift_records (employee_id, shift_date, clock_in_time, clock_out_time, total_hours) VALUES (9, '2024-03-01', '09:00', '', 0)`,
	).Error)

	s := NewGormStore(gdb)
	ctx := context.Background()

	found, err := s.GetActiveShift(ctx, 9)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "09:00", found.ClockInTime)
	assert.Nil(t, found.ActualClockIn)
	assert.False(t, found.IsActive) // column absent, default applies
	assert.Empty(t, found.Notes)

	// Without authoritative end instants there is no completed-shift lookup.
	last, err := s.LastCompletedShift(ctx, 9)
	require.NoError(t, err)
	assert.Nil(t, last)
}

// memoryDSN gives each test its own named in-memory database; cache=shared
// keeps it visible across gorm's pooled connections.
func memoryDSN(t *testing.T) string {
	return "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
}
