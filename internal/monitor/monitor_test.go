package monitor

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
	"timeclock-kiosk/internal/store"
)

func TestCheckOnceFlagsOnlyOverlongShifts(t *testing.T) {
	gdb, err := gorm.Open(sqlite.Open(memoryDSN(t)), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.EnsureSchema(gdb))
	s := store.NewGormStore(gdb)
	ctx := context.Background()

	now := time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC)
	fresh := now.Add(-2 * time.Hour)
	stale := now.Add(-14 * time.Hour)

	require.NoError(t, s.Save(ctx, &model.ShiftRecord{
		EmployeeID: 1, ShiftDate: "2024-03-02", ActualClockIn: &fresh, IsActive: true,
	}))
	require.NoError(t, s.Save(ctx, &model.ShiftRecord{
		EmployeeID: 2, ShiftDate: "2024-03-01", ActualClockIn: &stale, IsActive: true,
	}))

	w := NewWatcher(s, 12*time.Hour, time.Minute)
	w.now = func() time.Time { return now }

	overlong := w.CheckOnce(ctx)
	require.Len(t, overlong, 1)
	assert.Equal(t, int64(2), overlong[0].EmployeeID)
}

// memoryDSN gives each test its own named in-memory database; cache=shared
// keeps it visible across gorm's pooled connections.
func memoryDSN(t *testing.T) string {
	return "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
}
