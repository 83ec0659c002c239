package db

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"timeclock-kiosk/internal/model"
)

// LatestSchemaVersion is the schema version this build expects.
const LatestSchemaVersion = 4

// schemaInfo is the single-row version marker, kept separate from the data
// tables so probing it never depends on the shift schema's shape.
type schemaInfo struct {
	ID        int64 `gorm:"primaryKey"`
	Version   int   `gorm:"not null"`
	UpdatedAt time.Time
}

func (schemaInfo) TableName() string {
	return "schema_info"
}

type migrationStep struct {
	version int
	apply   func(tx *gorm.DB) error
}

// Steps are additive only: new tables and new nullable/defaulted columns.
// Existing rows are never rewritten except for explicit backfills.
var steps = []migrationStep{
	{1, migrateV1Base},
	{2, migrateV2ActualInstants},
	{3, migrateV3ActiveFlagAndPhotos},
	{4, migrateV4PayAndNotes},
}

// EnsureSchema upgrades the store from whatever version it is at to
// LatestSchemaVersion. Each step runs in its own transaction together with
// the version bump, so a failed step leaves the prior version intact.
// Idempotent: a store already at the latest version is a no-op.
func EnsureSchema(db *gorm.DB) error {
	return ensureSchemaThrough(db, LatestSchemaVersion)
}

// ensureSchemaThrough applies steps up to and including maxVersion. Split out
// so tests can materialize historical schema shapes.
func ensureSchemaThrough(db *gorm.DB, maxVersion int) error {
	if err := db.AutoMigrate(&schemaInfo{}); err != nil {
		return fmt.Errorf("failed to create schema_info: %w", err)
	}

	current, err := currentVersion(db)
	if err != nil {
		return err
	}

	for _, step := range steps {
		if step.version <= current || step.version > maxVersion {
			continue
		}
		err := db.Transaction(func(tx *gorm.DB) error {
			if err := step.apply(tx); err != nil {
				return err
			}
			return setVersion(tx, step.version)
		})
		if err != nil {
			return fmt.Errorf("schema upgrade to v%d failed: %w", step.version, err)
		}
	}
	return nil
}

func currentVersion(db *gorm.DB) (int, error) {
	var info schemaInfo
	err := db.First(&info).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return info.Version, nil
}

func setVersion(tx *gorm.DB, version int) error {
	info := schemaInfo{ID: 1, Version: version, UpdatedAt: time.Now().UTC()}
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"version", "updated_at"}),
	}).Create(&info).Error
}

// shiftRecordV1 is the original table shape: time-of-day strings only, no
// explicit active flag. Kept so v1 can be recreated byte-for-byte in tests
// and on first boot of stores that predate the full timestamps.
type shiftRecordV1 struct {
	ID           int64   `gorm:"primaryKey"`
	EmployeeID   int64   `gorm:"index;not null"`
	ShiftDate    string  `gorm:"size:10;index;not null"`
	ClockInTime  string  `gorm:"size:8"`
	ClockOutTime string  `gorm:"size:8"`
	TotalHours   float64 `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (shiftRecordV1) TableName() string {
	return "shift_records"
}

func migrateV1Base(tx *gorm.DB) error {
	m := tx.Migrator()
	if !m.HasTable(&model.Employee{}) {
		if err := m.CreateTable(&model.Employee{}); err != nil {
			return err
		}
	}
	if !m.HasTable(&shiftRecordV1{}) {
		if err := m.CreateTable(&shiftRecordV1{}); err != nil {
			return err
		}
	}
	return nil
}

func migrateV2ActualInstants(tx *gorm.DB) error {
	return addColumns(tx, "ActualClockIn", "ActualClockOut")
}

func migrateV3ActiveFlagAndPhotos(tx *gorm.DB) error {
	if err := addColumns(tx, "IsActive", "ClockInPhoto", "ClockOutPhoto"); err != nil {
		return err
	}
	// Backfill from the legacy "clock-out missing" convention. After this,
	// is_active is the only flag anything may rely on.
	return tx.Model(&model.ShiftRecord{}).
		Where("(clock_out_time IS NULL OR clock_out_time = '') AND actual_clock_out IS NULL").
		Update("is_active", true).Error
}

func migrateV4PayAndNotes(tx *gorm.DB) error {
	return addColumns(tx, "GrossPay", "Notes")
}

func addColumns(tx *gorm.DB, fields ...string) error {
	m := tx.Migrator()
	for _, field := range fields {
		if m.HasColumn(&model.ShiftRecord{}, field) {
			continue
		}
		if err := m.AddColumn(&model.ShiftRecord{}, field); err != nil {
			return fmt.Errorf("add column %s: %w", field, err)
		}
	}
	return nil
}
