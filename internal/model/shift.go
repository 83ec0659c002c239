package model

import "time"

// DateLayout is the storage format for shift dates.
const DateLayout = "2006-01-02"

// TimeOfDayLayout is the storage format for the legacy display-only
// time-of-day columns.
const TimeOfDayLayout = "15:04"

// ShiftRecord is one clock-in event per row, possibly still open.
//
// The time-of-day columns (ClockInTime / ClockOutTime) predate the full
// timestamps and are retained for backward-compatible display only; all
// duration math uses ActualClockIn / ActualClockOut. IsActive is the sole
// source of truth for "currently working" - never the absence of a clock-out
// column.
type ShiftRecord struct {
	ID             int64      `gorm:"primaryKey" json:"id"`
	EmployeeID     int64      `gorm:"index;not null" json:"employeeId"`
	ShiftDate      string     `gorm:"size:10;index;not null" json:"shiftDate"`
	ClockInTime    string     `gorm:"size:8" json:"clockInTime"`
	ClockOutTime   string     `gorm:"size:8" json:"clockOutTime"`
	ActualClockIn  *time.Time `gorm:"index" json:"actualClockIn"`
	ActualClockOut *time.Time `json:"actualClockOut"`
	IsActive       bool       `gorm:"index;not null;default:false" json:"isActive"`
	TotalHours     float64    `gorm:"not null;default:0" json:"totalHours"`
	GrossPay       float64    `gorm:"not null;default:0" json:"grossPay"`
	Notes          string     `json:"notes"`
	ClockInPhoto   string     `json:"clockInPhoto"`
	ClockOutPhoto  string     `json:"clockOutPhoto"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

// TableName pins the table so versioned migration steps and the tolerant
// column probe agree on a name.
func (ShiftRecord) TableName() string {
	return "shift_records"
}

// Completed reports whether the record carries a finished, billable span.
func (r ShiftRecord) Completed() bool {
	return !r.IsActive && r.TotalHours > 0
}
