package model

import "time"

// EmployeeShiftStatus is a read-only projection of an employee's current
// clock state. It is computed on demand and never persisted or cached.
type EmployeeShiftStatus struct {
	EmployeeID          int64      `json:"employeeId"`
	IsWorking           bool       `json:"isWorking"`
	WorkingHours        float64    `json:"workingHours"`
	ShiftStarted        *time.Time `json:"shiftStarted"`
	IsCrossMidnight     bool       `json:"isCrossMidnight"`
	TodayCompletedHours float64    `json:"todayCompletedHours"`
	LastClockOut        *time.Time `json:"lastClockOut"`
}
