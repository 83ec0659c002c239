package model

import "time"

// Employee represents a clockable worker on this kiosk.
type Employee struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:128;not null" json:"firstName"`
	LastName  string    `gorm:"size:128;not null" json:"lastName"`
	JobTitle  string    `gorm:"size:128;index" json:"jobTitle"`
	PayRate   float64   `gorm:"not null;default:0" json:"payRate"`
	IsActive  bool      `gorm:"not null;default:true" json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName returns the display name used in reports.
func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}
