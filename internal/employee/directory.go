package employee

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"timeclock-kiosk/internal/model"
)

// Directory is the employee lookup collaborator consumed by the lifecycle
// engine. GetEmployee returns (nil, nil) for an unknown id.
type Directory interface {
	GetEmployee(ctx context.Context, id int64) (*model.Employee, error)
	ListEmployees(ctx context.Context) ([]model.Employee, error)
	SaveEmployee(ctx context.Context, emp *model.Employee) error
}

type gormDirectory struct {
	db *gorm.DB
}

// NewGormDirectory creates a gorm-backed Directory over the local employee
// table.
func NewGormDirectory(db *gorm.DB) Directory {
	return &gormDirectory{db: db}
}

func (d *gormDirectory) GetEmployee(ctx context.Context, id int64) (*model.Employee, error) {
	var emp model.Employee
	err := d.db.WithContext(ctx).First(&emp, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load employee %d: %w", id, err)
	}
	return &emp, nil
}

func (d *gormDirectory) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	var emps []model.Employee
	if err := d.db.WithContext(ctx).Order("last_name ASC, first_name ASC").Find(&emps).Error; err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	return emps, nil
}

func (d *gormDirectory) SaveEmployee(ctx context.Context, emp *model.Employee) error {
	if err := d.db.WithContext(ctx).Save(emp).Error; err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}
	return nil
}
