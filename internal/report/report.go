package report

import (
	"context"
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"timeclock-kiosk/internal/model"
)

// Filter narrows report queries to one employee and/or job title. Zero
// values mean "all".
type Filter struct {
	EmployeeID int64
	JobTitle   string
}

// GroupBy selects the summary bucketing key.
type GroupBy string

const (
	GroupByEmployee GroupBy = "employee"
	GroupByJobTitle GroupBy = "job_title"
	GroupByDate     GroupBy = "date"
	GroupByWeek     GroupBy = "week"
	GroupByMonth    GroupBy = "month"
)

// Row is one completed shift joined with the employee's display fields.
type Row struct {
	ShiftID        int64      `json:"shiftId"`
	EmployeeID     int64      `json:"employeeId"`
	FirstName      string     `json:"firstName"`
	LastName       string     `json:"lastName"`
	JobTitle       string     `json:"jobTitle"`
	ShiftDate      string     `json:"shiftDate"`
	ClockInTime    string     `json:"clockInTime"`
	ClockOutTime   string     `json:"clockOutTime"`
	ActualClockIn  *time.Time `json:"actualClockIn"`
	ActualClockOut *time.Time `json:"actualClockOut"`
	TotalHours     float64    `json:"totalHours"`
	GrossPay       float64    `json:"grossPay"`
}

// Summary is one aggregation bucket.
type Summary struct {
	Key            string  `json:"key"`
	Shifts         int     `json:"shifts"`
	TotalHours     float64 `json:"totalHours"`
	TotalPay       float64 `json:"totalPay"`
	DaysWorked     int     `json:"daysWorked"`
	AvgHoursPerDay float64 `json:"avgHoursPerDay"`
}

// Service answers the read-only historical queries. Shifts still in progress
// carry zero total hours and are excluded from every report.
type Service struct {
	db *gorm.DB
}

// NewService creates a report Service over the shared database handle.
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// Rows returns the flattened per-shift rows for the inclusive date range,
// ascending by date.
func (s *Service) Rows(ctx context.Context, start, end string, filter Filter) ([]Row, error) {
	q := s.db.WithContext(ctx).
		Table("shift_records AS sr").
		Select("sr.id AS shift_id, sr.employee_id, e.first_name, e.last_name, e.job_title, "+
			"sr.shift_date, sr.clock_in_time, sr.clock_out_time, sr.actual_clock_in, sr.actual_clock_out, "+
			"sr.total_hours, sr.gross_pay").
		Joins("JOIN employees e ON e.id = sr.employee_id").
		Where("sr.shift_date BETWEEN ? AND ?", start, end).
		Where("sr.total_hours > 0")

	if filter.EmployeeID != 0 {
		q = q.Where("sr.employee_id = ?", filter.EmployeeID)
	}
	if filter.JobTitle != "" {
		q = q.Where("e.job_title = ?", filter.JobTitle)
	}

	var rows []Row
	if err := q.Order("sr.shift_date ASC, sr.id ASC").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to query report rows: %w", err)
	}
	return rows, nil
}

// Summarize groups the completed shifts in the range and sums hours, pay and
// distinct days worked per bucket. Bucket label formatting lives here, on
// top of the raw aggregation; storage is never affected.
func (s *Service) Summarize(ctx context.Context, start, end string, groupBy GroupBy, filter Filter) ([]Summary, error) {
	rows, err := s.Rows(ctx, start, end, filter)
	if err != nil {
		return nil, err
	}

	buckets := map[string]*Summary{}
	days := map[string]map[string]bool{}
	var order []string

	for _, row := range rows {
		key, err := bucketKey(groupBy, row)
		if err != nil {
			return nil, err
		}
		b, ok := buckets[key]
		if !ok {
			b = &Summary{Key: key}
			buckets[key] = b
			days[key] = map[string]bool{}
			order = append(order, key)
		}
		b.Shifts++
		b.TotalHours += row.TotalHours
		b.TotalPay += row.GrossPay
		days[key][row.ShiftDate] = true
	}

	summaries := make([]Summary, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		b.DaysWorked = len(days[key])
		if b.DaysWorked > 0 {
			b.AvgHoursPerDay = round2(b.TotalHours / float64(b.DaysWorked))
		}
		b.TotalHours = round2(b.TotalHours)
		b.TotalPay = round2(b.TotalPay)
		summaries = append(summaries, *b)
	}
	return summaries, nil
}

func bucketKey(groupBy GroupBy, row Row) (string, error) {
	switch groupBy {
	case GroupByEmployee:
		return fmt.Sprintf("%s %s", row.FirstName, row.LastName), nil
	case GroupByJobTitle:
		return row.JobTitle, nil
	case GroupByDate:
		return row.ShiftDate, nil
	case GroupByWeek:
		date, err := time.Parse(model.DateLayout, row.ShiftDate)
		if err != nil {
			return "", fmt.Errorf("bad shift date %q: %w", row.ShiftDate, err)
		}
		year, week := date.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week), nil
	case GroupByMonth:
		if len(row.ShiftDate) < 7 {
			return "", fmt.Errorf("bad shift date %q", row.ShiftDate)
		}
		return row.ShiftDate[:7], nil
	default:
		return "", fmt.Errorf("unknown group_by %q", groupBy)
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
