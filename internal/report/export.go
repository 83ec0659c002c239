package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

const (
	shiftsSheet  = "Shifts"
	summarySheet = "Summary"
)

var rowHeaders = []string{
	"Shift ID", "Employee ID", "First Name", "Last Name", "Job Title",
	"Date", "Clock In", "Clock Out", "Hours", "Gross Pay",
}

var summaryHeaders = []string{
	"Group", "Shifts", "Total Hours", "Total Pay", "Days Worked", "Avg Hours/Day",
}

// ExportXLSX renders report rows plus optional summaries into a workbook for
// hand-off to the back office.
func ExportXLSX(rows []Row, summaries []Summary) (*excelize.File, error) {
	f := excelize.NewFile()
	f.SetSheetName("Sheet1", shiftsSheet)

	if err := writeRow(f, shiftsSheet, 1, toCells(rowHeaders)); err != nil {
		return nil, err
	}
	for i, row := range rows {
		cells := []any{
			row.ShiftID, row.EmployeeID, row.FirstName, row.LastName, row.JobTitle,
			row.ShiftDate, row.ClockInTime, row.ClockOutTime, row.TotalHours, row.GrossPay,
		}
		if err := writeRow(f, shiftsSheet, i+2, cells); err != nil {
			return nil, err
		}
	}

	if len(summaries) > 0 {
		if _, err := f.NewSheet(summarySheet); err != nil {
			return nil, fmt.Errorf("failed to add summary sheet: %w", err)
		}
		if err := writeRow(f, summarySheet, 1, toCells(summaryHeaders)); err != nil {
			return nil, err
		}
		for i, s := range summaries {
			cells := []any{s.Key, s.Shifts, s.TotalHours, s.TotalPay, s.DaysWorked, s.AvgHoursPerDay}
			if err := writeRow(f, summarySheet, i+2, cells); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []any) error {
	for i, value := range cells {
		cell, err := excelize.CoordinatesToCellName(i+1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("failed to write %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}

func toCells(headers []string) []any {
	cells := make([]any, len(headers))
	for i, h := range headers {
		cells[i] = h
	}
	return cells
}
