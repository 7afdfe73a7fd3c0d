package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/hrsuite/timetrack-api/internal/models"
)

// ExportService renders timesheets as CSV and XLSX downloads
type ExportService struct {
	tsSvc  *TimesheetService
	empSvc *EmployeeService
}

func NewExportService(tsSvc *TimesheetService, empSvc *EmployeeService) *ExportService {
	return &ExportService{tsSvc: tsSvc, empSvc: empSvc}
}

func dashIfNil(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}

// ExportTimesheetCSV renders one timesheet's logs as CSV
func (s *ExportService) ExportTimesheetCSV(ctx context.Context, timesheetID uint) ([]byte, string, error) {
	timesheet, err := s.tsSvc.FindByID(ctx, timesheetID)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	_ = writer.Write([]string{"Timesheet", fmt.Sprintf("Week of %s", timesheet.WeekStarting.Format(models.DateLayout))})
	_ = writer.Write([]string{""})
	_ = writer.Write([]string{"Date", "Day", "Morning In", "Morning Out", "Afternoon In", "Afternoon Out", "Total", "Description"})

	for _, log := range timesheet.DailyLogs {
		_ = writer.Write([]string{
			log.LogDate.Format(models.DateLayout),
			log.DayOfWeek,
			dashIfNil(log.MorningIn),
			dashIfNil(log.MorningOut),
			dashIfNil(log.AfternoonIn),
			dashIfNil(log.AfternoonOut),
			log.TotalHours,
			log.Description,
		})
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("timesheet_%s.csv", timesheet.WeekStarting.Format(models.DateLayout))
	return buf.Bytes(), filename, nil
}

// ExportWeekXLSX renders every employee's timesheet for a week as an XLSX
// workbook, one summary sheet listing totals per employee per day.
func (s *ExportService) ExportWeekXLSX(ctx context.Context, weekStarting time.Time) ([]byte, string, error) {
	timesheets, err := s.tsSvc.FindForWeek(ctx, weekStarting)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Week"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetCellValue(sheet, "A1", fmt.Sprintf("Week of %s", weekStarting.Format(models.DateLayout)))
	_ = f.SetCellStyle(sheet, "A1", "A1", headerStyle)

	headers := []string{"Employee", "Date", "Day", "Morning In", "Morning Out", "Afternoon In", "Afternoon Out", "Total", "Description"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 3)
		_ = f.SetCellValue(sheet, cell, h)
		_ = f.SetCellStyle(sheet, cell, cell, headerStyle)
	}

	row := 4
	for i := range timesheets {
		employee, err := s.empSvc.FindByID(ctx, timesheets[i].EmployeeID)
		if err != nil {
			return nil, "", err
		}
		for _, log := range timesheets[i].DailyLogs {
			values := []interface{}{
				employee.Name,
				log.LogDate.Format(models.DateLayout),
				log.DayOfWeek,
				dashIfNil(log.MorningIn),
				dashIfNil(log.MorningOut),
				dashIfNil(log.AfternoonIn),
				dashIfNil(log.AfternoonOut),
				log.TotalHours,
				log.Description,
			}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				_ = f.SetCellValue(sheet, cell, v)
			}
			row++
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("week_%s.xlsx", weekStarting.Format(models.DateLayout))
	return buf.Bytes(), filename, nil
}
