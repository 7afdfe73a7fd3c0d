package services

import (
	"bytes"
	"context"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/storage"
	"github.com/hrsuite/timetrack-api/pkg/logger"
)

// ReportService renders printable weekly timesheet reports. Generated PDFs
// are archived to local storage so a report stays retrievable after the
// underlying timesheet is deleted.
type ReportService struct {
	tsSvc   *TimesheetService
	empSvc  *EmployeeService
	storage *storage.LocalStorage
}

func NewReportService(tsSvc *TimesheetService, empSvc *EmployeeService, store *storage.LocalStorage) *ReportService {
	return &ReportService{tsSvc: tsSvc, empSvc: empSvc, storage: store}
}

// GenerateTimesheetPDF renders one timesheet as a PDF and archives a copy.
func (s *ReportService) GenerateTimesheetPDF(ctx context.Context, timesheetID uint) ([]byte, string, error) {
	timesheet, err := s.tsSvc.FindByID(ctx, timesheetID)
	if err != nil {
		return nil, "", err
	}
	employee, err := s.empSvc.FindByID(ctx, timesheet.EmployeeID)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(100, 10, "Weekly Timesheet")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(100, 8, fmt.Sprintf("Employee: %s (%s)", employee.Name, employee.Email))
	pdf.Ln(6)
	pdf.Cell(100, 8, fmt.Sprintf("Week: %s to %s",
		timesheet.WeekStarting.Format(models.DateLayout),
		timesheet.WeekEnding.Format(models.DateLayout)))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 10)
	widths := []float64{28, 26, 22, 22, 22, 22, 18, 110}
	headers := []string{"Date", "Day", "AM In", "AM Out", "PM In", "PM Out", "Total", "Description"}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 8, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, log := range timesheet.DailyLogs {
		cells := []string{
			log.LogDate.Format(models.DateLayout),
			log.DayOfWeek,
			dashIfNil(log.MorningIn),
			dashIfNil(log.MorningOut),
			dashIfNil(log.AfternoonIn),
			dashIfNil(log.AfternoonOut),
			log.TotalHours,
			log.Description,
		}
		for i, c := range cells {
			pdf.CellFormat(widths[i], 8, c, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("timesheet_%d_%s.pdf", employee.ID, timesheet.WeekStarting.Format(models.DateLayout))
	if s.storage != nil {
		if _, err := s.storage.SaveReport(buf.Bytes(), filename); err != nil {
			logger.Warn("failed to archive report", "filename", filename, "error", err)
		}
	}

	return buf.Bytes(), filename, nil
}
