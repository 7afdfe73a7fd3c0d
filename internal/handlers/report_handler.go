package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hrsuite/timetrack-api/internal/services"
)

type ReportHandler struct {
	reportService *services.ReportService
	exportService *services.ExportService
}

func NewReportHandler(reportService *services.ReportService, exportService *services.ExportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		exportService: exportService,
	}
}

// @Summary Timesheet CSV
// @Description Download one timesheet's logs as CSV
// @Tags Reports
// @Produce text/csv
// @Param timesheet_id path int true "Timesheet ID"
// @Router /timesheets/{timesheet_id}/export_csv [get]
func (h *ReportHandler) TimesheetCSV(c *gin.Context) {
	id, err := uintParam(c, "timesheet_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, filename, err := h.exportService.ExportTimesheetCSV(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/csv", data)
}

// @Summary Week XLSX
// @Description Download every employee's timesheet for a week as a workbook
// @Tags Reports
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param week_starting query string true "Week start (YYYY-MM-DD)"
// @Router /reports/week_xlsx [get]
func (h *ReportHandler) WeekXLSX(c *gin.Context) {
	week, err := dateQuery(c, "week_starting")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if week.IsZero() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "week_starting is required"})
		return
	}

	data, filename, err := h.exportService.ExportWeekXLSX(c.Request.Context(), week)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// @Summary Timesheet PDF
// @Description Download one timesheet as a printable PDF
// @Tags Reports
// @Produce application/pdf
// @Param timesheet_id path int true "Timesheet ID"
// @Router /timesheets/{timesheet_id}/export_pdf [get]
func (h *ReportHandler) TimesheetPDF(c *gin.Context) {
	id, err := uintParam(c, "timesheet_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	data, filename, err := h.reportService.GenerateTimesheetPDF(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "application/pdf", data)
}
