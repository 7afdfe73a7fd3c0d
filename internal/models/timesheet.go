package models

import (
	"time"
)

// Wire formats for dates and wall-clock times
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// Timesheet is one employee's sheet for one week. The composite unique index
// on (employee_id, week_starting) is the source of truth for the
// one-sheet-per-employee-per-week rule; application code treats a violation
// as "someone else created it first".
type Timesheet struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	EmployeeID   uint      `gorm:"not null;uniqueIndex:idx_timesheets_employee_week" json:"employee_id"`
	WeekStarting time.Time `gorm:"type:date;not null;uniqueIndex:idx_timesheets_employee_week" json:"week_starting"`
	WeekEnding   time.Time `gorm:"type:date;not null" json:"week_ending"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Employee  *Employee  `gorm:"foreignKey:EmployeeID" json:"-"`
	DailyLogs []DailyLog `gorm:"foreignKey:TimesheetID;constraint:OnDelete:CASCADE" json:"daily_logs,omitempty"`
}

// TableName specifies the table name for Timesheet
func (Timesheet) TableName() string {
	return "timesheets"
}

// TimesheetResponse is the JSON response format for timesheets. The week's
// daily logs are embedded; everything else stays flat.
type TimesheetResponse struct {
	ID           uint               `json:"id"`
	EmployeeID   uint               `json:"employee_id"`
	WeekStarting string             `json:"week_starting"`
	WeekEnding   string             `json:"week_ending"`
	DailyLogs    []DailyLogResponse `json:"daily_logs"`
	CreatedAt    time.Time          `json:"created_at"`
}

// ToResponse converts Timesheet to TimesheetResponse
func (t *Timesheet) ToResponse() TimesheetResponse {
	logs := make([]DailyLogResponse, 0, len(t.DailyLogs))
	for i := range t.DailyLogs {
		logs = append(logs, t.DailyLogs[i].ToResponse())
	}
	return TimesheetResponse{
		ID:           t.ID,
		EmployeeID:   t.EmployeeID,
		WeekStarting: t.WeekStarting.Format(DateLayout),
		WeekEnding:   t.WeekEnding.Format(DateLayout),
		DailyLogs:    logs,
		CreatedAt:    t.CreatedAt,
	}
}

// DailyLog is one work entry on a timesheet. TotalHours is always derived
// from the four clock fields; it is never accepted from callers.
type DailyLog struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	TimesheetID  uint      `gorm:"not null;index" json:"timesheet_id"`
	ProjectID    *uint     `gorm:"index" json:"project_id"`
	LogDate      time.Time `gorm:"type:date;not null" json:"log_date"`
	DayOfWeek    string    `gorm:"size:10" json:"day_of_week"`
	MorningIn    *string   `gorm:"size:5" json:"morning_in"`
	MorningOut   *string   `gorm:"size:5" json:"morning_out"`
	AfternoonIn  *string   `gorm:"size:5" json:"afternoon_in"`
	AfternoonOut *string   `gorm:"size:5" json:"afternoon_out"`
	TotalHours   string    `gorm:"size:10" json:"total_hours"`
	Description  string    `gorm:"type:text" json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Timesheet *Timesheet       `gorm:"foreignKey:TimesheetID" json:"-"`
	Project   *Project         `gorm:"foreignKey:ProjectID" json:"-"`
	Changes   []DailyLogChange `gorm:"foreignKey:DailyLogID;constraint:OnDelete:CASCADE" json:"changes,omitempty"`
}

// TableName specifies the table name for DailyLog
func (DailyLog) TableName() string {
	return "daily_logs"
}

// DailyLogResponse is the JSON response format for daily logs
type DailyLogResponse struct {
	ID           uint    `json:"id"`
	TimesheetID  uint    `json:"timesheet_id"`
	ProjectID    *uint   `json:"project_id"`
	LogDate      string  `json:"log_date"`
	DayOfWeek    string  `json:"day_of_week"`
	MorningIn    *string `json:"morning_in"`
	MorningOut   *string `json:"morning_out"`
	AfternoonIn  *string `json:"afternoon_in"`
	AfternoonOut *string `json:"afternoon_out"`
	TotalHours   string  `json:"total_hours"`
	Description  string  `json:"description"`
}

// ToResponse converts DailyLog to DailyLogResponse
func (l *DailyLog) ToResponse() DailyLogResponse {
	return DailyLogResponse{
		ID:           l.ID,
		TimesheetID:  l.TimesheetID,
		ProjectID:    l.ProjectID,
		LogDate:      l.LogDate.Format(DateLayout),
		DayOfWeek:    l.DayOfWeek,
		MorningIn:    l.MorningIn,
		MorningOut:   l.MorningOut,
		AfternoonIn:  l.AfternoonIn,
		AfternoonOut: l.AfternoonOut,
		TotalHours:   l.TotalHours,
		Description:  l.Description,
	}
}
