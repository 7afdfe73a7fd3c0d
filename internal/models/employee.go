package models

import (
	"time"
)

// Employee represents a member of the organization
type Employee struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	Name          string    `gorm:"not null" json:"name"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Status        string    `gorm:"default:active" json:"status"`
	DepartmentID  *uint     `gorm:"index" json:"department_id"`
	DesignationID *uint     `json:"designation_id"`
	ManagerID     *uint     `gorm:"index" json:"manager_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Associations
	Department   *Department  `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Designation  *Designation `gorm:"foreignKey:DesignationID" json:"designation,omitempty"`
	Manager      *Employee    `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Subordinates []Employee   `gorm:"foreignKey:ManagerID" json:"subordinates,omitempty"`
	Timesheets   []Timesheet  `gorm:"foreignKey:EmployeeID" json:"timesheets,omitempty"`
	Projects     []Project    `gorm:"many2many:employee_projects" json:"projects,omitempty"`
}

// TableName specifies the table name for Employee
func (Employee) TableName() string {
	return "employees"
}

// IsActive returns true if the employee status is active
func (e *Employee) IsActive() bool {
	return e.Status == StatusActive
}

// Status constants
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// EmployeeResponse is the JSON response format for employees
type EmployeeResponse struct {
	ID            uint      `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Status        string    `json:"status"`
	DepartmentID  *uint     `json:"department_id"`
	DesignationID *uint     `json:"designation_id"`
	ManagerID     *uint     `json:"manager_id"`
	ManagerName   string    `json:"manager_name,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ToResponse converts Employee to EmployeeResponse
func (e *Employee) ToResponse() EmployeeResponse {
	resp := EmployeeResponse{
		ID:            e.ID,
		Name:          e.Name,
		Email:         e.Email,
		Status:        e.Status,
		DepartmentID:  e.DepartmentID,
		DesignationID: e.DesignationID,
		ManagerID:     e.ManagerID,
		CreatedAt:     e.CreatedAt,
		UpdatedAt:     e.UpdatedAt,
	}
	if e.Manager != nil {
		resp.ManagerName = e.Manager.Name
	}
	return resp
}

// EmployeeTreeNode is one node of the reporting tree: an employee with all of
// its direct reports nested below it.
type EmployeeTreeNode struct {
	ID           uint               `json:"id"`
	Name         string             `json:"name"`
	Email        string             `json:"email"`
	ManagerID    *uint              `json:"manager_id"`
	Subordinates []EmployeeTreeNode `json:"subordinates"`
}
