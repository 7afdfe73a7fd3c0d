package models

import (
	"time"
)

// Department represents an organizational unit
type Department struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Associations
	Designations []Designation `gorm:"foreignKey:DepartmentID" json:"designations,omitempty"`
	Employees    []Employee    `gorm:"foreignKey:DepartmentID" json:"employees,omitempty"`
}

// TableName specifies the table name for Department
func (Department) TableName() string {
	return "departments"
}

// DepartmentResponse is the JSON response format for departments
type DepartmentResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// ToResponse converts Department to DepartmentResponse
func (d *Department) ToResponse() DepartmentResponse {
	return DepartmentResponse{
		ID:        d.ID,
		Name:      d.Name,
		CreatedAt: d.CreatedAt,
	}
}

// Designation represents a job title within a department
type Designation struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Title        string    `gorm:"uniqueIndex:idx_designations_dept_title;not null" json:"title"`
	DepartmentID uint      `gorm:"uniqueIndex:idx_designations_dept_title;not null" json:"department_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	// Associations
	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

// TableName specifies the table name for Designation
func (Designation) TableName() string {
	return "designations"
}

// DesignationResponse is the JSON response format for designations
type DesignationResponse struct {
	ID           uint   `json:"id"`
	Title        string `json:"title"`
	DepartmentID uint   `json:"department_id"`
}

// ToResponse converts Designation to DesignationResponse
func (d *Designation) ToResponse() DesignationResponse {
	return DesignationResponse{
		ID:           d.ID,
		Title:        d.Title,
		DepartmentID: d.DepartmentID,
	}
}
