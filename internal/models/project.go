package models

import (
	"time"
)

// Project represents a project employees log work against
type Project struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"uniqueIndex;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	GUID        string    `gorm:"column:guid;not null" json:"guid"`
	ManagerID   *uint     `json:"manager_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Associations
	Manager     *Employee     `gorm:"foreignKey:ManagerID" json:"manager,omitempty"`
	Members     []Employee    `gorm:"many2many:employee_projects" json:"members,omitempty"`
	TeamMembers []ProjectTeam `gorm:"foreignKey:ProjectID" json:"team_members,omitempty"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "projects"
}

// ProjectResponse is the JSON response format for projects
type ProjectResponse struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	GUID        string    `json:"guid"`
	ManagerID   *uint     `json:"manager_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts Project to ProjectResponse
func (p *Project) ToResponse() ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		GUID:        p.GUID,
		ManagerID:   p.ManagerID,
		CreatedAt:   p.CreatedAt,
	}
}

// ProjectTeam assigns an employee a role on a project
type ProjectTeam struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ProjectID  uint      `gorm:"not null;index" json:"project_id"`
	EmployeeID uint      `gorm:"not null;index" json:"employee_id"`
	Role       string    `gorm:"size:50;not null" json:"role"`
	CreatedAt  time.Time `json:"created_at"`

	// Associations
	Project  *Project  `gorm:"foreignKey:ProjectID" json:"-"`
	Employee *Employee `gorm:"foreignKey:EmployeeID" json:"employee,omitempty"`
}

// TableName specifies the table name for ProjectTeam
func (ProjectTeam) TableName() string {
	return "project_team"
}

// Project team role constants
const (
	TeamRoleManager  = "manager"
	TeamRoleTeamLead = "team_lead"
	TeamRoleMember   = "member"
)

// ValidTeamRole reports whether role is one of the known team roles.
func ValidTeamRole(role string) bool {
	switch role {
	case TeamRoleManager, TeamRoleTeamLead, TeamRoleMember:
		return true
	}
	return false
}

// ProjectTeamResponse is the JSON response format for team assignments
type ProjectTeamResponse struct {
	ID           uint   `json:"id"`
	ProjectID    uint   `json:"project_id"`
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name,omitempty"`
	Role         string `json:"role"`
}

// ToResponse converts ProjectTeam to ProjectTeamResponse
func (t *ProjectTeam) ToResponse() ProjectTeamResponse {
	resp := ProjectTeamResponse{
		ID:         t.ID,
		ProjectID:  t.ProjectID,
		EmployeeID: t.EmployeeID,
		Role:       t.Role,
	}
	if t.Employee != nil {
		resp.EmployeeName = t.Employee.Name
	}
	return resp
}
