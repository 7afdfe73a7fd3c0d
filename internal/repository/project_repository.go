package repository

import (
	"context"

	"github.com/hrsuite/timetrack-api/internal/models"
	"gorm.io/gorm"
)

// ProjectRepository defines the interface for project data access
type ProjectRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Project, error)
	FindByName(ctx context.Context, name string) (*models.Project, error)
	Create(ctx context.Context, project *models.Project) error
	Update(ctx context.Context, project *models.Project) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Project, int64, error)
	FindAll(ctx context.Context) ([]models.Project, error)
	AddMember(ctx context.Context, projectID, employeeID uint) error
	RemoveMember(ctx context.Context, projectID, employeeID uint) error
	AssignRole(ctx context.Context, assignment *models.ProjectTeam) error
	FindTeam(ctx context.Context, projectID uint) ([]models.ProjectTeam, error)
	FindByMember(ctx context.Context, employeeID uint) ([]models.Project, error)
}

type projectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &projectRepository{db: db}
}

func (r *projectRepository) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).First(&project, id).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) FindByName(ctx context.Context, name string) (*models.Project, error) {
	var project models.Project
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&project).Error
	if err != nil {
		return nil, err
	}
	return &project, nil
}

func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	return r.db.WithContext(ctx).Save(project).Error
}

// Delete removes the project. Daily logs and change records that referenced
// it keep their data but lose the project reference; team rows and
// memberships go with the project.
func (r *projectRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.DailyLog{}).
			Where("project_id = ?", id).
			Update("project_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.DailyLogChange{}).
			Where("project_id = ?", id).
			Update("project_id", nil).Error; err != nil {
			return err
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.ProjectTeam{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM employee_projects WHERE project_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Project{}, id).Error
	})
}

func (r *projectRepository) List(ctx context.Context, query *ListQuery) ([]models.Project, int64, error) {
	var projects []models.Project
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Project{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR description ILIKE ?", search, search)
	}

	db.Count(&total)

	if query.SortBy != "" {
		order := query.SortBy
		if query.SortDir == "desc" {
			order += " DESC"
		}
		db = db.Order(order)
	} else {
		db = db.Order("created_at DESC")
	}

	if query.PerPage > 0 {
		db = db.Offset((query.Page - 1) * query.PerPage).Limit(query.PerPage)
	}

	err := db.Find(&projects).Error
	return projects, total, err
}

func (r *projectRepository) FindAll(ctx context.Context) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).Order("name ASC").Find(&projects).Error
	return projects, err
}

func (r *projectRepository) AddMember(ctx context.Context, projectID, employeeID uint) error {
	return r.db.WithContext(ctx).
		Exec("INSERT INTO employee_projects (project_id, employee_id) VALUES (?, ?) ON CONFLICT DO NOTHING",
			projectID, employeeID).Error
}

func (r *projectRepository) RemoveMember(ctx context.Context, projectID, employeeID uint) error {
	return r.db.WithContext(ctx).
		Exec("DELETE FROM employee_projects WHERE project_id = ? AND employee_id = ?",
			projectID, employeeID).Error
}

func (r *projectRepository) AssignRole(ctx context.Context, assignment *models.ProjectTeam) error {
	return r.db.WithContext(ctx).Create(assignment).Error
}

func (r *projectRepository) FindTeam(ctx context.Context, projectID uint) ([]models.ProjectTeam, error) {
	var team []models.ProjectTeam
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Preload("Employee").
		Order("role ASC, id ASC").
		Find(&team).Error
	return team, err
}

func (r *projectRepository) FindByMember(ctx context.Context, employeeID uint) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.WithContext(ctx).
		Joins("JOIN employee_projects ep ON ep.project_id = projects.id").
		Where("ep.employee_id = ?", employeeID).
		Order("projects.name ASC").
		Find(&projects).Error
	return projects, err
}
