package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/repository"
)

// ProjectService handles projects and their team assignments
type ProjectService struct {
	repo     repository.ProjectRepository
	empRepo  repository.EmployeeRepository
	auditSvc *AuditService
}

func NewProjectService(repo repository.ProjectRepository, empRepo repository.EmployeeRepository, auditSvc *AuditService) *ProjectService {
	return &ProjectService{
		repo:     repo,
		empRepo:  empRepo,
		auditSvc: auditSvc,
	}
}

// ProjectInput captures the mutable fields of a project
type ProjectInput struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ManagerID   *uint  `json:"manager_id"`
}

func (s *ProjectService) FindByID(ctx context.Context, id uint) (*models.Project, error) {
	project, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "project")
	}
	return project, nil
}

func (s *ProjectService) List(ctx context.Context, query *repository.ListQuery) ([]models.Project, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *ProjectService) FindAll(ctx context.Context) ([]models.Project, error) {
	return s.repo.FindAll(ctx)
}

func (s *ProjectService) Create(ctx context.Context, input *ProjectInput, actorID uint) (*models.Project, error) {
	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return nil, validationErrorf("project name is required")
	}
	if input.ManagerID != nil {
		if _, err := s.empRepo.FindByID(ctx, *input.ManagerID); err != nil {
			return nil, translateNotFound(err, "manager")
		}
	}

	project := &models.Project{
		Name:        input.Name,
		Description: input.Description,
		GUID:        uuid.New().String(),
		ManagerID:   input.ManagerID,
	}
	if err := s.repo.Create(ctx, project); err != nil {
		if repository.IsDuplicateKeyError(err, "") {
			return nil, conflictErrorf("project %q already exists", input.Name)
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, "CREATE", "Project", project.ID,
		fmt.Sprintf("project created: %s", project.Name))
	return project, nil
}

func (s *ProjectService) Update(ctx context.Context, id uint, input *ProjectInput, actorID uint) (*models.Project, error) {
	project, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		project.Name = strings.TrimSpace(input.Name)
	}
	project.Description = input.Description
	if input.ManagerID != nil {
		if _, err := s.empRepo.FindByID(ctx, *input.ManagerID); err != nil {
			return nil, translateNotFound(err, "manager")
		}
	}
	project.ManagerID = input.ManagerID

	project.Manager = nil
	project.Members = nil
	project.TeamMembers = nil
	if err := s.repo.Update(ctx, project); err != nil {
		if repository.IsDuplicateKeyError(err, "") {
			return nil, conflictErrorf("project %q already exists", project.Name)
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, "UPDATE", "Project", project.ID,
		fmt.Sprintf("project updated: %s", project.Name))
	return project, nil
}

// Delete removes a project. Daily logs that referenced it keep their hours
// but lose the project reference, as do their recorded changes.
func (s *ProjectService) Delete(ctx context.Context, id uint, actorID uint) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "DELETE", "Project", id,
		"project deleted, log references cleared")
	return nil
}

func (s *ProjectService) AddMember(ctx context.Context, projectID, employeeID uint, actorID uint) error {
	if _, err := s.FindByID(ctx, projectID); err != nil {
		return err
	}
	if _, err := s.empRepo.FindByID(ctx, employeeID); err != nil {
		return translateNotFound(err, "employee")
	}
	if err := s.repo.AddMember(ctx, projectID, employeeID); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "UPDATE", "Project", projectID,
		fmt.Sprintf("employee %d added to project", employeeID))
	return nil
}

func (s *ProjectService) RemoveMember(ctx context.Context, projectID, employeeID uint, actorID uint) error {
	if _, err := s.FindByID(ctx, projectID); err != nil {
		return err
	}
	if err := s.repo.RemoveMember(ctx, projectID, employeeID); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "UPDATE", "Project", projectID,
		fmt.Sprintf("employee %d removed from project", employeeID))
	return nil
}

// AssignRole grants an employee a role on the project team. The employee is
// added to the membership list if not already on it.
func (s *ProjectService) AssignRole(ctx context.Context, projectID, employeeID uint, role string, actorID uint) (*models.ProjectTeam, error) {
	if !models.ValidTeamRole(role) {
		return nil, validationErrorf("invalid team role: %s", role)
	}
	if _, err := s.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	if _, err := s.empRepo.FindByID(ctx, employeeID); err != nil {
		return nil, translateNotFound(err, "employee")
	}

	if err := s.repo.AddMember(ctx, projectID, employeeID); err != nil {
		return nil, err
	}

	assignment := &models.ProjectTeam{
		ProjectID:  projectID,
		EmployeeID: employeeID,
		Role:       role,
	}
	if err := s.repo.AssignRole(ctx, assignment); err != nil {
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, "UPDATE", "Project", projectID,
		fmt.Sprintf("employee %d assigned role %s", employeeID, role))
	return assignment, nil
}

func (s *ProjectService) Team(ctx context.Context, projectID uint) ([]models.ProjectTeam, error) {
	if _, err := s.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	return s.repo.FindTeam(ctx, projectID)
}

// MemberProjects lists the projects an employee is on
func (s *ProjectService) MemberProjects(ctx context.Context, employeeID uint) ([]models.Project, error) {
	if _, err := s.empRepo.FindByID(ctx, employeeID); err != nil {
		return nil, translateNotFound(err, "employee")
	}
	return s.repo.FindByMember(ctx, employeeID)
}
