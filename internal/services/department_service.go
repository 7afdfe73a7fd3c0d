package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/repository"
)

// DepartmentService handles departments and their designations
type DepartmentService struct {
	repo      repository.DepartmentRepository
	desigRepo repository.DesignationRepository
	auditSvc  *AuditService
}

func NewDepartmentService(repo repository.DepartmentRepository, desigRepo repository.DesignationRepository, auditSvc *AuditService) *DepartmentService {
	return &DepartmentService{
		repo:      repo,
		desigRepo: desigRepo,
		auditSvc:  auditSvc,
	}
}

func (s *DepartmentService) FindByID(ctx context.Context, id uint) (*models.Department, error) {
	department, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "department")
	}
	return department, nil
}

func (s *DepartmentService) FindAll(ctx context.Context) ([]models.Department, error) {
	return s.repo.FindAll(ctx)
}

func (s *DepartmentService) Create(ctx context.Context, name string, actorID uint) (*models.Department, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErrorf("department name is required")
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, conflictErrorf("department %q already exists", name)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	department := &models.Department{Name: name}
	if err := s.repo.Create(ctx, department); err != nil {
		if repository.IsDuplicateKeyError(err, "") {
			return nil, conflictErrorf("department %q already exists", name)
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, "CREATE", "Department", department.ID,
		fmt.Sprintf("department created: %s", department.Name))
	return department, nil
}

func (s *DepartmentService) Update(ctx context.Context, id uint, name string, actorID uint) (*models.Department, error) {
	department, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationErrorf("department name is required")
	}

	if existing, err := s.repo.FindByName(ctx, name); err == nil && existing.ID != id {
		return nil, conflictErrorf("department %q already exists", name)
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	department.Name = name
	department.Designations = nil
	if err := s.repo.Update(ctx, department); err != nil {
		if repository.IsDuplicateKeyError(err, "") {
			return nil, conflictErrorf("department %q already exists", name)
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, "UPDATE", "Department", department.ID,
		fmt.Sprintf("department renamed to %s", department.Name))
	return department, nil
}

func (s *DepartmentService) Delete(ctx context.Context, id uint, actorID uint) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "DELETE", "Department", id,
		"department deleted, employees detached, designations removed")
	return nil
}

func (s *DepartmentService) FindDesignation(ctx context.Context, id uint) (*models.Designation, error) {
	designation, err := s.desigRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "designation")
	}
	return designation, nil
}

func (s *DepartmentService) ListDesignations(ctx context.Context, departmentID uint) ([]models.Designation, error) {
	if _, err := s.FindByID(ctx, departmentID); err != nil {
		return nil, err
	}
	return s.desigRepo.FindByDepartment(ctx, departmentID)
}

// CreateDesignation adds a title to a department. Titles are unique within
// their department, not globally.
func (s *DepartmentService) CreateDesignation(ctx context.Context, departmentID uint, title string, actorID uint) (*models.Designation, error) {
	if _, err := s.FindByID(ctx, departmentID); err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, validationErrorf("designation title is required")
	}

	if _, err := s.desigRepo.FindByTitle(ctx, departmentID, title); err == nil {
		return nil, conflictErrorf("designation %q already exists in this department", title)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	designation := &models.Designation{Title: title, DepartmentID: departmentID}
	if err := s.desigRepo.Create(ctx, designation); err != nil {
		if repository.IsDuplicateKeyError(err, "") {
			return nil, conflictErrorf("designation %q already exists in this department", title)
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, "CREATE", "Designation", designation.ID,
		fmt.Sprintf("designation created: %s", designation.Title))
	return designation, nil
}

func (s *DepartmentService) DeleteDesignation(ctx context.Context, id uint, actorID uint) error {
	if _, err := s.FindDesignation(ctx, id); err != nil {
		return err
	}
	if err := s.desigRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "DELETE", "Designation", id, "designation deleted, holders cleared")
	return nil
}
