package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/repository"
)

var validate = validator.New()

// EmployeeService handles employee records and the reporting hierarchy
type EmployeeService struct {
	repo      repository.EmployeeRepository
	deptRepo  repository.DepartmentRepository
	desigRepo repository.DesignationRepository
	tsRepo    repository.TimesheetRepository
	auditSvc  *AuditService
}

// EmployeeInput carries the mutable employee fields for create/update
type EmployeeInput struct {
	Name          string `json:"name" binding:"required"`
	Email         string `json:"email" binding:"required"`
	Status        string `json:"status"`
	DepartmentID  *uint  `json:"department_id"`
	DesignationID *uint  `json:"designation_id"`
	ManagerID     *uint  `json:"manager_id"`
}

func NewEmployeeService(repo repository.EmployeeRepository, deptRepo repository.DepartmentRepository, desigRepo repository.DesignationRepository, tsRepo repository.TimesheetRepository, auditSvc *AuditService) *EmployeeService {
	return &EmployeeService{
		repo:      repo,
		deptRepo:  deptRepo,
		desigRepo: desigRepo,
		tsRepo:    tsRepo,
		auditSvc:  auditSvc,
	}
}

func (s *EmployeeService) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	employee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, "employee")
	}
	return employee, nil
}

func (s *EmployeeService) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	employee, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, translateNotFound(err, "employee")
	}
	return employee, nil
}

func (s *EmployeeService) List(ctx context.Context, query *repository.ListQuery) ([]models.Employee, int64, error) {
	return s.repo.List(ctx, query)
}

func (s *EmployeeService) Create(ctx context.Context, input *EmployeeInput, actorID uint) (*models.Employee, error) {
	employee := &models.Employee{
		Name:          strings.TrimSpace(input.Name),
		Email:         strings.ToLower(strings.TrimSpace(input.Email)),
		Status:        input.Status,
		DepartmentID:  input.DepartmentID,
		DesignationID: input.DesignationID,
	}
	if employee.Status == "" {
		employee.Status = models.StatusActive
	}

	if err := s.validateFields(ctx, employee); err != nil {
		return nil, err
	}
	if input.ManagerID != nil {
		// No id exists yet, so only manager existence can be checked here;
		// the cycle guard matters on update.
		if _, err := s.repo.FindByID(ctx, *input.ManagerID); err != nil {
			return nil, translateNotFound(err, "manager")
		}
		employee.ManagerID = input.ManagerID
	}

	if err := s.repo.Create(ctx, employee); err != nil {
		if repository.IsDuplicateKeyError(err, "") {
			return nil, conflictErrorf("an employee with email %s already exists", employee.Email)
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, "CREATE", "Employee", employee.ID,
		fmt.Sprintf("employee created: %s (%s)", employee.Name, employee.Email))
	return employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, id uint, input *EmployeeInput, actorID uint) (*models.Employee, error) {
	employee, err := s.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != "" {
		employee.Name = strings.TrimSpace(input.Name)
	}
	if input.Email != "" {
		employee.Email = strings.ToLower(strings.TrimSpace(input.Email))
	}
	if input.Status != "" {
		if input.Status != models.StatusActive && input.Status != models.StatusInactive {
			return nil, validationErrorf("status must be %q or %q", models.StatusActive, models.StatusInactive)
		}
		employee.Status = input.Status
	}
	if input.DepartmentID != nil {
		employee.DepartmentID = input.DepartmentID
	}
	if input.DesignationID != nil {
		employee.DesignationID = input.DesignationID
	}

	if err := s.validateFields(ctx, employee); err != nil {
		return nil, err
	}

	if input.ManagerID != nil {
		if err := s.validateManager(ctx, id, *input.ManagerID); err != nil {
			return nil, err
		}
		employee.ManagerID = input.ManagerID
	}

	employee.Manager = nil // avoid writing back the preloaded association
	if err := s.repo.Update(ctx, employee); err != nil {
		if repository.IsDuplicateKeyError(err, "") {
			return nil, conflictErrorf("an employee with email %s already exists", employee.Email)
		}
		return nil, err
	}

	s.auditSvc.Log(ctx, actorID, "UPDATE", "Employee", employee.ID,
		fmt.Sprintf("employee updated: %s", employee.Email))
	return employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uint, actorID uint) error {
	if _, err := s.FindByID(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.auditSvc.Log(ctx, actorID, "DELETE", "Employee", id, "employee deleted, direct reports detached")
	return nil
}

// validateFields checks email syntax and referenced department/designation.
func (s *EmployeeService) validateFields(ctx context.Context, employee *models.Employee) error {
	if err := validate.Var(employee.Email, "required,email"); err != nil {
		return validationErrorf("invalid email format: %s", employee.Email)
	}
	if employee.Name == "" {
		return validationErrorf("name is required")
	}
	if employee.DepartmentID != nil {
		if _, err := s.deptRepo.FindByID(ctx, *employee.DepartmentID); err != nil {
			return translateNotFound(err, "department")
		}
	}
	if employee.DesignationID != nil {
		if _, err := s.desigRepo.FindByID(ctx, *employee.DesignationID); err != nil {
			return translateNotFound(err, "designation")
		}
	}
	return nil
}

// validateManager rejects a missing manager, self-reporting, and any
// assignment that would close a reporting cycle. The cycle check walks the
// proposed manager's ancestor chain; finding the employee there means the
// employee would become its own transitive manager.
func (s *EmployeeService) validateManager(ctx context.Context, employeeID, managerID uint) error {
	if managerID == employeeID {
		return validationErrorf("employee cannot report to themselves")
	}
	if _, err := s.repo.FindByID(ctx, managerID); err != nil {
		return translateNotFound(err, "manager")
	}

	ancestors, err := s.AncestorChain(ctx, managerID)
	if err != nil {
		return err
	}
	for _, ancestor := range ancestors {
		if ancestor.ID == employeeID {
			return validationErrorf("assignment would create a reporting cycle")
		}
	}
	return nil
}

// AncestorChain returns the employee's managers ordered nearest first,
// ending at the first employee with no manager or a broken reference. A
// visited set stops traversal if the stored data already contains a cycle.
func (s *EmployeeService) AncestorChain(ctx context.Context, employeeID uint) ([]models.Employee, error) {
	employee, err := s.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	chain := []models.Employee{}
	visited := map[uint]bool{employee.ID: true}
	current := employee
	for current.ManagerID != nil {
		if visited[*current.ManagerID] {
			break
		}
		manager, err := s.repo.FindByID(ctx, *current.ManagerID)
		if err != nil {
			break // dangling reference ends the chain
		}
		visited[manager.ID] = true
		chain = append(chain, *manager)
		current = manager
	}
	return chain, nil
}

// DirectSubordinates returns the employees reporting directly to managerID.
func (s *EmployeeService) DirectSubordinates(ctx context.Context, managerID uint) ([]models.Employee, error) {
	if _, err := s.FindByID(ctx, managerID); err != nil {
		return nil, err
	}
	return s.repo.FindByManager(ctx, managerID)
}

// SubordinateTree returns the full reporting tree rooted at employeeID.
// The same visited-set guard as AncestorChain keeps a cyclic graph from
// looping forever.
func (s *EmployeeService) SubordinateTree(ctx context.Context, employeeID uint) (*models.EmployeeTreeNode, error) {
	root, err := s.FindByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	visited := map[uint]bool{root.ID: true}
	node, err := s.buildTree(ctx, root, visited)
	if err != nil {
		return nil, err
	}
	return node, nil
}

func (s *EmployeeService) buildTree(ctx context.Context, employee *models.Employee, visited map[uint]bool) (*models.EmployeeTreeNode, error) {
	node := &models.EmployeeTreeNode{
		ID:           employee.ID,
		Name:         employee.Name,
		Email:        employee.Email,
		ManagerID:    employee.ManagerID,
		Subordinates: []models.EmployeeTreeNode{},
	}

	reports, err := s.repo.FindByManager(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	for i := range reports {
		if visited[reports[i].ID] {
			continue
		}
		visited[reports[i].ID] = true
		child, err := s.buildTree(ctx, &reports[i], visited)
		if err != nil {
			return nil, err
		}
		node.Subordinates = append(node.Subordinates, *child)
	}
	return node, nil
}

// WithoutManager lists employees that have no manager assigned.
func (s *EmployeeService) WithoutManager(ctx context.Context) ([]models.Employee, error) {
	return s.repo.FindWithoutManager(ctx)
}

// Dashboard is the employee's self-service projection: the employee, their
// manager chain, and their timesheets with logs, optionally narrowed to the
// week starting at weekStarting.
type Dashboard struct {
	Employee         models.EmployeeResponse    `json:"employee"`
	ManagerHierarchy []models.EmployeeResponse  `json:"manager_hierarchy"`
	Timesheets       []models.TimesheetResponse `json:"timesheets"`
}

func (s *EmployeeService) Dashboard(ctx context.Context, email string, weekStarting *time.Time) (*Dashboard, error) {
	employee, err := s.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	chain, err := s.AncestorChain(ctx, employee.ID)
	if err != nil {
		return nil, err
	}
	hierarchy := make([]models.EmployeeResponse, 0, len(chain))
	for i := range chain {
		hierarchy = append(hierarchy, chain[i].ToResponse())
	}

	var sheets []models.Timesheet
	if weekStarting != nil {
		sheet, err := s.tsRepo.FindByEmployeeAndWeek(ctx, employee.ID, *weekStarting)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		if err == nil {
			sheets = append(sheets, *sheet)
		}
	} else {
		sheets, err = s.tsRepo.FindByEmployee(ctx, employee.ID)
		if err != nil {
			return nil, err
		}
	}

	sheetResponses := make([]models.TimesheetResponse, 0, len(sheets))
	for i := range sheets {
		sheetResponses = append(sheetResponses, sheets[i].ToResponse())
	}

	return &Dashboard{
		Employee:         employee.ToResponse(),
		ManagerHierarchy: hierarchy,
		Timesheets:       sheetResponses,
	}, nil
}
