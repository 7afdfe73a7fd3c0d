package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/repository"
)

// Mock EmployeeRepository backed by an in-memory map (embedding to avoid
// implementing all methods)
type mockEmployeeRepo struct {
	repository.EmployeeRepository
	employees  map[uint]*models.Employee
	mockCreate func(ctx context.Context, employee *models.Employee) error
	mockUpdate func(ctx context.Context, employee *models.Employee) error
}

func (m *mockEmployeeRepo) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	if e, ok := m.employees[id]; ok {
		copy := *e
		return &copy, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockEmployeeRepo) Create(ctx context.Context, employee *models.Employee) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, employee)
	}
	return nil
}

func (m *mockEmployeeRepo) Update(ctx context.Context, employee *models.Employee) error {
	if m.mockUpdate != nil {
		return m.mockUpdate(ctx, employee)
	}
	m.employees[employee.ID] = employee
	return nil
}

func (m *mockEmployeeRepo) FindByManager(ctx context.Context, managerID uint) ([]models.Employee, error) {
	var reports []models.Employee
	for _, e := range m.employees {
		if e.ManagerID != nil && *e.ManagerID == managerID {
			reports = append(reports, *e)
		}
	}
	return reports, nil
}

func uintPtr(v uint) *uint { return &v }

// hierarchyRepo builds CEO(1) <- VP(2) <- Lead(3) <- IC(4)
func hierarchyRepo() *mockEmployeeRepo {
	return &mockEmployeeRepo{
		employees: map[uint]*models.Employee{
			1: {ID: 1, Name: "CEO", Email: "ceo@acme.test"},
			2: {ID: 2, Name: "VP", Email: "vp@acme.test", ManagerID: uintPtr(1)},
			3: {ID: 3, Name: "Lead", Email: "lead@acme.test", ManagerID: uintPtr(2)},
			4: {ID: 4, Name: "IC", Email: "ic@acme.test", ManagerID: uintPtr(3)},
		},
	}
}

func TestAncestorChain_FourLevels(t *testing.T) {
	service := NewEmployeeService(hierarchyRepo(), nil, nil, nil, nil)

	chain, err := service.AncestorChain(context.Background(), 4)
	assert.NoError(t, err)
	assert.Len(t, chain, 3)
	// Nearest manager first, root last.
	assert.Equal(t, uint(3), chain[0].ID)
	assert.Equal(t, uint(2), chain[1].ID)
	assert.Equal(t, uint(1), chain[2].ID)
}

func TestAncestorChain_RootHasNoAncestors(t *testing.T) {
	service := NewEmployeeService(hierarchyRepo(), nil, nil, nil, nil)

	chain, err := service.AncestorChain(context.Background(), 1)
	assert.NoError(t, err)
	assert.Empty(t, chain)
}

func TestAncestorChain_UnknownEmployee(t *testing.T) {
	service := NewEmployeeService(hierarchyRepo(), nil, nil, nil, nil)

	_, err := service.AncestorChain(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAncestorChain_StoredCycleTerminates(t *testing.T) {
	// Corrupt data: 1 and 2 manage each other. The walk must stop, not loop.
	repo := &mockEmployeeRepo{
		employees: map[uint]*models.Employee{
			1: {ID: 1, Name: "A", Email: "a@acme.test", ManagerID: uintPtr(2)},
			2: {ID: 2, Name: "B", Email: "b@acme.test", ManagerID: uintPtr(1)},
		},
	}
	service := NewEmployeeService(repo, nil, nil, nil, nil)

	chain, err := service.AncestorChain(context.Background(), 1)
	assert.NoError(t, err)
	assert.Len(t, chain, 1)
	assert.Equal(t, uint(2), chain[0].ID)
}

func TestUpdate_SelfManagerRejected(t *testing.T) {
	service := NewEmployeeService(hierarchyRepo(), nil, nil, nil, nil)

	_, err := service.Update(context.Background(), 3, &EmployeeInput{
		ManagerID: uintPtr(3),
	}, 0)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "themselves")
}

func TestUpdate_TransitiveCycleRejected(t *testing.T) {
	service := NewEmployeeService(hierarchyRepo(), nil, nil, nil, nil)

	// CEO reporting to the IC would close a four-level cycle.
	_, err := service.Update(context.Background(), 1, &EmployeeInput{
		ManagerID: uintPtr(4),
	}, 0)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "cycle")
}

func TestUpdate_ValidManagerReassignment(t *testing.T) {
	repo := hierarchyRepo()
	service := NewEmployeeService(repo, nil, nil, nil, nil)

	// Moving the IC under the VP skips a level but closes no cycle.
	updated, err := service.Update(context.Background(), 4, &EmployeeInput{
		ManagerID: uintPtr(2),
	}, 0)
	assert.NoError(t, err)
	assert.Equal(t, uint(2), *updated.ManagerID)
}

func TestUpdate_UnknownManagerRejected(t *testing.T) {
	service := NewEmployeeService(hierarchyRepo(), nil, nil, nil, nil)

	_, err := service.Update(context.Background(), 4, &EmployeeInput{
		ManagerID: uintPtr(99),
	}, 0)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "manager")
}

func TestCreate_InvalidEmail(t *testing.T) {
	service := NewEmployeeService(hierarchyRepo(), nil, nil, nil, nil)

	_, err := service.Create(context.Background(), &EmployeeInput{
		Name:  "New Hire",
		Email: "not-an-email",
	}, 0)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "email")
}

func TestCreate_NormalizesEmail(t *testing.T) {
	repo := hierarchyRepo()
	var created *models.Employee
	repo.mockCreate = func(ctx context.Context, employee *models.Employee) error {
		employee.ID = 5
		created = employee
		return nil
	}
	service := NewEmployeeService(repo, nil, nil, nil, nil)

	employee, err := service.Create(context.Background(), &EmployeeInput{
		Name:  "  New Hire ",
		Email: "  NEW.Hire@Acme.TEST ",
	}, 0)
	assert.NoError(t, err)
	assert.Equal(t, "new.hire@acme.test", employee.Email)
	assert.Equal(t, "New Hire", employee.Name)
	assert.Equal(t, models.StatusActive, employee.Status)
	assert.NotNil(t, created)
}

func TestSubordinateTree_VisitedGuard(t *testing.T) {
	// 1 manages 2, and the stored data also claims 2 manages 1. Building
	// the tree from 1 must visit each node once.
	repo := &mockEmployeeRepo{
		employees: map[uint]*models.Employee{
			1: {ID: 1, Name: "A", Email: "a@acme.test", ManagerID: uintPtr(2)},
			2: {ID: 2, Name: "B", Email: "b@acme.test", ManagerID: uintPtr(1)},
		},
	}
	service := NewEmployeeService(repo, nil, nil, nil, nil)

	tree, err := service.SubordinateTree(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, uint(1), tree.ID)
	assert.Len(t, tree.Subordinates, 1)
	assert.Equal(t, uint(2), tree.Subordinates[0].ID)
	assert.Empty(t, tree.Subordinates[0].Subordinates)
}
