package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/repository"
)

// Mock DepartmentRepository
type mockDepartmentRepo struct {
	repository.DepartmentRepository
	byName     map[string]*models.Department
	mockCreate func(ctx context.Context, department *models.Department) error
}

func (m *mockDepartmentRepo) FindByID(ctx context.Context, id uint) (*models.Department, error) {
	for _, d := range m.byName {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) FindByName(ctx context.Context, name string) (*models.Department, error) {
	if d, ok := m.byName[name]; ok {
		return d, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockDepartmentRepo) Create(ctx context.Context, department *models.Department) error {
	if m.mockCreate != nil {
		return m.mockCreate(ctx, department)
	}
	department.ID = uint(len(m.byName) + 1)
	m.byName[department.Name] = department
	return nil
}

func (m *mockDepartmentRepo) Update(ctx context.Context, department *models.Department) error {
	return nil
}

func TestDepartmentCreate_TrimsName(t *testing.T) {
	repo := &mockDepartmentRepo{byName: map[string]*models.Department{}}
	service := NewDepartmentService(repo, nil, nil)

	department, err := service.Create(context.Background(), "  Engineering ", 0)
	assert.NoError(t, err)
	assert.Equal(t, "Engineering", department.Name)
}

func TestDepartmentCreate_EmptyName(t *testing.T) {
	service := NewDepartmentService(&mockDepartmentRepo{byName: map[string]*models.Department{}}, nil, nil)

	_, err := service.Create(context.Background(), "   ", 0)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDepartmentCreate_DuplicateName(t *testing.T) {
	repo := &mockDepartmentRepo{byName: map[string]*models.Department{
		"Engineering": {ID: 1, Name: "Engineering"},
	}}
	service := NewDepartmentService(repo, nil, nil)

	_, err := service.Create(context.Background(), "Engineering", 0)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "already exists")
}

func TestDepartmentUpdate_RenameToOwnNameAllowed(t *testing.T) {
	repo := &mockDepartmentRepo{byName: map[string]*models.Department{
		"Engineering": {ID: 1, Name: "Engineering"},
	}}
	service := NewDepartmentService(repo, nil, nil)

	department, err := service.Update(context.Background(), 1, "Engineering", 0)
	assert.NoError(t, err)
	assert.Equal(t, "Engineering", department.Name)
}

func TestDepartmentUpdate_RenameToTakenName(t *testing.T) {
	repo := &mockDepartmentRepo{byName: map[string]*models.Department{
		"Engineering": {ID: 1, Name: "Engineering"},
		"Sales":       {ID: 2, Name: "Sales"},
	}}
	service := NewDepartmentService(repo, nil, nil)

	_, err := service.Update(context.Background(), 2, "Engineering", 0)
	assert.ErrorIs(t, err, ErrConflict)
}
