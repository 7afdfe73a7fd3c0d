package repository

import (
	"context"

	"github.com/hrsuite/timetrack-api/internal/models"
	"gorm.io/gorm"
)

// DepartmentRepository defines the interface for department data access
type DepartmentRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Department, error)
	FindByName(ctx context.Context, name string) (*models.Department, error)
	Create(ctx context.Context, department *models.Department) error
	Update(ctx context.Context, department *models.Department) error
	Delete(ctx context.Context, id uint) error
	FindAll(ctx context.Context) ([]models.Department, error)
}

type departmentRepository struct {
	db *gorm.DB
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *gorm.DB) DepartmentRepository {
	return &departmentRepository{db: db}
}

func (r *departmentRepository) FindByID(ctx context.Context, id uint) (*models.Department, error) {
	var department models.Department
	err := r.db.WithContext(ctx).
		Preload("Designations").
		First(&department, id).Error
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) FindByName(ctx context.Context, name string) (*models.Department, error) {
	var department models.Department
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?)", name).
		First(&department).Error
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *departmentRepository) Create(ctx context.Context, department *models.Department) error {
	return r.db.WithContext(ctx).Create(department).Error
}

func (r *departmentRepository) Update(ctx context.Context, department *models.Department) error {
	return r.db.WithContext(ctx).Save(department).Error
}

// Delete removes the department, cascading to its designations while
// detaching its employees. Whether employees should instead be deleted with
// the department is an open product decision; detaching is the
// non-destructive default.
func (r *departmentRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).
			Where("department_id = ?", id).
			Updates(map[string]interface{}{"department_id": nil, "designation_id": nil}).Error; err != nil {
			return err
		}
		if err := tx.Where("department_id = ?", id).Delete(&models.Designation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Department{}, id).Error
	})
}

func (r *departmentRepository) FindAll(ctx context.Context) ([]models.Department, error) {
	var departments []models.Department
	err := r.db.WithContext(ctx).
		Order("name ASC").
		Find(&departments).Error
	return departments, err
}

// DesignationRepository defines the interface for designation data access
type DesignationRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Designation, error)
	FindByTitle(ctx context.Context, departmentID uint, title string) (*models.Designation, error)
	Create(ctx context.Context, designation *models.Designation) error
	Update(ctx context.Context, designation *models.Designation) error
	Delete(ctx context.Context, id uint) error
	FindByDepartment(ctx context.Context, departmentID uint) ([]models.Designation, error)
}

type designationRepository struct {
	db *gorm.DB
}

// NewDesignationRepository creates a new designation repository
func NewDesignationRepository(db *gorm.DB) DesignationRepository {
	return &designationRepository{db: db}
}

func (r *designationRepository) FindByID(ctx context.Context, id uint) (*models.Designation, error) {
	var designation models.Designation
	err := r.db.WithContext(ctx).First(&designation, id).Error
	if err != nil {
		return nil, err
	}
	return &designation, nil
}

func (r *designationRepository) FindByTitle(ctx context.Context, departmentID uint, title string) (*models.Designation, error) {
	var designation models.Designation
	err := r.db.WithContext(ctx).
		Where("department_id = ? AND LOWER(title) = LOWER(?)", departmentID, title).
		First(&designation).Error
	if err != nil {
		return nil, err
	}
	return &designation, nil
}

func (r *designationRepository) Create(ctx context.Context, designation *models.Designation) error {
	return r.db.WithContext(ctx).Create(designation).Error
}

func (r *designationRepository) Update(ctx context.Context, designation *models.Designation) error {
	return r.db.WithContext(ctx).Save(designation).Error
}

// Delete clears the designation from employees holding it, then removes it.
func (r *designationRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).
			Where("designation_id = ?", id).
			Update("designation_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Designation{}, id).Error
	})
}

func (r *designationRepository) FindByDepartment(ctx context.Context, departmentID uint) ([]models.Designation, error) {
	var designations []models.Designation
	err := r.db.WithContext(ctx).
		Where("department_id = ?", departmentID).
		Order("title ASC").
		Find(&designations).Error
	return designations, err
}
