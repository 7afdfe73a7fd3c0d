package repository

import (
	"context"

	"github.com/hrsuite/timetrack-api/internal/models"
	"gorm.io/gorm"
)

// EmployeeRepository defines the interface for employee data access
type EmployeeRepository interface {
	FindByID(ctx context.Context, id uint) (*models.Employee, error)
	FindByEmail(ctx context.Context, email string) (*models.Employee, error)
	Create(ctx context.Context, employee *models.Employee) error
	Update(ctx context.Context, employee *models.Employee) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, query *ListQuery) ([]models.Employee, int64, error)
	FindAll(ctx context.Context) ([]models.Employee, error)
	FindByManager(ctx context.Context, managerID uint) ([]models.Employee, error)
	FindWithoutManager(ctx context.Context) ([]models.Employee, error)
	ClearManager(ctx context.Context, managerID uint) error
	DetachFromDepartment(ctx context.Context, departmentID uint) error
}

type employeeRepository struct {
	db *gorm.DB
}

// NewEmployeeRepository creates a new employee repository
func NewEmployeeRepository(db *gorm.DB) EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Preload("Manager").
		First(&employee, id).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByEmail(ctx context.Context, email string) (*models.Employee, error) {
	var employee models.Employee
	err := r.db.WithContext(ctx).
		Preload("Manager").
		Where("LOWER(email) = LOWER(?)", email).
		First(&employee).Error
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepository) Update(ctx context.Context, employee *models.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

// Delete removes the employee after clearing the manager reference on every
// direct report. Subordinates are never cascade-deleted; the employee's own
// timesheets (and their logs and change history) are.
func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Employee{}).
			Where("manager_id = ?", id).
			Update("manager_id", nil).Error; err != nil {
			return err
		}
		var timesheetIDs []uint
		if err := tx.Model(&models.Timesheet{}).
			Where("employee_id = ?", id).
			Pluck("id", &timesheetIDs).Error; err != nil {
			return err
		}
		if len(timesheetIDs) > 0 {
			if err := deleteLogsForTimesheets(tx, timesheetIDs); err != nil {
				return err
			}
			if err := tx.Delete(&models.Timesheet{}, timesheetIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("employee_id = ?", id).Delete(&models.ProjectTeam{}).Error; err != nil {
			return err
		}
		if err := tx.Exec("DELETE FROM employee_projects WHERE employee_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Employee{}, id).Error
	})
}

func (r *employeeRepository) List(ctx context.Context, query *ListQuery) ([]models.Employee, int64, error) {
	var employees []models.Employee
	var total int64

	db := r.db.WithContext(ctx).Model(&models.Employee{})

	if query.Search != "" {
		search := "%" + query.Search + "%"
		db = db.Where("name ILIKE ? OR email ILIKE ?", search, search)
	}

	if query.Filters["status"] != "" {
		db = db.Where("status = ?", query.Filters["status"])
	}

	if query.Filters["department_id"] != "" {
		db = db.Where("department_id = ?", query.Filters["department_id"])
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

	err := db.Preload("Manager").Find(&employees).Error
	return employees, total, err
}

func (r *employeeRepository) FindAll(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) FindByManager(ctx context.Context, managerID uint) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).
		Where("manager_id = ?", managerID).
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) FindWithoutManager(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := r.db.WithContext(ctx).
		Where("manager_id IS NULL").
		Order("name ASC").
		Find(&employees).Error
	return employees, err
}

func (r *employeeRepository) ClearManager(ctx context.Context, managerID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("manager_id = ?", managerID).
		Update("manager_id", nil).Error
}

func (r *employeeRepository) DetachFromDepartment(ctx context.Context, departmentID uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Employee{}).
		Where("department_id = ?", departmentID).
		Updates(map[string]interface{}{"department_id": nil, "designation_id": nil}).Error
}
