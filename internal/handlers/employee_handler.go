package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/repository"
	"github.com/hrsuite/timetrack-api/internal/services"
)

type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// actorID reads the acting employee from the X-Actor-Id header; zero when
// absent. Authentication is out of scope, callers self-identify.
func actorID(c *gin.Context) uint {
	value, err := strconv.ParseUint(c.GetHeader("X-Actor-Id"), 10, 32)
	if err != nil {
		return 0
	}
	return uint(value)
}

// @Summary List Employees
// @Description Get a paginated list of employees
// @Tags Employees
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Param status query string false "Filter by status"
// @Param department_id query int false "Filter by department"
// @Success 200 {object} map[string]interface{}
// @Router /employees [get]
func (h *EmployeeHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page = intQuery(c, "page", 1)
	query.PerPage = intQuery(c, "per_page", 20)
	query.Search = c.Query("search_term")
	query.SortBy = c.Query("sort_by")
	query.SortDir = c.Query("sort_dir")
	query.Filters["status"] = c.Query("status")
	query.Filters["department_id"] = c.Query("department_id")

	employees, total, err := h.employeeService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, employees[i].ToResponse())
	}

	c.JSON(http.StatusOK, gin.H{"employees": responses, "pagination": gin.H{"total": total}})
}

// @Summary Get Employee
// @Tags Employees
// @Produce json
// @Param employee_id path int true "Employee ID"
// @Success 200 {object} models.EmployeeResponse
// @Router /employees/{employee_id} [get]
func (h *EmployeeHandler) Show(c *gin.Context) {
	id, err := uintParam(c, "employee_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employee, err := h.employeeService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"employee": employee.ToResponse()})
}

// @Summary Create Employee
// @Tags Employees
// @Accept json
// @Produce json
// @Success 201 {object} models.EmployeeResponse
// @Router /employees [post]
func (h *EmployeeHandler) Create(c *gin.Context) {
	var input services.EmployeeInput
	if err := BindNestedOrFlat(c, "employee", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee, err := h.employeeService.Create(c.Request.Context(), &input, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"employee": employee.ToResponse()})
}

// @Summary Update Employee
// @Tags Employees
// @Accept json
// @Produce json
// @Param employee_id path int true "Employee ID"
// @Router /employees/{employee_id} [put]
func (h *EmployeeHandler) Update(c *gin.Context) {
	id, err := uintParam(c, "employee_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input services.EmployeeInput
	if err := BindNestedOrFlat(c, "employee", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee, err := h.employeeService.Update(c.Request.Context(), id, &input, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"employee": employee.ToResponse()})
}

// @Summary Delete Employee
// @Description Delete an employee; direct reports keep their rows with the manager reference cleared
// @Tags Employees
// @Produce json
// @Param employee_id path int true "Employee ID"
// @Router /employees/{employee_id} [delete]
func (h *EmployeeHandler) Delete(c *gin.Context) {
	id, err := uintParam(c, "employee_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.employeeService.Delete(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Employee deleted"})
}

// @Summary Ancestor Chain
// @Description Management chain above an employee, nearest manager first
// @Tags Employees
// @Produce json
// @Param employee_id path int true "Employee ID"
// @Router /employees/{employee_id}/ancestors [get]
func (h *EmployeeHandler) Ancestors(c *gin.Context) {
	id, err := uintParam(c, "employee_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	chain, err := h.employeeService.AncestorChain(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.EmployeeResponse, 0, len(chain))
	for i := range chain {
		responses = append(responses, chain[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"ancestors": responses})
}

// @Summary Direct Subordinates
// @Tags Employees
// @Produce json
// @Param employee_id path int true "Employee ID"
// @Router /employees/{employee_id}/subordinates [get]
func (h *EmployeeHandler) Subordinates(c *gin.Context) {
	id, err := uintParam(c, "employee_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	subordinates, err := h.employeeService.DirectSubordinates(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.EmployeeResponse, 0, len(subordinates))
	for i := range subordinates {
		responses = append(responses, subordinates[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"subordinates": responses})
}

// @Summary Subordinate Tree
// @Description Recursive tree of direct and indirect reports
// @Tags Employees
// @Produce json
// @Param employee_id path int true "Employee ID"
// @Router /employees/{employee_id}/tree [get]
func (h *EmployeeHandler) Tree(c *gin.Context) {
	id, err := uintParam(c, "employee_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tree, err := h.employeeService.SubordinateTree(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tree": tree})
}

// @Summary Employees Without Manager
// @Tags Employees
// @Produce json
// @Router /employees/without_manager [get]
func (h *EmployeeHandler) WithoutManager(c *gin.Context) {
	employees, err := h.employeeService.WithoutManager(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.EmployeeResponse, 0, len(employees))
	for i := range employees {
		responses = append(responses, employees[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"employees": responses})
}

// @Summary Employee Dashboard
// @Description Employee profile, management chain, and recent timesheets
// @Tags Employees
// @Produce json
// @Param email query string true "Employee email"
// @Param week_starting query string false "Week to focus (YYYY-MM-DD)"
// @Router /dashboard [get]
func (h *EmployeeHandler) Dashboard(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "email is required"})
		return
	}

	week, err := dateQuery(c, "week_starting")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var weekPtr *time.Time
	if !week.IsZero() {
		weekPtr = &week
	}

	dashboard, err := h.employeeService.Dashboard(c.Request.Context(), email, weekPtr)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dashboard)
}
