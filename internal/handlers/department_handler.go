package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/services"
)

type DepartmentHandler struct {
	departmentService *services.DepartmentService
}

func NewDepartmentHandler(departmentService *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{departmentService: departmentService}
}

type departmentInput struct {
	Name string `json:"name" binding:"required"`
}

type designationInput struct {
	Title string `json:"title" binding:"required"`
}

func (h *DepartmentHandler) Index(c *gin.Context) {
	departments, err := h.departmentService.FindAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.DepartmentResponse, 0, len(departments))
	for i := range departments {
		responses = append(responses, departments[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"departments": responses})
}

func (h *DepartmentHandler) Show(c *gin.Context) {
	id, err := uintParam(c, "department_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	department, err := h.departmentService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"department": department.ToResponse()})
}

func (h *DepartmentHandler) Create(c *gin.Context) {
	var input departmentInput
	if err := BindNestedOrFlat(c, "department", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	department, err := h.departmentService.Create(c.Request.Context(), input.Name, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"department": department.ToResponse()})
}

func (h *DepartmentHandler) Update(c *gin.Context) {
	id, err := uintParam(c, "department_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input departmentInput
	if err := BindNestedOrFlat(c, "department", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	department, err := h.departmentService.Update(c.Request.Context(), id, input.Name, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"department": department.ToResponse()})
}

// Delete removes a department. Its employees stay, detached from the
// department and their designations; its designations are removed.
func (h *DepartmentHandler) Delete(c *gin.Context) {
	id, err := uintParam(c, "department_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.departmentService.Delete(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Department deleted"})
}

func (h *DepartmentHandler) Designations(c *gin.Context) {
	id, err := uintParam(c, "department_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	designations, err := h.departmentService.ListDesignations(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.DesignationResponse, 0, len(designations))
	for i := range designations {
		responses = append(responses, designations[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"designations": responses})
}

func (h *DepartmentHandler) CreateDesignation(c *gin.Context) {
	id, err := uintParam(c, "department_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input designationInput
	if err := BindNestedOrFlat(c, "designation", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	designation, err := h.departmentService.CreateDesignation(c.Request.Context(), id, input.Title, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"designation": designation.ToResponse()})
}

func (h *DepartmentHandler) DeleteDesignation(c *gin.Context) {
	id, err := uintParam(c, "designation_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.departmentService.DeleteDesignation(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Designation deleted"})
}
