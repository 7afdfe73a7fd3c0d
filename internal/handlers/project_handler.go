package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/hrsuite/timetrack-api/internal/models"
	"github.com/hrsuite/timetrack-api/internal/repository"
	"github.com/hrsuite/timetrack-api/internal/services"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// @Summary List Projects
// @Tags Projects
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param per_page query int false "Items per page" default(20)
// @Param search_term query string false "Search term"
// @Router /projects [get]
func (h *ProjectHandler) Index(c *gin.Context) {
	query := repository.NewListQuery()
	query.Page = intQuery(c, "page", 1)
	query.PerPage = intQuery(c, "per_page", 20)
	query.Search = c.Query("search_term")

	projects, total, err := h.projectService.List(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, projects[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"projects": responses, "pagination": gin.H{"total": total}})
}

func (h *ProjectHandler) Show(c *gin.Context) {
	id, err := uintParam(c, "project_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	project, err := h.projectService.FindByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project.ToResponse()})
}

func (h *ProjectHandler) Create(c *gin.Context) {
	var input services.ProjectInput
	if err := BindNestedOrFlat(c, "project", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Create(c.Request.Context(), &input, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"project": project.ToResponse()})
}

func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := uintParam(c, "project_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input services.ProjectInput
	if err := BindNestedOrFlat(c, "project", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project, err := h.projectService.Update(c.Request.Context(), id, &input, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"project": project.ToResponse()})
}

// Delete removes a project; daily logs that referenced it keep their hours
// with the project reference cleared.
func (h *ProjectHandler) Delete(c *gin.Context) {
	id, err := uintParam(c, "project_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.projectService.Delete(c.Request.Context(), id, actorID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Project deleted"})
}

func (h *ProjectHandler) Team(c *gin.Context) {
	id, err := uintParam(c, "project_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	team, err := h.projectService.Team(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ProjectTeamResponse, 0, len(team))
	for i := range team {
		responses = append(responses, team[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"team": responses})
}

type teamAssignmentInput struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	Role       string `json:"role"`
}

// AssignMember adds an employee to the project, optionally with a team role
func (h *ProjectHandler) AssignMember(c *gin.Context) {
	id, err := uintParam(c, "project_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var input teamAssignmentInput
	if err := BindNestedOrFlat(c, "assignment", &input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if input.Role == "" {
		if err := h.projectService.AddMember(c.Request.Context(), id, input.EmployeeID, actorID(c)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Member added"})
		return
	}

	assignment, err := h.projectService.AssignRole(c.Request.Context(), id, input.EmployeeID, input.Role, actorID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"assignment": assignment.ToResponse()})
}

func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	id, err := uintParam(c, "project_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	employeeID, err := uintParam(c, "employee_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.projectService.RemoveMember(c.Request.Context(), id, employeeID, actorID(c)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Member removed"})
}

// MemberProjects lists the projects an employee belongs to
func (h *ProjectHandler) MemberProjects(c *gin.Context) {
	employeeID, err := uintParam(c, "employee_id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	projects, err := h.projectService.MemberProjects(c.Request.Context(), employeeID)
	if err != nil {
		respondError(c, err)
		return
	}

	responses := make([]models.ProjectResponse, 0, len(projects))
	for i := range projects {
		responses = append(responses, projects[i].ToResponse())
	}
	c.JSON(http.StatusOK, gin.H{"projects": responses})
}
