package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukawa-dev/project-tracker-api/internal/dto"
	apierrors "github.com/yukawa-dev/project-tracker-api/internal/errors"
	"github.com/yukawa-dev/project-tracker-api/internal/middleware"
	"github.com/yukawa-dev/project-tracker-api/internal/models"
	"github.com/yukawa-dev/project-tracker-api/internal/services"
	"github.com/yukawa-dev/project-tracker-api/internal/utils"
)

// ProjectHandler coordinates project-related HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// CreateProject creates a new project owned by the current user
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(userID, services.CreateProjectInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":    "Project created successfully",
		"project_id": project.ID,
	})
}

// ListProjects returns all projects owned by the current user, each with
// its tasks in insertion order. Supports optional pagination.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	var pagination *utils.PaginationParams
	if utils.PaginationRequested(c) {
		params := utils.GetPaginationParams(c)
		pagination = &params
	}

	projects, total, err := h.projectService.ListProjects(userID, pagination)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	page, pageSize := 0, 0
	if pagination != nil {
		page, pageSize = pagination.Page, pagination.Limit
	}

	c.JSON(http.StatusOK, dto.ToProjectListResponse(projects, page, pageSize, total))
}

// GetProject returns a project with its tasks
// Ownership is already verified by RequireProjectOwnership middleware
func (h *ProjectHandler) GetProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, ok := projectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	// Reload through the service to attach tasks in insertion order
	loaded, err := h.projectService.GetProject(userID, project.ID)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*loaded))
}

// UpdateProject updates the title and description of a project
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, ok := projectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	type UpdateProjectRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.projectService.UpdateProject(userID, project.ID, services.UpdateProjectInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Project updated successfully",
		"project_id": updated.ID,
	})
}

// DeleteProject deletes a project and all of its tasks
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	project, ok := projectFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Project not found in context")
		return
	}

	if err := h.projectService.DeleteProject(userID, project.ID); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

func projectFromContext(c *gin.Context) (models.Project, bool) {
	projectInterface, exists := c.Get("project")
	if !exists {
		return models.Project{}, false
	}

	project, ok := projectInterface.(models.Project)
	return project, ok
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
