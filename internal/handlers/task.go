package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukawa-dev/project-tracker-api/internal/errors"
	"github.com/yukawa-dev/project-tracker-api/internal/middleware"
	"github.com/yukawa-dev/project-tracker-api/internal/models"
	"github.com/yukawa-dev/project-tracker-api/internal/services"
)

// TaskHandler coordinates task-related HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
	}
}

// CreateTask creates a new task under a project the current user owns.
// The project in the URL is already verified by RequireProjectOwnership.
func (h *TaskHandler) CreateTask(c *gin.Context) {
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

	type CreateTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(userID, project.ID, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task_id": task.ID,
	})
}

// UpdateTask replaces the title, description and completion flag of a task.
// Fields absent from the request are written as their zero values; this is
// a whole-record replace, not a merge.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, ok := taskFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	type UpdateTaskRequest struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description"`
		IsCompleted bool   `json:"is_completed"`
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	updated, err := h.taskService.UpdateTask(userID, task.ID, services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task_id": updated.ID,
	})
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	task, ok := taskFromContext(c)
	if !ok {
		apierrors.InternalError(c, "Task not found in context")
		return
	}

	if err := h.taskService.DeleteTask(userID, task.ID); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

// SuggestTasks generates task suggestions for a project from free text
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
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

	type SuggestTasksRequest struct {
		Text string `json:"text" binding:"required"`
	}

	var req SuggestTasksRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	suggestions, err := h.taskService.SuggestTasks(c.Request.Context(), userID, project.ID, req.Text)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": suggestions,
	})
}

func taskFromContext(c *gin.Context) (models.Task, bool) {
	taskInterface, exists := c.Get("task")
	if !exists {
		return models.Task{}, false
	}

	task, ok := taskInterface.(models.Task)
	return task, ok
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskTitleRequired):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound), errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrSuggestionsNotAvailable):
		apierrors.ServiceUnavailable(c, err.Error())
	case errors.Is(err, services.ErrNoTasksSuggested):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
