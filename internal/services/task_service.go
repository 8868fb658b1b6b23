package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yukawa-dev/project-tracker-api/internal/constants"
	"github.com/yukawa-dev/project-tracker-api/internal/models"
	"github.com/yukawa-dev/project-tracker-api/internal/repository"
	"gorm.io/gorm"
)

var (
	ErrTaskNotFound            = errors.New("task not found")
	ErrTaskTitleRequired       = errors.New("title is required")
	ErrSuggestionsNotAvailable = errors.New("task suggestion service is not configured")
	ErrNoTasksSuggested        = errors.New("no tasks could be suggested from the text")
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	aiService   *AIService
}

// NewTaskService creates a new TaskService
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, aiService *AIService) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		aiService:   aiService,
	}
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description string
}

// UpdateTaskInput represents input for updating a task. Updates replace the
// whole record: every field here is written on each update, so an absent
// description becomes the empty string again.
type UpdateTaskInput struct {
	Title       string
	Description string
	IsCompleted bool
}

// CreateTask creates a task under a project the user owns. The project is
// resolved through the owner scope first, so a foreign project is reported
// as not found.
func (s *TaskService) CreateTask(userID, projectID uint64, input CreateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTaskTitleRequired
	}

	if _, err := s.projectRepo.FindByIDForUser(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	task := &models.Task{
		Title:       input.Title,
		Description: input.Description,
		IsCompleted: false,
		ProjectID:   projectID,
	}

	if err := s.taskRepo.Create(task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	return task, nil
}

// UpdateTask replaces the mutable fields of a task. Ownership is resolved
// task -> project -> user on every call.
func (s *TaskService) UpdateTask(userID, taskID uint64, input UpdateTaskInput) (*models.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTaskTitleRequired
	}

	task, err := s.taskRepo.FindByIDForUser(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to find task: %w", err)
	}

	task.Title = input.Title
	task.Description = input.Description
	task.IsCompleted = input.IsCompleted

	if err := s.taskRepo.Update(task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	return task, nil
}

// DeleteTask deletes a task the user owns through its project
func (s *TaskService) DeleteTask(userID, taskID uint64) error {
	task, err := s.taskRepo.FindByIDForUser(taskID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("failed to find task: %w", err)
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	return nil
}

// SuggestTasks extracts task suggestions from free text for a project the
// user owns. Nothing is persisted; the caller decides what to create.
func (s *TaskService) SuggestTasks(ctx context.Context, userID, projectID uint64, text string) ([]TaskSuggestion, error) {
	if s.aiService == nil {
		return nil, ErrSuggestionsNotAvailable
	}

	if _, err := s.projectRepo.FindByIDForUser(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	suggestions, err := s.aiService.SuggestTasksFromText(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("failed to suggest tasks: %w", err)
	}

	if len(suggestions) > constants.MaxSuggestedTasks {
		suggestions = suggestions[:constants.MaxSuggestedTasks]
	}

	valid := make([]TaskSuggestion, 0, len(suggestions))
	for _, suggestion := range suggestions {
		if strings.TrimSpace(suggestion.Title) == "" {
			continue
		}
		valid = append(valid, suggestion)
	}

	if len(valid) == 0 {
		return nil, ErrNoTasksSuggested
	}

	return valid, nil
}
