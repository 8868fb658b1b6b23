package dto

import (
	"time"

	"github.com/yukawa-dev/project-tracker-api/internal/models"
)

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsCompleted bool      `json:"is_completed"`
	ProjectID   uint64    `json:"project_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	return TaskDTO{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		IsCompleted: task.IsCompleted,
		ProjectID:   task.ProjectID,
		CreatedAt:   task.CreatedAt,
	}
}
