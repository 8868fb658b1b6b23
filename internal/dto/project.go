package dto

import (
	"time"

	"github.com/yukawa-dev/project-tracker-api/internal/models"
)

// ProjectDTO represents a project with its tasks in API responses
type ProjectDTO struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	UserID      uint64    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	Tasks       []TaskDTO `json:"tasks"`
}

// ProjectListResponse represents a list of projects with optional
// pagination metadata
type ProjectListResponse struct {
	Projects   []ProjectDTO `json:"projects"`
	Page       int          `json:"page,omitempty"`
	PageSize   int          `json:"page_size,omitempty"`
	TotalCount int64        `json:"total_count"`
}

// ToProjectDTO converts a Project model to ProjectDTO
func ToProjectDTO(project models.Project) ProjectDTO {
	tasks := make([]TaskDTO, len(project.Tasks))
	for i, task := range project.Tasks {
		tasks[i] = ToTaskDTO(task)
	}

	return ProjectDTO{
		ID:          project.ID,
		Title:       project.Title,
		Description: project.Description,
		UserID:      project.UserID,
		CreatedAt:   project.CreatedAt,
		Tasks:       tasks,
	}
}

// ToProjectListResponse converts a slice of projects to ProjectListResponse
func ToProjectListResponse(projects []models.Project, page, pageSize int, totalCount int64) ProjectListResponse {
	items := make([]ProjectDTO, len(projects))
	for i, project := range projects {
		items[i] = ToProjectDTO(project)
	}

	return ProjectListResponse{
		Projects:   items,
		Page:       page,
		PageSize:   pageSize,
		TotalCount: totalCount,
	}
}
