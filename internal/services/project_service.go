package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukawa-dev/project-tracker-api/internal/models"
	"github.com/yukawa-dev/project-tracker-api/internal/repository"
	"github.com/yukawa-dev/project-tracker-api/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrProjectNotFound      = errors.New("project not found")
	ErrProjectTitleRequired = errors.New("title is required")
)

// ProjectService handles project business logic
type ProjectService struct {
	projectRepo repository.ProjectRepository
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Title       string
	Description string
}

// UpdateProjectInput represents input for updating a project
type UpdateProjectInput struct {
	Title       string
	Description string
}

// CreateProject creates a new project owned by the given user
func (s *ProjectService) CreateProject(userID uint64, input CreateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrProjectTitleRequired
	}

	project := &models.Project{
		Title:       input.Title,
		Description: input.Description,
		UserID:      userID,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	return project, nil
}

// ListProjects returns the user's projects with their tasks
func (s *ProjectService) ListProjects(userID uint64, pagination *utils.PaginationParams) ([]models.Project, int64, error) {
	projects, total, err := s.projectRepo.ListByUserID(userID, pagination)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list projects: %w", err)
	}

	return projects, total, nil
}

// GetProject returns a project with its tasks. A project owned by another
// user is reported as not found, never as forbidden.
func (s *ProjectService) GetProject(userID, projectID uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByIDForUser(projectID, userID, "Tasks")
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	return project, nil
}

// UpdateProject updates the title and description of an owned project
func (s *ProjectService) UpdateProject(userID, projectID uint64, input UpdateProjectInput) (*models.Project, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrProjectTitleRequired
	}

	project, err := s.projectRepo.FindByIDForUser(projectID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}

	project.Title = input.Title
	project.Description = input.Description

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	return project, nil
}

// DeleteProject deletes an owned project and all of its tasks. The cascade
// is atomic: either the project and every task disappear together or
// nothing changes.
func (s *ProjectService) DeleteProject(userID, projectID uint64) error {
	if err := s.projectRepo.DeleteWithTasks(projectID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}

	return nil
}
