package repository

import (
	"github.com/yukawa-dev/project-tracker-api/internal/models"
	"github.com/yukawa-dev/project-tracker-api/internal/utils"
)

// ProjectRepository defines the interface for project data access.
//
// Every read here is scoped to an owner: a lookup for a project that exists
// but belongs to someone else behaves exactly like a lookup for a project
// that does not exist. Callers cannot tell the two apart.
type ProjectRepository interface {
	// Create creates a new project
	Create(project *models.Project) error

	// FindByIDForUser finds a project by ID, scoped to its owner
	FindByIDForUser(id, userID uint64, preload ...string) (*models.Project, error)

	// ListByUserID lists the user's projects with their tasks in insertion
	// order. A nil pagination returns the full set.
	ListByUserID(userID uint64, pagination *utils.PaginationParams) ([]models.Project, int64, error)

	// Update updates a project
	Update(project *models.Project) error

	// DeleteWithTasks deletes a project and all of its tasks in a single
	// transaction, scoped to the owner
	DeleteWithTasks(id, userID uint64) error
}

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	// Create creates a new task
	Create(task *models.Task) error

	// FindByIDForUser finds a task by ID, scoped through its parent
	// project to the owner
	FindByIDForUser(id, userID uint64) (*models.Task, error)

	// Update updates a task
	Update(task *models.Task) error

	// Delete deletes a task
	Delete(id uint64) error
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create creates a new user
	Create(user *models.User) error

	// FindByID finds a user by ID
	FindByID(id uint64) (*models.User, error)

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)
}
