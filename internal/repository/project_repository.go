package repository

import (
	"github.com/yukawa-dev/project-tracker-api/internal/database"
	"github.com/yukawa-dev/project-tracker-api/internal/models"
	"github.com/yukawa-dev/project-tracker-api/internal/utils"
	"gorm.io/gorm"
)

// GormProjectRepository is a GORM implementation of ProjectRepository
type GormProjectRepository struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *gorm.DB) ProjectRepository {
	return &GormProjectRepository{db: db}
}

// orderTasksByInsertion preloads tasks in insertion order. Auto-increment
// ids preserve creation order, which is the only order we guarantee.
func orderTasksByInsertion(db *gorm.DB) *gorm.DB {
	return db.Order("tasks.id ASC")
}

// Create creates a new project
func (r *GormProjectRepository) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// FindByIDForUser finds a project by ID, scoped to its owner.
// A project owned by another user yields gorm.ErrRecordNotFound.
func (r *GormProjectRepository) FindByIDForUser(id, userID uint64, preload ...string) (*models.Project, error) {
	var project models.Project
	query := r.db

	for _, p := range preload {
		if p == "Tasks" {
			query = query.Preload(p, orderTasksByInsertion)
			continue
		}
		query = query.Preload(p)
	}

	if err := query.Where("id = ? AND user_id = ?", id, userID).First(&project).Error; err != nil {
		return nil, err
	}

	return &project, nil
}

// ListByUserID lists the user's projects with nested tasks
func (r *GormProjectRepository) ListByUserID(userID uint64, pagination *utils.PaginationParams) ([]models.Project, int64, error) {
	var projects []models.Project

	query := r.db.Model(&models.Project{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	listQuery := query.Preload("Tasks", orderTasksByInsertion).Order("projects.id ASC")
	if pagination != nil {
		listQuery = listQuery.Scopes(database.Paginate(*pagination))
	}

	if err := listQuery.Find(&projects).Error; err != nil {
		return nil, 0, err
	}

	return projects, total, nil
}

// Update updates a project
func (r *GormProjectRepository) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// DeleteWithTasks deletes a project and all of its tasks in a transaction.
// The ownership-scoped lookup runs inside the transaction so a concurrent
// or repeated delete of the same project observes gorm.ErrRecordNotFound
// instead of a partial cascade.
func (r *GormProjectRepository) DeleteWithTasks(id, userID uint64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var project models.Project
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&project).Error; err != nil {
			return err
		}

		// Delete all tasks in the project
		if err := tx.Where("project_id = ?", id).Delete(&models.Task{}).Error; err != nil {
			return err
		}

		// Delete project
		if err := tx.Delete(&models.Project{}, id).Error; err != nil {
			return err
		}

		return nil
	})
}
