package repository

import (
	"github.com/yukawa-dev/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// GormTaskRepository is a GORM implementation of TaskRepository
type GormTaskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &GormTaskRepository{db: db}
}

// Create creates a new task
func (r *GormTaskRepository) Create(task *models.Task) error {
	return r.db.Create(task).Error
}

// FindByIDForUser finds a task by ID, resolving ownership through the
// parent project on every access. A task under another user's project
// yields gorm.ErrRecordNotFound.
func (r *GormTaskRepository) FindByIDForUser(id, userID uint64) (*models.Task, error) {
	var task models.Task
	err := r.db.
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("tasks.id = ? AND projects.user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}

	return &task, nil
}

// Update updates a task
func (r *GormTaskRepository) Update(task *models.Task) error {
	return r.db.Save(task).Error
}

// Delete deletes a task
func (r *GormTaskRepository) Delete(id uint64) error {
	return r.db.Delete(&models.Task{}, id).Error
}
