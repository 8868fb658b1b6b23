package database

import (
	"fmt"

	"github.com/yukawa-dev/project-tracker-api/internal/models"
	"gorm.io/gorm"
)

// AddIndexes adds performance-critical indexes to the database
func AddIndexes(db *gorm.DB) error {
	indexes := []struct {
		model   any
		table   string
		name    string
		columns string
	}{
		// Project index for ownership-scoped lookups
		{&models.Project{}, "projects", "idx_projects_user_id", "user_id"},

		// Task indexes for cascade deletes and insertion-order listing
		{&models.Task{}, "tasks", "idx_tasks_project_id", "project_id"},
		{&models.Task{}, "tasks", "idx_tasks_created_at", "created_at"},
	}

	for _, idx := range indexes {
		if db.Migrator().HasIndex(idx.model, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
	}

	return nil
}
