package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yukawa-dev/project-tracker-api/internal/models"
	"github.com/yukawa-dev/project-tracker-api/internal/repository"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupProjectService(t *testing.T) (*ProjectService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return NewProjectService(repository.NewProjectRepository(db)), db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, PasswordHash: "hash"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestProjectService_CreateProject(t *testing.T) {
	svc, db := setupProjectService(t)
	owner := createUser(t, db, "alice")

	project, err := svc.CreateProject(owner.ID, CreateProjectInput{Title: "Website"})
	require.NoError(t, err)
	require.NotZero(t, project.ID)
	require.Equal(t, owner.ID, project.UserID)

	_, err = svc.CreateProject(owner.ID, CreateProjectInput{Title: "  "})
	require.ErrorIs(t, err, ErrProjectTitleRequired)
}

func TestProjectService_GetProject_ForeignOwnerFoldsIntoNotFound(t *testing.T) {
	svc, db := setupProjectService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	project, err := svc.CreateProject(alice.ID, CreateProjectInput{Title: "Secret"})
	require.NoError(t, err)

	_, err = svc.GetProject(bob.ID, project.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)

	// Missing project yields exactly the same error
	_, err = svc.GetProject(bob.ID, 9999)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_ListProjects_InsertionOrder(t *testing.T) {
	svc, db := setupProjectService(t)
	owner := createUser(t, db, "alice")

	first, err := svc.CreateProject(owner.ID, CreateProjectInput{Title: "First"})
	require.NoError(t, err)
	_, err = svc.CreateProject(owner.ID, CreateProjectInput{Title: "Second"})
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Task{Title: "B", ProjectID: first.ID}).Error)
	require.NoError(t, db.Create(&models.Task{Title: "A", ProjectID: first.ID}).Error)

	projects, total, err := svc.ListProjects(owner.ID, nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Len(t, projects, 2)
	require.Equal(t, "First", projects[0].Title)
	require.Equal(t, "Second", projects[1].Title)

	// Tasks inside a project keep creation order, not any other order
	require.Len(t, projects[0].Tasks, 2)
	require.Equal(t, "B", projects[0].Tasks[0].Title)
	require.Equal(t, "A", projects[0].Tasks[1].Title)
}

func TestProjectService_DeleteProject_CascadeAndDoubleDelete(t *testing.T) {
	svc, db := setupProjectService(t)
	owner := createUser(t, db, "alice")

	project, err := svc.CreateProject(owner.ID, CreateProjectInput{Title: "Website"})
	require.NoError(t, err)
	require.NoError(t, db.Create(&models.Task{Title: "T1", ProjectID: project.ID}).Error)
	require.NoError(t, db.Create(&models.Task{Title: "T2", ProjectID: project.ID}).Error)

	require.NoError(t, svc.DeleteProject(owner.ID, project.ID))

	var taskCount int64
	db.Model(&models.Task{}).Count(&taskCount)
	require.Zero(t, taskCount)

	err = svc.DeleteProject(owner.ID, project.ID)
	require.ErrorIs(t, err, ErrProjectNotFound)
}

func TestProjectService_UpdateProject(t *testing.T) {
	svc, db := setupProjectService(t)
	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	project, err := svc.CreateProject(alice.ID, CreateProjectInput{Title: "Old", Description: "Old desc"})
	require.NoError(t, err)

	updated, err := svc.UpdateProject(alice.ID, project.ID, UpdateProjectInput{Title: "New"})
	require.NoError(t, err)
	require.Equal(t, "New", updated.Title)
	require.Equal(t, "", updated.Description)

	_, err = svc.UpdateProject(bob.ID, project.ID, UpdateProjectInput{Title: "Hijack"})
	require.ErrorIs(t, err, ErrProjectNotFound)
}
