package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"github.com/yukawa-dev/project-tracker-api/internal/constants"
	"github.com/yukawa-dev/project-tracker-api/internal/database"
	"github.com/yukawa-dev/project-tracker-api/internal/dto"
	"github.com/yukawa-dev/project-tracker-api/internal/middleware"
	"github.com/yukawa-dev/project-tracker-api/internal/models"
	"github.com/yukawa-dev/project-tracker-api/internal/repository"
	"github.com/yukawa-dev/project-tracker-api/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ProjectHandlerTestSuite defines the test suite for ProjectHandler
type ProjectHandlerTestSuite struct {
	suite.Suite
	db      *gorm.DB
	handler *ProjectHandler
}

// SetupTest runs before each test
func (suite *ProjectHandlerTestSuite) SetupTest() {
	var err error

	// Create in-memory SQLite database
	suite.db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	suite.Require().NoError(err)

	// Run migrations
	err = suite.db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Task{},
	)
	suite.Require().NoError(err)

	// Set the test DB as the default database (used by ownership middleware)
	database.SetDB(suite.db)

	projectRepo := repository.NewProjectRepository(suite.db)
	suite.handler = NewProjectHandler(services.NewProjectService(projectRepo))

	gin.SetMode(gin.TestMode)
}

// TearDownTest runs after each test
func (suite *ProjectHandlerTestSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// newRouter builds the project routes with the given user already
// authenticated, mirroring the wiring in cmd/server
func (suite *ProjectHandlerTestSuite) newRouter(userID uint64) *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	})

	projects := r.Group("/api/projects")
	{
		projects.POST("", suite.handler.CreateProject)
		projects.GET("", suite.handler.ListProjects)
		projects.GET("/:id", middleware.RequireProjectOwnership(), suite.handler.GetProject)
		projects.PUT("/:id", middleware.RequireProjectOwnership(), suite.handler.UpdateProject)
		projects.DELETE("/:id", middleware.RequireProjectOwnership(), suite.handler.DeleteProject)
	}

	return r
}

func (suite *ProjectHandlerTestSuite) createTestUser(username string) *models.User {
	user := &models.User{
		Username:     username,
		PasswordHash: "hashedpassword",
	}
	suite.db.Create(user)
	return user
}

func (suite *ProjectHandlerTestSuite) createTestProject(title string, userID uint64) *models.Project {
	project := &models.Project{
		Title:       title,
		Description: "Test Description",
		UserID:      userID,
	}
	suite.db.Create(project)
	return project
}

func (suite *ProjectHandlerTestSuite) createTestTask(title string, projectID uint64) *models.Task {
	task := &models.Task{
		Title:     title,
		ProjectID: projectID,
	}
	suite.db.Create(task)
	return task
}

func (suite *ProjectHandlerTestSuite) doJSON(r *gin.Engine, method, url string, payload any) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_Success() {
	user := suite.createTestUser("alice")
	r := suite.newRouter(user.ID)

	w := suite.doJSON(r, "POST", "/api/projects", map[string]any{
		"title":       "Website",
		"description": "Marketing site revamp",
	})

	assert.Equal(suite.T(), http.StatusCreated, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Contains(suite.T(), response, "project_id")

	var project models.Project
	suite.Require().NoError(suite.db.First(&project).Error)
	assert.Equal(suite.T(), "Website", project.Title)
	assert.Equal(suite.T(), user.ID, project.UserID)
}

func (suite *ProjectHandlerTestSuite) TestCreateProject_MissingTitle() {
	user := suite.createTestUser("alice")
	r := suite.newRouter(user.ID)

	w := suite.doJSON(r, "POST", "/api/projects", map[string]any{
		"description": "no title",
	})

	assert.Equal(suite.T(), http.StatusBadRequest, w.Code)
}

func (suite *ProjectHandlerTestSuite) TestListProjects_OnlyOwn() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	mine := suite.createTestProject("Mine", alice.ID)
	suite.createTestProject("Theirs", bob.ID)
	suite.createTestTask("First", mine.ID)
	suite.createTestTask("Second", mine.ID)

	r := suite.newRouter(alice.ID)
	w := suite.doJSON(r, "GET", "/api/projects", nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ProjectListResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	suite.Require().Len(response.Projects, 1)
	assert.Equal(suite.T(), "Mine", response.Projects[0].Title)
	assert.Equal(suite.T(), int64(1), response.TotalCount)

	// Nested tasks come back in insertion order
	suite.Require().Len(response.Projects[0].Tasks, 2)
	assert.Equal(suite.T(), "First", response.Projects[0].Tasks[0].Title)
	assert.Equal(suite.T(), "Second", response.Projects[0].Tasks[1].Title)
}

func (suite *ProjectHandlerTestSuite) TestGetProject_Success() {
	user := suite.createTestUser("alice")
	project := suite.createTestProject("Website", user.ID)
	suite.createTestTask("Design homepage", project.ID)

	r := suite.newRouter(user.ID)
	w := suite.doJSON(r, "GET", fmt.Sprintf("/api/projects/%d", project.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var response dto.ProjectDTO
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), project.ID, response.ID)
	assert.Equal(suite.T(), user.ID, response.UserID)
	suite.Require().Len(response.Tasks, 1)
	assert.Equal(suite.T(), "Design homepage", response.Tasks[0].Title)
	assert.False(suite.T(), response.Tasks[0].IsCompleted)
}

// Another user's project must be indistinguishable from a missing one
func (suite *ProjectHandlerTestSuite) TestGetProject_OtherUsersProjectIsNotFound() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	project := suite.createTestProject("Secret", alice.ID)

	r := suite.newRouter(bob.ID)
	w := suite.doJSON(r, "GET", fmt.Sprintf("/api/projects/%d", project.ID), nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	var response map[string]any
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(suite.T(), "NOT_FOUND", response["code"])
	assert.NotContains(suite.T(), w.Body.String(), "Secret")
}

func (suite *ProjectHandlerTestSuite) TestUpdateProject_Success() {
	user := suite.createTestUser("alice")
	project := suite.createTestProject("Old title", user.ID)

	r := suite.newRouter(user.ID)
	w := suite.doJSON(r, "PUT", fmt.Sprintf("/api/projects/%d", project.ID), map[string]any{
		"title":       "New title",
		"description": "New description",
	})

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var updated models.Project
	suite.Require().NoError(suite.db.First(&updated, project.ID).Error)
	assert.Equal(suite.T(), "New title", updated.Title)
	assert.Equal(suite.T(), "New description", updated.Description)
	assert.Equal(suite.T(), user.ID, updated.UserID)
}

func (suite *ProjectHandlerTestSuite) TestDeleteProject_CascadesToTasks() {
	user := suite.createTestUser("alice")
	project := suite.createTestProject("Website", user.ID)
	suite.createTestTask("Task 1", project.ID)
	suite.createTestTask("Task 2", project.ID)

	r := suite.newRouter(user.ID)
	w := suite.doJSON(r, "DELETE", fmt.Sprintf("/api/projects/%d", project.ID), nil)

	assert.Equal(suite.T(), http.StatusOK, w.Code)

	var projectCount, taskCount int64
	suite.db.Model(&models.Project{}).Count(&projectCount)
	suite.db.Model(&models.Task{}).Count(&taskCount)
	assert.Equal(suite.T(), int64(0), projectCount)
	assert.Equal(suite.T(), int64(0), taskCount)

	// The owner's listing shows neither the project nor its tasks
	listW := suite.doJSON(r, "GET", "/api/projects", nil)
	var response dto.ProjectListResponse
	suite.Require().NoError(json.Unmarshal(listW.Body.Bytes(), &response))
	assert.Empty(suite.T(), response.Projects)
}

func (suite *ProjectHandlerTestSuite) TestDeleteProject_SecondDeleteIsNotFound() {
	user := suite.createTestUser("alice")
	project := suite.createTestProject("Website", user.ID)

	r := suite.newRouter(user.ID)

	first := suite.doJSON(r, "DELETE", fmt.Sprintf("/api/projects/%d", project.ID), nil)
	assert.Equal(suite.T(), http.StatusOK, first.Code)

	second := suite.doJSON(r, "DELETE", fmt.Sprintf("/api/projects/%d", project.ID), nil)
	assert.Equal(suite.T(), http.StatusNotFound, second.Code)
}

func (suite *ProjectHandlerTestSuite) TestDeleteProject_OtherUsersProjectIsNotFound() {
	alice := suite.createTestUser("alice")
	bob := suite.createTestUser("bob")
	project := suite.createTestProject("Secret", alice.ID)
	suite.createTestTask("Task", project.ID)

	r := suite.newRouter(bob.ID)
	w := suite.doJSON(r, "DELETE", fmt.Sprintf("/api/projects/%d", project.ID), nil)

	assert.Equal(suite.T(), http.StatusNotFound, w.Code)

	// Nothing was deleted
	var projectCount, taskCount int64
	suite.db.Model(&models.Project{}).Count(&projectCount)
	suite.db.Model(&models.Task{}).Count(&taskCount)
	assert.Equal(suite.T(), int64(1), projectCount)
	assert.Equal(suite.T(), int64(1), taskCount)
}

func TestProjectHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ProjectHandlerTestSuite))
}
