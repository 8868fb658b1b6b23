package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukawa-dev/project-tracker-api/internal/database"
	apierrors "github.com/yukawa-dev/project-tracker-api/internal/errors"
	"github.com/yukawa-dev/project-tracker-api/internal/models"
)

// RequireProjectOwnership checks that the current user owns the project in
// the URL. The lookup is scoped to the owner, so a project that exists but
// belongs to someone else gets the same 404 as a missing one; existence is
// never leaked.
func RequireProjectOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		projectIDStr := c.Param("id")
		projectID, err := strconv.ParseUint(projectIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid project ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var project models.Project
		if err := database.GetDB().
			Where("id = ? AND user_id = ?", projectID, userID).
			First(&project).Error; err != nil {
			apierrors.NotFound(c, "Project not found")
			c.Abort()
			return
		}

		c.Set("project", project)
		c.Next()
	}
}
