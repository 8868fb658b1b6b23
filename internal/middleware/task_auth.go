package middleware

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukawa-dev/project-tracker-api/internal/database"
	apierrors "github.com/yukawa-dev/project-tracker-api/internal/errors"
	"github.com/yukawa-dev/project-tracker-api/internal/models"
)

// RequireTaskOwnership checks that the current user owns the task in the
// URL. Ownership is resolved task -> project -> user on every request;
// it is never stored on the task itself. A task under another user's
// project gets a 404, same as a missing task.
func RequireTaskOwnership() gin.HandlerFunc {
	return func(c *gin.Context) {
		taskIDStr := c.Param("id")
		taskID, err := strconv.ParseUint(taskIDStr, 10, 64)
		if err != nil {
			apierrors.BadRequest(c, "Invalid task ID")
			c.Abort()
			return
		}

		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		var task models.Task
		if err := database.GetDB().
			Joins("JOIN projects ON projects.id = tasks.project_id").
			Where("tasks.id = ? AND projects.user_id = ?", taskID, userID).
			First(&task).Error; err != nil {
			apierrors.NotFound(c, "Task not found")
			c.Abort()
			return
		}

		c.Set("task", task)
		c.Next()
	}
}
