package routes

import (
	"errors"
	"net/http"

	"github.com/123AnkitSharma/Taskify/database"
	"github.com/123AnkitSharma/Taskify/services"

	"github.com/gin-gonic/gin"
)

func RegisterUserRoutes(group *gin.RouterGroup, db *database.Database, userService services.UserServiceInterface) {
	group.PUT("/users/me", func(c *gin.Context) { UpdateCurrentUser(c, db, userService) })
	group.DELETE("/users/me", func(c *gin.Context) { DeleteCurrentUser(c, db, userService) })
}

func UpdateCurrentUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	var userData map[string]interface{}
	if err := c.ShouldBindJSON(&userData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := userService.UpdateUser(db, userID, userData)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation errors", "errors": validationErr.Fields})
		case errors.Is(err, services.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while updating user"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

func DeleteCurrentUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := userService.DeleteUser(db, userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while deleting user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Account deleted successfully"})
}
