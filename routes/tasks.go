package routes

import (
	"errors"
	"net/http"

	"github.com/123AnkitSharma/Taskify/database"
	"github.com/123AnkitSharma/Taskify/services"
	"github.com/123AnkitSharma/Taskify/utils/taskview"

	"github.com/gin-gonic/gin"
)

func RegisterTaskRoutes(group *gin.RouterGroup, db *database.Database, taskService services.TaskServiceInterface) {
	group.GET("/tasks", func(c *gin.Context) { GetTasks(c, db, taskService) })
	group.POST("/tasks", func(c *gin.Context) { CreateTask(c, db, taskService) })
	group.GET("/tasks/stats", func(c *gin.Context) { GetTaskStats(c, db, taskService) })
	group.GET("/tasks/:id", func(c *gin.Context) { GetTaskById(c, db, taskService) })
	group.PUT("/tasks/:id", func(c *gin.Context) { UpdateTask(c, db, taskService) })
	group.PATCH("/tasks/:id/toggle", func(c *gin.Context) { ToggleTask(c, db, taskService) })
	group.DELETE("/tasks/:id", func(c *gin.Context) { DeleteTask(c, db, taskService) })
}

func CreateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var taskData map[string]interface{}
	if err := c.ShouldBindJSON(&taskData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	createdTask, err := taskService.CreateTask(db, userID, taskData)
	if err != nil {
		var validationErr *services.ValidationError
		if errors.As(err, &validationErr) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation errors", "errors": validationErr.Fields})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while creating task"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "message": "Task created successfully", "task": createdTask})
}

// GetTasks lists the caller's tasks. Status, priority and search narrow the
// result; sort_by/sort_order reorder it (newest first by default).
func GetTasks(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	params := make(map[string]interface{})
	if status := c.Query("status"); status != "" {
		params["status"] = status
	}
	if priority := c.Query("priority"); priority != "" {
		params["priority"] = priority
	}
	if search := c.Query("search"); search != "" {
		params["search"] = search
	}

	tasks, err := taskService.GetTasks(db, userID, params)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching tasks"})
		return
	}

	if sortBy := c.Query("sort_by"); sortBy != "" {
		taskview.Sort(tasks, taskview.SortKeyFromString(sortBy), c.Query("sort_order"))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "count": len(tasks), "tasks": tasks})
}

// GetTaskStats returns the dashboard summary for the caller's tasks
func GetTaskStats(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	tasks, err := taskService.GetTasks(db, userID, map[string]interface{}{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching tasks"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "stats": taskview.ComputeStats(tasks)})
}

func GetTaskById(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := taskService.GetTaskById(db, userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "task": task})
}

func UpdateTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	var taskData map[string]interface{}
	if err := c.ShouldBindJSON(&taskData); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	updatedTask, err := taskService.UpdateTask(db, userID, c.Param("id"), taskData)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation errors", "errors": validationErr.Fields})
		case errors.Is(err, services.ErrTaskNotFound):
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while updating task"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task updated successfully", "task": updatedTask})
}

func ToggleTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	task, err := taskService.ToggleTask(db, userID, c.Param("id"))
	if err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while toggling task"})
		return
	}

	message := "Task marked as incomplete"
	if task.Completed {
		message = "Task marked as completed"
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": message, "task": task})
}

func DeleteTask(c *gin.Context, db *database.Database, taskService services.TaskServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := taskService.DeleteTask(db, userID, c.Param("id")); err != nil {
		if errors.Is(err, services.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Task not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while deleting task"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Task deleted successfully"})
}
