package services

import (
	"errors"
	"strings"
	"time"

	"github.com/123AnkitSharma/Taskify/broker"
	"github.com/123AnkitSharma/Taskify/database"
	"github.com/123AnkitSharma/Taskify/models"
	"github.com/123AnkitSharma/Taskify/utils/taskview"
	"github.com/123AnkitSharma/Taskify/utils/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskServiceInterface interface {
	CreateTask(db *database.Database, userID uuid.UUID, taskData map[string]interface{}) (models.Task, error)
	GetTasks(db *database.Database, userID uuid.UUID, params map[string]interface{}) ([]models.Task, error)
	GetTaskById(db *database.Database, userID uuid.UUID, id string) (models.Task, error)
	UpdateTask(db *database.Database, userID uuid.UUID, id string, updatedData map[string]interface{}) (models.Task, error)
	ToggleTask(db *database.Database, userID uuid.UUID, id string) (models.Task, error)
	DeleteTask(db *database.Database, userID uuid.UUID, id string) error
}

type TaskService struct{}

func (s *TaskService) CreateTask(db *database.Database, userID uuid.UUID, taskData map[string]interface{}) (models.Task, error) {
	if fieldErrors := validation.ValidateTaskPayload(taskData, false); len(fieldErrors) > 0 {
		return models.Task{}, &ValidationError{Fields: fieldErrors}
	}

	title, _ := taskData["title"].(string)

	task := models.Task{
		ID:       uuid.New(),
		UserID:   userID,
		Title:    strings.TrimSpace(title),
		Priority: models.PriorityMedium,
	}

	if description, ok := taskData["description"].(string); ok {
		task.Description = strings.TrimSpace(description)
	}

	if priorityStr, ok := taskData["priority"].(string); ok && priorityStr != "" {
		// Already checked by validation above
		priority, err := models.PriorityFromString(priorityStr)
		if err != nil {
			return models.Task{}, &ValidationError{Fields: map[string]string{"priority": err.Error()}}
		}
		task.Priority = priority
	}

	if dueDateStr, ok := taskData["due_date"].(string); ok && dueDateStr != "" {
		dueDate, _ := validation.ParseDueDate(dueDateStr)
		task.DueDate = &dueDate
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	if err := tx.Create(&task).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	event, err := models.NewEvent(
		string(broker.TaskCreated),
		"task",
		map[string]interface{}{
			"task_id":   task.ID.String(),
			"user_id":   task.UserID.String(),
			"title":     task.Title,
			"completed": task.Completed,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

// GetTasks returns the caller's tasks, newest first. Status and priority
// filters are pushed into the query; the title search runs over the fetched
// set since it is a case-insensitive substring match.
func (s *TaskService) GetTasks(db *database.Database, userID uuid.UUID, params map[string]interface{}) ([]models.Task, error) {
	var tasks []models.Task
	query := db.DB.Where("user_id = ?", userID)

	if status, ok := params["status"].(string); ok {
		switch status {
		case taskview.StatusCompleted:
			query = query.Where("completed = ?", true)
		case taskview.StatusActive:
			query = query.Where("completed = ?", false)
		}
	}

	if priorityStr, ok := params["priority"].(string); ok && priorityStr != "" && priorityStr != "all" {
		if priority, err := models.PriorityFromString(priorityStr); err == nil {
			query = query.Where("priority = ?", priority)
		}
	}

	if err := query.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}

	if search, ok := params["search"].(string); ok && strings.TrimSpace(search) != "" {
		tasks = taskview.Filter(tasks, taskview.ViewSpec{Search: search})
	}

	return tasks, nil
}

func (s *TaskService) GetTaskById(db *database.Database, userID uuid.UUID, id string) (models.Task, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return models.Task{}, ErrTaskNotFound
	}

	var task models.Task
	if err := db.DB.First(&task, "id = ? AND user_id = ?", taskID, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}
	return task, nil
}

// UpdateTask applies only the fields present in updatedData. A payload that
// fails validation mutates nothing; an empty payload still refreshes
// updated_at.
func (s *TaskService) UpdateTask(db *database.Database, userID uuid.UUID, id string, updatedData map[string]interface{}) (models.Task, error) {
	if fieldErrors := validation.ValidateTaskPayload(updatedData, true); len(fieldErrors) > 0 {
		return models.Task{}, &ValidationError{Fields: fieldErrors}
	}

	taskID, err := uuid.Parse(id)
	if err != nil {
		return models.Task{}, ErrTaskNotFound
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ? AND user_id = ?", taskID, userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	updates := map[string]interface{}{
		"updated_at": time.Now().UTC(),
	}

	if title, ok := updatedData["title"].(string); ok {
		updates["title"] = strings.TrimSpace(title)
	}
	if description, ok := updatedData["description"].(string); ok {
		updates["description"] = strings.TrimSpace(description)
	}
	if priorityStr, ok := updatedData["priority"].(string); ok && priorityStr != "" {
		priority, err := models.PriorityFromString(priorityStr)
		if err != nil {
			tx.Rollback()
			return models.Task{}, &ValidationError{Fields: map[string]string{"priority": err.Error()}}
		}
		updates["priority"] = priority
	}
	if rawDueDate, present := updatedData["due_date"]; present {
		if dueDateStr, ok := rawDueDate.(string); ok && dueDateStr != "" {
			dueDate, _ := validation.ParseDueDate(dueDateStr)
			updates["due_date"] = dueDate
		} else if rawDueDate == nil || ok {
			// Only an explicit null or empty string clears the due date;
			// anything else was already rejected by validation above.
			updates["due_date"] = nil
		}
	}
	if completed, ok := updatedData["completed"].(bool); ok {
		updates["completed"] = completed
	}

	if err := tx.Model(&task).Updates(updates).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	event, err := models.NewEvent(
		string(broker.TaskUpdated),
		"task",
		map[string]interface{}{
			"task_id":   task.ID.String(),
			"user_id":   task.UserID.String(),
			"title":     task.Title,
			"completed": task.Completed,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

// ToggleTask flips the completion flag of the caller's task
func (s *TaskService) ToggleTask(db *database.Database, userID uuid.UUID, id string) (models.Task, error) {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return models.Task{}, ErrTaskNotFound
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.Task{}, tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ? AND user_id = ?", taskID, userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Task{}, ErrTaskNotFound
		}
		return models.Task{}, err
	}

	updates := map[string]interface{}{
		"completed":  !task.Completed,
		"updated_at": time.Now().UTC(),
	}
	if err := tx.Model(&task).Updates(updates).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.First(&task, "id = ?", taskID).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	event, err := models.NewEvent(
		string(broker.TaskUpdated),
		"task",
		map[string]interface{}{
			"task_id":   task.ID.String(),
			"user_id":   task.UserID.String(),
			"title":     task.Title,
			"completed": task.Completed,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.Task{}, err
	}

	return task, nil
}

func (s *TaskService) DeleteTask(db *database.Database, userID uuid.UUID, id string) error {
	taskID, err := uuid.Parse(id)
	if err != nil {
		return ErrTaskNotFound
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var task models.Task
	if err := tx.First(&task, "id = ? AND user_id = ?", taskID, userID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTaskNotFound
		}
		return err
	}

	if err := tx.Delete(&task).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		string(broker.TaskDeleted),
		"task",
		map[string]interface{}{
			"task_id": task.ID.String(),
			"user_id": task.UserID.String(),
		},
	)
	if err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return err
	}

	return nil
}

var TaskServiceInstance TaskServiceInterface = &TaskService{}
