package models

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Priority represents the urgency level of a task (Low, Medium, High)
type Priority string

// Priority levels
const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// PriorityFromString converts a string to a Priority
func PriorityFromString(priorityStr string) (Priority, error) {
	switch priorityStr {
	case "Low":
		return PriorityLow, nil
	case "Medium":
		return PriorityMedium, nil
	case "High":
		return PriorityHigh, nil
	default:
		return "", errors.New("priority must be Low, Medium, or High")
	}
}

type Task struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index:idx_tasks_user_completed;index:idx_tasks_user_due_date" json:"user_id"`
	Title       string     `gorm:"not null" json:"title"`
	Description string     `json:"description"`
	Priority    Priority   `gorm:"type:varchar(10);not null;default:'Medium'" json:"priority"`
	Completed   bool       `gorm:"not null;default:false;index:idx_tasks_user_completed" json:"completed"`
	DueDate     *time.Time `gorm:"index:idx_tasks_user_due_date" json:"due_date,omitempty"`
	CreatedAt   time.Time  `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null" json:"updated_at"`
}

// BeforeCreate is a GORM hook that runs before inserting a new task
func (t *Task) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Task) ToJSON() ([]byte, error) {
	return json.Marshal(t)
}

func (t *Task) FromJSON(data []byte) error {
	return json.Unmarshal(data, t)
}
