package services

import (
	"errors"
	"strings"

	"github.com/123AnkitSharma/Taskify/database"
	"github.com/123AnkitSharma/Taskify/models"
	"github.com/123AnkitSharma/Taskify/utils/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserServiceInterface interface {
	GetUserById(db *database.Database, id uuid.UUID) (models.User, error)
	UpdateUser(db *database.Database, id uuid.UUID, updatedData map[string]interface{}) (models.User, error)
	DeleteUser(db *database.Database, id uuid.UUID) error
}

type UserService struct{}

func (s *UserService) GetUserById(db *database.Database, id uuid.UUID) (models.User, error) {
	var user models.User
	if err := db.DB.First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}
	return user, nil
}

// UpdateUser changes the profile fields present in updatedData
func (s *UserService) UpdateUser(db *database.Database, id uuid.UUID, updatedData map[string]interface{}) (models.User, error) {
	fieldErrors := make(map[string]string)

	updates := make(map[string]interface{})
	if name, ok := updatedData["name"].(string); ok {
		trimmed := strings.TrimSpace(name)
		if len(trimmed) < validation.MinNameLength || len(trimmed) > validation.MaxNameLength {
			fieldErrors["name"] = "Name must be between 2 and 50 characters"
		}
		updates["name"] = trimmed
	}
	if email, ok := updatedData["email"].(string); ok {
		if !validation.IsValidEmail(email) {
			fieldErrors["email"] = "Please enter a valid email address"
		}
		updates["email"] = strings.ToLower(strings.TrimSpace(email))
	}

	if len(fieldErrors) > 0 {
		return models.User{}, &ValidationError{Fields: fieldErrors}
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, tx.Error
	}

	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, err
	}

	if err := tx.Model(&user).Updates(updates).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	event, err := models.NewEvent(
		"user.updated",
		"user",
		map[string]interface{}{
			"user_id": user.ID.String(),
			"email":   user.Email,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, err
	}

	return user, nil
}

// DeleteUser removes the account and everything it owns
func (s *UserService) DeleteUser(db *database.Database, id uuid.UUID) error {
	tx := db.DB.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := tx.Where("user_id = ?", id).Delete(&models.Task{}).Error; err != nil {
		tx.Rollback()
		return err
	}

	if err := tx.Delete(&user).Error; err != nil {
		tx.Rollback()
		return err
	}

	event, err := models.NewEvent(
		"user.deleted",
		"user",
		map[string]interface{}{
			"user_id": user.ID.String(),
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

	return tx.Commit().Error
}

var UserServiceInstance UserServiceInterface = &UserService{}
