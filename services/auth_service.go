package services

import (
	"errors"
	"strings"
	"time"

	"github.com/123AnkitSharma/Taskify/database"
	"github.com/123AnkitSharma/Taskify/models"
	"github.com/123AnkitSharma/Taskify/utils/token"
	"github.com/123AnkitSharma/Taskify/utils/validation"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Use the JWTClaims from token package
type JWTClaims = token.JWTClaims

type AuthServiceInterface interface {
	Register(db *database.Database, name, email, password string) (models.User, string, error)
	Login(db *database.Database, email, password string) (string, error)
	ValidateToken(tokenString string) (*JWTClaims, error)
	HashPassword(password string) (string, error)
	ComparePasswords(hashedPassword, password string) error
}

type AuthService struct {
	jwtSecret     []byte
	jwtExpiration time.Duration
}

func NewAuthService(jwtSecret string, jwtExpirationHours int) *AuthService {
	return &AuthService{
		jwtSecret:     []byte(jwtSecret),
		jwtExpiration: time.Duration(jwtExpirationHours) * time.Hour,
	}
}

func (s *AuthService) Register(db *database.Database, name, email, password string) (models.User, string, error) {
	if fieldErrors := validation.ValidateRegistration(name, email, password); len(fieldErrors) > 0 {
		return models.User{}, "", &ValidationError{Fields: fieldErrors}
	}

	email = strings.ToLower(strings.TrimSpace(email))

	var existing models.User
	err := db.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return models.User{}, "", ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, "", err
	}

	hash, err := s.HashPassword(password)
	if err != nil {
		return models.User{}, "", err
	}

	user := models.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
	}

	tx := db.DB.Begin()
	if tx.Error != nil {
		return models.User{}, "", tx.Error
	}

	if err := tx.Create(&user).Error; err != nil {
		tx.Rollback()
		return models.User{}, "", err
	}

	event, err := models.NewEvent(
		"user.registered",
		"user",
		map[string]interface{}{
			"user_id": user.ID.String(),
			"email":   user.Email,
		},
	)
	if err != nil {
		tx.Rollback()
		return models.User{}, "", err
	}

	if err := tx.Create(event).Error; err != nil {
		tx.Rollback()
		return models.User{}, "", err
	}

	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		return models.User{}, "", err
	}

	tokenString, err := token.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return models.User{}, "", err
	}

	return user, tokenString, nil
}

func (s *AuthService) Login(db *database.Database, email, password string) (string, error) {
	var user models.User
	if err := db.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user).Error; err != nil {
		return "", ErrInvalidCredentials
	}

	if err := s.ComparePasswords(user.PasswordHash, password); err != nil {
		return "", ErrInvalidCredentials
	}

	tokenString, err := token.GenerateToken(user.ID, user.Email, s.jwtSecret, s.jwtExpiration)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateToken uses the token utility to validate tokens
func (s *AuthService) ValidateToken(tokenString string) (*JWTClaims, error) {
	return token.ValidateToken(tokenString, s.jwtSecret)
}

func (s *AuthService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

func (s *AuthService) ComparePasswords(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

var AuthServiceInstance AuthServiceInterface
