package routes

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/123AnkitSharma/Taskify/database"
	"github.com/123AnkitSharma/Taskify/models"
	"github.com/123AnkitSharma/Taskify/services"
	"github.com/123AnkitSharma/Taskify/utils/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type MockAuthService struct{}

func (m *MockAuthService) Register(db *database.Database, name, email, password string) (models.User, string, error) {
	if fieldErrors := validation.ValidateRegistration(name, email, password); len(fieldErrors) > 0 {
		return models.User{}, "", &services.ValidationError{Fields: fieldErrors}
	}
	if email == "taken@example.com" {
		return models.User{}, "", services.ErrEmailTaken
	}
	return models.User{ID: uuid.New(), Name: name, Email: email}, "mock-token", nil
}

func (m *MockAuthService) Login(db *database.Database, email, password string) (string, error) {
	if email == "ankit@example.com" && password == "passw0rd" {
		return "mock-token", nil
	}
	return "", services.ErrInvalidCredentials
}

func (m *MockAuthService) ValidateToken(tokenString string) (*services.JWTClaims, error) {
	if tokenString == "mock-token" {
		return &services.JWTClaims{UserID: testUserID}, nil
	}
	return nil, services.ErrInvalidToken
}

func (m *MockAuthService) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m *MockAuthService) ComparePasswords(hashedPassword, password string) error {
	if hashedPassword == "hashed:"+password {
		return nil
	}
	return services.ErrInvalidCredentials
}

type MockUserService struct{}

func (m *MockUserService) GetUserById(db *database.Database, id uuid.UUID) (models.User, error) {
	if id == testUserID {
		return models.User{ID: id, Name: "Ankit", Email: "ankit@example.com"}, nil
	}
	return models.User{}, services.ErrUserNotFound
}

func (m *MockUserService) UpdateUser(db *database.Database, id uuid.UUID, updatedData map[string]interface{}) (models.User, error) {
	user, err := m.GetUserById(db, id)
	if err != nil {
		return models.User{}, err
	}
	if name, ok := updatedData["name"].(string); ok {
		user.Name = name
	}
	return user, nil
}

func (m *MockUserService) DeleteUser(db *database.Database, id uuid.UUID) error {
	_, err := m.GetUserById(db, id)
	return err
}

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	db := &database.Database{}

	RegisterAuthRoutes(router, db, &MockAuthService{}, &MockUserService{})

	return router
}

func TestRegisterRoute(t *testing.T) {
	router := setupAuthRouter()

	t.Run("Valid Registration", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"name":"Ankit","email":"ankit@example.com","password":"passw0rd"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer([]byte(body)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "mock-token")
	})

	t.Run("Validation Errors", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"name":"","email":"bad","password":"x"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer([]byte(body)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Validation errors")
	})

	t.Run("Email Taken", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"name":"Ankit","email":"taken@example.com","password":"passw0rd"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/register", bytes.NewBuffer([]byte(body)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestLoginRoute(t *testing.T) {
	router := setupAuthRouter()

	t.Run("Valid Credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"email":"ankit@example.com","password":"passw0rd"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer([]byte(body)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "mock-token")
	})

	t.Run("Invalid Credentials", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := `{"email":"ankit@example.com","password":"wrongpass"}`
		req, _ := http.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer([]byte(body)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/api/v1/auth/login", bytes.NewBuffer([]byte(`{}`)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCurrentUserRoute(t *testing.T) {
	router := setupAuthRouter()

	t.Run("With Valid Token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer mock-token")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ankit@example.com")
	})

	t.Run("Without Token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/v1/auth/me", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestUserRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	db := &database.Database{}

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(setAuthContext(testUserID))
	RegisterUserRoutes(apiGroup, db, &MockUserService{})

	t.Run("Update Profile", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("PUT", "/api/v1/users/me", bytes.NewBuffer([]byte(`{"name":"New Name"}`)))
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "New Name")
	})

	t.Run("Delete Account", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("DELETE", "/api/v1/users/me", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
