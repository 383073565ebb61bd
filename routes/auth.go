package routes

import (
	"errors"
	"net/http"

	"github.com/123AnkitSharma/Taskify/database"
	"github.com/123AnkitSharma/Taskify/middleware"
	"github.com/123AnkitSharma/Taskify/services"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func RegisterAuthRoutes(router *gin.Engine, db *database.Database, authService services.AuthServiceInterface, userService services.UserServiceInterface) {
	group := router.Group("/api/v1/auth")
	{
		group.POST("/register", func(c *gin.Context) { Register(c, db, authService) })
		group.POST("/login", func(c *gin.Context) { Login(c, db, authService) })
		group.GET("/me", middleware.AuthMiddleware(authService), func(c *gin.Context) { CurrentUser(c, db, userService) })
	}
}

func Register(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var request registerRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	user, token, err := authService.Register(db, request.Name, request.Email, request.Password)
	if err != nil {
		var validationErr *services.ValidationError
		switch {
		case errors.As(err, &validationErr):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Validation errors", "errors": validationErr.Fields})
		case errors.Is(err, services.ErrEmailTaken):
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Email is already registered"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while registering"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"success": true, "token": token, "user": user})
}

func Login(c *gin.Context, db *database.Database, authService services.AuthServiceInterface) {
	var request loginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	token, err := authService.Login(db, request.Email, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid email or password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while logging in"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

func CurrentUser(c *gin.Context, db *database.Database, userService services.UserServiceInterface) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := userService.GetUserById(db, userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error while fetching user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": user})
}

// currentUserID reads the authenticated user's ID stored by AuthMiddleware.
// It writes the error response itself when the ID is missing.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	userIDInterface, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "User not authenticated"})
		return uuid.Nil, false
	}

	userID, ok := userIDInterface.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Invalid user ID format"})
		return uuid.Nil, false
	}

	return userID, true
}
