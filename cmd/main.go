package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/123AnkitSharma/Taskify/broker"
	"github.com/123AnkitSharma/Taskify/config"
	"github.com/123AnkitSharma/Taskify/database"
	"github.com/123AnkitSharma/Taskify/middleware"
	"github.com/123AnkitSharma/Taskify/routes"
	"github.com/123AnkitSharma/Taskify/services"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	db, err := database.Setup(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize the NATS producer; mutations still succeed without it,
	// their events simply stay pending in the outbox until it returns.
	if err := broker.InitProducer(cfg); err != nil {
		log.Printf("Warning: Failed to connect to NATS: %v", err)
		log.Println("The application will continue, task events will remain pending")
	} else {
		defer broker.CloseProducer()
	}

	eventDispatcher := services.NewEventDispatcherService(db)
	services.EventDispatcherServiceInstance = eventDispatcher
	eventDispatcher.Start()
	defer eventDispatcher.Stop()

	authService := services.NewAuthService(cfg.JWTSecret, cfg.JWTExpirationHours)
	services.AuthServiceInstance = authService

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.Default()
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	routes.RegisterAuthRoutes(router, db, authService, services.UserServiceInstance)

	apiGroup := router.Group("/api/v1")
	apiGroup.Use(middleware.AuthMiddleware(authService))
	routes.RegisterTaskRoutes(apiGroup, db, services.TaskServiceInstance)
	routes.RegisterUserRoutes(apiGroup, db, services.UserServiceInstance)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-quit
		log.Println("Shutting down server...")
		eventDispatcher.Stop()
		broker.CloseProducer()
		db.Close()
		os.Exit(0)
	}()

	log.Printf("API server is running on port %s", cfg.AppPort)
	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
