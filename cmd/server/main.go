package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/auth"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/config"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/database"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/handlers"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/middleware"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/repository"
	"github.com/Ivan-Novozhenov-73/StudentCouncilPlannerAPI/internal/services"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()

	gin.SetMode(cfg.GinMode)

	if err := database.Connect(cfg); err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	tokens, err := auth.NewTokenService(cfg)
	if err != nil {
		logger.Fatalf("Failed to initialize token service: %v", err)
	}

	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	eventRepo := repository.NewEventRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo)
	eventService := services.NewEventService(eventRepo, userRepo)
	taskService := services.NewTaskService(taskRepo, eventRepo)

	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	eventHandler := handlers.NewEventHandler(eventService)
	taskHandler := handlers.NewTaskHandler(taskService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(logger))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Student Council Planner API is running",
		})
	})

	requireAuth := middleware.RequireAuth(tokens, userRepo)

	api := r.Group("/api")
	{
		// Auth routes (public except /me)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// User routes (protected)
		users := api.Group("/users")
		users.Use(requireAuth)
		{
			users.GET("", userHandler.ListUsers)
			users.GET("/:id", userHandler.GetUser)
			users.PATCH("/:id", userHandler.UpdateUser)
			users.POST("/:id/archive", userHandler.ArchiveUser)
			users.POST("/:id/restore", userHandler.RestoreUser)
			users.PATCH("/:id/role", userHandler.ChangeRole)
		}

		// Event routes (protected)
		events := api.Group("/events")
		events.Use(requireAuth)
		{
			events.GET("", eventHandler.ListEvents)
			events.POST("", eventHandler.CreateEvent)
			events.GET("/:id", eventHandler.GetEvent)
			events.PATCH("/:id", eventHandler.UpdateEvent)
			events.POST("/:id/participants", eventHandler.AddParticipant)
			events.DELETE("/:id/participants/:user_id", eventHandler.RemoveParticipant)
			events.POST("/:id/organizers", eventHandler.AddOrganizer)
			events.DELETE("/:id/organizers/:user_id", eventHandler.RemoveOrganizer)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", taskHandler.UpdateTaskStatus)
			tasks.PUT("/:id/partner", taskHandler.SetPartner)
		}
	}

	logger.WithField("addr", cfg.ListenAddr).Info("server starting")
	if err := r.Run(cfg.ListenAddr); err != nil {
		logger.Fatalf("Failed to start server: %v", err)
	}
}
