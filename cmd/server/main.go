package main

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/yukawa-dev/project-tracker-api/internal/config"
	"github.com/yukawa-dev/project-tracker-api/internal/constants"
	"github.com/yukawa-dev/project-tracker-api/internal/database"
	"github.com/yukawa-dev/project-tracker-api/internal/handlers"
	"github.com/yukawa-dev/project-tracker-api/internal/logging"
	"github.com/yukawa-dev/project-tracker-api/internal/middleware"
	"github.com/yukawa-dev/project-tracker-api/internal/repository"
	"github.com/yukawa-dev/project-tracker-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	log := logging.New(cfg.GinMode)

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	log.Info().Str("driver", cfg.DBDriver).Msg("database connection established")

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Initialize Gin router
	r := gin.New()
	r.Use(logging.RequestLogger(log), gin.Recovery())

	// Setup session middleware
	isProduction := cfg.GinMode == gin.ReleaseMode
	store, err := newSessionStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create session store")
	}
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		Secure:   isProduction,
		SameSite: 2, // SameSite=Lax
	})
	r.Use(sessions.Sessions(constants.SessionCookieName, store))

	// Initialize AI service
	var aiService *services.AIService
	if cfg.OpenAIAPIKey != "" {
		aiService = services.NewAIService(cfg.OpenAIAPIKey)
	}

	// Initialize repositories and services
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	authService := services.NewAuthService(userRepo)
	projectService := services.NewProjectService(projectRepo)
	taskService := services.NewTaskService(taskRepo, projectRepo, aiService)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	projectHandler := handlers.NewProjectHandler(projectService)
	taskHandler := handlers.NewTaskHandler(taskService)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Project Tracker API is running",
		})
	})

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authHandler.Signup)
			auth.POST("/login", authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// Project routes (protected)
		projects := api.Group("/projects")
		projects.Use(middleware.RequireAuth())
		{
			projects.POST("", projectHandler.CreateProject)
			projects.GET("", projectHandler.ListProjects)
			projects.GET("/:id", middleware.RequireProjectOwnership(), projectHandler.GetProject)
			projects.PUT("/:id", middleware.RequireProjectOwnership(), projectHandler.UpdateProject)
			projects.DELETE("/:id", middleware.RequireProjectOwnership(), projectHandler.DeleteProject)
			projects.POST("/:id/tasks", middleware.RequireProjectOwnership(), taskHandler.CreateTask)
			projects.POST("/:id/tasks/suggest", middleware.RequireProjectOwnership(), taskHandler.SuggestTasks)
		}

		// Task routes (protected)
		tasks := api.Group("/tasks")
		tasks.Use(middleware.RequireAuth())
		{
			tasks.PUT("/:id", middleware.RequireTaskOwnership(), taskHandler.UpdateTask)
			tasks.DELETE("/:id", middleware.RequireTaskOwnership(), taskHandler.DeleteTask)
		}
	}

	// Start server
	log.Info().Msg("server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}

func newSessionStore(cfg *config.Config) (sessions.Store, error) {
	if cfg.SessionStore == "redis" {
		redisAddr := cfg.RedisHost + ":" + cfg.RedisPort
		return redisStore.NewStore(
			10,        // Redis pool size
			"tcp",     // network type
			redisAddr, // Redis address from config
			"",        // username (empty for default user)
			"",        // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
	}

	return cookie.NewStore([]byte(cfg.SessionSecret)), nil
}
