package router

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"task-tracker-api/internal/auth"
	"task-tracker-api/internal/config"
	"task-tracker-api/internal/database"
	"task-tracker-api/internal/handler"
	"task-tracker-api/internal/metrics"
	"task-tracker-api/internal/middleware"
	"task-tracker-api/internal/repository"
	"task-tracker-api/internal/service"
)

// Config holds router configuration
type Config struct {
	DB             *gorm.DB
	Logger         *zap.Logger
	Tokens         *auth.TokenManager
	Denylist       auth.Denylist // nil disables logout revocation
	BasePath       string
	AllowedOrigins []string
	UserScope      string
	BcryptCost     int
	Metrics        *metrics.Metrics
	// Gatherer backs /metrics; defaults to the global registry
	Gatherer prometheus.Gatherer
}

// Setup sets up the router with all routes and middleware
func Setup(cfg Config) *gin.Engine {
	router := gin.New()

	if cfg.UserScope == "" {
		cfg.UserScope = config.AdminUserScopeAll
	}
	if cfg.Gatherer == nil {
		cfg.Gatherer = prometheus.DefaultGatherer
	}

	router.Use(middleware.Recovery(cfg.Logger))
	router.Use(middleware.Logger(cfg.Logger))
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(middleware.Metrics(cfg.Metrics))

	health := healthHandler()
	ready := readyHandler(cfg.DB)
	metricsHandler := gin.WrapH(promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{}))

	// Operational endpoints answer at the root and under the base path so
	// probes work behind a path-routing ingress
	router.GET("/health", health)
	router.GET("/ready", ready)
	router.GET("/metrics", metricsHandler)

	var baseGroup *gin.RouterGroup
	if cfg.BasePath != "" {
		baseGroup = router.Group(cfg.BasePath)
		baseGroup.GET("/health", health)
		baseGroup.GET("/ready", ready)
		baseGroup.GET("/metrics", metricsHandler)
	} else {
		baseGroup = &router.RouterGroup
	}

	baseGroup.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Repositories
	userRepo := repository.NewUserRepository(cfg.DB)
	teamRepo := repository.NewTeamRepository(cfg.DB)
	groupRepo := repository.NewSupervisorGroupRepository(cfg.DB)
	projectRepo := repository.NewProjectRepository(cfg.DB)
	taskRepo := repository.NewTaskRepository(cfg.DB)
	topicRepo := repository.NewTopicRepository(cfg.DB)
	historyRepo := repository.NewHistoryRepository(cfg.DB)
	commentRepo := repository.NewCommentRepository(cfg.DB)
	notificationRepo := repository.NewNotificationRepository(cfg.DB)
	transactor := repository.NewTransactor(cfg.DB)

	validator := auth.NewValidator(cfg.Tokens, cfg.Denylist)

	// Services
	authService := service.NewAuthService(userRepo, cfg.Tokens, validator, cfg.BcryptCost, cfg.Logger)
	userService := service.NewUserService(userRepo, groupRepo, cfg.UserScope, cfg.Logger)
	teamService := service.NewTeamService(teamRepo, userRepo, cfg.Logger)
	groupService := service.NewSupervisorGroupService(groupRepo, userRepo, transactor, cfg.Logger)
	projectService := service.NewProjectService(projectRepo, userRepo, teamRepo, groupRepo, cfg.Logger)
	taskService := service.NewTaskService(service.TaskServiceDeps{
		TaskRepo:         taskRepo,
		UserRepo:         userRepo,
		ProjectRepo:      projectRepo,
		GroupRepo:        groupRepo,
		HistoryRepo:      historyRepo,
		NotificationRepo: notificationRepo,
		Transactor:       transactor,
		UserScope:        cfg.UserScope,
		Metrics:          cfg.Metrics,
		Logger:           cfg.Logger,
	})
	topicService := service.NewTopicService(topicRepo, taskRepo, userRepo, historyRepo, transactor, cfg.Metrics, cfg.Logger)
	commentService := service.NewCommentService(commentRepo, taskRepo, userRepo, notificationRepo, transactor, cfg.Metrics, cfg.Logger)
	notificationService := service.NewNotificationService(notificationRepo, cfg.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(userService)
	teamHandler := handler.NewTeamHandler(teamService)
	groupHandler := handler.NewSupervisorGroupHandler(groupService)
	projectHandler := handler.NewProjectHandler(projectService)
	taskHandler := handler.NewTaskHandler(taskService, topicService)
	commentHandler := handler.NewCommentHandler(commentService)
	notificationHandler := handler.NewNotificationHandler(notificationService)

	public := baseGroup.Group("/auth")
	{
		public.POST("/register", authHandler.Register)
		public.POST("/login", authHandler.Login)
	}

	api := baseGroup.Group("")
	api.Use(middleware.AuthWithValidator(validator))
	{
		api.POST("/auth/logout", authHandler.Logout)

		users := api.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.GET("/profile", userHandler.GetProfile)
			users.PUT("/:userId/role", userHandler.UpdateRole)
		}

		teams := api.Group("/teams")
		{
			teams.POST("", teamHandler.CreateTeam)
			teams.GET("", teamHandler.GetTeams)
			teams.POST("/:teamId/members", teamHandler.AddMember)
		}

		groups := api.Group("/supervisor-groups")
		{
			groups.POST("", groupHandler.CreateGroup)
			groups.GET("", groupHandler.GetMyGroups)
			groups.PUT("/:groupId", groupHandler.UpdateGroup)
			groups.DELETE("/:groupId", groupHandler.DeleteGroup)
		}

		projects := api.Group("/projects")
		{
			projects.GET("", projectHandler.GetProjects)
			projects.POST("", projectHandler.CreateProject)
			projects.PUT("/:projectId", projectHandler.UpdateProject)
			projects.DELETE("/:projectId", projectHandler.DeleteProject)
		}

		tasks := api.Group("/tasks")
		{
			tasks.GET("", taskHandler.GetTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.GET("/:id/history", taskHandler.GetHistory)
			tasks.PUT("/:id", taskHandler.UpdateTask)
			tasks.PATCH("/:id/status", taskHandler.ChangeStatus)
			tasks.PATCH("/:id/move", taskHandler.MoveTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.POST("/:id/topics", taskHandler.AddTopic)
			tasks.PATCH("/:id/topics/:topicId/toggle", taskHandler.ToggleTopic)
		}

		comments := api.Group("/comments")
		{
			comments.POST("", commentHandler.CreateComment)
			comments.GET("/:taskId", commentHandler.GetComments)
		}

		notifications := api.Group("/notifications")
		{
			notifications.GET("", notificationHandler.GetNotifications)
			notifications.PUT("/:notificationId/read", notificationHandler.MarkRead)
		}
	}

	return router
}

func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// readyHandler reports 503 until the database answers a ping
func readyHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "database": "not connected"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := database.Ping(ctx, db); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "database": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "database": "connected"})
	}
}
