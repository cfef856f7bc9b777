package routes

import (
	"context"
	"net/http"

	"team-builder-backend/internal/api/handlers"
	"team-builder-backend/internal/api/middleware"
	"team-builder-backend/internal/config"
	"team-builder-backend/internal/database"
	"team-builder-backend/internal/metrics"
	"team-builder-backend/internal/repository"
	"team-builder-backend/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.mongodb.org/mongo-driver/mongo"
)

// Version is reported by the health endpoint
const Version = "1.0.0"

// SetupRoutes wires repositories, services and handlers onto a new router
func SetupRoutes(db *mongo.Database, cfg *config.Config) *gin.Engine {
	validator := service.NewValidator()
	timeout := cfg.OperationTimeout()

	userRepo := repository.NewUserRepository(db, timeout)
	teamRepo := repository.NewTeamRepository(db, timeout)

	userService := service.NewUserService(userRepo, validator)
	teamService := service.NewTeamService(teamRepo, userRepo, validator)

	ping := func(ctx context.Context) error { return database.Ping(ctx, db) }

	return NewRouter(
		handlers.NewUserHandler(userService),
		handlers.NewTeamHandler(teamService),
		handlers.NewHealthHandler(ping, Version),
	)
}

// NewRouter registers the route table on a new gin engine
func NewRouter(userHandler *handlers.UserHandler, teamHandler *handlers.TeamHandler, healthHandler *handlers.HealthHandler) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())

	// Operational routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Users
	router.GET("/filters", userHandler.Filters)
	router.GET("/users", userHandler.ListUsers)
	router.GET("/user/:uid", userHandler.GetUser)
	router.PUT("/user/:uid", userHandler.UpdateUser)
	router.DELETE("/user/:uid", userHandler.DeleteUser)
	router.POST("/login", userHandler.Login)
	router.PATCH("/addMember/:uid", userHandler.MarkUnavailable)

	// Teams
	router.POST("/team", teamHandler.CreateTeam)
	router.GET("/teams", teamHandler.ListTeams)
	router.GET("/team/:id", teamHandler.GetTeam)

	// Catch-all route for undefined endpoints
	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":      "Endpoint not found",
			"path":       c.Request.URL.Path,
			"method":     c.Request.Method,
			"request_id": c.GetString("request_id"),
		})
	})

	return router
}

// WithCORS wraps the router with the CORS policy from configuration
func WithCORS(router http.Handler, cfg *config.Config) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	})(router)
}
