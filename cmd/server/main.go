package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"team-builder-backend/internal/api/routes"
	"team-builder-backend/internal/config"
	"team-builder-backend/internal/database"
	"team-builder-backend/internal/logger"
	"team-builder-backend/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	_ "team-builder-backend/docs" // This is needed for swag
)

const shutdownTimeout = 10 * time.Second

//	@title			Team Builder API
//	@version		1.0
//	@description	Users and teams backend. Lists, filters and edits users, and builds teams from available users.

//	@contact.name	API Support
//	@contact.email	support@example.com

//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT

//	@host		localhost:3000
//	@BasePath	/

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatal("Failed to load configuration: ", err)
	}

	logger.Configure(cfg.LogLevel)

	db, err := database.Initialize(cfg.MongoURI, cfg.MongoDatabase, &database.Options{
		ConnectTimeout: cfg.ConnectTimeout(),
		Monitor:        metrics.CommandMonitor(),
		EnsureIndexes:  true,
	})
	if err != nil {
		logrus.Fatal("Failed to initialize database: ", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := routes.SetupRoutes(db, cfg)
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           routes.WithCORS(router, cfg),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logrus.Infof("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal("Failed to start server: ", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Server forced to shutdown")
	}
	if err := database.Close(ctx, db); err != nil {
		logrus.WithError(err).Error("Failed to disconnect from database")
	}
	logrus.Info("Server exited")
}
