package main

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"taskmanager_web/internal/config"
	"taskmanager_web/internal/handlers"
	appMiddleware "taskmanager_web/internal/middleware"
	"taskmanager_web/internal/router"
	"taskmanager_web/internal/services"
)

// newServer wires the route table, form actions and error pages onto echo
func newServer(tasks *services.TaskService, logger *log.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Custom error pages
	e.HTTPErrorHandler = appMiddleware.CustomErrorHandler(logger)

	// Static file serving
	e.Static("/static", "web/static")

	taskHandler := handlers.NewTaskHandler(tasks, logger)

	// Page routes come from the route table
	if err := router.Register(e, taskHandler.Views()); err != nil {
		return nil, err
	}
	taskHandler.RegisterActions(e)
	e.GET("/healthz", handlers.Healthz)

	return e, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := cfg.NewLogger()

	tasks := services.NewTaskService(cfg.API.BaseURL, cfg.API.Timeout, logger)

	e, err := newServer(tasks, logger)
	if err != nil {
		logger.Fatalf("Failed to register routes: %v", err)
	}

	logger.WithField("api", tasks.BaseURL()).Infof("Server starting on port %s", cfg.Server.Port)
	e.Logger.Fatal(e.Start(":" + cfg.Server.Port))
}
