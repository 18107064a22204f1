// Package stubapi serves an in-memory version of the task REST API.
// It follows the contract of the real backend closely enough for local
// development and for tests of the task client.
package stubapi

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	log "github.com/sirupsen/logrus"

	"taskmanager_web/internal/models"
)

// BasePath is where the task resource is mounted
const BasePath = "/api/tasks"

// Server is the stub task API
type Server struct {
	store  *Store
	logger *log.Logger
}

// New creates a stub API around store
func New(store *Store, logger *log.Logger) *Server {
	if store == nil {
		store = NewStore()
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Server{store: store, logger: logger}
}

// Store exposes the backing store, mainly for tests
func (s *Server) Store() *Store {
	return s.store
}

// Echo builds the HTTP handler for the stub API
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = s.errorHandler

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.Recover())

	g := e.Group(BasePath)
	g.GET("", s.listTasks)
	g.POST("", s.createTask)
	g.GET("/:id", s.getTask)
	g.PUT("/:id", s.updateTask)
	g.PATCH("/complete/:id", s.completeTask)
	g.DELETE("/:id", s.deleteTask)

	return e
}

func (s *Server) listTasks(c echo.Context) error {
	return c.JSON(http.StatusOK, s.store.All())
}

func (s *Server) getTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	task, err := s.store.Get(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, task)
}

func (s *Server) createTask(c echo.Context) error {
	var in models.Task
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed task body")
	}
	created := s.store.Create(in)
	s.logger.WithField("id", created.ID).Debug("stub api: task created")
	return c.JSON(http.StatusCreated, created)
}

func (s *Server) updateTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	var in models.Task
	if err := c.Bind(&in); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Malformed task body")
	}
	updated, err := s.store.Update(id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) completeTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	updated, err := s.store.Complete(id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, updated)
}

func (s *Server) deleteTask(c echo.Context) error {
	id, err := taskID(c)
	if err != nil {
		return err
	}
	if err := s.store.Delete(id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "Invalid task id: "+c.Param("id"))
	}
	return id, nil
}

// errorHandler writes errors in the backend's {timestamp, message, status} shape
func (s *Server) errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	body := map[string]interface{}{
		"timestamp": time.Now().UTC().Format("2006-01-02T15:04:05.999999"),
	}

	var notFound ErrTaskNotFound
	var httpErr *echo.HTTPError
	switch {
	case errors.As(err, &notFound):
		code = http.StatusNotFound
		body["message"] = notFound.Error()
	case errors.As(err, &httpErr):
		code = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			body["message"] = msg
		} else {
			body["message"] = http.StatusText(code)
		}
	default:
		body["message"] = "An unexpected error occurred"
		body["details"] = err.Error()
		s.logger.WithError(err).Error("stub api: unexpected error")
	}
	body["status"] = code

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, body)
}
