package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"taskmanager_web/internal/models"
)

// DefaultBaseURL is the task API resource used when none is configured
const DefaultBaseURL = "http://localhost:8080/api/tasks"

// maxErrorBody caps how much of an error response is kept in a StatusError
const maxErrorBody = 64 << 10

// TaskService issues CRUD requests against the task API.
// It holds no state besides its configuration and is safe for concurrent use.
type TaskService struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
}

// NewTaskService creates a client for the task resource at baseURL.
// A zero timeout leaves requests bounded only by the caller's context.
func NewTaskService(baseURL string, timeout time.Duration, logger *log.Logger) *TaskService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &TaskService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// BaseURL returns the task resource this service talks to
func (s *TaskService) BaseURL() string {
	return s.baseURL
}

// GetAllTasks fetches every task
func (s *TaskService) GetAllTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := s.makeRequest(ctx, http.MethodGet, "", nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// GetTaskByID fetches one task. A missing task yields a 404 StatusError.
func (s *TaskService) GetTaskByID(ctx context.Context, id int64) (models.Task, error) {
	var task models.Task
	if err := s.makeRequest(ctx, http.MethodGet, "/"+formatID(id), nil, &task); err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// CreateTask stores a new task and returns it with the id the API assigned
func (s *TaskService) CreateTask(ctx context.Context, task models.Task) (models.Task, error) {
	var created models.Task
	if err := s.makeRequest(ctx, http.MethodPost, "", task, &created); err != nil {
		return models.Task{}, err
	}
	return created, nil
}

// UpdateTask replaces the fields of task id
func (s *TaskService) UpdateTask(ctx context.Context, id int64, task models.Task) (models.Task, error) {
	var updated models.Task
	if err := s.makeRequest(ctx, http.MethodPut, "/"+formatID(id), task, &updated); err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// MarkTaskCompleted flags task id as completed
func (s *TaskService) MarkTaskCompleted(ctx context.Context, id int64) (models.Task, error) {
	var updated models.Task
	if err := s.makeRequest(ctx, http.MethodPatch, "/complete/"+formatID(id), nil, &updated); err != nil {
		return models.Task{}, err
	}
	return updated, nil
}

// DeleteTask removes task id
func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	return s.makeRequest(ctx, http.MethodDelete, "/"+formatID(id), nil, nil)
}

// GetAllTasksAsync is GetAllTasks returning a pending handle
func (s *TaskService) GetAllTasksAsync(ctx context.Context) *Pending[[]models.Task] {
	return Go(ctx, s.GetAllTasks)
}

// GetTaskByIDAsync is GetTaskByID returning a pending handle
func (s *TaskService) GetTaskByIDAsync(ctx context.Context, id int64) *Pending[models.Task] {
	return Go(ctx, func(ctx context.Context) (models.Task, error) {
		return s.GetTaskByID(ctx, id)
	})
}

// CreateTaskAsync is CreateTask returning a pending handle
func (s *TaskService) CreateTaskAsync(ctx context.Context, task models.Task) *Pending[models.Task] {
	return Go(ctx, func(ctx context.Context) (models.Task, error) {
		return s.CreateTask(ctx, task)
	})
}

// UpdateTaskAsync is UpdateTask returning a pending handle
func (s *TaskService) UpdateTaskAsync(ctx context.Context, id int64, task models.Task) *Pending[models.Task] {
	return Go(ctx, func(ctx context.Context) (models.Task, error) {
		return s.UpdateTask(ctx, id, task)
	})
}

// MarkTaskCompletedAsync is MarkTaskCompleted returning a pending handle
func (s *TaskService) MarkTaskCompletedAsync(ctx context.Context, id int64) *Pending[models.Task] {
	return Go(ctx, func(ctx context.Context) (models.Task, error) {
		return s.MarkTaskCompleted(ctx, id)
	})
}

// DeleteTaskAsync is DeleteTask returning a pending handle
func (s *TaskService) DeleteTaskAsync(ctx context.Context, id int64) *Pending[struct{}] {
	return Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, s.DeleteTask(ctx, id)
	})
}

func (s *TaskService) makeRequest(ctx context.Context, method, endpoint string, payload, out interface{}) error {
	var bodyReader io.Reader
	if payload != nil {
		data, err := sonic.ConfigStd.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	url := s.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	entry := s.logger.WithFields(log.Fields{
		"method":     method,
		"url":        url,
		"request_id": requestID,
		"duration":   time.Since(start),
	})
	if err != nil {
		entry.WithError(err).Debug("task api request failed")
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()
	entry.WithField("status", resp.StatusCode).Debug("task api request")

	if resp.StatusCode >= 400 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		statusErr := &StatusError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       body,
		}
		var apiErr apiErrorBody
		if len(body) > 0 && sonic.ConfigStd.Unmarshal(body, &apiErr) == nil {
			statusErr.Message = apiErr.Message
		}
		return statusErr
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := sonic.ConfigStd.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
