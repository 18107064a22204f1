package stubapi

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"taskmanager_web/internal/models"
)

// ErrTaskNotFound is returned for ids the store does not hold
type ErrTaskNotFound struct {
	ID int64
}

func (e ErrTaskNotFound) Error() string {
	return fmt.Sprintf("Task not found with id: %d", e.ID)
}

// Store keeps tasks in memory with sequential ids
type Store struct {
	mu     sync.RWMutex
	tasks  map[int64]models.Task
	nextID int64
	now    func() time.Time
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		tasks:  make(map[int64]models.Task),
		nextID: 1,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// All returns every task ordered by id
func (s *Store) All() []models.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		result = append(result, t)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

// Get returns task id
func (s *Store) Get(id int64) (models.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrTaskNotFound{ID: id}
	}
	return t, nil
}

// Create stores a new task, ignoring any id the caller sent
func (s *Store) Create(in models.Task) models.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := models.NewTimestamp(s.now())
	t := models.Task{
		ID:          s.nextID,
		Title:       in.Title,
		Description: in.Description,
		Completed:   in.Completed,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.nextID++
	s.tasks[t.ID] = t
	return t
}

// Update overwrites title, description and completion of task id
func (s *Store) Update(id int64, in models.Task) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrTaskNotFound{ID: id}
	}
	t.Title = in.Title
	t.Description = in.Description
	t.Completed = in.Completed
	t.UpdatedAt = models.NewTimestamp(s.now())
	s.tasks[id] = t
	return t, nil
}

// Complete marks task id as completed
func (s *Store) Complete(id int64) (models.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[id]
	if !ok {
		return models.Task{}, ErrTaskNotFound{ID: id}
	}
	t.Completed = true
	t.UpdatedAt = models.NewTimestamp(s.now())
	s.tasks[id] = t
	return t, nil
}

// Delete removes task id
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return ErrTaskNotFound{ID: id}
	}
	delete(s.tasks, id)
	return nil
}
