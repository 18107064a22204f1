package stubapi

import (
	"errors"
	"sync"
	"testing"
	"time"

	"taskmanager_web/internal/models"
)

func TestStoreLifecycle(t *testing.T) {
	store := NewStore()
	clock := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	created := store.Create(models.Task{ID: 99, Title: "First"})
	if created.ID != 1 {
		t.Errorf("caller id should be ignored, got %d", created.ID)
	}
	if !created.CreatedAt.Equal(clock) || !created.UpdatedAt.Equal(clock) {
		t.Errorf("timestamps = %v %v", created.CreatedAt, created.UpdatedAt)
	}

	clock = clock.Add(time.Hour)
	updated, err := store.Update(created.ID, models.Task{Title: "First, edited", Description: "more"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Title != "First, edited" || !updated.CreatedAt.Equal(created.CreatedAt.Time) || !updated.UpdatedAt.Equal(clock) {
		t.Errorf("update = %+v", updated)
	}

	completed, err := store.Complete(created.ID)
	if err != nil || !completed.Completed {
		t.Fatalf("complete = %+v, %v", completed, err)
	}

	if err := store.Delete(created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	second := store.Create(models.Task{Title: "Second"})
	if second.ID != 2 {
		t.Errorf("ids must not be reused, got %d", second.ID)
	}
}

func TestStoreNotFound(t *testing.T) {
	store := NewStore()

	_, getErr := store.Get(5)
	_, updateErr := store.Update(5, models.Task{Title: "x"})
	_, completeErr := store.Complete(5)
	deleteErr := store.Delete(5)

	for _, err := range []error{getErr, updateErr, completeErr, deleteErr} {
		var notFound ErrTaskNotFound
		if !errors.As(err, &notFound) || notFound.ID != 5 {
			t.Errorf("expected ErrTaskNotFound{5}, got %v", err)
		}
	}
	if getErr.Error() != "Task not found with id: 5" {
		t.Errorf("message = %q", getErr.Error())
	}
}

func TestStoreConcurrentCreate(t *testing.T) {
	store := NewStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Create(models.Task{Title: "parallel"})
		}()
	}
	wg.Wait()

	all := store.All()
	if len(all) != 50 {
		t.Fatalf("expected 50 tasks, got %d", len(all))
	}
	for i, task := range all {
		if task.ID != int64(i+1) {
			t.Fatalf("All not ordered by id: position %d has id %d", i, task.ID)
		}
	}
}
