package repository

import (
	"github.com/rs/zerolog"

	"github.com/worktrackhq/worktrack/internal/models"
	"github.com/worktrackhq/worktrack/internal/store"
)

// StoreTaskRepository is a document-store implementation of
// TaskRepository.
type StoreTaskRepository struct {
	store  store.DocumentStore
	logger zerolog.Logger
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(s store.DocumentStore, logger zerolog.Logger) TaskRepository {
	return &StoreTaskRepository{store: s, logger: logger}
}

func (r *StoreTaskRepository) load() []models.Task {
	return store.LoadCollection(r.store, r.logger, store.KeyTasks, []models.Task{})
}

func (r *StoreTaskRepository) save(tasks []models.Task) error {
	return store.SaveCollection(r.store, r.logger, store.KeyTasks, tasks)
}

// List returns every task.
func (r *StoreTaskRepository) List() []models.Task {
	return r.load()
}

// FindByID finds a task by id.
func (r *StoreTaskRepository) FindByID(id string) (*models.Task, error) {
	for _, task := range r.load() {
		if task.ID == id {
			return &task, nil
		}
	}
	return nil, ErrNotFound
}

// ListByProject returns the tasks belonging to a project.
func (r *StoreTaskRepository) ListByProject(projectID string) []models.Task {
	matched := []models.Task{}
	for _, task := range r.load() {
		if task.ProjectID == projectID {
			matched = append(matched, task)
		}
	}
	return matched
}

// Insert appends a new task.
func (r *StoreTaskRepository) Insert(task models.Task) error {
	return r.save(append(r.load(), task))
}

// Update replaces the stored task with the same id.
func (r *StoreTaskRepository) Update(task models.Task) error {
	tasks := r.load()
	for i := range tasks {
		if tasks[i].ID == task.ID {
			tasks[i] = task
			return r.save(tasks)
		}
	}
	return ErrNotFound
}

// Delete removes the task with the given id.
func (r *StoreTaskRepository) Delete(id string) error {
	tasks := r.load()
	for i := range tasks {
		if tasks[i].ID == id {
			return r.save(append(tasks[:i], tasks[i+1:]...))
		}
	}
	return ErrNotFound
}

// DeleteByProject removes every task belonging to a project in a single
// write, so a cascade cannot leave survivors behind.
func (r *StoreTaskRepository) DeleteByProject(projectID string) (int, error) {
	tasks := r.load()
	kept := tasks[:0]
	removed := 0
	for _, task := range tasks {
		if task.ProjectID == projectID {
			removed++
			continue
		}
		kept = append(kept, task)
	}
	if removed == 0 {
		return 0, nil
	}
	if err := r.save(kept); err != nil {
		return 0, err
	}
	return removed, nil
}
