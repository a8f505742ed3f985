package repository

import (
	"errors"

	"github.com/worktrackhq/worktrack/internal/models"
)

// ErrNotFound is returned when an id does not resolve within its
// collection.
var ErrNotFound = errors.New("record not found")

// UserRepository defines collection access for users. Reads never fail:
// a missing or corrupt document is treated as an empty collection.
type UserRepository interface {
	// List returns every user.
	List() []models.User

	// FindByID finds a user by id.
	FindByID(id string) (*models.User, error)

	// FindByEmail finds a user by email.
	FindByEmail(email string) (*models.User, error)

	// Insert appends a new user.
	Insert(user models.User) error

	// Update replaces the stored user with the same id.
	Update(user models.User) error

	// Delete removes the user with the given id.
	Delete(id string) error
}

// ProjectRepository defines collection access for projects.
type ProjectRepository interface {
	// List returns every project.
	List() []models.Project

	// FindByID finds a project by id.
	FindByID(id string) (*models.Project, error)

	// Insert appends a new project.
	Insert(project models.Project) error

	// Update replaces the stored project with the same id.
	Update(project models.Project) error

	// Delete removes the project with the given id.
	Delete(id string) error
}

// TaskRepository defines collection access for tasks.
type TaskRepository interface {
	// List returns every task.
	List() []models.Task

	// FindByID finds a task by id.
	FindByID(id string) (*models.Task, error)

	// ListByProject returns the tasks belonging to a project.
	ListByProject(projectID string) []models.Task

	// Insert appends a new task.
	Insert(task models.Task) error

	// Update replaces the stored task with the same id.
	Update(task models.Task) error

	// Delete removes the task with the given id.
	Delete(id string) error

	// DeleteByProject removes every task belonging to a project and
	// returns how many were removed. Used for cascade deletion.
	DeleteByProject(projectID string) (int, error)
}

// NotificationRepository defines collection access for notifications.
type NotificationRepository interface {
	// List returns every notification.
	List() []models.Notification

	// FindByID finds a notification by id.
	FindByID(id string) (*models.Notification, error)

	// ListByUser returns the notifications addressed to a user.
	ListByUser(userID string) []models.Notification

	// Insert appends a new notification.
	Insert(notification models.Notification) error

	// InsertMany appends a batch of notifications in one write.
	InsertMany(notifications []models.Notification) error

	// Update replaces the stored notification with the same id.
	Update(notification models.Notification) error

	// ReplaceAll overwrites the whole collection. Used for bulk read
	// flips.
	ReplaceAll(notifications []models.Notification) error
}
