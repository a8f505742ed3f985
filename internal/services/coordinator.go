package services

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/worktrackhq/worktrack/internal/models"
	"github.com/worktrackhq/worktrack/internal/repository"
	"github.com/worktrackhq/worktrack/internal/store"
)

// Snapshot is the disposable read view handed to the presentation layer.
// It is fully rebuilt after every successful mutation; there is no
// partial-update propagation.
type Snapshot struct {
	Users         []models.User
	Projects      []models.Project
	Tasks         []models.Task
	Notifications []models.Notification
}

// Coordinator is the facade consumed by the presentation layer. It owns
// the in-memory snapshot, refreshes it after every mutation, and hosts
// the cross-repository orchestration steps such as the project cascade.
//
// A mutex keeps the background deadline scan from interleaving with a
// foreground mutation; within one goroutine the history stays strictly
// sequential.
type Coordinator struct {
	users         *UserService
	projects      *ProjectService
	tasks         *TaskService
	notifications *NotificationService

	store  store.DocumentStore
	logger zerolog.Logger

	mu       sync.RWMutex
	snapshot Snapshot
}

// NewCoordinator wires the repositories and services over the given
// store and takes an initial snapshot.
func NewCoordinator(s store.DocumentStore, logger zerolog.Logger) *Coordinator {
	userRepo := repository.NewUserRepository(s, logger)
	projectRepo := repository.NewProjectRepository(s, logger)
	taskRepo := repository.NewTaskRepository(s, logger)
	notifRepo := repository.NewNotificationRepository(s, logger)

	c := &Coordinator{
		users:         NewUserService(userRepo, projectRepo, taskRepo),
		projects:      NewProjectService(projectRepo, userRepo),
		tasks:         NewTaskService(taskRepo, projectRepo, userRepo, notifRepo),
		notifications: NewNotificationService(notifRepo, taskRepo),
		store:         s,
		logger:        logger,
	}
	c.Refresh()
	return c
}

// Snapshot returns the current read view.
func (c *Coordinator) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Refresh re-reads all four collections into the snapshot.
func (c *Coordinator) Refresh() {
	snap := Snapshot{
		Users:         c.users.List(),
		Projects:      c.projects.List(),
		Tasks:         c.tasks.List(ListTasksInput{}),
		Notifications: c.notifications.List(),
	}

	c.mu.Lock()
	c.snapshot = snap
	c.mu.Unlock()
}

// SeedIfNeeded writes the baseline dataset on first start.
func (c *Coordinator) SeedIfNeeded() error {
	if err := store.SeedIfNeeded(c.store, c.logger); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// ResetAllToSeed discards every mutation and restores the baseline.
func (c *Coordinator) ResetAllToSeed() error {
	if err := store.ResetAllToSeed(c.store, c.logger); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// Users

func (c *Coordinator) CreateUser(input CreateUserInput, session *models.Session) (*models.User, error) {
	user, err := c.users.Create(input, session)
	if err != nil {
		return nil, err
	}
	c.Refresh()
	return user, nil
}

func (c *Coordinator) UpdateUser(id string, input UpdateUserInput, session *models.Session) (*models.User, error) {
	user, err := c.users.Update(id, input, session)
	if err != nil {
		return nil, err
	}
	c.Refresh()
	return user, nil
}

func (c *Coordinator) SetUserActive(id string, active bool, session *models.Session) (*models.User, error) {
	user, err := c.users.SetActive(id, active, session)
	if err != nil {
		return nil, err
	}
	c.Refresh()
	return user, nil
}

func (c *Coordinator) DeleteUser(id string, session *models.Session) error {
	if err := c.users.Delete(id, session); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// Projects

func (c *Coordinator) CreateProject(input CreateProjectInput, session *models.Session) (*models.Project, error) {
	project, err := c.projects.Create(input, session)
	if err != nil {
		return nil, err
	}
	c.Refresh()
	return project, nil
}

func (c *Coordinator) UpdateProject(id string, input UpdateProjectInput, session *models.Session) (*models.Project, error) {
	project, err := c.projects.Update(id, input, session)
	if err != nil {
		return nil, err
	}
	c.Refresh()
	return project, nil
}

func (c *Coordinator) SetProjectStatus(id string, status models.ProjectStatus, session *models.Session) (*models.Project, error) {
	project, err := c.projects.SetStatus(id, status, session)
	if err != nil {
		return nil, err
	}
	c.Refresh()
	return project, nil
}

func (c *Coordinator) AssignProjectMembers(id string, userIDs []string, session *models.Session) (*models.Project, error) {
	project, err := c.projects.AssignMembers(id, userIDs, session)
	if err != nil {
		return nil, err
	}
	c.Refresh()
	return project, nil
}

// RemoveProject deletes a project and cascades to its tasks. The cascade
// is unconditional: read-only status and task ownership do not block it.
// Tasks go first so a write fault mid-delete leaves at worst an empty
// project, never tasks pointing at a project that no longer exists.
func (c *Coordinator) RemoveProject(id string, session *models.Session) error {
	if err := requireAdmin(session); err != nil {
		return err
	}
	if _, err := c.projects.Get(id); err != nil {
		return err
	}
	removed, err := c.tasks.RemoveForProject(id)
	if err != nil {
		return err
	}
	if err := c.projects.Delete(id, session); err != nil {
		return err
	}
	if removed > 0 {
		c.logger.Info().Str("project_id", id).Int("tasks", removed).Msg("cascade removed project tasks")
	}
	c.Refresh()
	return nil
}

// Tasks

func (c *Coordinator) CreateTask(input CreateTaskInput, session *models.Session) (*models.Task, error) {
	task, err := c.tasks.Create(input, session)
	if err != nil {
		return nil, err
	}
	c.Refresh()
	return task, nil
}

func (c *Coordinator) UpdateTask(id string, input UpdateTaskInput, session *models.Session) (*models.Task, error) {
	task, err := c.tasks.Update(id, input, session)
	if err != nil {
		return nil, err
	}
	c.Refresh()
	return task, nil
}

func (c *Coordinator) MoveTaskStatus(id string, status models.TaskStatus, session *models.Session) (*models.Task, error) {
	task, err := c.tasks.MoveStatus(id, status, session)
	if err != nil {
		return nil, err
	}
	c.Refresh()
	return task, nil
}

func (c *Coordinator) RemoveTask(id string, session *models.Session) error {
	if err := c.tasks.Delete(id, session); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

func (c *Coordinator) ListTasks(input ListTasksInput) []models.Task {
	return c.tasks.List(input)
}

// Notifications

func (c *Coordinator) ListNotifications(userID string) []models.Notification {
	return c.notifications.ListForUser(userID)
}

func (c *Coordinator) MarkNotificationRead(id string, session *models.Session) error {
	if err := c.notifications.MarkRead(id, session); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

func (c *Coordinator) MarkAllNotificationsRead(session *models.Session) error {
	if err := c.notifications.MarkAllRead(session); err != nil {
		return err
	}
	c.Refresh()
	return nil
}

// RunDeadlineCheck runs the deadline scan against the supplied instant
// and returns how many notifications it created.
func (c *Coordinator) RunDeadlineCheck(now time.Time) (int, error) {
	created, err := c.notifications.RunDeadlineCheck(now)
	if err != nil {
		return 0, err
	}
	if created > 0 {
		c.Refresh()
	}
	return created, nil
}
