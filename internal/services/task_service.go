package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/worktrackhq/worktrack/internal/apperrors"
	"github.com/worktrackhq/worktrack/internal/models"
	"github.com/worktrackhq/worktrack/internal/repository"
)

var (
	ErrTitleRequired       = apperrors.Validation("title is required")
	ErrTaskProjectRequired = apperrors.Validation("project is required")
	ErrAssigneeRequired    = apperrors.Validation("assignee is required")
	ErrInvalidTaskStatus   = apperrors.Validation("invalid task status")
	ErrInvalidTaskPriority = apperrors.Validation("invalid task priority")
	ErrTaskNotFound        = apperrors.Integrity("task does not exist")
	ErrIneligibleAssignee  = apperrors.Integrity("assignee must be an existing active employee")
	ErrNotTaskCreator      = apperrors.Authorization("only the task creator can delete this task")
)

// TaskService handles task business logic. Every content mutation is
// gated on the owning project being ACTIVE.
type TaskService struct {
	taskRepo    repository.TaskRepository
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
	notifRepo   repository.NotificationRepository
}

// NewTaskService creates a new TaskService.
func NewTaskService(taskRepo repository.TaskRepository, projectRepo repository.ProjectRepository, userRepo repository.UserRepository, notifRepo repository.NotificationRepository) *TaskService {
	return &TaskService{
		taskRepo:    taskRepo,
		projectRepo: projectRepo,
		userRepo:    userRepo,
		notifRepo:   notifRepo,
	}
}

// CreateTaskInput represents input for creating a task.
type CreateTaskInput struct {
	ProjectID   string
	Title       string
	Description string
	AssigneeID  string
	Priority    models.TaskPriority
	Deadline    *time.Time
	Tags        []string
}

// UpdateTaskInput represents input for updating a task. Nil fields are
// left unchanged.
type UpdateTaskInput struct {
	Title         *string
	Description   *string
	AssigneeID    *string
	Priority      *models.TaskPriority
	Deadline      *time.Time
	ClearDeadline bool
	Tags          *[]string
}

// ListTasksInput represents filters for listing tasks.
type ListTasksInput struct {
	ProjectID     *string
	AssigneeID    *string
	Status        *models.TaskStatus
	Tag           *string
	AssignedToday bool
	Now           time.Time
}

// List returns tasks matching the filter. A zero filter returns every
// task.
func (s *TaskService) List(input ListTasksInput) []models.Task {
	matched := []models.Task{}
	for _, task := range s.taskRepo.List() {
		if input.ProjectID != nil && task.ProjectID != *input.ProjectID {
			continue
		}
		if input.AssigneeID != nil && task.AssigneeID != *input.AssigneeID {
			continue
		}
		if input.Status != nil && task.Status != *input.Status {
			continue
		}
		if input.Tag != nil && !task.HasTag(*input.Tag) {
			continue
		}
		if input.AssignedToday && !sameDay(task.AssignedAt, input.Now) {
			continue
		}
		matched = append(matched, task)
	}
	return matched
}

// Get returns a task by id.
func (s *TaskService) Get(id string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, err
	}
	return task, nil
}

// Create creates a task under an ACTIVE project and notifies the
// assignee.
func (s *TaskService) Create(input CreateTaskInput, session *models.Session) (*models.Task, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Title) == "" {
		return nil, ErrTitleRequired
	}
	if input.ProjectID == "" {
		return nil, ErrTaskProjectRequired
	}
	if input.AssigneeID == "" {
		return nil, ErrAssigneeRequired
	}
	if err := s.ensureProjectActive(input.ProjectID); err != nil {
		return nil, err
	}
	if err := s.ensureEligibleAssignee(input.AssigneeID); err != nil {
		return nil, err
	}

	priority := input.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, ErrInvalidTaskPriority
	}

	now := time.Now()
	task := models.Task{
		ID:          uuid.NewString(),
		ProjectID:   input.ProjectID,
		Title:       input.Title,
		Description: input.Description,
		AssigneeID:  input.AssigneeID,
		Priority:    priority,
		Status:      models.TaskStatusTodo,
		CreatedByID: session.UserID,
		CreatedAt:   now,
		AssignedAt:  now,
		Deadline:    input.Deadline,
		Tags:        input.Tags,
		UpdatedAt:   now,
	}

	if err := s.taskRepo.Insert(task); err != nil {
		return nil, err
	}

	notification := models.Notification{
		ID:        uuid.NewString(),
		UserID:    task.AssigneeID,
		TaskID:    task.ID,
		Type:      models.NotificationAssigned,
		Message:   fmt.Sprintf("You have been assigned to %q", task.Title),
		CreatedAt: now,
	}
	if err := s.notifRepo.Insert(notification); err != nil {
		// Drop the task again so a create never half-succeeds: either
		// the task exists with its assignment notification, or neither
		// does.
		if rbErr := s.taskRepo.Delete(task.ID); rbErr != nil {
			return nil, rbErr
		}
		return nil, err
	}

	return &task, nil
}

// Update applies a content patch while the owning project is ACTIVE.
// A changed assignee is re-validated for eligibility.
func (s *TaskService) Update(id string, input UpdateTaskInput, session *models.Session) (*models.Task, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}

	task, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProjectActive(task.ProjectID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		if strings.TrimSpace(*input.Title) == "" {
			return nil, ErrTitleRequired
		}
		task.Title = *input.Title
	}
	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.AssigneeID != nil && *input.AssigneeID != task.AssigneeID {
		if err := s.ensureEligibleAssignee(*input.AssigneeID); err != nil {
			return nil, err
		}
		task.AssigneeID = *input.AssigneeID
		task.AssignedAt = time.Now()
	}
	if input.Priority != nil {
		if !input.Priority.Valid() {
			return nil, ErrInvalidTaskPriority
		}
		task.Priority = *input.Priority
	}
	if input.ClearDeadline {
		task.Deadline = nil
	} else if input.Deadline != nil {
		task.Deadline = input.Deadline
	}
	if input.Tags != nil {
		task.Tags = *input.Tags
	}

	task.UpdatedAt = time.Now()
	if err := s.taskRepo.Update(*task); err != nil {
		return nil, err
	}
	return task, nil
}

// MoveStatus moves a task between board columns. All column-to-column
// moves are legal; a non-ACTIVE project blocks every move, admins
// included.
func (s *TaskService) MoveStatus(id string, status models.TaskStatus, session *models.Session) (*models.Task, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ErrInvalidTaskStatus
	}

	task, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureProjectActive(task.ProjectID); err != nil {
		return nil, err
	}

	task.Status = status
	task.UpdatedAt = time.Now()
	if err := s.taskRepo.Update(*task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task. Only the creator may delete it, the admin role
// does not bypass the ownership check, and the owning project must be
// ACTIVE.
func (s *TaskService) Delete(id string, session *models.Session) error {
	if err := requireSession(session); err != nil {
		return err
	}

	task, err := s.Get(id)
	if err != nil {
		return err
	}
	if err := s.ensureProjectActive(task.ProjectID); err != nil {
		return err
	}
	if task.CreatedByID != session.UserID {
		return ErrNotTaskCreator
	}

	return s.taskRepo.Delete(id)
}

// RemoveForProject deletes every task of a project, bypassing the
// ownership and read-only gates. Only the coordinator's cascade path
// calls this.
func (s *TaskService) RemoveForProject(projectID string) (int, error) {
	return s.taskRepo.DeleteByProject(projectID)
}

// ensureProjectActive verifies the project exists and is ACTIVE.
func (s *TaskService) ensureProjectActive(projectID string) error {
	project, err := s.projectRepo.FindByID(projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	if project.ReadOnly() {
		return ErrProjectReadOnly
	}
	return nil
}

// ensureEligibleAssignee verifies the assignee exists and can carry
// tasks.
func (s *TaskService) ensureEligibleAssignee(userID string) error {
	user, err := s.userRepo.FindByID(userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrIneligibleAssignee
		}
		return err
	}
	if !user.EligibleAssignee() {
		return ErrIneligibleAssignee
	}
	return nil
}

// sameDay reports whether two instants fall on the same calendar day.
func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
