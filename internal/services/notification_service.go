package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/worktrackhq/worktrack/internal/apperrors"
	"github.com/worktrackhq/worktrack/internal/models"
	"github.com/worktrackhq/worktrack/internal/repository"
)

// deadlineWindow is how far ahead the deadline scan looks.
const deadlineWindow = 7 * 24 * time.Hour

var (
	ErrNotificationNotFound = apperrors.Integrity("notification does not exist")
	ErrNotRecipient         = apperrors.Authorization("notifications can only be read by their recipient")
)

// NotificationService handles read-state mutations and the deadline
// notification engine.
type NotificationService struct {
	notifRepo repository.NotificationRepository
	taskRepo  repository.TaskRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifRepo repository.NotificationRepository, taskRepo repository.TaskRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo, taskRepo: taskRepo}
}

// List returns every notification across all recipients.
func (s *NotificationService) List() []models.Notification {
	return s.notifRepo.List()
}

// ListForUser returns the notifications addressed to a user.
func (s *NotificationService) ListForUser(userID string) []models.Notification {
	return s.notifRepo.ListByUser(userID)
}

// MarkRead flips a notification to read. Only the recipient may do so,
// and the transition only ever goes from unread to read.
func (s *NotificationService) MarkRead(id string, session *models.Session) error {
	if err := requireSession(session); err != nil {
		return err
	}

	notification, err := s.notifRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotificationNotFound
		}
		return err
	}
	if notification.UserID != session.UserID {
		return ErrNotRecipient
	}
	if notification.Read {
		return nil
	}

	notification.Read = true
	return s.notifRepo.Update(*notification)
}

// MarkAllRead flips every notification belonging to the caller to read.
func (s *NotificationService) MarkAllRead(session *models.Session) error {
	if err := requireSession(session); err != nil {
		return err
	}

	notifications := s.notifRepo.List()
	changed := false
	for i := range notifications {
		if notifications[i].UserID == session.UserID && !notifications[i].Read {
			notifications[i].Read = true
			changed = true
		}
	}
	if !changed {
		return nil
	}
	return s.notifRepo.ReplaceAll(notifications)
}

// RunDeadlineCheck scans every non-completed task whose deadline falls
// within the next seven days of now, overdue tasks included, and ensures
// exactly one DEADLINE notification exists per assignee, task, and
// deadline. Repeated scans with the same now are idempotent; the only
// time source is the supplied instant, so the engine is safe to re-run
// from a timer or by hand.
func (s *NotificationService) RunDeadlineCheck(now time.Time) (int, error) {
	existing := make(map[string]struct{})
	for _, notification := range s.notifRepo.List() {
		if notification.Type != models.NotificationDeadline || notification.DueAt == nil {
			continue
		}
		existing[deadlineKey(notification.UserID, notification.TaskID, *notification.DueAt)] = struct{}{}
	}

	horizon := now.Add(deadlineWindow)
	created := []models.Notification{}
	for _, task := range s.taskRepo.List() {
		if task.Status == models.TaskStatusCompleted || task.Deadline == nil {
			continue
		}
		if task.Deadline.After(horizon) {
			continue
		}

		key := deadlineKey(task.AssigneeID, task.ID, *task.Deadline)
		if _, dup := existing[key]; dup {
			continue
		}
		existing[key] = struct{}{}

		due := *task.Deadline
		created = append(created, models.Notification{
			ID:        uuid.NewString(),
			UserID:    task.AssigneeID,
			TaskID:    task.ID,
			Type:      models.NotificationDeadline,
			Message:   deadlineMessage(task, now),
			DueAt:     &due,
			CreatedAt: now,
		})
	}

	if len(created) == 0 {
		return 0, nil
	}
	if err := s.notifRepo.InsertMany(created); err != nil {
		return 0, err
	}
	return len(created), nil
}

func deadlineKey(userID, taskID string, due time.Time) string {
	return userID + "|" + taskID + "|" + due.UTC().Format(time.RFC3339)
}

func deadlineMessage(task models.Task, now time.Time) string {
	if task.Deadline.Before(now) {
		return fmt.Sprintf("Task %q is overdue", task.Title)
	}
	return fmt.Sprintf("Task %q is due by %s", task.Title, task.Deadline.Format("Jan 2"))
}
