package repository

import (
	"github.com/rs/zerolog"

	"github.com/worktrackhq/worktrack/internal/models"
	"github.com/worktrackhq/worktrack/internal/store"
)

// StoreNotificationRepository is a document-store implementation of
// NotificationRepository.
type StoreNotificationRepository struct {
	store  store.DocumentStore
	logger zerolog.Logger
}

// NewNotificationRepository creates a new NotificationRepository.
func NewNotificationRepository(s store.DocumentStore, logger zerolog.Logger) NotificationRepository {
	return &StoreNotificationRepository{store: s, logger: logger}
}

func (r *StoreNotificationRepository) load() []models.Notification {
	return store.LoadCollection(r.store, r.logger, store.KeyNotifications, []models.Notification{})
}

func (r *StoreNotificationRepository) save(notifications []models.Notification) error {
	return store.SaveCollection(r.store, r.logger, store.KeyNotifications, notifications)
}

// List returns every notification.
func (r *StoreNotificationRepository) List() []models.Notification {
	return r.load()
}

// FindByID finds a notification by id.
func (r *StoreNotificationRepository) FindByID(id string) (*models.Notification, error) {
	for _, notification := range r.load() {
		if notification.ID == id {
			return &notification, nil
		}
	}
	return nil, ErrNotFound
}

// ListByUser returns the notifications addressed to a user.
func (r *StoreNotificationRepository) ListByUser(userID string) []models.Notification {
	matched := []models.Notification{}
	for _, notification := range r.load() {
		if notification.UserID == userID {
			matched = append(matched, notification)
		}
	}
	return matched
}

// Insert appends a new notification.
func (r *StoreNotificationRepository) Insert(notification models.Notification) error {
	return r.save(append(r.load(), notification))
}

// InsertMany appends a batch of notifications in one write.
func (r *StoreNotificationRepository) InsertMany(notifications []models.Notification) error {
	if len(notifications) == 0 {
		return nil
	}
	return r.save(append(r.load(), notifications...))
}

// Update replaces the stored notification with the same id.
func (r *StoreNotificationRepository) Update(notification models.Notification) error {
	notifications := r.load()
	for i := range notifications {
		if notifications[i].ID == notification.ID {
			notifications[i] = notification
			return r.save(notifications)
		}
	}
	return ErrNotFound
}

// ReplaceAll overwrites the whole collection.
func (r *StoreNotificationRepository) ReplaceAll(notifications []models.Notification) error {
	return r.save(notifications)
}
