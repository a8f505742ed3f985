package repository

import (
	"github.com/rs/zerolog"

	"github.com/worktrackhq/worktrack/internal/models"
	"github.com/worktrackhq/worktrack/internal/store"
)

// StoreUserRepository is a document-store implementation of
// UserRepository. Every mutation is a full read-modify-write of the users
// document.
type StoreUserRepository struct {
	store  store.DocumentStore
	logger zerolog.Logger
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(s store.DocumentStore, logger zerolog.Logger) UserRepository {
	return &StoreUserRepository{store: s, logger: logger}
}

func (r *StoreUserRepository) load() []models.User {
	return store.LoadCollection(r.store, r.logger, store.KeyUsers, []models.User{})
}

func (r *StoreUserRepository) save(users []models.User) error {
	return store.SaveCollection(r.store, r.logger, store.KeyUsers, users)
}

// List returns every user.
func (r *StoreUserRepository) List() []models.User {
	return r.load()
}

// FindByID finds a user by id.
func (r *StoreUserRepository) FindByID(id string) (*models.User, error) {
	for _, user := range r.load() {
		if user.ID == id {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// FindByEmail finds a user by email.
func (r *StoreUserRepository) FindByEmail(email string) (*models.User, error) {
	for _, user := range r.load() {
		if user.Email == email {
			return &user, nil
		}
	}
	return nil, ErrNotFound
}

// Insert appends a new user.
func (r *StoreUserRepository) Insert(user models.User) error {
	return r.save(append(r.load(), user))
}

// Update replaces the stored user with the same id.
func (r *StoreUserRepository) Update(user models.User) error {
	users := r.load()
	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			return r.save(users)
		}
	}
	return ErrNotFound
}

// Delete removes the user with the given id.
func (r *StoreUserRepository) Delete(id string) error {
	users := r.load()
	for i := range users {
		if users[i].ID == id {
			return r.save(append(users[:i], users[i+1:]...))
		}
	}
	return ErrNotFound
}
