package repository

import (
	"github.com/rs/zerolog"

	"github.com/worktrackhq/worktrack/internal/models"
	"github.com/worktrackhq/worktrack/internal/store"
)

// StoreProjectRepository is a document-store implementation of
// ProjectRepository.
type StoreProjectRepository struct {
	store  store.DocumentStore
	logger zerolog.Logger
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(s store.DocumentStore, logger zerolog.Logger) ProjectRepository {
	return &StoreProjectRepository{store: s, logger: logger}
}

func (r *StoreProjectRepository) load() []models.Project {
	return store.LoadCollection(r.store, r.logger, store.KeyProjects, []models.Project{})
}

func (r *StoreProjectRepository) save(projects []models.Project) error {
	return store.SaveCollection(r.store, r.logger, store.KeyProjects, projects)
}

// List returns every project.
func (r *StoreProjectRepository) List() []models.Project {
	return r.load()
}

// FindByID finds a project by id.
func (r *StoreProjectRepository) FindByID(id string) (*models.Project, error) {
	for _, project := range r.load() {
		if project.ID == id {
			return &project, nil
		}
	}
	return nil, ErrNotFound
}

// Insert appends a new project.
func (r *StoreProjectRepository) Insert(project models.Project) error {
	return r.save(append(r.load(), project))
}

// Update replaces the stored project with the same id.
func (r *StoreProjectRepository) Update(project models.Project) error {
	projects := r.load()
	for i := range projects {
		if projects[i].ID == project.ID {
			projects[i] = project
			return r.save(projects)
		}
	}
	return ErrNotFound
}

// Delete removes the project with the given id. Task cleanup is the
// coordinator's responsibility.
func (r *StoreProjectRepository) Delete(id string) error {
	projects := r.load()
	for i := range projects {
		if projects[i].ID == id {
			return r.save(append(projects[:i], projects[i+1:]...))
		}
	}
	return ErrNotFound
}
