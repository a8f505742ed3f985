package services

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/worktrackhq/worktrack/internal/apperrors"
	"github.com/worktrackhq/worktrack/internal/models"
	"github.com/worktrackhq/worktrack/internal/repository"
)

var (
	ErrProjectNameRequired  = apperrors.Validation("project name is required")
	ErrMembersRequired      = apperrors.Validation("At least one member is required")
	ErrInvalidDateRange     = apperrors.Validation("start date must not be after end date")
	ErrInvalidProjectStatus = apperrors.Validation("invalid project status")
	ErrProjectNotFound      = apperrors.Integrity("project does not exist")
	ErrUnknownMember        = apperrors.Integrity("one or more assigned users do not exist")
	ErrProjectReadOnly      = apperrors.StateGate("project is read-only in this status")
)

// ProjectService handles project business logic. Content mutations are
// gated on the ACTIVE status; only status transitions escape the gate.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	userRepo    repository.UserRepository
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projectRepo repository.ProjectRepository, userRepo repository.UserRepository) *ProjectService {
	return &ProjectService{projectRepo: projectRepo, userRepo: userRepo}
}

// CreateProjectInput represents input for creating a project.
type CreateProjectInput struct {
	Name            string
	Description     string
	StartDate       time.Time
	EndDate         time.Time
	AssignedUserIDs []string
}

// UpdateProjectInput represents input for updating a project. Nil fields
// are left unchanged.
type UpdateProjectInput struct {
	Name        *string
	Description *string
	StartDate   *time.Time
	EndDate     *time.Time
}

// List returns every project.
func (s *ProjectService) List() []models.Project {
	return s.projectRepo.List()
}

// Get returns a project by id.
func (s *ProjectService) Get(id string) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	return project, nil
}

// Create creates a new project, ACTIVE by default. The assignment set
// must be non-empty and every member must resolve to an existing user.
func (s *ProjectService) Create(input CreateProjectInput, session *models.Session) (*models.Project, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrProjectNameRequired
	}
	if len(input.AssignedUserIDs) == 0 {
		return nil, ErrMembersRequired
	}
	if input.StartDate.After(input.EndDate) {
		return nil, ErrInvalidDateRange
	}
	if err := s.ensureMembersExist(input.AssignedUserIDs); err != nil {
		return nil, err
	}

	now := time.Now()
	project := models.Project{
		ID:              uuid.NewString(),
		Name:            input.Name,
		Description:     input.Description,
		Status:          models.ProjectStatusActive,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		AssignedUserIDs: uniqueStrings(input.AssignedUserIDs),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.projectRepo.Insert(project); err != nil {
		return nil, err
	}
	return &project, nil
}

// Update applies a content patch. A project that is not ACTIVE is
// structurally read-only and the call fails with an explicit error
// rather than silently dropping the patch.
func (s *ProjectService) Update(id string, input UpdateProjectInput, session *models.Session) (*models.Project, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if project.ReadOnly() {
		return nil, ErrProjectReadOnly
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrProjectNameRequired
		}
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = *input.Description
	}
	if input.StartDate != nil {
		project.StartDate = *input.StartDate
	}
	if input.EndDate != nil {
		project.EndDate = *input.EndDate
	}
	if project.StartDate.After(project.EndDate) {
		return nil, ErrInvalidDateRange
	}

	project.UpdatedAt = time.Now()
	if err := s.projectRepo.Update(*project); err != nil {
		return nil, err
	}
	return project, nil
}

// SetStatus transitions a project to any status. This is the one
// mutation exempt from the read-only gate, since it is the mechanism to
// leave a read-only state.
func (s *ProjectService) SetStatus(id string, status models.ProjectStatus, session *models.Session) (*models.Project, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	if !status.Valid() {
		return nil, ErrInvalidProjectStatus
	}

	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	project.Status = status
	project.UpdatedAt = time.Now()
	if err := s.projectRepo.Update(*project); err != nil {
		return nil, err
	}
	return project, nil
}

// AssignMembers replaces the assignment set wholesale. The set can never
// be reduced to empty while the project exists.
func (s *ProjectService) AssignMembers(id string, userIDs []string, session *models.Session) (*models.Project, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	if len(userIDs) == 0 {
		return nil, ErrMembersRequired
	}

	project, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if project.ReadOnly() {
		return nil, ErrProjectReadOnly
	}
	if err := s.ensureMembersExist(userIDs); err != nil {
		return nil, err
	}

	project.AssignedUserIDs = uniqueStrings(userIDs)
	project.UpdatedAt = time.Now()
	if err := s.projectRepo.Update(*project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes the project row. Cascading its tasks is orchestrated by
// the coordinator so each repository stays testable in isolation.
func (s *ProjectService) Delete(id string, session *models.Session) error {
	if err := requireAdmin(session); err != nil {
		return err
	}
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.projectRepo.Delete(id)
}

// ensureMembersExist verifies every id resolves to a stored user.
func (s *ProjectService) ensureMembersExist(userIDs []string) error {
	for _, id := range userIDs {
		if _, err := s.userRepo.FindByID(id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrUnknownMember
			}
			return err
		}
	}
	return nil
}

// uniqueStrings removes duplicate values while preserving order.
func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, v := range values {
		if _, exists := seen[v]; exists {
			continue
		}
		seen[v] = struct{}{}
		result = append(result, v)
	}
	return result
}
