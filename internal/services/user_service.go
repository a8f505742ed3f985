package services

import (
	"crypto/rand"
	"encoding/hex"
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
	ErrUserNameRequired   = apperrors.Validation("name is required")
	ErrEmailRequired      = apperrors.Validation("email is required")
	ErrEmailTaken         = apperrors.Validation("email is already in use")
	ErrInvalidRole        = apperrors.Validation("invalid role")
	ErrDepartmentRequired = apperrors.Validation("department is required for employees")
	ErrInvalidDepartment  = apperrors.Validation("invalid department")
	ErrUserNotFound       = apperrors.Integrity("user does not exist")
	ErrSelfDeactivate     = apperrors.Authorization("cannot deactivate your own account")
	ErrSelfDelete         = apperrors.Authorization("cannot delete your own account")
	ErrUserReferenced     = apperrors.Integrity("user is still referenced by projects or tasks")
)

// UserService handles user management. All mutations are admin-only.
type UserService struct {
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
}

// NewUserService creates a new UserService.
func NewUserService(userRepo repository.UserRepository, projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository) *UserService {
	return &UserService{
		userRepo:    userRepo,
		projectRepo: projectRepo,
		taskRepo:    taskRepo,
	}
}

// CreateUserInput represents input for creating a user.
type CreateUserInput struct {
	Name       string
	Email      string
	Role       models.Role
	Department models.Department
	EmployeeID string
}

// UpdateUserInput represents input for updating a user. Nil fields are
// left unchanged.
type UpdateUserInput struct {
	Name       *string
	Email      *string
	Department *models.Department
}

// List returns every user.
func (s *UserService) List() []models.User {
	return s.userRepo.List()
}

// Get returns a user by id.
func (s *UserService) Get(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// Create creates a new user with a generated id and, when absent, a
// generated employee display code.
func (s *UserService) Create(input CreateUserInput, session *models.Session) (*models.User, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	if strings.TrimSpace(input.Name) == "" {
		return nil, ErrUserNameRequired
	}
	if strings.TrimSpace(input.Email) == "" {
		return nil, ErrEmailRequired
	}
	if !input.Role.Valid() {
		return nil, ErrInvalidRole
	}
	if input.Role == models.RoleEmployee {
		if input.Department == "" {
			return nil, ErrDepartmentRequired
		}
		if !input.Department.Valid() {
			return nil, ErrInvalidDepartment
		}
	}
	if _, err := s.userRepo.FindByEmail(input.Email); err == nil {
		return nil, ErrEmailTaken
	}

	employeeID := input.EmployeeID
	if employeeID == "" {
		code, err := generateEmployeeCode()
		if err != nil {
			return nil, fmt.Errorf("failed to generate employee code: %w", err)
		}
		employeeID = code
	}

	user := models.User{
		ID:         uuid.NewString(),
		Name:       input.Name,
		Email:      input.Email,
		Role:       input.Role,
		Department: input.Department,
		IsActive:   true,
		EmployeeID: employeeID,
		CreatedAt:  time.Now(),
	}

	if err := s.userRepo.Insert(user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Update applies a patch to an existing user.
func (s *UserService) Update(id string, input UpdateUserInput, session *models.Session) (*models.User, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, ErrUserNameRequired
		}
		user.Name = *input.Name
	}
	if input.Email != nil {
		if strings.TrimSpace(*input.Email) == "" {
			return nil, ErrEmailRequired
		}
		if existing, err := s.userRepo.FindByEmail(*input.Email); err == nil && existing.ID != id {
			return nil, ErrEmailTaken
		}
		user.Email = *input.Email
	}
	if input.Department != nil {
		if !input.Department.Valid() {
			return nil, ErrInvalidDepartment
		}
		user.Department = *input.Department
	}

	if err := s.userRepo.Update(*user); err != nil {
		return nil, err
	}
	return user, nil
}

// SetActive toggles a user's active flag. Deactivating the acting
// identity is refused so an admin cannot lock themselves out.
func (s *UserService) SetActive(id string, active bool, session *models.Session) (*models.User, error) {
	if err := requireAdmin(session); err != nil {
		return nil, err
	}
	if !active && id == session.UserID {
		return nil, ErrSelfDeactivate
	}

	user, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	user.IsActive = active
	if err := s.userRepo.Update(*user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes a user. The acting identity and any user still
// referenced by a project assignment or a task, whether as assignee or
// as creator, cannot be deleted; deactivation is the path for those.
func (s *UserService) Delete(id string, session *models.Session) error {
	if err := requireAdmin(session); err != nil {
		return err
	}
	if id == session.UserID {
		return ErrSelfDelete
	}

	if _, err := s.Get(id); err != nil {
		return err
	}
	if s.referenced(id) {
		return ErrUserReferenced
	}

	return s.userRepo.Delete(id)
}

func (s *UserService) referenced(userID string) bool {
	for _, project := range s.projectRepo.List() {
		if project.HasMember(userID) {
			return true
		}
	}
	for _, task := range s.taskRepo.List() {
		if task.AssigneeID == userID || task.CreatedByID == userID {
			return true
		}
	}
	return false
}

// generateEmployeeCode generates a display code in the format EMP-XXXX.
func generateEmployeeCode() (string, error) {
	raw := make([]byte, 2)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return fmt.Sprintf("EMP-%s", strings.ToUpper(hex.EncodeToString(raw))), nil
}
