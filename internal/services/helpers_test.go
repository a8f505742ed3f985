package services

import (
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/worktrackhq/worktrack/internal/models"
	"github.com/worktrackhq/worktrack/internal/repository"
	"github.com/worktrackhq/worktrack/internal/store"
)

var testEpoch = time.Date(2024, time.March, 4, 10, 0, 0, 0, time.UTC)

// faultyStore fails writes to one key, simulating a quota or disk fault
// on a single document. failKey is left empty while fixtures are being
// inserted and set just before the operation under test.
type faultyStore struct {
	*store.Memory
	failKey string
}

func (s *faultyStore) Put(key string, value []byte) error {
	if key == s.failKey {
		return errors.New("disk quota exceeded")
	}
	return s.Memory.Put(key, value)
}

// testEnv wires the repositories over an in-memory store so every suite
// starts from a blank dataset.
type testEnv struct {
	store       store.DocumentStore
	userRepo    repository.UserRepository
	projectRepo repository.ProjectRepository
	taskRepo    repository.TaskRepository
	notifRepo   repository.NotificationRepository
}

func newTestEnv() *testEnv {
	return newTestEnvOver(store.NewMemory())
}

func newTestEnvOver(s store.DocumentStore) *testEnv {
	logger := zerolog.Nop()
	return &testEnv{
		store:       s,
		userRepo:    repository.NewUserRepository(s, logger),
		projectRepo: repository.NewProjectRepository(s, logger),
		taskRepo:    repository.NewTaskRepository(s, logger),
		notifRepo:   repository.NewNotificationRepository(s, logger),
	}
}

func (e *testEnv) addUser(id string, role models.Role, active bool) models.User {
	user := models.User{
		ID:         id,
		Name:       "User " + id,
		Email:      id + "@worktrack.local",
		Role:       role,
		IsActive:   active,
		EmployeeID: "EMP-" + id,
		CreatedAt:  testEpoch,
	}
	if role == models.RoleEmployee {
		user.Department = models.DepartmentDev
	}
	if err := e.userRepo.Insert(user); err != nil {
		panic(err)
	}
	return user
}

func (e *testEnv) addProject(id string, status models.ProjectStatus, memberIDs ...string) models.Project {
	project := models.Project{
		ID:              id,
		Name:            "Project " + id,
		Status:          status,
		StartDate:       testEpoch,
		EndDate:         testEpoch.AddDate(0, 6, 0),
		AssignedUserIDs: memberIDs,
		CreatedAt:       testEpoch,
		UpdatedAt:       testEpoch,
	}
	if err := e.projectRepo.Insert(project); err != nil {
		panic(err)
	}
	return project
}

func (e *testEnv) addTask(id, projectID, assigneeID, createdByID string) models.Task {
	task := models.Task{
		ID:          id,
		ProjectID:   projectID,
		Title:       "Task " + id,
		AssigneeID:  assigneeID,
		Priority:    models.TaskPriorityMedium,
		Status:      models.TaskStatusTodo,
		CreatedByID: createdByID,
		CreatedAt:   testEpoch,
		AssignedAt:  testEpoch,
		UpdatedAt:   testEpoch,
	}
	if err := e.taskRepo.Insert(task); err != nil {
		panic(err)
	}
	return task
}

func adminSession(userID string) *models.Session {
	return &models.Session{UserID: userID, Role: models.RoleAdmin}
}

func employeeSession(userID string) *models.Session {
	return &models.Session{UserID: userID, Role: models.RoleEmployee}
}
