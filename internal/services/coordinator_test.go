package services

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"

	"github.com/worktrackhq/worktrack/internal/apperrors"
	"github.com/worktrackhq/worktrack/internal/models"
	"github.com/worktrackhq/worktrack/internal/store"
)

type CoordinatorTestSuite struct {
	suite.Suite
	env         *testEnv
	coordinator *Coordinator
	admin       *models.Session
}

func (suite *CoordinatorTestSuite) SetupTest() {
	suite.env = newTestEnv()
	suite.coordinator = NewCoordinator(suite.env.store, zerolog.Nop())

	admin := suite.env.addUser("u-admin", models.RoleAdmin, true)
	suite.env.addUser("u1", models.RoleEmployee, true)
	suite.admin = adminSession(admin.ID)
	suite.coordinator.Refresh()
}

// Deleting a project removes every one of its tasks, regardless of who
// created them; unrelated tasks survive.
func (suite *CoordinatorTestSuite) TestRemoveProjectCascades() {
	suite.env.addProject("p1", models.ProjectStatusActive, "u1")
	suite.env.addProject("p2", models.ProjectStatusActive, "u1")
	suite.env.addTask("t1", "p1", "u1", "u1")
	suite.env.addTask("t2", "p1", "u1", "u-admin")
	suite.env.addTask("t3", "p2", "u1", "u-admin")

	suite.Require().NoError(suite.coordinator.RemoveProject("p1", suite.admin))

	remaining := suite.coordinator.ListTasks(ListTasksInput{})
	suite.Require().Len(remaining, 1)
	suite.Equal("t3", remaining[0].ID)

	for _, task := range remaining {
		suite.NotEqual("p1", task.ProjectID)
	}
}

// A write fault during the cascade must not leave tasks pointing at a
// deleted project: the project delete only runs once its tasks are gone.
func (suite *CoordinatorTestSuite) TestRemoveProjectFaultLeavesNoOrphans() {
	fs := &faultyStore{Memory: store.NewMemory()}
	env := newTestEnvOver(fs)
	coordinator := NewCoordinator(fs, zerolog.Nop())

	env.addUser("u-admin", models.RoleAdmin, true)
	env.addUser("u1", models.RoleEmployee, true)
	env.addProject("p1", models.ProjectStatusActive, "u1")
	env.addTask("t1", "p1", "u1", "u-admin")
	fs.failKey = store.KeyTasks

	err := coordinator.RemoveProject("p1", adminSession("u-admin"))
	suite.Require().Error(err)
	suite.True(apperrors.IsKind(err, apperrors.KindStorage))

	// Both sides survive intact.
	_, err = env.projectRepo.FindByID("p1")
	suite.Require().NoError(err)
	suite.Require().Len(env.taskRepo.ListByProject("p1"), 1)
}

func (suite *CoordinatorTestSuite) TestSnapshotRefreshedAfterMutation() {
	suite.env.addProject("p1", models.ProjectStatusActive, "u1")
	suite.coordinator.Refresh()
	suite.Require().Len(suite.coordinator.Snapshot().Tasks, 0)

	task, err := suite.coordinator.CreateTask(CreateTaskInput{
		ProjectID:  "p1",
		Title:      "Wire the login page",
		AssigneeID: "u1",
	}, suite.admin)
	suite.Require().NoError(err)

	snap := suite.coordinator.Snapshot()
	suite.Require().Len(snap.Tasks, 1)
	suite.Equal(task.ID, snap.Tasks[0].ID)
	// The assignment notification lands in the same refresh.
	suite.Require().Len(snap.Notifications, 1)
	suite.Equal(models.NotificationAssigned, snap.Notifications[0].Type)
}

func (suite *CoordinatorTestSuite) TestFailedMutationLeavesSnapshotUntouched() {
	suite.env.addProject("p1", models.ProjectStatusOnHold, "u1")
	suite.coordinator.Refresh()
	before := suite.coordinator.Snapshot()

	_, err := suite.coordinator.CreateTask(CreateTaskInput{
		ProjectID:  "p1",
		Title:      "t",
		AssigneeID: "u1",
	}, suite.admin)
	suite.Require().ErrorIs(err, ErrProjectReadOnly)

	after := suite.coordinator.Snapshot()
	suite.Equal(before.Tasks, after.Tasks)
	suite.Equal(before.Notifications, after.Notifications)
}

func (suite *CoordinatorTestSuite) TestResetAllToSeedDiscardsMutations() {
	suite.Require().NoError(suite.coordinator.ResetAllToSeed())
	baseline := suite.coordinator.Snapshot()
	suite.Require().NotEmpty(baseline.Users)
	suite.Require().NotEmpty(baseline.Projects)

	_, err := suite.coordinator.CreateProject(CreateProjectInput{
		Name:            "Scratch",
		StartDate:       testEpoch,
		EndDate:         testEpoch.AddDate(0, 1, 0),
		AssignedUserIDs: []string{baseline.Users[0].ID},
	}, adminSession(baseline.Users[0].ID))
	suite.Require().NoError(err)
	suite.Len(suite.coordinator.Snapshot().Projects, len(baseline.Projects)+1)

	suite.Require().NoError(suite.coordinator.ResetAllToSeed())
	suite.Equal(baseline.Projects, suite.coordinator.Snapshot().Projects)
}

func (suite *CoordinatorTestSuite) TestSeedIfNeededIsIdempotent() {
	fresh := store.NewMemory()
	coordinator := NewCoordinator(fresh, zerolog.Nop())

	suite.Require().NoError(coordinator.SeedIfNeeded())
	seeded := coordinator.Snapshot()
	suite.Require().NotEmpty(seeded.Users)

	session := adminSession(seeded.Users[0].ID)
	_, err := coordinator.CreateUser(CreateUserInput{
		Name:  "Late Arrival",
		Email: "late@worktrack.local",
		Role:  models.RoleAdmin,
	}, session)
	suite.Require().NoError(err)

	// A second startup seed must not clobber the mutation.
	suite.Require().NoError(coordinator.SeedIfNeeded())
	suite.Len(coordinator.Snapshot().Users, len(seeded.Users)+1)
}

func (suite *CoordinatorTestSuite) TestRunDeadlineCheckRefreshesSnapshot() {
	suite.env.addProject("p1", models.ProjectStatusActive, "u1")
	task := suite.env.addTask("t1", "p1", "u1", "u-admin")
	deadline := testEpoch.AddDate(0, 0, 2)
	task.Deadline = &deadline
	suite.Require().NoError(suite.env.taskRepo.Update(task))
	suite.coordinator.Refresh()

	created, err := suite.coordinator.RunDeadlineCheck(testEpoch)
	suite.Require().NoError(err)
	suite.Equal(1, created)
	suite.Len(suite.coordinator.Snapshot().Notifications, 1)
}

func TestCoordinatorTestSuite(t *testing.T) {
	suite.Run(t, new(CoordinatorTestSuite))
}
