package store

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/worktrackhq/worktrack/internal/models"
)

// seedEpoch anchors every baseline timestamp so repeated seeds produce
// byte-identical data.
var seedEpoch = time.Date(2024, time.January, 2, 9, 0, 0, 0, time.UTC)

func seedUsers() []models.User {
	return []models.User{
		{
			ID:         "u-admin",
			Name:       "Alice Carter",
			Email:      "alice@worktrack.local",
			Role:       models.RoleAdmin,
			IsActive:   true,
			EmployeeID: "EMP-0001",
			CreatedAt:  seedEpoch,
		},
		{
			ID:         "u-dev-1",
			Name:       "Ben Ito",
			Email:      "ben@worktrack.local",
			Role:       models.RoleEmployee,
			Department: models.DepartmentDev,
			IsActive:   true,
			EmployeeID: "EMP-0002",
			CreatedAt:  seedEpoch,
		},
		{
			ID:         "u-qa-1",
			Name:       "Chen Wei",
			Email:      "chen@worktrack.local",
			Role:       models.RoleEmployee,
			Department: models.DepartmentTester,
			IsActive:   true,
			EmployeeID: "EMP-0003",
			CreatedAt:  seedEpoch,
		},
		{
			ID:         "u-sales-1",
			Name:       "Dana Flores",
			Email:      "dana@worktrack.local",
			Role:       models.RoleEmployee,
			Department: models.DepartmentPresales,
			IsActive:   true,
			EmployeeID: "EMP-0004",
			CreatedAt:  seedEpoch,
		},
	}
}

func seedProjects() []models.Project {
	return []models.Project{
		{
			ID:              "p-portal",
			Name:            "Customer Portal",
			Description:     "Self-service portal for enterprise accounts.",
			Status:          models.ProjectStatusActive,
			StartDate:       seedEpoch,
			EndDate:         seedEpoch.AddDate(0, 5, 0),
			AssignedUserIDs: []string{"u-dev-1", "u-qa-1"},
			CreatedAt:       seedEpoch,
			UpdatedAt:       seedEpoch,
		},
		{
			ID:              "p-billing",
			Name:            "Billing Migration",
			Description:     "Move invoicing off the legacy system.",
			Status:          models.ProjectStatusCompleted,
			StartDate:       seedEpoch.AddDate(-1, 0, 0),
			EndDate:         seedEpoch.AddDate(0, -1, 0),
			AssignedUserIDs: []string{"u-dev-1"},
			CreatedAt:       seedEpoch.AddDate(-1, 0, 0),
			UpdatedAt:       seedEpoch,
		},
	}
}

func seedTasks() []models.Task {
	schemaDeadline := seedEpoch.AddDate(0, 0, 5)
	return []models.Task{
		{
			ID:          "t-schema",
			ProjectID:   "p-portal",
			Title:       "Design account schema",
			Description: "Model accounts, seats, and entitlements.",
			AssigneeID:  "u-dev-1",
			Priority:    models.TaskPriorityHigh,
			Status:      models.TaskStatusTodo,
			CreatedByID: "u-admin",
			CreatedAt:   seedEpoch,
			AssignedAt:  seedEpoch,
			Deadline:    &schemaDeadline,
			Tags:        []string{models.TagLearning},
			UpdatedAt:   seedEpoch,
		},
		{
			ID:          "t-smoke",
			ProjectID:   "p-portal",
			Title:       "Smoke-test login flows",
			Description: "Cover SSO and password reset.",
			AssigneeID:  "u-qa-1",
			Priority:    models.TaskPriorityMedium,
			Status:      models.TaskStatusInProgress,
			CreatedByID: "u-admin",
			CreatedAt:   seedEpoch,
			AssignedAt:  seedEpoch,
			UpdatedAt:   seedEpoch,
		},
		{
			ID:          "t-cutover",
			ProjectID:   "p-billing",
			Title:       "Final invoice cutover",
			AssigneeID:  "u-dev-1",
			Priority:    models.TaskPriorityLow,
			Status:      models.TaskStatusCompleted,
			CreatedByID: "u-admin",
			CreatedAt:   seedEpoch.AddDate(0, -2, 0),
			AssignedAt:  seedEpoch.AddDate(0, -2, 0),
			UpdatedAt:   seedEpoch,
		},
	}
}

// SeedIfNeeded writes the baseline dataset unless the store already holds
// one. Presence of the users document is the seeded marker, so repeated
// startups are idempotent.
func SeedIfNeeded(s DocumentStore, logger zerolog.Logger) error {
	_, found, err := s.Get(KeyUsers)
	if err != nil {
		return err
	}
	if found {
		logger.Debug().Msg("store already seeded, skipping")
		return nil
	}
	logger.Info().Msg("seeding baseline dataset")
	return writeSeed(s, logger)
}

// ResetAllToSeed unconditionally overwrites all four collections with the
// baseline, discarding every mutation made since.
func ResetAllToSeed(s DocumentStore, logger zerolog.Logger) error {
	logger.Info().Msg("resetting all collections to baseline")
	return writeSeed(s, logger)
}

func writeSeed(s DocumentStore, logger zerolog.Logger) error {
	if err := SaveCollection(s, logger, KeyUsers, seedUsers()); err != nil {
		return err
	}
	if err := SaveCollection(s, logger, KeyProjects, seedProjects()); err != nil {
		return err
	}
	if err := SaveCollection(s, logger, KeyTasks, seedTasks()); err != nil {
		return err
	}
	return SaveCollection(s, logger, KeyNotifications, []models.Notification{})
}
