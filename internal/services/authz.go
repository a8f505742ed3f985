package services

import (
	"github.com/worktrackhq/worktrack/internal/apperrors"
	"github.com/worktrackhq/worktrack/internal/models"
)

// ErrAdminOnly is returned when a non-admin calls an admin-only mutation.
var ErrAdminOnly = apperrors.Authorization("administrator role required")

// requireSession rejects mutating calls made without an acting identity.
func requireSession(session *models.Session) error {
	if !session.Valid() {
		return apperrors.ErrNoSession
	}
	return nil
}

// requireAdmin rejects mutating calls unless the acting identity is an
// administrator.
func requireAdmin(session *models.Session) error {
	if err := requireSession(session); err != nil {
		return err
	}
	if !session.IsAdmin() {
		return ErrAdminOnly
	}
	return nil
}
