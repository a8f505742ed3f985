package models

import "time"

type ProjectStatus string

const (
	ProjectStatusActive    ProjectStatus = "ACTIVE"
	ProjectStatusOnHold    ProjectStatus = "ON_HOLD"
	ProjectStatusCompleted ProjectStatus = "COMPLETED"
)

func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusActive, ProjectStatusOnHold, ProjectStatusCompleted:
		return true
	}
	return false
}

type Project struct {
	ID              string        `json:"id"`
	Name            string        `json:"name"`
	Description     string        `json:"description"`
	Status          ProjectStatus `json:"status"`
	StartDate       time.Time     `json:"start_date"`
	EndDate         time.Time     `json:"end_date"`
	AssignedUserIDs []string      `json:"assigned_user_ids"`
	CreatedAt       time.Time     `json:"created_at"`
	UpdatedAt       time.Time     `json:"updated_at"`
}

// ReadOnly reports whether the project's content is frozen. Status changes
// remain allowed; everything else is blocked until the project is ACTIVE
// again.
func (p Project) ReadOnly() bool {
	return p.Status != ProjectStatusActive
}

// HasMember reports whether the user is in the project's assignment set.
func (p Project) HasMember(userID string) bool {
	for _, id := range p.AssignedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}
