package models

import "time"

type Role string

const (
	RoleAdmin    Role = "ADMIN"
	RoleEmployee Role = "EMPLOYEE"
)

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleEmployee
}

type Department string

const (
	DepartmentDev      Department = "DEV"
	DepartmentPresales Department = "PRESALES"
	DepartmentTester   Department = "TESTER"
)

func (d Department) Valid() bool {
	switch d {
	case DepartmentDev, DepartmentPresales, DepartmentTester:
		return true
	}
	return false
}

type User struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Email      string     `json:"email"`
	Role       Role       `json:"role"`
	Department Department `json:"department,omitempty"`
	IsActive   bool       `json:"is_active"`
	EmployeeID string     `json:"employee_id"`
	CreatedAt  time.Time  `json:"created_at"`
}

// EligibleAssignee reports whether tasks may be assigned to this user.
// Admins coordinate work but do not carry tasks themselves.
func (u User) EligibleAssignee() bool {
	return u.IsActive && u.Role == RoleEmployee
}
