package models

// Session is the acting identity supplied by the session provider for
// every mutating call. The core never authenticates; it only authorizes
// against this value.
type Session struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Name   string `json:"name"`
}

// Valid reports whether a usable identity is present.
func (s *Session) Valid() bool {
	return s != nil && s.UserID != ""
}

func (s *Session) IsAdmin() bool {
	return s != nil && s.Role == RoleAdmin
}
