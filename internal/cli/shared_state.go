package cli

import (
	"github.com/zaqiyusuf/gatepass/internal/domain"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	// Authenticated user, zero-valued until login completes.
	User domain.User

	// Terminal dimensions
	Width  int
	Height int
}

// LoggedIn reports whether a user is set on the shared state.
func (s *SharedState) LoggedIn() bool {
	return s.User.ID != "" || s.User.Email != ""
}

// IsAdmin reports whether the logged-in user may see admin-only sections
// (users, gateway settings).
func (s *SharedState) IsAdmin() bool {
	return s.User.Role == domain.RoleAdmin
}

// ClearUser drops the in-memory user after logout or session expiry.
func (s *SharedState) ClearUser() {
	s.User = domain.User{}
}

// ContentHeight returns the available height for view content, accounting
// for the header (2 lines) and status bar (2 lines).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 4
	if h < 1 {
		return 1
	}
	return h
}
