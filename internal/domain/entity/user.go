package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleAnalyst = "analyst"
	RoleViewer  = "viewer"
)

// ValidRole indica si el rol pertenece al conjunto cerrado admin/analyst/viewer.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleAnalyst, RoleViewer:
		return true
	}
	return false
}

// User representa un usuario del sistema. El email lo identifica de forma única.
type User struct {
	ID           int64
	Email        string
	Name         string
	Role         string       // admin, analyst, viewer
	Permissions  []Capability // conjunto sin orden; admin implica todas
	PasswordHash string       // bcrypt hash
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
