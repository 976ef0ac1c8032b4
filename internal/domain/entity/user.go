package entity

import "time"

// Roles válidos para User.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User cuenta de acceso al sistema.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Phone        string
	Role         string // user | admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si la cuenta tiene privilegios de administrador.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }

// ValidRole reporta si role pertenece al conjunto cerrado de roles.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}
