package domain

import "time"

// UserRole distinguishes submitters from staff able to resolve concerns.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleStaff UserRole = "STAFF"
)

// Valid reports whether the role is known.
func (r UserRole) Valid() bool {
	return r == RoleUser || r == RoleStaff
}

// User is the domain model for registered accounts. The user directory is
// also the identity lookup consulted before a concern submission is accepted.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
