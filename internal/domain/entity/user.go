// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"strings"
	"time"
)

// User is an account that can sign in to the API.
type User struct {
	ID             int64      // Database-assigned identifier.
	Email          string     // Unique, used as an alternative login.
	Username       string     // Unique login name.
	FirstName      string     // Optional given name.
	LastName       string     // Optional family name.
	Role           Role       // Authorization level.
	IsActive       bool       // Inactive accounts cannot sign in.
	IsVerified     bool       // Set by an administrator.
	HashedPassword string     // bcrypt hash, never rendered.
	CreatedAt      time.Time  // Timestamp of when this account was created.
	UpdatedAt      time.Time  // Timestamp of the last modification.
	LastLogin      *time.Time // Nil until the first successful login.
}

// FullName joins the first and last name, or returns the username when both are empty.
func (u *User) FullName() string {
	name := strings.TrimSpace(strings.TrimSpace(u.FirstName) + " " + strings.TrimSpace(u.LastName))
	if name == "" {
		return u.Username
	}

	return name
}

// HasAnyRole reports whether the user holds one of the given roles.
func (u *User) HasAnyRole(roles ...Role) bool {
	return Roles(roles).Contains(u.Role)
}

// IsAdmin reports whether the user is an administrator.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// UserStats aggregates account counts for the admin dashboard.
type UserStats struct {
	TotalUsers    int64
	ActiveUsers   int64
	VerifiedUsers int64
	AdminUsers    int64
}
