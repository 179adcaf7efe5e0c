package domain

import (
	"errors"
	"time"
)

// Access tiers assigned at registration. Role gates which sections of the
// application a user may reach; it is never self-mutable after creation.
const (
	RoleAdmin    = "admin"
	RoleStaff    = "staff"
	RoleResident = "resident"
)

// DefaultRole is applied when registration omits a role.
const DefaultRole = RoleResident

var ErrUserExists = errors.New("user already registered")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrMissingToken = errors.New("no token provided")
var ErrInvalidToken = errors.New("invalid or expired token")
var ErrTooManyAttempts = errors.New("too many login attempts")

// ValidRole reports whether r is one of the known access tiers.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleStaff || r == RoleResident
}

// User models an account holder. PasswordHash never serializes outward.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is the sanitized projection of a User: the client-visible view
// with the password hash structurally absent rather than blanked.
type Profile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

// Sanitize projects a User into its client-visible form.
func (u *User) Sanitize() Profile {
	return Profile{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role,
	}
}
