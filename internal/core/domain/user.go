package domain

import (
	"errors"
	"time"
)

// Role determines feature and navigation visibility. The set is closed:
// access decisions only ever branch on these three values.
type Role string

const (
	RoleClient Role = "client"
	RoleAgent  Role = "agent"
	RoleAdmin  Role = "admin"
)

// AllRoles lists every valid role, in declaration order.
var AllRoles = []Role{RoleClient, RoleAgent, RoleAdmin}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleAgent, RoleAdmin:
		return true
	}
	return false
}

// User models an authenticated actor in the marketplace. Role is fixed for
// the lifetime of a session; there is no in-session role change.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// SocialProfile is the identity asserted by an external provider
// (Google, Facebook) once it has verified a client-side assertion.
type SocialProfile struct {
	Subject   string
	Email     string
	Name      string
	AvatarURL string
}

// Sentinel errors carried across the service boundary. Callers branch on
// these instead of matching notification text.
var (
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrValidation          = errors.New("validation failed")
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrSessionNotFound     = errors.New("session not found")
	ErrSessionSuperseded   = errors.New("session superseded")
	ErrResetTokenInvalid   = errors.New("reset token invalid or expired")
	ErrProviderUnavailable = errors.New("identity provider unavailable")
)
