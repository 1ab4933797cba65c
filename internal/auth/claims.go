package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is the default role assigned at registration
	RoleUser UserRole = "user"
	// RoleAdmin manages the catalog and order lifecycle. Escalation
	// happens out of band (seeding); no route assigns it.
	RoleAdmin UserRole = "admin"
)

// ValidRole checks the role is one of the two recognized values
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

// AuthClaims is the verified, request-scoped claim set of a session token
type AuthClaims interface {
	Subject() string
	Email() string
	Role() string
	IsAdmin() bool
	Expires() time.Time
	IssuedAt() time.Time
}

// JWTClaims is the concrete implementation of AuthClaims
type JWTClaims struct {
	jwt.RegisteredClaims
	UID       string `json:"uid,omitempty"`
	UserEmail string `json:"email,omitempty"`
	UserRole  string `json:"role,omitempty"`
}

var _ AuthClaims = (*JWTClaims)(nil)

// Subject returns the subject claim, falling back to uid
func (c *JWTClaims) Subject() string {
	if c.RegisteredClaims.Subject != "" {
		return c.RegisteredClaims.Subject
	}
	return c.UID
}

// Email returns the email claim
func (c *JWTClaims) Email() string {
	return c.UserEmail
}

// Role returns the role claim
func (c *JWTClaims) Role() string {
	return c.UserRole
}

// IsAdmin checks for the admin role
func (c *JWTClaims) IsAdmin() bool {
	return c.UserRole == RoleAdmin
}

// Expires returns the expiration time
func (c *JWTClaims) Expires() time.Time {
	if c.RegisteredClaims.ExpiresAt != nil {
		return c.RegisteredClaims.ExpiresAt.Time
	}
	return time.Time{}
}

// IssuedAt returns the issued at time
func (c *JWTClaims) IssuedAt() time.Time {
	if c.RegisteredClaims.IssuedAt != nil {
		return c.RegisteredClaims.IssuedAt.Time
	}
	return time.Time{}
}

// ensureRequired rejects claim sets missing the fields every verified
// token must carry.
func (c *JWTClaims) ensureRequired() error {
	if c.Subject() == "" {
		return ErrTokenMalformed
	}
	if !ValidRole(c.UserRole) {
		return ErrTokenMalformed
	}
	if c.RegisteredClaims.ExpiresAt == nil {
		return ErrTokenMalformed
	}
	return nil
}
