package auth

import (
	"context"
	"fmt"
)

// Logger is the minimal logging contract the auth package needs; the
// application wires a glog child logger through it.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Warn(format string, args ...any)
	Error(format string, args ...any)
}

// Identity holds the attributes of an authenticated identity
type Identity interface {
	ID() string
	Email() string
	Name() string
	Role() string
}

// IdentityProvider ensures we have a store to retrieve auth identities
type IdentityProvider interface {
	VerifyIdentity(ctx context.Context, email, password string) (Identity, error)
	FindIdentityByID(ctx context.Context, id string) (Identity, error)
	RegisterIdentity(ctx context.Context, reg Registration) (Identity, error)
}

// Registration is the profile captured at sign up. The raw password is
// hashed before it reaches any store and is never persisted or logged.
type Registration struct {
	Email    string
	Name     string
	Phone    string
	Address  string
	Password string
}

// Config holds the auth options consumed by this package
type Config interface {
	GetSigningKey() string
	GetTokenExpiration() int
	GetIssuer() string
	GetBcryptCost() int
	GetContextKey() string
	GetAuthScheme() string
}

// DefaultLogger returns the stdout fallback used when a component is
// wired without a logger.
func DefaultLogger() Logger {
	return defLogger{}
}

type defLogger struct{}

func (d defLogger) Error(format string, args ...any) {
	fmt.Printf("[ERR] AUTH "+newline(format), args...)
}

func (d defLogger) Warn(format string, args ...any) {
	fmt.Printf("[WRN] AUTH "+newline(format), args...)
}

func (d defLogger) Info(format string, args ...any) {
	fmt.Printf("[INF] AUTH "+newline(format), args...)
}

func (d defLogger) Debug(format string, args ...any) {
	fmt.Printf("[DBG] AUTH "+newline(format), args...)
}

func newline(s string) string {
	if len(s) > 0 && s[len(s)-1] != '\n' {
		s += "\n"
	}
	return s
}
