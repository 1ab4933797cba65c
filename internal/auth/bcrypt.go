package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is used when the configured cost is zero or out of
// the range bcrypt accepts.
const DefaultBcryptCost = 12

// PasswordHasher wraps bcrypt with a tunable cost factor. The cost is
// fixed at construction and never mutated, so a single instance is safe
// for concurrent use.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given cost, clamped to
// the range bcrypt supports.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return PasswordHasher{cost: cost}
}

// HashPassword will generate a password hash. Each call salts the input
// independently, so equal passwords never share a hash.
func (h PasswordHasher) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ErrNoEmptyString
	}

	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	return string(out), err
}

// ComparePasswordAndHash will validate the given cleartext password
// matches the hashed password. Any failure, including a malformed hash,
// maps to ErrInvalidCredentials so callers cannot tell them apart.
func (h PasswordHasher) ComparePasswordAndHash(password, hash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
