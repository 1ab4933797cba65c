package auth

import (
	errors "github.com/goliatone/go-errors"
)

// Text codes surfaced to clients alongside the error message.
const (
	TextCodeDuplicateEmail  = "DUPLICATE_EMAIL"
	TextCodeInvalidCreds    = "INVALID_CREDENTIALS"
	TextCodeUnauthenticated = "AUTH_REQUIRED"
	TextCodeTokenExpired    = "TOKEN_EXPIRED"
	TextCodeBadSignature    = "TOKEN_SIGNATURE"
	TextCodeTokenMalformed  = "TOKEN_MALFORMED"
	TextCodeForbidden       = "FORBIDDEN"
	TextCodeNotFound        = "IDENTITY_NOT_FOUND"
)

// ErrDuplicateEmail is returned when a registration collides with an
// existing account. The email unique index is the authoritative check;
// the pre-lookup in Register is an optimization.
var ErrDuplicateEmail = errors.New("email is already registered", errors.CategoryConflict).
	WithTextCode(TextCodeDuplicateEmail).
	WithCode(errors.CodeConflict)

// ErrInvalidCredentials covers both an unknown email and a password
// mismatch so login failures never reveal which emails exist.
var ErrInvalidCredentials = errors.New("the credentials provided are invalid", errors.CategoryAuth).
	WithTextCode(TextCodeInvalidCreds).
	WithCode(errors.CodeUnauthorized)

// ErrUnauthenticated is returned when a request carries no usable
// bearer token at all.
var ErrUnauthenticated = errors.New("missing or malformed bearer token", errors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(errors.CodeUnauthorized)

// ErrTokenExpired rejects tokens past their expiry regardless of
// signature validity.
var ErrTokenExpired = errors.New("session token is expired", errors.CategoryAuth).
	WithTextCode(TextCodeTokenExpired).
	WithCode(errors.CodeUnauthorized)

// ErrInvalidSignature rejects tokens whose payload does not match the
// signature derived from the server secret.
var ErrInvalidSignature = errors.New("session token signature is invalid", errors.CategoryAuth).
	WithTextCode(TextCodeBadSignature).
	WithCode(errors.CodeUnauthorized)

// ErrTokenMalformed rejects input the codec cannot parse as a token.
var ErrTokenMalformed = errors.New("session token is malformed", errors.CategoryAuth).
	WithTextCode(TextCodeTokenMalformed).
	WithCode(errors.CodeUnauthorized)

// ErrForbidden is a valid identity with an insufficient role, distinct
// from Unauthenticated.
var ErrForbidden = errors.New("insufficient role for this resource", errors.CategoryAuthz).
	WithTextCode(TextCodeForbidden).
	WithCode(errors.CodeForbidden)

// ErrIdentityNotFound is a structurally valid token whose subject no
// longer resolves to a credential record.
var ErrIdentityNotFound = errors.New("identity not found", errors.CategoryNotFound).
	WithTextCode(TextCodeNotFound).
	WithCode(errors.CodeNotFound)

// ErrNoEmptyString rejects empty passwords before hashing.
var ErrNoEmptyString = errors.New("value must not be an empty string", errors.CategoryValidation).
	WithCode(errors.CodeBadRequest)
