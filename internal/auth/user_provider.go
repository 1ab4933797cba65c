package auth

import (
	"context"

	errors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UserStore is the slice of the credential store the provider needs
type UserStore interface {
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUserID(ctx context.Context, id string) (*User, error)
	Register(ctx context.Context, user *User) (*User, error)
}

// UserProvider resolves identities against the credential store
type UserProvider struct {
	store  UserStore
	hasher PasswordHasher
	logger Logger
}

// NewUserProvider will create a new UserProvider
func NewUserProvider(store UserStore, hasher PasswordHasher) *UserProvider {
	return &UserProvider{
		store:  store,
		hasher: hasher,
		logger: defLogger{},
	}
}

func (u *UserProvider) WithLogger(l Logger) *UserProvider {
	if l != nil {
		u.logger = l
	}
	return u
}

// VerifyIdentity will find the user, compare the password, and return
// the identity. A missing record and a mismatched password both come
// back as ErrInvalidCredentials so callers cannot probe for emails.
func (u *UserProvider) VerifyIdentity(ctx context.Context, email, password string) (Identity, error) {
	user, err := u.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrInvalidCredentials
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := u.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		return nil, ErrInvalidCredentials
	}

	return IdentityFromUser(user), nil
}

// FindIdentityByID re-reads the credential record by subject id so that
// out-of-band profile or role edits are reflected.
func (u *UserProvider) FindIdentityByID(ctx context.Context, id string) (Identity, error) {
	user, err := u.store.GetByUserID(ctx, id)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user by id")
	}

	return IdentityFromUser(user), nil
}

// RegisterIdentity checks the email is free, hashes the password, and
// persists a new credential record with the default user role. The
// unique email index still backs the pre-check, so a concurrent
// registration racing past it surfaces as ErrDuplicateEmail from the
// store.
func (u *UserProvider) RegisterIdentity(ctx context.Context, reg Registration) (Identity, error) {
	if _, err := u.store.GetByEmail(ctx, reg.Email); err == nil {
		return nil, ErrDuplicateEmail
	} else if !errors.IsNotFound(err) {
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to check for existing user")
	}

	hash, err := u.hasher.HashPassword(reg.Password)
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return nil, errors.Wrap(richErr, errors.CategoryValidation, "invalid password provided")
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to hash password")
	}

	user := &User{
		Email:        NormalizeEmail(reg.Email),
		Name:         reg.Name,
		Phone:        reg.Phone,
		Address:      reg.Address,
		Role:         RoleUser,
		PasswordHash: hash,
	}
	user.ID = newUserID(user.Email)

	record, err := u.store.Register(ctx, user)
	if err != nil {
		return nil, err
	}

	return IdentityFromUser(record), nil
}

// newUserID derives a stable id from the normalized email, falling back
// to a random uuid when derivation fails.
func newUserID(email string) uuid.UUID {
	if id, err := hashid.NewUUID(email); err == nil {
		return id
	}
	return uuid.New()
}

var _ IdentityProvider = (*UserProvider)(nil)
