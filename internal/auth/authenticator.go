package auth

import (
	"context"

	errors "github.com/goliatone/go-errors"
)

// Auther orchestrates registration, login and identity resolution. It
// holds no mutable state beyond configuration loaded at start, so a
// single instance serves concurrent requests.
type Auther struct {
	provider     IdentityProvider
	tokenService TokenService
	logger       Logger
}

// NewAuthenticator returns a new Authenticator
func NewAuthenticator(provider IdentityProvider, cfg Config) *Auther {
	tokenService := NewTokenService(
		[]byte(cfg.GetSigningKey()),
		cfg.GetTokenExpiration(),
		cfg.GetIssuer(),
		defLogger{},
	)

	return &Auther{
		provider:     provider,
		tokenService: tokenService,
		logger:       defLogger{},
	}
}

func (s *Auther) WithLogger(logger Logger) *Auther {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// TokenService returns the TokenService instance used by this Authenticator
func (s *Auther) TokenService() TokenService {
	return s.tokenService
}

// Register creates a new credential record and issues a session token
// for it. An email collision fails with ErrDuplicateEmail; the store's
// unique index backs the pre-check against concurrent registrations.
func (s *Auther) Register(ctx context.Context, reg Registration) (Identity, string, error) {
	identity, err := s.provider.RegisterIdentity(ctx, reg)
	if err != nil {
		s.logger.Error("Register identity error", "error", err)
		return nil, "", err
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Register token generation error", "error", err)
		return nil, "", err
	}

	s.logger.Info("registered identity", "id", identity.ID())

	return identity, token, nil
}

// Login verifies the credentials and issues a fresh token reflecting
// the currently stored role, so out-of-band role changes take effect on
// the next login.
func (s *Auther) Login(ctx context.Context, email, password string) (Identity, string, error) {
	identity, err := s.provider.VerifyIdentity(ctx, email, password)
	if err != nil {
		s.logger.Warn("Login verify identity error", "error", err)
		return nil, "", err
	}

	token, err := s.tokenService.Generate(identity)
	if err != nil {
		s.logger.Error("Login token generation error", "error", err)
		return nil, "", err
	}

	return identity, token, nil
}

// CurrentIdentity re-reads the credential record named by the verified
// claims rather than trusting embedded profile fields, so edits made
// after issuance are reflected. A token whose subject no longer exists
// fails with ErrIdentityNotFound.
func (s *Auther) CurrentIdentity(ctx context.Context, claims AuthClaims) (Identity, error) {
	if claims == nil {
		return nil, ErrUnauthenticated
	}

	identity, err := s.provider.FindIdentityByID(ctx, claims.Subject())
	if err != nil {
		var richErr *errors.Error
		if errors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve current identity")
	}

	return identity, nil
}
