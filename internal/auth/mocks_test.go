package auth_test

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/impulse7-tech/ImpuLse-FishinG/internal/auth"
)

// MockIdentity implements auth.Identity for testing
type MockIdentity struct {
	mock.Mock
}

func (m *MockIdentity) ID() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Email() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockIdentity) Role() string {
	args := m.Called()
	return args.String(0)
}

// MockLogger implements auth.Logger for testing
type MockLogger struct {
	mock.Mock
}

func (m *MockLogger) Debug(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Info(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Warn(format string, args ...any) {
	m.Called(format, args)
}

func (m *MockLogger) Error(format string, args ...any) {
	m.Called(format, args)
}

// configStub implements auth.Config with test defaults
type configStub struct {
	signingKey      string
	tokenExpiration int
	issuer          string
	bcryptCost      int
	contextKey      string
	authScheme      string
}

func testConfig() configStub {
	return configStub{
		signingKey:      "test-signing-key",
		tokenExpiration: 24,
		issuer:          "test-issuer",
		bcryptCost:      4,
		contextKey:      "user",
		authScheme:      "Bearer",
	}
}

func (c configStub) GetSigningKey() string   { return c.signingKey }
func (c configStub) GetTokenExpiration() int { return c.tokenExpiration }
func (c configStub) GetIssuer() string       { return c.issuer }
func (c configStub) GetBcryptCost() int      { return c.bcryptCost }
func (c configStub) GetContextKey() string   { return c.contextKey }
func (c configStub) GetAuthScheme() string   { return c.authScheme }

// memUserStore is an in-memory auth.UserStore keyed by normalized email
type memUserStore struct {
	mu    sync.Mutex
	users map[string]*auth.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: map[string]*auth.User{}}
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[auth.NormalizeEmail(email)]
	if !ok {
		return nil, auth.ErrIdentityNotFound
	}
	return user, nil
}

func (s *memUserStore) GetByUserID(ctx context.Context, id string) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.ID.String() == id {
			return user, nil
		}
	}
	return nil, auth.ErrIdentityNotFound
}

func (s *memUserStore) Register(ctx context.Context, user *auth.User) (*auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := auth.NormalizeEmail(user.Email)
	if _, exists := s.users[key]; exists {
		return nil, auth.ErrDuplicateEmail
	}

	s.users[key] = user
	return user, nil
}
