package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/impulse7-tech/ImpuLse-FishinG/internal/auth"
)

func newTestAuther(t *testing.T) (*auth.Auther, *memUserStore) {
	t.Helper()

	store := newMemUserStore()
	cfg := testConfig()
	provider := auth.NewUserProvider(store, auth.NewPasswordHasher(cfg.GetBcryptCost()))

	return auth.NewAuthenticator(provider, cfg), store
}

func TestAuther_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("register issues identity and token", func(t *testing.T) {
		auther, _ := newTestAuther(t)

		identity, token, err := auther.Register(ctx, auth.Registration{
			Email:    "user@x.com",
			Name:     "Test User",
			Password: "pw123",
		})

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, "user@x.com", identity.Email())
		assert.Equal(t, auth.RoleUser, identity.Role())
		assert.NotEmpty(t, identity.ID())

		claims, err := auther.TokenService().Validate(token)
		require.NoError(t, err)
		assert.Equal(t, identity.ID(), claims.Subject())
		assert.Equal(t, auth.RoleUser, claims.Role())
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		auther, _ := newTestAuther(t)

		_, _, err := auther.Register(ctx, auth.Registration{
			Email: "user@x.com", Name: "First", Password: "pw123",
		})
		require.NoError(t, err)

		_, _, err = auther.Register(ctx, auth.Registration{
			Email: "user@x.com", Name: "Second", Password: "other",
		})
		assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
	})

	t.Run("email uniqueness is case insensitive", func(t *testing.T) {
		auther, _ := newTestAuther(t)

		_, _, err := auther.Register(ctx, auth.Registration{
			Email: "user@x.com", Name: "First", Password: "pw123",
		})
		require.NoError(t, err)

		_, _, err = auther.Register(ctx, auth.Registration{
			Email: "USER@X.COM", Name: "Shouter", Password: "pw123",
		})
		assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
	})

	t.Run("duplicate detected before password hashing", func(t *testing.T) {
		auther, store := newTestAuther(t)

		_, _, err := auther.Register(ctx, auth.Registration{
			Email: "user@x.com", Name: "First", Password: "pw123",
		})
		require.NoError(t, err)

		// The provider pre-checks the email before touching the
		// hasher, so a taken email wins over an unusable password.
		provider := auth.NewUserProvider(store, auth.NewPasswordHasher(4))
		_, err = provider.RegisterIdentity(ctx, auth.Registration{
			Email: "user@x.com", Name: "Second", Password: "",
		})
		assert.ErrorIs(t, err, auth.ErrDuplicateEmail)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		auther, _ := newTestAuther(t)

		_, _, err := auther.Register(ctx, auth.Registration{
			Email: "user@x.com", Name: "Test", Password: "",
		})
		assert.Error(t, err)
	})
}

func TestAuther_Login(t *testing.T) {
	ctx := context.Background()

	register := func(t *testing.T) (*auth.Auther, auth.Identity) {
		t.Helper()
		auther, _ := newTestAuther(t)
		identity, _, err := auther.Register(ctx, auth.Registration{
			Email: "user@x.com", Name: "Test User", Password: "pw123",
		})
		require.NoError(t, err)
		return auther, identity
	}

	t.Run("correct credentials", func(t *testing.T) {
		auther, registered := register(t)

		identity, token, err := auther.Login(ctx, "user@x.com", "pw123")

		require.NoError(t, err)
		assert.NotEmpty(t, token)
		assert.Equal(t, registered.ID(), identity.ID())

		claims, err := auther.TokenService().Validate(token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID(), claims.Subject())
	})

	t.Run("wrong password", func(t *testing.T) {
		auther, _ := register(t)

		_, _, err := auther.Login(ctx, "user@x.com", "wrong")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email reports the same failure", func(t *testing.T) {
		auther, _ := register(t)

		_, _, err := auther.Login(ctx, "nobody@x.com", "pw123")
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("email lookup is case insensitive", func(t *testing.T) {
		auther, registered := register(t)

		identity, _, err := auther.Login(ctx, "USER@x.com", "pw123")
		require.NoError(t, err)
		assert.Equal(t, registered.ID(), identity.ID())
	})
}

func TestAuther_CurrentIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("resolves claims to stored identity", func(t *testing.T) {
		auther, _ := newTestAuther(t)

		registered, token, err := auther.Register(ctx, auth.Registration{
			Email: "user@x.com", Name: "Test User", Password: "pw123",
		})
		require.NoError(t, err)

		claims, err := auther.TokenService().Validate(token)
		require.NoError(t, err)

		identity, err := auther.CurrentIdentity(ctx, claims)
		require.NoError(t, err)
		assert.Equal(t, registered.ID(), identity.ID())
		assert.Equal(t, "user@x.com", identity.Email())
	})

	t.Run("nil claims", func(t *testing.T) {
		auther, _ := newTestAuther(t)

		_, err := auther.CurrentIdentity(ctx, nil)
		assert.ErrorIs(t, err, auth.ErrUnauthenticated)
	})

	t.Run("subject no longer exists", func(t *testing.T) {
		first, _ := newTestAuther(t)
		second, _ := newTestAuther(t)

		// token minted against one store, resolved against an empty one
		_, token, err := first.Register(ctx, auth.Registration{
			Email: "user@x.com", Name: "Test User", Password: "pw123",
		})
		require.NoError(t, err)

		claims, err := second.TokenService().Validate(token)
		require.NoError(t, err)

		_, err = second.CurrentIdentity(ctx, claims)
		assert.ErrorIs(t, err, auth.ErrIdentityNotFound)
	})
}
