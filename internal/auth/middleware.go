package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// Guard gates requests on a verified bearer token. Both variants are
// pure functions of (token, current time, signing secret); they keep no
// per-request state, so they compose safely under concurrency.
type Guard struct {
	tokens     TokenService
	contextKey string
	authScheme string
	logger     Logger
}

// NewGuard builds the access guard around the token service
func NewGuard(tokens TokenService, cfg Config) *Guard {
	contextKey := cfg.GetContextKey()
	if contextKey == "" {
		contextKey = "user"
	}

	authScheme := cfg.GetAuthScheme()
	if authScheme == "" {
		authScheme = "Bearer"
	}

	return &Guard{
		tokens:     tokens,
		contextKey: contextKey,
		authScheme: authScheme,
		logger:     defLogger{},
	}
}

func (g *Guard) WithLogger(logger Logger) *Guard {
	if logger != nil {
		g.logger = logger
	}
	return g
}

// RequireIdentity extracts and verifies the bearer token, attaching the
// claims to the request context for downstream handlers. The specific
// codec failure is logged; the client sees a uniform auth failure.
func (g *Guard) RequireIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := g.verify(c)
		if err != nil {
			return err
		}

		c.Locals(g.contextKey, claims)
		return c.Next()
	}
}

// RequireAdmin verifies the identity first, then requires the admin
// role. A valid non-admin identity fails with ErrForbidden, distinct
// from the unauthenticated failures.
func (g *Guard) RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := g.verify(c)
		if err != nil {
			return err
		}

		if !claims.IsAdmin() {
			g.logger.Warn("admin gate rejected identity",
				"subject", claims.Subject(),
				"role", claims.Role(),
			)
			return ErrForbidden
		}

		c.Locals(g.contextKey, claims)
		return c.Next()
	}
}

func (g *Guard) verify(c *fiber.Ctx) (AuthClaims, error) {
	raw, err := extractBearerToken(c, g.authScheme)
	if err != nil {
		return nil, err
	}

	claims, err := g.tokens.Validate(raw)
	if err != nil {
		g.logger.Info("token rejected",
			"error", err,
			"path", c.Path(),
		)
		return nil, err
	}

	return claims, nil
}

// extractBearerToken pulls the token out of the Authorization header.
// A missing header or a scheme mismatch is ErrUnauthenticated.
func extractBearerToken(c *fiber.Ctx, authScheme string) (string, error) {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return "", ErrUnauthenticated
	}

	l := len(authScheme)
	if len(header) <= l+1 || !strings.EqualFold(header[:l], authScheme) {
		return "", ErrUnauthenticated
	}

	token := strings.TrimSpace(header[l:])
	if token == "" {
		return "", ErrUnauthenticated
	}

	return token, nil
}
