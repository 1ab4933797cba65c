// Package httpapi exposes the storefront over a JSON API.
package httpapi

import (
	stderrors "errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	errors "github.com/goliatone/go-errors"

	"github.com/impulse7-tech/ImpuLse-FishinG/internal/auth"
	"github.com/impulse7-tech/ImpuLse-FishinG/internal/store"
)

// Options wires the server dependencies.
type Options struct {
	Auther      *auth.Auther
	Guard       *auth.Guard
	Repo        store.RepositoryManager
	Logger      auth.Logger
	ContextKey  string
	CORSOrigins string
	Debug       bool
}

// Server owns the fiber app and its route handlers.
type Server struct {
	app    *fiber.App
	logger auth.Logger
}

// New builds the fiber app, registers middleware and routes.
func New(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = auth.DefaultLogger()
	}

	app := fiber.New(fiber.Config{
		AppName:      "ImpuLse FishinG API",
		ErrorHandler: errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	s := &Server{
		app:    app,
		logger: logger,
	}

	authCtl := &AuthController{
		Auther:     opts.Auther,
		ContextKey: opts.ContextKey,
		Logger:     logger,
	}
	productCtl := &ProductController{Repo: opts.Repo, Logger: logger}
	orderCtl := &OrderController{Repo: opts.Repo, ContextKey: opts.ContextKey, Logger: logger}
	chatCtl := &ChatController{Repo: opts.Repo, Logger: logger}

	api := app.Group("/api")

	api.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "ImpuLse FishinG API", "status": "running"})
	})

	authGroup := api.Group("/auth")
	authGroup.Post("/register", authCtl.Register)
	authGroup.Post("/login", authCtl.Login)
	authGroup.Get("/me", opts.Guard.RequireIdentity(), authCtl.Me)

	api.Get("/products", productCtl.List)
	api.Get("/products/:id", productCtl.Get)
	api.Post("/products", opts.Guard.RequireAdmin(), productCtl.Create)
	api.Put("/products/:id", opts.Guard.RequireAdmin(), productCtl.Update)
	api.Delete("/products/:id", opts.Guard.RequireAdmin(), productCtl.Delete)

	api.Get("/categories", productCtl.Categories)

	api.Post("/orders", opts.Guard.RequireIdentity(), orderCtl.Create)
	api.Post("/orders/guest", orderCtl.CreateGuest)
	api.Get("/orders", opts.Guard.RequireIdentity(), orderCtl.List)
	api.Get("/orders/:id", opts.Guard.RequireIdentity(), orderCtl.Get)
	api.Put("/orders/:id/status", opts.Guard.RequireAdmin(), orderCtl.UpdateStatus)

	api.Get("/chat/messages", chatCtl.List)
	api.Post("/chat/messages", chatCtl.Post)

	return s
}

// App exposes the underlying fiber app, used by tests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen blocks serving the API on addr.
func (s *Server) Listen(addr string) error {
	return s.app.Listen(addr)
}

// Shutdown drains in-flight requests and stops the listeners.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

// errorHandler translates errors into a JSON body with a stable shape:
// {"error": ..., "code": ...}, plus a validation map when present.
func errorHandler(logger auth.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var richErr *errors.Error
		if !errors.As(err, &richErr) {
			var fiberErr *fiber.Error
			if stderrors.As(err, &fiberErr) {
				return c.Status(fiberErr.Code).JSON(fiber.Map{
					"error": fiberErr.Message,
				})
			}

			richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
				WithCode(errors.CodeInternal)
		}

		status := richErr.Code
		if status == 0 {
			status = statusFromCategory(richErr.Category)
		}

		if status >= http.StatusInternalServerError {
			logger.Error("request failed: %s path=%s category=%s", richErr.Message, c.Path(), richErr.Category)
		} else {
			logger.Info("request rejected: %s path=%s status=%d", richErr.Message, c.Path(), status)
		}

		body := fiber.Map{
			"error": richErr.Message,
		}
		if richErr.TextCode != "" {
			body["code"] = richErr.TextCode
		}
		if validation := richErr.ValidationMap(); len(validation) > 0 {
			body["validation"] = validation
		}

		return c.Status(status).JSON(body)
	}
}

func statusFromCategory(category errors.Category) int {
	switch category {
	case errors.CategoryAuth:
		return http.StatusUnauthorized
	case errors.CategoryAuthz:
		return http.StatusForbidden
	case errors.CategoryNotFound:
		return http.StatusNotFound
	case errors.CategoryConflict:
		return http.StatusConflict
	case errors.CategoryValidation, errors.CategoryBadInput:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
