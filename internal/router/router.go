package router

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/sarhne-api/internal/config"
	"github.com/noah-isme/sarhne-api/internal/handler"
	"github.com/noah-isme/sarhne-api/internal/observability"
	"github.com/noah-isme/sarhne-api/internal/storage"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler     *handler.AuthHandler
	UserHandler     *handler.UserHandler
	MessageHandler  *handler.MessageHandler
	ReplyHandler    *handler.ReplyHandler
	ReactionHandler *handler.ReactionHandler
	HealthProbes    map[string]handler.HealthProbe
	// JWTMiddleware rejects anonymous callers; JWTOptional admits them.
	JWTMiddleware fiber.Handler
	JWTOptional   fiber.Handler
	// RoleMiddleware runs after JWTMiddleware on every authenticated route.
	RoleMiddleware fiber.Handler
	// StaticRoot serves locally stored images when set.
	StaticRoot string
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	app.Get("/metrics", observability.MetricsHandler())
	if deps.StaticRoot != "" {
		for _, folder := range []string{storage.UserImagesFolder, storage.MessageImagesFolder} {
			app.Static("/"+folder, filepath.Join(deps.StaticRoot, folder))
		}
	}

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg, deps.HealthProbes))

	passthrough := func(c *fiber.Ctx) error { return c.Next() }
	optional := deps.JWTOptional
	if optional == nil {
		optional = passthrough
	}

	auth := make([]fiber.Handler, 0, 2)
	if deps.JWTMiddleware != nil {
		auth = append(auth, deps.JWTMiddleware)
	}
	if deps.RoleMiddleware != nil {
		auth = append(auth, deps.RoleMiddleware)
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
	}

	if deps.UserHandler != nil {
		deps.UserHandler.Register(api.Group("/users"), auth...)
	}

	if deps.MessageHandler != nil {
		deps.MessageHandler.Register(api.Group("/messages"), optional, auth...)
	}

	if deps.ReplyHandler != nil {
		deps.ReplyHandler.Register(api.Group("/replies", auth...))
	}

	if deps.ReactionHandler != nil {
		deps.ReactionHandler.Register(api.Group("/reactions"), auth...)
	}
}
