package routes

import (
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/ahmetcoskunkizilkaya/recipebox/internal/config"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/metrics"
	"github.com/ahmetcoskunkizilkaya/recipebox/internal/middleware"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

// NewApp builds the Fiber app with the global middleware stack. Sentry is
// only mounted when it was initialised.
func NewApp(cfg *config.Config, withSentry bool) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "recipebox",
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: handlers.ErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	if withSentry {
		app.Use(sentryfiber.New(sentryfiber.Options{
			Repanic:         true,
			WaitForDelivery: false,
		}))
	}

	app.Use(recover.New(recover.Config{
		EnableStackTrace: true,
		StackTraceHandler: func(c *fiber.Ctx, e interface{}) {
			slog.Error("panic recovered", "method", c.Method(), "path", c.Path(), "error", fmt.Sprint(e), "stack", string(debug.Stack()))
		},
	}))
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path} | ${locals:requestid}\n",
	}))
	app.Use(metrics.Middleware())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.SecurityHeaders())

	return app
}

func Setup(
	app *fiber.App,
	cfg *config.Config,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	recipeHandler *handlers.RecipeHandler,
	commentHandler *handlers.CommentHandler,
	savedHandler *handlers.SavedHandler,
) {
	protected := middleware.JWTProtected(cfg)
	optional := middleware.OptionalAuth(cfg)

	app.Get("/metrics", metrics.Handler())

	api := app.Group("/api")
	api.Get("/health", healthHandler.Check)

	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)
	auth.Get("/me", protected, authHandler.Me)
	auth.Put("/me", protected, authHandler.UpdateMe)

	recipes := api.Group("/recipes")
	recipes.Get("/", optional, recipeHandler.List)
	recipes.Post("/", protected, recipeHandler.Create)

	// before /:id
	recipes.Get("/users/saved", protected, savedHandler.List)

	recipes.Get("/:id", optional, recipeHandler.Get)
	recipes.Put("/:id", protected, recipeHandler.Edit)
	recipes.Delete("/:id", protected, recipeHandler.Delete)
	recipes.Patch("/:id/visibility", protected, recipeHandler.ToggleVisibility)
	recipes.Post("/:id/rate", protected, recipeHandler.Rate)

	recipes.Post("/:id/comments", protected, commentHandler.Post)
	recipes.Delete("/:id/comments/:commentId", protected, commentHandler.Delete)

	recipes.Post("/:id/save", protected, savedHandler.Save)
	recipes.Delete("/:id/save", protected, savedHandler.Unsave)
}
