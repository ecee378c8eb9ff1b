// Package routes wires the service graph and mounts the HTTP surface.
package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"remesa/internal/backend"
	"remesa/internal/handlers"
	"remesa/internal/metrics"
	"remesa/internal/middleware"
	"remesa/internal/minikit"
	"remesa/internal/services/auth"
	"remesa/internal/services/wizard"
	"remesa/internal/session"
	"remesa/internal/store"
)

// Deps carries the process-level dependencies built in main.
type Deps struct {
	Backend    *backend.Client
	SDK        minikit.SDK
	Redis      *redis.Client
	Metrics    metrics.Collector
	AuthConfig auth.Config
	SessionTTL time.Duration
}

// SetupRoutes builds the session layer and mounts every route. It returns
// the session manager so main can drain it on shutdown.
func SetupRoutes(app *fiber.App, deps Deps) *session.Manager {
	collector := deps.Metrics
	if collector == nil {
		collector = metrics.Noop{}
	}

	// Each session gets its own cache; the persisted reference blob in
	// Redis is shared across them.
	factory := func() *wizard.Wizard {
		var persister store.Persister
		if deps.Redis != nil {
			persister = store.NewRedisPersister(deps.Redis)
		}
		cache := store.NewPreload(persister)
		return wizard.New(deps.Backend, deps.SDK, cache, collector, deps.AuthConfig)
	}
	sessions := session.NewManager(deps.SessionTTL, factory)

	sessionHandler := handlers.NewSessionHandler(sessions, deps.SessionTTL)
	wizardHandler := handlers.NewWizardHandler()
	referenceHandler := handlers.NewReferenceHandler()
	transactionHandler := handlers.NewTransactionHandler(deps.Backend)
	healthHandler := handlers.NewHealthHandler(deps.Backend, deps.Redis)

	app.Get("/healthz", healthHandler.Check)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	v1 := app.Group("/v1")
	v1.Post("/session", sessionHandler.Open)

	guard := middleware.NewSessionMiddleware(sessions)
	authenticated := v1.Group("/", guard.Handler)
	authenticated.Delete("/session", sessionHandler.Close)

	wiz := authenticated.Group("/wizard")
	wiz.Get("/", wizardHandler.State)
	wiz.Post("/back", wizardHandler.Back)
	wiz.Post("/convert", wizardHandler.Convert)
	wiz.Post("/amount", wizardHandler.SubmitAmount)
	wiz.Post("/max-amount", wizardHandler.MaxAmount)
	wiz.Get("/personal-info", wizardHandler.PersonalInfo)
	wiz.Post("/personal-info", wizardHandler.SubmitPersonalInfo)
	wiz.Post("/confirm", wizardHandler.Confirm)

	reference := authenticated.Group("/reference")
	reference.Get("/countries", referenceHandler.Countries)
	reference.Get("/banks", referenceHandler.Banks)
	reference.Get("/document-types", referenceHandler.DocumentTypes)
	reference.Get("/account-types", referenceHandler.AccountTypes)

	authenticated.Get("/transactions/:id", transactionHandler.Get)

	return sessions
}
