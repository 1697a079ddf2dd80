package routes

import (
	"log"

	"skillswap/internal/ai"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/middleware"
	v1 "skillswap/internal/delivery/http/routes/v1"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/infrastructure/linkpreview"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries everything the HTTP surface needs. The explainer and hub are
// built once during bootstrap and shared across requests.
type Deps struct {
	Config    config.Config
	DB        database.DB
	Cache     *cache.Redis
	Explainer ai.Explainer
	Previews  linkpreview.Fetcher
	Hub       *ws.Hub
	Logger    *log.Logger
}

type Registry struct {
	deps Deps
}

func NewRegistry(deps Deps) *Registry {
	return &Registry{deps: deps}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware(r.deps.Logger).Middleware())
	app.Use(middleware.NewErrorMiddleware().Middleware())

	r.registerHealth(app)
	r.registerAPI(app)
}

func (r *Registry) registerHealth(app *fiber.App) {
	handler.NewHealthHandler(r.deps.DB, r.deps.Cache).RegisterRoutes(app)
}

func (r *Registry) registerAPI(app *fiber.App) {
	api := app.Group("/api")
	v1.Register(api.Group("/v1"), v1.Deps{
		Config:    r.deps.Config,
		DB:        r.deps.DB,
		Cache:     r.deps.Cache,
		Explainer: r.deps.Explainer,
		Previews:  r.deps.Previews,
		Hub:       r.deps.Hub,
		Logger:    r.deps.Logger,
	})
}
