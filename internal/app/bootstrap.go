package app

import (
	"context"
	"fmt"
	"log"
	"strings"

	"skillswap/internal/ai"
	"skillswap/internal/ai/gemini"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/database/migration"
	"skillswap/internal/database/postgres"
	"skillswap/internal/database/seeder"
	"skillswap/internal/delivery/http/routes"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/infrastructure/linkpreview"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

// Bootstrap wires the whole service: database (with migrations and seed
// data), cache, explainer, websocket hub, and the HTTP surface. The returned
// cleanup closes what was opened.
func Bootstrap(ctx context.Context, cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	db, err := connectDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	redisCache := cache.NewRedis(logger)

	explainer := buildExplainer(ctx, cfg, logger)

	hub := ws.NewHub(logger)
	go hub.Run()

	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registry := routes.NewRegistry(routes.Deps{
		Config:    cfg,
		DB:        db,
		Cache:     redisCache,
		Explainer: explainer,
		Previews:  linkpreview.NewCollyFetcher(logger),
		Hub:       hub,
		Logger:    logger,
	})
	registry.Register(f)

	cleanup := func() error {
		return db.Close()
	}
	return &App{Fiber: f}, cleanup, nil
}

func connectDatabase(ctx context.Context, cfg config.Config, logger *log.Logger) (database.DB, error) {
	db, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if cfg.Database.RunMigrations {
		if err := (migration.Runner{}).Run(ctx, db.SQLDB()); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run migrations: %w", err)
		}
		logger.Printf("[App] migrations applied")
	}

	if cfg.Database.RunSeeders {
		r := seeder.Runner{Seeders: seeder.Defaults()}
		if err := r.Run(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("run seeders: %w", err)
		}
		logger.Printf("[App] seeders applied")
	}

	return db, nil
}

// buildExplainer picks the explanation mode once. A missing API key or a
// failed client init falls back to templates so match requests never depend
// on an external model being reachable.
func buildExplainer(ctx context.Context, cfg config.Config, logger *log.Logger) ai.Explainer {
	if strings.TrimSpace(cfg.AI.GeminiAPIKey) == "" {
		logger.Printf("[App] explainer mode=template")
		return ai.NewTemplateExplainer()
	}

	client, err := gemini.NewClient(ctx, cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
	if err != nil {
		logger.Printf("[App] gemini init failed, falling back to templates: %v", err)
		return ai.NewTemplateExplainer()
	}

	logger.Printf("[App] explainer mode=generative model=%s", cfg.AI.GeminiModel)
	return ai.NewGenerativeExplainer(client, logger)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
