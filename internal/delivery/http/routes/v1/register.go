package v1

import (
	"log"

	"skillswap/internal/ai"
	"skillswap/internal/config"
	"skillswap/internal/database"
	"skillswap/internal/delivery/http/handler"
	"skillswap/internal/delivery/http/middleware"
	"skillswap/internal/infrastructure/cache"
	"skillswap/internal/infrastructure/linkpreview"
	"skillswap/internal/pkg/jwt"
	"skillswap/internal/repository"
	"skillswap/internal/usecase"
	"skillswap/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type Deps struct {
	Config    config.Config
	DB        database.DB
	Cache     *cache.Redis
	Explainer ai.Explainer
	Previews  linkpreview.Fetcher
	Hub       *ws.Hub
	Logger    *log.Logger
}

func Register(r fiber.Router, deps Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		deps.Config.JWT.AccessSecret,
		deps.Config.JWT.RefreshSecret,
		deps.Config.JWT.AccessExpiresIn,
		deps.Config.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(deps.DB)
	skillRepo := repository.NewPostgresSkillRepository(deps.DB)
	userSkillRepo := repository.NewPostgresUserSkillRepository(deps.DB)
	matchProfileRepo := repository.NewPostgresMatchProfileRepository(deps.DB)
	connectionRepo := repository.NewPostgresConnectionRepository(deps.DB)

	notifier := ws.NewConnectionNotifier(deps.Hub)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc)
	userUC := usecase.NewUserUsecase(userRepo, deps.Previews, deps.Logger)
	skillUC := usecase.NewSkillUsecase(skillRepo)
	userSkillUC := usecase.NewUserSkillUsecase(userSkillRepo, skillRepo, deps.Cache)
	matchUC := usecase.NewMatchUsecase(matchProfileRepo, deps.Explainer, deps.Cache, deps.Logger)
	connectionUC := usecase.NewConnectionUsecase(connectionRepo, userRepo, notifier)

	authGroup := r.Group("/auth")
	handler.NewAuthHandler(authUC).RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())
	handler.NewUserHandler(userUC).RegisterRoutes(protected)
	handler.NewSkillHandler(skillUC).RegisterRoutes(protected)
	handler.NewUserSkillHandler(userSkillUC).RegisterRoutes(protected)
	handler.NewMatchHandler(matchUC).RegisterRoutes(protected)
	handler.NewConnectionHandler(connectionUC).RegisterRoutes(protected)

	// The websocket route does its own token check from the query string.
	wsHandler := ws.NewHandler(deps.Hub, jwtSvc, deps.Logger)
	r.Get("/ws/events", wsHandler.HandleEventsWS)
}
