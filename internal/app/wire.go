package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/redis/go-redis/v9"

	"github.com/pitchside/platform/internal/auth"
	"github.com/pitchside/platform/internal/guard"
	"github.com/pitchside/platform/internal/handler"
	"github.com/pitchside/platform/internal/infra"
	"github.com/pitchside/platform/internal/repository"
	"github.com/pitchside/platform/internal/service"
	"github.com/pitchside/platform/internal/timer"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	// BaseCtx bounds background work started by requests (timer tick
	// loops); usually the process signal context.
	BaseCtx context.Context
	Pool    *pgxpool.Pool
	Redis   *redis.Client
	JWTMgr  *auth.JWTManager
	Hub     *infra.LiveHub
	Logger  *slog.Logger

	// Notifier receives freshly recorded events. Set to the hub for
	// single-instance deployments; left nil when the Kafka relay does
	// the fanout instead.
	Notifier service.LiveNotifier

	CORSAllowedOrigins string
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	logger := deps.Logger

	// Repositories
	teamRepo := repository.NewTeamRepository()
	sessionRepo := repository.NewSessionRepository()
	lineupRepo := repository.NewLineupRepository()
	eventRepo := repository.NewMatchEventRepository()
	ratingRepo := repository.NewRatingRepository()
	attendanceRepo := repository.NewAttendanceRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Match timer
	timerStore := infra.NewRedisTimerStore(deps.Redis)
	timerEngine := timer.NewEngine(timerStore)
	ticker := timer.NewTicker(timerStore, clockwork.NewRealClock(), logger)

	// Services
	sessionSvc := service.NewSessionService(pool, sessionRepo, eventRepo, outboxRepo, timerStore, logger)
	lineupSvc := service.NewLineupService(pool, sessionRepo, lineupRepo, teamRepo, outboxRepo, logger)
	eventSvc := service.NewMatchEventService(pool, sessionRepo, lineupRepo, teamRepo, eventRepo, outboxRepo, timerEngine, deps.Notifier, logger)
	ratingSvc := service.NewRatingService(pool, sessionRepo, ratingRepo, logger)
	attendanceSvc := service.NewAttendanceService(pool, sessionRepo, attendanceRepo)
	trendSvc := service.NewTrendService(pool, sessionRepo, ratingRepo, teamRepo, logger)
	rosterSvc := service.NewRosterService(pool, teamRepo, logger)

	// Metrics
	metrics := infra.NewMetrics(deps.Hub, ticker.Active)

	// Guards
	writeLimiter := guard.NewRateLimiter(120, time.Minute)
	idempotency := guard.NewIdempotencyGuard()

	// Handlers
	sessionHandler := handler.NewSessionHandler(sessionSvc)
	lineupHandler := handler.NewLineupHandler(sessionSvc, lineupSvc)
	eventHandler := handler.NewMatchEventHandler(sessionSvc, eventSvc, idempotency, metrics.ObserveMatchEvent)
	ratingHandler := handler.NewRatingHandler(sessionSvc, ratingSvc)
	attendanceHandler := handler.NewAttendanceHandler(sessionSvc, attendanceSvc)
	trendHandler := handler.NewTrendHandler(trendSvc)
	rosterHandler := handler.NewRosterHandler(rosterSvc, ratingSvc)
	timerHandler := handler.NewTimerHandler(deps.BaseCtx, sessionSvc, timerEngine, ticker, deps.Hub)
	liveHandler := handler.NewLiveHandler(sessionSvc, deps.Hub)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS(deps.CORSAllowedOrigins))
	r.Use(metrics.HTTPMiddleware)

	// Health and metrics (no auth)
	r.Get("/health", handler.HealthHandler(pool, deps.Redis))
	r.Method("GET", "/metrics", metrics.Handler())

	// Coach-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(deps.JWTMgr))
		r.Use(handler.RateLimit(writeLimiter))
		r.Use(handler.JSONContentType)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessionHandler.Create)
			r.Get("/{id}", sessionHandler.Get)

			r.Get("/{id}/lineup", lineupHandler.Get)
			r.Put("/{id}/lineup", lineupHandler.Replace)

			r.Get("/{id}/events", eventHandler.Timeline)
			r.Post("/{id}/events", eventHandler.Record)
			r.Get("/{id}/score", eventHandler.Score)

			r.Get("/{id}/attendance", attendanceHandler.List)
			r.Put("/{id}/attendance", attendanceHandler.Mark)

			r.Get("/{id}/ratings", ratingHandler.Get)
			r.Put("/{id}/ratings", ratingHandler.Upsert)
			r.Get("/{id}/ratings/summary", ratingHandler.Summary)

			r.Get("/{id}/timer", timerHandler.Get)
			r.Post("/{id}/timer/{action}", timerHandler.Apply)
		})

		r.Get("/themes", trendHandler.Themes)

		r.Route("/teams/{teamID}", func(r chi.Router) {
			r.Get("/lineup/previous", lineupHandler.Previous)
			r.Get("/trends", trendHandler.Trends)
			r.Get("/raq", trendHandler.RelativeAge)
			r.Get("/players", rosterHandler.Players)
			r.Get("/players/{playerID}/ratings", rosterHandler.PlayerAverages)
		})
	})

	// WebSocket upgrade cannot carry the JSON content-type group.
	r.Group(func(r chi.Router) {
		r.Use(auth.Authenticate(deps.JWTMgr))
		r.Get("/sessions/{id}/live", liveHandler.Subscribe)
	})

	return r
}
