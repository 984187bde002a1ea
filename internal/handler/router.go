package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/hitoshi/questlog/internal/auth"
	"github.com/hitoshi/questlog/internal/metrics"
	"github.com/hitoshi/questlog/internal/middleware"
	"github.com/hitoshi/questlog/internal/repository"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	Verifier          auth.TokenVerifier
	CORSAllowedOrigin string
	RateLimiter       *middleware.RateLimiter
	Logger            *slog.Logger

	// メトリクス
	Metrics  metrics.MetricsCollector
	Gatherer prometheus.Gatherer

	// ドメイン
	JourneyService JourneyServiceInterface
	ScoreService   ScoreServiceInterface
	HealthRepo     repository.HealthRepository
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → CORS → Logging → Metrics → (保護ルートのみ) Auth → RateLimit
//
// /api/leaderboard と /api/test-db は公開ルートで、認証ミドルウェアを通らない。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	if deps.Logger != nil {
		r.Use(middleware.NewLoggingMiddleware(deps.Logger))
	}
	if deps.Metrics != nil {
		r.Use(middleware.NewMetricsMiddleware(deps.Metrics))
	}

	journeyHandler := NewJourneyHandler(deps.JourneyService, deps.Metrics)
	scoreHandler := NewScoreHandler(deps.ScoreService, deps.Metrics)
	healthHandler := NewHealthHandler(deps.HealthRepo)

	// --- 認証不要のルート ---

	r.Get("/health", healthHandler.Liveness)
	r.Get("/api/leaderboard", scoreHandler.Leaderboard)
	r.Get("/api/test-db", healthHandler.ProbeDB)

	if deps.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(deps.Gatherer))
	}

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit
	r.Group(func(r chi.Router) {
		var recorder middleware.AuthFailureRecorder
		if deps.Metrics != nil {
			recorder = deps.Metrics
		}
		r.Use(middleware.NewAuthMiddleware(deps.Verifier, recorder))
		if deps.RateLimiter != nil {
			r.Use(deps.RateLimiter.Middleware())
		}

		r.Route("/api/journey", func(r chi.Router) {
			r.Get("/check", journeyHandler.Check)
			r.Post("/complete", journeyHandler.Complete)
		})

		r.Post("/api/scores", scoreHandler.Submit)
	})

	return r
}
