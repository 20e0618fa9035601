package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/snuhangout/api/internal/handler"
	"github.com/snuhangout/api/internal/middleware"
)

type routerDeps struct {
	dating         *handler.DatingHandler
	match          *handler.MatchHandler
	connection     *handler.ConnectionHandler
	health         *handler.HealthHandler
	auth           middleware.AuthConfig
	limiter        *middleware.RateLimiter // nil disables rate limiting
	allowedOrigins []string
}

func newRouter(d routerDeps) http.Handler {
	// Protected routes authenticate first so the limiter can key by user
	protected := []middleware.Middleware{middleware.Auth(d.auth)}
	if d.limiter != nil {
		protected = append(protected, middleware.RateLimit(d.limiter))
	}
	authed := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h, protected...)
	}

	mux := http.NewServeMux()

	// Health and metrics
	mux.HandleFunc("GET /health", d.health.Health)
	mux.Handle("GET /metrics", promhttp.Handler())

	// Questionnaire (public)
	mux.HandleFunc("GET /v1/dating/questions", d.dating.ListQuestions)
	mux.HandleFunc("GET /v1/dating/categories", d.dating.ListCategories)

	// Dating profile endpoints
	mux.Handle("GET /v1/dating/profile", authed(d.dating.GetProfile))
	mux.Handle("PUT /v1/dating/profile", authed(d.dating.UpsertProfile))
	mux.Handle("PUT /v1/dating/profile/answers", authed(d.dating.UpdateAnswers))

	// Match endpoints
	mux.Handle("GET /v1/dating/matches", authed(d.match.ListMatches))
	mux.Handle("GET /v1/dating/compatibility/{userId}", authed(d.match.GetCompatibility))

	// Connection endpoints
	mux.Handle("POST /v1/dating/connections", authed(d.connection.Create))
	mux.Handle("GET /v1/dating/connections/requests", authed(d.connection.ListRequests))
	mux.Handle("POST /v1/dating/connections/{id}/accept", authed(d.connection.Accept))
	mux.Handle("POST /v1/dating/connections/{id}/reject", authed(d.connection.Reject))

	// Metrics sits innermost so it observes the pattern the mux matched
	return middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(d.allowedOrigins),
		middleware.Compress,
		middleware.Metrics,
	)
}
