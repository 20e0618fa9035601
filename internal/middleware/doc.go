// Package middleware provides HTTP middleware for the Hangout dating API.
//
// # Available Middleware
//
//   - RequestID: assigns or propagates X-Request-ID
//   - Logger: one structured log line per request
//   - Recovery: turns panics into a 500 problem document
//   - CORS: origin allow-list and preflight handling
//   - Compress: gzip when the client accepts it
//   - Metrics: Prometheus counters and latency per route pattern
//   - Auth: RS256 bearer token validation plus the campus email domain gate
//   - RateLimit: Redis fixed-window limiter keyed by user, else client IP
//
// Metrics must wrap the ServeMux itself; the route label is the pattern the
// mux matched, which is only set once dispatch has happened.
//
// # Authentication
//
// Auth is applied per route so public endpoints stay public:
//
//	protected := func(h http.HandlerFunc) http.Handler {
//	    return middleware.Chain(h, middleware.Auth(authCfg), middleware.RateLimit(limiter))
//	}
//	mux.Handle("GET /v1/dating/matches", protected(matchHandler.ListMatches))
//
// After authentication, handlers read the caller from the context:
//
//	userID := middleware.GetUserID(r.Context())
//
// # Context Values
//
//   - GetUserID(ctx): authenticated user record id
//   - GetUserEmail(ctx): email claim of the token
//   - GetClaims(ctx): full token claims
//   - GetRequestID(ctx): request identifier
package middleware
