// Package service implements the business logic layer for the hangout API.
//
// Services own validation that needs the question registry, compatibility
// scoring through compat.Engine, match ranking, the connection request
// lifecycle, and match cache invalidation. Handlers call services; services
// call repositories.
//
// # Service Pattern
//
//   - Constructor function (NewXxxService) accepts a config struct with its dependencies
//   - Repository and cache dependencies are interfaces declared here, next to their consumer
//   - Errors are package-level sentinels from errors.go, wrapped with %w when context helps
//   - Context is passed through to every repository and cache call
//
// # Match Cache
//
// The MatchCache dependency is optional. A cache miss or cache error falls
// back to computing matches from the repository, and any write that could
// change a match list (profile, answers, connection) invalidates the lists
// of the users it touches.
//
// # Example Usage
//
//	matches := NewMatchService(MatchServiceConfig{
//	    ProfileRepo:    profileRepo,
//	    ConnectionRepo: connectionRepo,
//	    Engine:         engine,
//	    Cache:          matchCache,
//	})
//	list, err := matches.ListMatches(ctx, "user:ab123")
//	if errors.Is(err, ErrProfileIncomplete) {
//	    // ask the user to finish the questionnaire
//	}
package service
