// Package jobs runs background work for the Hangout dating API.
//
// MatchCacheWarmer keeps cached match lists fresh. Every interval it asks
// the match service for users whose completed profiles changed since the
// previous sweep and rebuilds their lists, so the next GET /matches is
// served from Redis:
//
//	warmer := jobs.NewMatchCacheWarmer(matchService, 5*time.Minute, 200)
//	warmer.Start()
//	defer warmer.Stop()
//
// Stop waits for an in-flight sweep to finish. RunOnce performs a single
// sweep and is what the loop calls on each tick.
package jobs
