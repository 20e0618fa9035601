package service

import (
	"context"
	"log/slog"
	"sort"

	"github.com/snuhangout/api/internal/compat"
	"github.com/snuhangout/api/internal/metrics"
	"github.com/snuhangout/api/internal/model"
)

// DefaultMinMatchScore is the lowest weighted score shown on a match list
const DefaultMinMatchScore = 0.6

// SentRequestLister reports which users a user has already sent a connection request to
type SentRequestLister interface {
	ListSentTargetIDs(ctx context.Context, fromUserID string) ([]string, error)
}

// MatchService ranks candidates for a user and explains individual scores
type MatchService struct {
	profiles    DatingProfileRepository
	connections SentRequestLister
	engine      *compat.Engine
	cache       MatchCache
	minScore    float64
}

// MatchServiceConfig holds configuration for the match service
type MatchServiceConfig struct {
	ProfileRepo    DatingProfileRepository
	ConnectionRepo SentRequestLister
	Engine         *compat.Engine
	Cache          MatchCache // Optional
	MinScore       *float64   // Defaults to DefaultMinMatchScore when nil
}

// NewMatchService creates a new match service
func NewMatchService(cfg MatchServiceConfig) *MatchService {
	minScore := DefaultMinMatchScore
	if cfg.MinScore != nil {
		minScore = *cfg.MinScore
	}
	return &MatchService{
		profiles:    cfg.ProfileRepo,
		connections: cfg.ConnectionRepo,
		engine:      cfg.Engine,
		cache:       cfg.Cache,
		minScore:    minScore,
	}
}

// ListMatches returns the caller's ranked matches, best first. The caller
// must have a completed profile.
func (s *MatchService) ListMatches(ctx context.Context, userID string) ([]model.Match, error) {
	profile, err := s.completedProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, found, err := s.cache.Get(ctx, userID)
		if err != nil {
			slog.Warn("match cache read failed", slog.String("user_id", userID), slog.String("error", err.Error()))
		} else if found {
			return cached, nil
		}
	}

	return s.computeAndStore(ctx, profile)
}

// RefreshMatches recomputes the user's list and overwrites any cached copy.
// Users without a completed profile are skipped.
func (s *MatchService) RefreshMatches(ctx context.Context, userID string) error {
	profile, err := s.completedProfile(ctx, userID)
	if err != nil {
		return err
	}
	_, err = s.computeAndStore(ctx, profile)
	return err
}

// RecentlyUpdated pages through completed profiles changed after the cursor,
// oldest first
func (s *MatchService) RecentlyUpdated(ctx context.Context, after model.ProfileChange, limit int) ([]model.ProfileChange, error) {
	return s.profiles.ListCompletedAfter(ctx, after, limit)
}

// Compatibility returns the full breakdown between the caller and another user
func (s *MatchService) Compatibility(ctx context.Context, userID, otherUserID string) (*model.Compatibility, error) {
	me, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if me == nil {
		return nil, ErrProfileNotFound
	}

	other, err := s.profiles.GetByUserID(ctx, otherUserID)
	if err != nil {
		return nil, err
	}
	if other == nil {
		return nil, ErrTargetProfileNotFound
	}

	result := s.calculate(me.Answers, other.Answers)
	simple := s.engine.CalculateSimple(me.Answers, other.Answers)
	metrics.CompatibilityCalculations.WithLabelValues(metrics.ScorerSimple).Inc()

	return &model.Compatibility{
		UserID:       otherUserID,
		Score:        result.Score,
		MatchPercent: model.ToPercent(result.Score),
		Categories:   result.CategoryScores,
		Details:      result.Details,
		SimpleScore:  simple,
	}, nil
}

func (s *MatchService) completedProfile(ctx context.Context, userID string) (*model.DatingProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	if !profile.HasCompletedProfile {
		return nil, ErrProfileIncomplete
	}
	return profile, nil
}

func (s *MatchService) computeAndStore(ctx context.Context, profile *model.DatingProfile) ([]model.Match, error) {
	matches, err := s.compute(ctx, profile)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, profile.UserID, matches); err != nil {
			slog.Warn("match cache write failed", slog.String("user_id", profile.UserID), slog.String("error", err.Error()))
		}
	}
	return matches, nil
}

func (s *MatchService) compute(ctx context.Context, profile *model.DatingProfile) ([]model.Match, error) {
	candidates, err := s.profiles.ListCandidates(ctx, profile.UserID, profile.LookingFor, profile.Gender)
	if err != nil {
		return nil, err
	}

	sent, err := s.connections.ListSentTargetIDs(ctx, profile.UserID)
	if err != nil {
		return nil, err
	}
	excluded := make(map[string]bool, len(sent)+1)
	excluded[profile.UserID] = true
	for _, id := range sent {
		excluded[id] = true
	}

	matches := make([]model.Match, 0)
	for _, c := range candidates {
		if excluded[c.UserID] || !c.HasCompletedProfile || !profile.IsMutualFit(c) {
			continue
		}

		result := s.calculate(profile.Answers, c.Answers)
		if result.Score < s.minScore {
			continue
		}

		matches = append(matches, model.Match{
			UserID:         c.UserID,
			Gender:         c.Gender,
			Bio:            c.Bio,
			Interests:      c.Interests,
			Score:          result.Score,
			MatchPercent:   model.ToPercent(result.Score),
			CategoryScores: result.CategoryScores,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].UserID < matches[j].UserID
	})

	return matches, nil
}

func (s *MatchService) calculate(a, b compat.AnswerSet) compat.Result {
	result := s.engine.Calculate(a, b)
	metrics.CompatibilityCalculations.WithLabelValues(metrics.ScorerWeighted).Inc()
	metrics.CompatibilityScore.Observe(result.Score)
	return result
}
