package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/snuhangout/api/internal/compat"
	"github.com/snuhangout/api/internal/model"
)

// DatingProfileRepository defines the interface for dating profile storage
type DatingProfileRepository interface {
	Create(ctx context.Context, profile *model.DatingProfile) error
	GetByUserID(ctx context.Context, userID string) (*model.DatingProfile, error)
	GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*model.DatingProfile, error)
	Update(ctx context.Context, profile *model.DatingProfile) error
	UpdateAnswers(ctx context.Context, userID string, answers compat.AnswerSet, complete bool) (*model.DatingProfile, error)
	ListCandidates(ctx context.Context, excludeUserID, gender, lookingFor string) ([]*model.DatingProfile, error)
	ListCompletedAfter(ctx context.Context, after model.ProfileChange, limit int) ([]model.ProfileChange, error)
}

// MatchCache stores computed match lists. Implementations must treat a
// missing entry as (nil, false, nil).
type MatchCache interface {
	Get(ctx context.Context, userID string) ([]model.Match, bool, error)
	Set(ctx context.Context, userID string, matches []model.Match) error
	Invalidate(ctx context.Context, userIDs ...string) error
}

// DatingService handles dating profiles, questionnaire answers and the question catalogue
type DatingService struct {
	profiles DatingProfileRepository
	engine   *compat.Engine
	cache    MatchCache
}

// DatingServiceConfig holds configuration for the dating service
type DatingServiceConfig struct {
	ProfileRepo DatingProfileRepository
	Engine      *compat.Engine
	Cache       MatchCache // Optional
}

// NewDatingService creates a new dating service
func NewDatingService(cfg DatingServiceConfig) *DatingService {
	return &DatingService{
		profiles: cfg.ProfileRepo,
		engine:   cfg.Engine,
		cache:    cfg.Cache,
	}
}

// Questions returns the questionnaire in registry order
func (s *DatingService) Questions() []compat.Question {
	return s.engine.Questions()
}

// Categories returns the scoring categories in registry order
func (s *DatingService) Categories() []compat.Category {
	return s.engine.Categories()
}

// GetProfile returns the caller's dating profile
func (s *DatingService) GetProfile(ctx context.Context, userID string) (*model.DatingProfile, error) {
	profile, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

// UpsertProfile creates the caller's profile or updates its card fields.
// Changing gender or looking_for clears completion so the match pool is
// only re-entered after the questionnaire is submitted again.
// The bool result reports whether a new profile was created.
func (s *DatingService) UpsertProfile(ctx context.Context, userID string, req *model.UpsertDatingProfileRequest) (*model.DatingProfile, bool, error) {
	interests := normalizeInterests(req.Interests)
	bio := normalizeBio(req.Bio)

	existing, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, false, err
	}

	if existing == nil {
		profile := &model.DatingProfile{
			UserID:     userID,
			Gender:     req.Gender,
			LookingFor: req.LookingFor,
			Bio:        bio,
			Interests:  interests,
		}
		if err := s.profiles.Create(ctx, profile); err != nil {
			return nil, false, err
		}
		return profile, true, nil
	}

	if existing.Gender != req.Gender || existing.LookingFor != req.LookingFor {
		existing.HasCompletedProfile = false
	}
	existing.Gender = req.Gender
	existing.LookingFor = req.LookingFor
	existing.Bio = bio
	existing.Interests = interests

	if err := s.profiles.Update(ctx, existing); err != nil {
		return nil, false, err
	}
	s.invalidate(ctx, userID)
	return existing, false, nil
}

// UpdateAnswers replaces the caller's answers. Every answer must name a
// registered question and one of its options. The profile becomes complete
// once every registered question has an answer.
func (s *DatingService) UpdateAnswers(ctx context.Context, userID string, req *model.UpdateAnswersRequest) (*model.DatingProfile, error) {
	if err := s.validateAnswers(req.Answers); err != nil {
		return nil, err
	}

	existing, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrProfileNotFound
	}

	complete := s.isComplete(req.Answers)
	profile, err := s.profiles.UpdateAnswers(ctx, userID, req.Answers, complete)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	s.invalidate(ctx, userID)
	return profile, nil
}

func (s *DatingService) validateAnswers(answers compat.AnswerSet) error {
	ids := make([]int, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	var errs []error
	for _, id := range ids {
		q, ok := s.engine.Question(id)
		if !ok {
			errs = append(errs, fmt.Errorf("%w: %d", ErrUnknownQuestion, id))
			continue
		}
		if !q.IsValidOption(answers[id]) {
			errs = append(errs, fmt.Errorf("%w: question %d does not accept %q", ErrInvalidAnswer, id, answers[id]))
		}
	}
	return errors.Join(errs...)
}

func (s *DatingService) isComplete(answers compat.AnswerSet) bool {
	for _, q := range s.engine.Questions() {
		if answers[q.ID] == "" {
			return false
		}
	}
	return true
}

func (s *DatingService) invalidate(ctx context.Context, userIDs ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, userIDs...); err != nil {
		slog.Warn("failed to invalidate cached matches", slog.String("error", err.Error()))
	}
}

func normalizeInterests(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, raw := range in {
		v := strings.TrimSpace(raw)
		key := strings.ToLower(v)
		if v == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, v)
	}
	return out
}

func normalizeBio(bio *string) *string {
	if bio == nil {
		return nil
	}
	v := strings.TrimSpace(*bio)
	if v == "" {
		return nil
	}
	return &v
}
