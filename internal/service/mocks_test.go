package service

import (
	"context"

	"github.com/snuhangout/api/internal/compat"
	"github.com/snuhangout/api/internal/model"
)

// ============================================================================
// Mock Repositories
// ============================================================================

type mockProfileRepo struct {
	createFunc             func(ctx context.Context, profile *model.DatingProfile) error
	getByUserIDFunc        func(ctx context.Context, userID string) (*model.DatingProfile, error)
	getByUserIDsFunc       func(ctx context.Context, userIDs []string) (map[string]*model.DatingProfile, error)
	updateFunc             func(ctx context.Context, profile *model.DatingProfile) error
	updateAnswersFunc      func(ctx context.Context, userID string, answers compat.AnswerSet, complete bool) (*model.DatingProfile, error)
	listCandidatesFunc     func(ctx context.Context, excludeUserID, gender, lookingFor string) ([]*model.DatingProfile, error)
	listCompletedAfterFunc func(ctx context.Context, after model.ProfileChange, limit int) ([]model.ProfileChange, error)
}

func (m *mockProfileRepo) Create(ctx context.Context, profile *model.DatingProfile) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, profile)
	}
	return nil
}

func (m *mockProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.DatingProfile, error) {
	if m.getByUserIDFunc != nil {
		return m.getByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockProfileRepo) GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*model.DatingProfile, error) {
	if m.getByUserIDsFunc != nil {
		return m.getByUserIDsFunc(ctx, userIDs)
	}
	return map[string]*model.DatingProfile{}, nil
}

func (m *mockProfileRepo) Update(ctx context.Context, profile *model.DatingProfile) error {
	if m.updateFunc != nil {
		return m.updateFunc(ctx, profile)
	}
	return nil
}

func (m *mockProfileRepo) UpdateAnswers(ctx context.Context, userID string, answers compat.AnswerSet, complete bool) (*model.DatingProfile, error) {
	if m.updateAnswersFunc != nil {
		return m.updateAnswersFunc(ctx, userID, answers, complete)
	}
	return nil, nil
}

func (m *mockProfileRepo) ListCandidates(ctx context.Context, excludeUserID, gender, lookingFor string) ([]*model.DatingProfile, error) {
	if m.listCandidatesFunc != nil {
		return m.listCandidatesFunc(ctx, excludeUserID, gender, lookingFor)
	}
	return nil, nil
}

func (m *mockProfileRepo) ListCompletedAfter(ctx context.Context, after model.ProfileChange, limit int) ([]model.ProfileChange, error) {
	if m.listCompletedAfterFunc != nil {
		return m.listCompletedAfterFunc(ctx, after, limit)
	}
	return nil, nil
}

type mockConnectionRepo struct {
	createFunc             func(ctx context.Context, conn *model.Connection) error
	getByIDFunc            func(ctx context.Context, id string) (*model.Connection, error)
	existsFunc             func(ctx context.Context, fromUserID, toUserID string) (bool, error)
	listSentTargetIDsFunc  func(ctx context.Context, fromUserID string) ([]string, error)
	listPendingForUserFunc func(ctx context.Context, toUserID string) ([]*model.Connection, error)
	updateStatusFunc       func(ctx context.Context, conn *model.Connection, status model.ConnectionStatus) error
}

func (m *mockConnectionRepo) Create(ctx context.Context, conn *model.Connection) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, conn)
	}
	return nil
}

func (m *mockConnectionRepo) GetByID(ctx context.Context, id string) (*model.Connection, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockConnectionRepo) Exists(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	if m.existsFunc != nil {
		return m.existsFunc(ctx, fromUserID, toUserID)
	}
	return false, nil
}

func (m *mockConnectionRepo) ListSentTargetIDs(ctx context.Context, fromUserID string) ([]string, error) {
	if m.listSentTargetIDsFunc != nil {
		return m.listSentTargetIDsFunc(ctx, fromUserID)
	}
	return nil, nil
}

func (m *mockConnectionRepo) ListPendingForUser(ctx context.Context, toUserID string) ([]*model.Connection, error) {
	if m.listPendingForUserFunc != nil {
		return m.listPendingForUserFunc(ctx, toUserID)
	}
	return nil, nil
}

func (m *mockConnectionRepo) UpdateStatus(ctx context.Context, conn *model.Connection, status model.ConnectionStatus) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, conn, status)
	}
	conn.Status = status
	return nil
}

type mockMatchCache struct {
	getFunc        func(ctx context.Context, userID string) ([]model.Match, bool, error)
	setFunc        func(ctx context.Context, userID string, matches []model.Match) error
	invalidateFunc func(ctx context.Context, userIDs ...string) error

	invalidated []string
}

func (m *mockMatchCache) Get(ctx context.Context, userID string) ([]model.Match, bool, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID)
	}
	return nil, false, nil
}

func (m *mockMatchCache) Set(ctx context.Context, userID string, matches []model.Match) error {
	if m.setFunc != nil {
		return m.setFunc(ctx, userID, matches)
	}
	return nil
}

func (m *mockMatchCache) Invalidate(ctx context.Context, userIDs ...string) error {
	m.invalidated = append(m.invalidated, userIDs...)
	if m.invalidateFunc != nil {
		return m.invalidateFunc(ctx, userIDs...)
	}
	return nil
}

// ============================================================================
// Fixtures
// ============================================================================

func testEngine() *compat.Engine {
	return compat.MustNewEngine(compat.DefaultConfig())
}

// answersFirstOption answers every question with its first option
func answersFirstOption(e *compat.Engine) compat.AnswerSet {
	return answersAtOption(e, 0)
}

func answersAtOption(e *compat.Engine, idx int) compat.AnswerSet {
	set := make(compat.AnswerSet)
	for _, q := range e.Questions() {
		set[q.ID] = q.Options[idx]
	}
	return set
}

func completedProfile(userID, gender, lookingFor string, answers compat.AnswerSet) *model.DatingProfile {
	return &model.DatingProfile{
		ID:                  "dating_profile:" + userID,
		UserID:              userID,
		Gender:              gender,
		LookingFor:          lookingFor,
		Interests:           []string{},
		Answers:             answers,
		HasCompletedProfile: true,
	}
}

func profilesByID(profiles ...*model.DatingProfile) func(ctx context.Context, userID string) (*model.DatingProfile, error) {
	byID := make(map[string]*model.DatingProfile, len(profiles))
	for _, p := range profiles {
		byID[p.UserID] = p
	}
	return func(ctx context.Context, userID string) (*model.DatingProfile, error) {
		return byID[userID], nil
	}
}
