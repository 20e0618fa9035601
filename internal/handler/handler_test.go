package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/snuhangout/api/internal/compat"
	"github.com/snuhangout/api/internal/database"
	"github.com/snuhangout/api/internal/middleware"
	"github.com/snuhangout/api/internal/model"
	"github.com/snuhangout/api/internal/service"
)

// ============================================================================
// In-memory Repositories
// ============================================================================

type memProfileRepo struct {
	mu       sync.Mutex
	profiles map[string]*model.DatingProfile
}

func newMemProfileRepo(profiles ...*model.DatingProfile) *memProfileRepo {
	r := &memProfileRepo{profiles: make(map[string]*model.DatingProfile)}
	for _, p := range profiles {
		r.profiles[p.UserID] = p
	}
	return r
}

func (r *memProfileRepo) Create(ctx context.Context, profile *model.DatingProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.UserID]; ok {
		return database.ErrDuplicate
	}
	profile.ID = "dating_profile:" + profile.UserID
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *memProfileRepo) GetByUserID(ctx context.Context, userID string) (*model.DatingProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.profiles[userID], nil
}

func (r *memProfileRepo) GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*model.DatingProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]*model.DatingProfile)
	for _, id := range userIDs {
		if p, ok := r.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (r *memProfileRepo) Update(ctx context.Context, profile *model.DatingProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.UserID] = profile
	return nil
}

func (r *memProfileRepo) UpdateAnswers(ctx context.Context, userID string, answers compat.AnswerSet, complete bool) (*model.DatingProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, nil
	}
	p.Answers = answers
	p.HasCompletedProfile = complete
	return p, nil
}

func (r *memProfileRepo) ListCandidates(ctx context.Context, excludeUserID, gender, lookingFor string) ([]*model.DatingProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.DatingProfile
	for id, p := range r.profiles {
		if id != excludeUserID && p.Gender == gender && p.LookingFor == lookingFor && p.HasCompletedProfile {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProfileRepo) ListCompletedAfter(ctx context.Context, after model.ProfileChange, limit int) ([]model.ProfileChange, error) {
	return nil, nil
}

type memConnectionRepo struct {
	mu    sync.Mutex
	seq   int
	conns map[string]*model.Connection
}

func newMemConnectionRepo() *memConnectionRepo {
	return &memConnectionRepo{conns: make(map[string]*model.Connection)}
}

func (r *memConnectionRepo) Create(ctx context.Context, conn *model.Connection) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	conn.ID = fmt.Sprintf("dating_connection:%d", r.seq)
	conn.Status = model.ConnectionPending
	conn.CreatedOn = time.Date(2026, 1, 1, 0, 0, r.seq, 0, time.UTC)
	r.conns[conn.ID] = conn
	return nil
}

func (r *memConnectionRepo) GetByID(ctx context.Context, id string) (*model.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[id]
	if !ok {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memConnectionRepo) Exists(ctx context.Context, fromUserID, toUserID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.conns {
		if c.FromUserID == fromUserID && c.ToUserID == toUserID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memConnectionRepo) ListSentTargetIDs(ctx context.Context, fromUserID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []string
	for _, c := range r.conns {
		if c.FromUserID == fromUserID {
			ids = append(ids, c.ToUserID)
		}
	}
	return ids, nil
}

func (r *memConnectionRepo) ListPendingForUser(ctx context.Context, toUserID string) ([]*model.Connection, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*model.Connection
	for _, c := range r.conns {
		if c.ToUserID == toUserID && c.Status == model.ConnectionPending {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedOn.After(out[j].CreatedOn) })
	return out, nil
}

func (r *memConnectionRepo) UpdateStatus(ctx context.Context, conn *model.Connection, status model.ConnectionStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if stored, ok := r.conns[conn.ID]; ok && stored.Status == model.ConnectionPending {
		stored.Status = status
	}
	if status == model.ConnectionAccepted {
		for _, c := range r.conns {
			if c.FromUserID == conn.ToUserID && c.ToUserID == conn.FromUserID && c.Status == model.ConnectionPending {
				c.Status = model.ConnectionAccepted
			}
		}
	}
	conn.Status = status
	return nil
}

// ============================================================================
// Test Server
// ============================================================================

type testAPI struct {
	engine   *compat.Engine
	profiles *memProfileRepo
	conns    *memConnectionRepo
	mux      *http.ServeMux
}

func newTestAPI(profiles ...*model.DatingProfile) *testAPI {
	engine := compat.MustNewEngine(compat.DefaultConfig())
	profileRepo := newMemProfileRepo(profiles...)
	connRepo := newMemConnectionRepo()

	datingHandler := NewDatingHandler(service.NewDatingService(service.DatingServiceConfig{
		ProfileRepo: profileRepo,
		Engine:      engine,
	}))
	matchHandler := NewMatchHandler(service.NewMatchService(service.MatchServiceConfig{
		ProfileRepo:    profileRepo,
		ConnectionRepo: connRepo,
		Engine:         engine,
	}))
	connectionHandler := NewConnectionHandler(service.NewConnectionService(service.ConnectionServiceConfig{
		ConnectionRepo: connRepo,
		ProfileRepo:    profileRepo,
		Engine:         engine,
	}))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/dating/profile", datingHandler.GetProfile)
	mux.HandleFunc("PUT /v1/dating/profile", datingHandler.UpsertProfile)
	mux.HandleFunc("PUT /v1/dating/profile/answers", datingHandler.UpdateAnswers)
	mux.HandleFunc("GET /v1/dating/questions", datingHandler.ListQuestions)
	mux.HandleFunc("GET /v1/dating/categories", datingHandler.ListCategories)
	mux.HandleFunc("GET /v1/dating/matches", matchHandler.ListMatches)
	mux.HandleFunc("GET /v1/dating/compatibility/{userId}", matchHandler.GetCompatibility)
	mux.HandleFunc("POST /v1/dating/connections", connectionHandler.Create)
	mux.HandleFunc("GET /v1/dating/connections/requests", connectionHandler.ListRequests)
	mux.HandleFunc("POST /v1/dating/connections/{id}/accept", connectionHandler.Accept)
	mux.HandleFunc("POST /v1/dating/connections/{id}/reject", connectionHandler.Reject)

	return &testAPI{engine: engine, profiles: profileRepo, conns: connRepo, mux: mux}
}

func (a *testAPI) do(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.mux.ServeHTTP(rr, req)
	return rr
}

// ============================================================================
// Test Helpers
// ============================================================================

func stringPtr(s string) *string {
	return &s
}

func makeJSONRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withUserContext(req *http.Request, userID string) *http.Request {
	ctx := context.WithValue(req.Context(), middleware.UserIDKey, userID)
	return req.WithContext(ctx)
}

func parseErrorResponse(t *testing.T, body []byte) *model.ProblemDetails {
	t.Helper()
	var problem model.ProblemDetails
	if err := json.Unmarshal(body, &problem); err != nil {
		t.Fatalf("failed to parse error response: %v", err)
	}
	return &problem
}

func rawData(t *testing.T, body []byte) json.RawMessage {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	return envelope.Data
}

// decodeData unmarshals the data member of a DataResponse or CollectionResponse into v
func decodeData(t *testing.T, body []byte, v interface{}) {
	t.Helper()
	if err := json.Unmarshal(rawData(t, body), v); err != nil {
		t.Fatalf("failed to parse data: %v", err)
	}
}

func answersAt(e *compat.Engine, idx int) compat.AnswerSet {
	set := make(compat.AnswerSet)
	for _, q := range e.Questions() {
		set[q.ID] = q.Options[idx]
	}
	return set
}

func completedProfile(e *compat.Engine, userID, gender, lookingFor string) *model.DatingProfile {
	return &model.DatingProfile{
		ID:                  "dating_profile:" + userID,
		UserID:              userID,
		Gender:              gender,
		LookingFor:          lookingFor,
		Interests:           []string{},
		Answers:             answersAt(e, 0),
		HasCompletedProfile: true,
	}
}
