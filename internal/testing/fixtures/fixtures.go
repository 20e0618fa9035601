// Package fixtures provides test data factories for integration tests.
//
// Each factory method inserts a row with sensible defaults, allows
// customization via option functions, and returns the populated model.
//
// Usage:
//
//	f := fixtures.New(tdb.DB)
//	alice := f.CreateDatingProfile(t, fixtures.Female(), fixtures.Completed(0))
//	bob := f.CreateDatingProfile(t, fixtures.Male(), fixtures.Completed(0))
//	f.CreateConnection(t, bob.UserID, alice.UserID, model.ConnectionPending)
package fixtures

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strconv"
	"testing"
	"time"

	"github.com/snuhangout/api/internal/compat"
	"github.com/snuhangout/api/internal/database"
	"github.com/snuhangout/api/internal/model"
)

// Factory creates test entities in the database
type Factory struct {
	db database.Database
}

// New creates a new fixture factory
func New(db database.Database) *Factory {
	return &Factory{db: db}
}

// randomID generates a random hex ID
func randomID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func ctx(t *testing.T) context.Context {
	c, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	t.Cleanup(cancel)
	return c
}

// NewUserID returns a fresh user record id. Users live in the identity
// service; the dating tables only reference them.
func NewUserID() string {
	return "user:" + randomID()
}

// ============================================================================
// Answer Sets
// ============================================================================

// UniformAnswers answers every question with the option at idx, clamped to
// the question's option count
func UniformAnswers(questions []compat.Question, idx int) compat.AnswerSet {
	answers := make(compat.AnswerSet, len(questions))
	for _, q := range questions {
		i := idx
		if i >= len(q.Options) {
			i = len(q.Options) - 1
		}
		answers[q.ID] = q.Options[i]
	}
	return answers
}

// ============================================================================
// Dating Profile Fixtures
// ============================================================================

// ProfileOpts customizes dating profile creation
type ProfileOpts struct {
	UserID     string
	Gender     string
	LookingFor string
	Bio        *string
	Interests  []string
	Answers    compat.AnswerSet
	Completed  bool
}

// Male makes a man looking for women
func Male() func(*ProfileOpts) {
	return func(o *ProfileOpts) {
		o.Gender = model.GenderMale
		o.LookingFor = model.GenderFemale
	}
}

// Female makes a woman looking for men
func Female() func(*ProfileOpts) {
	return func(o *ProfileOpts) {
		o.Gender = model.GenderFemale
		o.LookingFor = model.GenderMale
	}
}

// WithUserID pins the profile to a known user
func WithUserID(id string) func(*ProfileOpts) {
	return func(o *ProfileOpts) { o.UserID = id }
}

// Completed answers the built-in questionnaire with option idx everywhere
// and marks the profile complete
func Completed(idx int) func(*ProfileOpts) {
	return func(o *ProfileOpts) {
		o.Answers = UniformAnswers(compat.DefaultConfig().Questions, idx)
		o.Completed = true
	}
}

// CreateDatingProfile inserts a dating profile
func (f *Factory) CreateDatingProfile(t *testing.T, opts ...func(*ProfileOpts)) *model.DatingProfile {
	t.Helper()

	o := &ProfileOpts{
		UserID:     NewUserID(),
		Gender:     model.GenderFemale,
		LookingFor: model.GenderMale,
		Interests:  []string{},
		Answers:    compat.AnswerSet{},
	}
	for _, fn := range opts {
		fn(o)
	}

	answers := make(map[string]interface{}, len(o.Answers))
	for id, opt := range o.Answers {
		answers[strconv.Itoa(id)] = opt
	}

	query := `
		CREATE dating_profile CONTENT {
			user: type::record($user_id),
			gender: $gender,
			looking_for: $looking_for,
			bio: $bio OR NONE,
			interests: $interests,
			answers: $answers,
			has_completed_profile: $completed,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"user_id":     o.UserID,
		"gender":      o.Gender,
		"looking_for": o.LookingFor,
		"bio":         o.Bio,
		"interests":   o.Interests,
		"answers":     answers,
		"completed":   o.Completed,
	}

	if err := f.db.Execute(ctx(t), query, vars); err != nil {
		t.Fatalf("fixtures: failed to create dating profile: %v", err)
	}

	return &model.DatingProfile{
		UserID:              o.UserID,
		Gender:              o.Gender,
		LookingFor:          o.LookingFor,
		Bio:                 o.Bio,
		Interests:           o.Interests,
		Answers:             o.Answers,
		HasCompletedProfile: o.Completed,
	}
}

// ============================================================================
// Connection Fixtures
// ============================================================================

// CreateConnection inserts a connection request in the given state
func (f *Factory) CreateConnection(t *testing.T, fromUserID, toUserID string, status model.ConnectionStatus) {
	t.Helper()

	query := `
		CREATE dating_connection CONTENT {
			from_user: type::record($from),
			to_user: type::record($to),
			status: $status,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"from":   fromUserID,
		"to":     toUserID,
		"status": string(status),
	}

	if err := f.db.Execute(ctx(t), query, vars); err != nil {
		t.Fatalf("fixtures: failed to create connection: %v", err)
	}
}
