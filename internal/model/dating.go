package model

import (
	"math"
	"strings"
	"time"

	"github.com/snuhangout/api/internal/compat"
)

// Gender values accepted on a dating profile
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Dating profile limits
const (
	MaxDatingBioLength    = 500
	MaxDatingInterests    = 10
	MaxInterestNameLength = 50
)

// IsValidGender reports whether g is an accepted gender value
func IsValidGender(g string) bool {
	return g == GenderMale || g == GenderFemale
}

// IsUserRecordID reports whether id has the user:<key> record form
func IsUserRecordID(id string) bool {
	key, ok := strings.CutPrefix(id, "user:")
	return ok && key != ""
}

// DatingProfile is a user's opt-in dating card plus their questionnaire answers
type DatingProfile struct {
	ID                  string           `json:"id"`
	UserID              string           `json:"user_id"`
	Gender              string           `json:"gender"`
	LookingFor          string           `json:"looking_for"`
	Bio                 *string          `json:"bio,omitempty"`
	Interests           []string         `json:"interests"`
	Answers             compat.AnswerSet `json:"answers"`
	HasCompletedProfile bool             `json:"has_completed_profile"`
	CreatedOn           time.Time        `json:"created_on"`
	UpdatedOn           time.Time        `json:"updated_on"`
}

// IsMutualFit reports whether the two profiles are looking for each other
func (p *DatingProfile) IsMutualFit(other *DatingProfile) bool {
	return p.LookingFor == other.Gender && other.LookingFor == p.Gender
}

// UpsertDatingProfileRequest creates or updates the caller's dating profile
type UpsertDatingProfileRequest struct {
	Gender     string   `json:"gender"`
	LookingFor string   `json:"looking_for"`
	Bio        *string  `json:"bio,omitempty"`
	Interests  []string `json:"interests,omitempty"`
}

// Validate checks the profile request
func (r *UpsertDatingProfileRequest) Validate() []FieldError {
	var errors []FieldError

	if !IsValidGender(r.Gender) {
		errors = append(errors, FieldError{Field: "gender", Message: "gender must be 'male' or 'female'"})
	}
	if !IsValidGender(r.LookingFor) {
		errors = append(errors, FieldError{Field: "looking_for", Message: "looking_for must be 'male' or 'female'"})
	}
	if r.Bio != nil && len(*r.Bio) > MaxDatingBioLength {
		errors = append(errors, FieldError{Field: "bio", Message: "bio must be at most 500 characters"})
	}
	if len(r.Interests) > MaxDatingInterests {
		errors = append(errors, FieldError{Field: "interests", Message: "maximum 10 interests allowed"})
	}
	for _, interest := range r.Interests {
		if interest == "" || len(interest) > MaxInterestNameLength {
			errors = append(errors, FieldError{Field: "interests", Message: "each interest must be 1-50 characters"})
			break
		}
	}

	return errors
}

// UpdateAnswersRequest replaces the caller's questionnaire answers
type UpdateAnswersRequest struct {
	Answers compat.AnswerSet `json:"answers"`
}

// Validate checks the answers request shape; option checks need the registry
func (r *UpdateAnswersRequest) Validate() []FieldError {
	if len(r.Answers) == 0 {
		return []FieldError{{Field: "answers", Message: "at least one answer is required"}}
	}
	return nil
}

// Match is one ranked candidate on the caller's match list
type Match struct {
	UserID         string             `json:"user_id"`
	Gender         string             `json:"gender"`
	Bio            *string            `json:"bio,omitempty"`
	Interests      []string           `json:"interests"`
	Score          float64            `json:"score"`
	MatchPercent   int                `json:"match_percent"`
	CategoryScores map[string]float64 `json:"category_scores"`
}

// Compatibility is the full breakdown between the caller and one other user
type Compatibility struct {
	UserID       string                  `json:"user_id"`
	Score        float64                 `json:"score"`
	MatchPercent int                     `json:"match_percent"`
	Categories   map[string]float64      `json:"category_scores"`
	Details      []compat.CategoryDetail `json:"details"`
	SimpleScore  float64                 `json:"simple_score"`
}

// ProfileChange marks when a completed profile last changed. Changes are
// paged in (UpdatedOn, UserID) order.
type ProfileChange struct {
	UserID    string    `json:"user_id"`
	UpdatedOn time.Time `json:"updated_on"`
}

// ToPercent renders a 0-1 score as a whole percentage
func ToPercent(score float64) int {
	return int(math.Round(score * 100))
}
