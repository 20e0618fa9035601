package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/snuhangout/api/internal/compat"
	"github.com/snuhangout/api/internal/database"
	"github.com/snuhangout/api/internal/model"
)

// DatingProfileRepository handles dating profile data access
type DatingProfileRepository struct {
	db database.Database
}

// NewDatingProfileRepository creates a new dating profile repository
func NewDatingProfileRepository(db database.Database) *DatingProfileRepository {
	return &DatingProfileRepository{db: db}
}

// Create creates a profile with no answers
func (r *DatingProfileRepository) Create(ctx context.Context, profile *model.DatingProfile) error {
	query := `
		CREATE dating_profile CONTENT {
			user: type::record($user_id),
			gender: $gender,
			looking_for: $looking_for,
			bio: $bio OR NONE,
			interests: $interests,
			answers: {},
			has_completed_profile: false,
			created_on: time::now(),
			updated_on: time::now()
		}
	`
	vars := map[string]interface{}{
		"user_id":     profile.UserID,
		"gender":      profile.Gender,
		"looking_for": profile.LookingFor,
		"bio":         profile.Bio,
		"interests":   nonNilStrings(profile.Interests),
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created, err := extractCreatedRecord(result)
	if err != nil {
		return err
	}

	profile.ID = created.ID
	profile.CreatedOn = created.CreatedOn
	profile.UpdatedOn = created.UpdatedOn
	profile.Answers = compat.AnswerSet{}
	profile.HasCompletedProfile = false
	return nil
}

// GetByUserID retrieves a user's profile, or nil when they have none
func (r *DatingProfileRepository) GetByUserID(ctx context.Context, userID string) (*model.DatingProfile, error) {
	query := `SELECT * FROM dating_profile WHERE user = type::record($user_id) LIMIT 1`
	vars := map[string]interface{}{"user_id": userID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseDatingProfile(result)
}

// GetByUserIDs retrieves the profiles of the given users, keyed by user id
func (r *DatingProfileRepository) GetByUserIDs(ctx context.Context, userIDs []string) (map[string]*model.DatingProfile, error) {
	profiles := make(map[string]*model.DatingProfile, len(userIDs))
	if len(userIDs) == 0 {
		return profiles, nil
	}

	query := `SELECT * FROM dating_profile WHERE user IN $users`
	vars := map[string]interface{}{"users": toRecordIDs(userIDs)}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	list, err := parseDatingProfiles(result)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		profiles[p.UserID] = p
	}
	return profiles, nil
}

// Update replaces the card fields. Completion is passed in because a change
// of gender or preference sends the user back through the questionnaire.
func (r *DatingProfileRepository) Update(ctx context.Context, profile *model.DatingProfile) error {
	query := `
		UPDATE dating_profile SET
			gender = $gender,
			looking_for = $looking_for,
			bio = $bio OR NONE,
			interests = $interests,
			has_completed_profile = $complete,
			updated_on = time::now()
		WHERE user = type::record($user_id)
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"user_id":     profile.UserID,
		"gender":      profile.Gender,
		"looking_for": profile.LookingFor,
		"bio":         profile.Bio,
		"interests":   nonNilStrings(profile.Interests),
		"complete":    profile.HasCompletedProfile,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		return err
	}

	updated, err := parseDatingProfile(result)
	if err != nil {
		return err
	}
	profile.UpdatedOn = updated.UpdatedOn
	return nil
}

// UpdateAnswers replaces the stored answers and completion flag
func (r *DatingProfileRepository) UpdateAnswers(ctx context.Context, userID string, answers compat.AnswerSet, complete bool) (*model.DatingProfile, error) {
	query := `
		UPDATE dating_profile SET
			answers = $answers,
			has_completed_profile = $complete,
			updated_on = time::now()
		WHERE user = type::record($user_id)
		RETURN AFTER
	`
	vars := map[string]interface{}{
		"user_id":  userID,
		"answers":  answersToDocument(answers),
		"complete": complete,
	}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseDatingProfile(result)
}

// ListCandidates returns completed profiles of the given gender who are looking
// for lookingFor, excluding the given user
func (r *DatingProfileRepository) ListCandidates(ctx context.Context, excludeUserID, gender, lookingFor string) ([]*model.DatingProfile, error) {
	query := `
		SELECT * FROM dating_profile
		WHERE has_completed_profile = true
			AND gender = $gender
			AND looking_for = $looking_for
			AND user != type::record($user_id)
	`
	vars := map[string]interface{}{
		"user_id":     excludeUserID,
		"gender":      gender,
		"looking_for": lookingFor,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseDatingProfiles(result)
}

// ListCompletedAfter returns completed profiles changed after the cursor,
// oldest first. Ties on updated_on are ordered by user id so a page
// boundary inside a tie never skips a profile.
func (r *DatingProfileRepository) ListCompletedAfter(ctx context.Context, after model.ProfileChange, limit int) ([]model.ProfileChange, error) {
	query := `
		SELECT user, <string> user AS user_key, updated_on FROM dating_profile
		WHERE has_completed_profile = true
			AND (updated_on > $since OR (updated_on = $since AND <string> user > $after_user))
		ORDER BY updated_on ASC, user_key ASC
		LIMIT $limit
	`
	vars := map[string]interface{}{
		"since":      after.UpdatedOn.UTC(),
		"after_user": after.UserID,
		"limit":      limit,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	changes := make([]model.ProfileChange, 0)
	for _, row := range resultRows(result) {
		data, ok := row.(map[string]interface{})
		if !ok {
			continue
		}
		id := convertSurrealID(data["user"])
		updated := getTime(data, "updated_on")
		if id == "" || updated == nil {
			continue
		}
		changes = append(changes, model.ProfileChange{UserID: id, UpdatedOn: *updated})
	}
	return changes, nil
}

func parseDatingProfile(result interface{}) (*model.DatingProfile, error) {
	data, err := unwrapRecord(result)
	if err != nil {
		return nil, err
	}

	profile := &model.DatingProfile{
		ID:                  convertSurrealID(data["id"]),
		UserID:              convertSurrealID(data["user"]),
		Gender:              getString(data, "gender"),
		LookingFor:          getString(data, "looking_for"),
		Bio:                 getStringPtr(data, "bio"),
		Interests:           getStringSlice(data, "interests"),
		Answers:             getAnswers(data, "answers"),
		HasCompletedProfile: getBool(data, "has_completed_profile"),
	}
	if profile.UserID == "" {
		return nil, fmt.Errorf("dating profile %s has no user", profile.ID)
	}
	if t := getTime(data, "created_on"); t != nil {
		profile.CreatedOn = *t
	}
	if t := getTime(data, "updated_on"); t != nil {
		profile.UpdatedOn = *t
	}

	return profile, nil
}

func parseDatingProfiles(result []interface{}) ([]*model.DatingProfile, error) {
	profiles := make([]*model.DatingProfile, 0)
	for _, row := range resultRows(result) {
		profile, err := parseDatingProfile(row)
		if err != nil {
			continue
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
