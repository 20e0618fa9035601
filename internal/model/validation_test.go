package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/snuhangout/api/internal/compat"
)

// ============================================================================
// UpsertDatingProfileRequest Tests
// ============================================================================

func TestUpsertDatingProfileRequest_Validate_Valid(t *testing.T) {
	t.Parallel()

	bio := "Third year CSE, coffee over tea"
	req := &UpsertDatingProfileRequest{
		Gender:     GenderFemale,
		LookingFor: GenderMale,
		Bio:        &bio,
		Interests:  []string{"hiking", "jazz"},
	}

	if errs := req.Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestUpsertDatingProfileRequest_Validate_Failures(t *testing.T) {
	t.Parallel()

	longBio := strings.Repeat("a", MaxDatingBioLength+1)
	tooMany := make([]string, MaxDatingInterests+1)
	for i := range tooMany {
		tooMany[i] = "x"
	}

	tests := []struct {
		name  string
		req   UpsertDatingProfileRequest
		field string
	}{
		{"missing gender", UpsertDatingProfileRequest{LookingFor: GenderMale}, "gender"},
		{"unknown gender", UpsertDatingProfileRequest{Gender: "robot", LookingFor: GenderMale}, "gender"},
		{"missing looking_for", UpsertDatingProfileRequest{Gender: GenderMale}, "looking_for"},
		{"bio too long", UpsertDatingProfileRequest{Gender: GenderMale, LookingFor: GenderFemale, Bio: &longBio}, "bio"},
		{"too many interests", UpsertDatingProfileRequest{Gender: GenderMale, LookingFor: GenderFemale, Interests: tooMany}, "interests"},
		{"blank interest", UpsertDatingProfileRequest{Gender: GenderMale, LookingFor: GenderFemale, Interests: []string{""}}, "interests"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := tt.req.Validate()
			if len(errs) != 1 || errs[0].Field != tt.field {
				t.Errorf("expected single %s error, got %v", tt.field, errs)
			}
		})
	}
}

// ============================================================================
// UpdateAnswersRequest Tests
// ============================================================================

func TestUpdateAnswersRequest_DecodesNumericKeys(t *testing.T) {
	t.Parallel()

	var req UpdateAnswersRequest
	if err := json.Unmarshal([]byte(`{"answers":{"2":"Texting","10":"Parties"}}`), &req); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	if req.Answers[2] != "Texting" || req.Answers[10] != "Parties" {
		t.Errorf("unexpected answers %v", req.Answers)
	}
	if errs := req.Validate(); len(errs) > 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
}

func TestUpdateAnswersRequest_Validate_Empty(t *testing.T) {
	t.Parallel()

	req := &UpdateAnswersRequest{Answers: compat.AnswerSet{}}
	errs := req.Validate()
	if len(errs) != 1 || errs[0].Field != "answers" {
		t.Errorf("expected answers error, got %v", errs)
	}
}

// ============================================================================
// CreateConnectionRequest Tests
// ============================================================================

func TestCreateConnectionRequest_Validate(t *testing.T) {
	t.Parallel()

	if errs := (&CreateConnectionRequest{}).Validate(); len(errs) != 1 || errs[0].Field != "to_user_id" {
		t.Errorf("expected to_user_id error, got %v", errs)
	}
	if errs := (&CreateConnectionRequest{ToUserID: "user:b"}).Validate(); len(errs) != 0 {
		t.Errorf("expected no errors, got %v", errs)
	}
	if errs := (&CreateConnectionRequest{ToUserID: "profile:b"}).Validate(); len(errs) != 1 {
		t.Errorf("expected record id error, got %v", errs)
	}
}

// ============================================================================
// Helpers
// ============================================================================

func TestDatingProfile_IsMutualFit(t *testing.T) {
	t.Parallel()

	alice := &DatingProfile{Gender: GenderFemale, LookingFor: GenderMale}
	bob := &DatingProfile{Gender: GenderMale, LookingFor: GenderFemale}
	carl := &DatingProfile{Gender: GenderMale, LookingFor: GenderMale}

	if !alice.IsMutualFit(bob) || !bob.IsMutualFit(alice) {
		t.Error("alice and bob should fit each other")
	}
	if alice.IsMutualFit(carl) {
		t.Error("carl is not looking for alice")
	}
}

func TestConnectionStatus_IsValid(t *testing.T) {
	t.Parallel()

	for _, s := range []ConnectionStatus{ConnectionPending, ConnectionAccepted, ConnectionRejected} {
		if !s.IsValid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if ConnectionStatus("blocked").IsValid() {
		t.Error("unknown status should be invalid")
	}
}

func TestIsConnectionRecordID(t *testing.T) {
	t.Parallel()

	tests := map[string]bool{
		"dating_connection:abc": true,
		"dating_connection:":    false,
		"dating_profile:abc":    false,
		"user:abc":              false,
		"abc":                   false,
		"":                      false,
	}
	for id, want := range tests {
		if got := IsConnectionRecordID(id); got != want {
			t.Errorf("IsConnectionRecordID(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestToPercent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   float64
		want int
	}{
		{0, 0},
		{0.6, 60},
		{0.9952, 100},
		{0.964, 96},
		{0.005, 1},
		{1, 100},
	}
	for _, tt := range tests {
		if got := ToPercent(tt.in); got != tt.want {
			t.Errorf("ToPercent(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
