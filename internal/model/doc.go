// Package model defines domain entities and data structures for the hangout API.
//
// The model package contains the dating profile and connection entities, the
// request bodies that create and change them, and the response shapes for matches.
// Models are used across all layers of the application.
//
// # Domain Entities
//
//   - DatingProfile: a user's dating card and questionnaire answers
//   - Connection: a directed request between two profiles (pending, accepted, rejected)
//   - Match: a ranked candidate on the caller's match list
//
// # Validation
//
// Request types expose Validate() []FieldError; handlers turn a non-empty result into
// a 422 response. Checks that need the questionnaire registry live in the service layer.
//
// # Error Types
//
// RFC 9457 Problem Details errors are defined in errors.go:
//
//	type ProblemDetails struct {
//	    Type    string    `json:"type"`
//	    Title   string    `json:"title"`
//	    Status  int       `json:"status"`
//	    Detail  string    `json:"detail"`
//	}
package model
