package model

import (
	"strings"
	"time"
)

// ConnectionStatus is the lifecycle state of a connection request
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionRejected ConnectionStatus = "rejected"
)

// IsValid reports whether s is a known status
func (s ConnectionStatus) IsValid() bool {
	switch s {
	case ConnectionPending, ConnectionAccepted, ConnectionRejected:
		return true
	}
	return false
}

// ConnectionTable is the record table that holds connection requests
const ConnectionTable = "dating_connection"

// IsConnectionRecordID reports whether id has the dating_connection:<key> record form
func IsConnectionRecordID(id string) bool {
	key, ok := strings.CutPrefix(id, ConnectionTable+":")
	return ok && key != ""
}

// Connection is a directed request from one dating profile to another
type Connection struct {
	ID         string           `json:"id"`
	FromUserID string           `json:"from_user_id"`
	ToUserID   string           `json:"to_user_id"`
	Status     ConnectionStatus `json:"status"`
	CreatedOn  time.Time        `json:"created_on"`
	UpdatedOn  time.Time        `json:"updated_on"`
}

// CreateConnectionRequest sends a connection request
type CreateConnectionRequest struct {
	ToUserID string `json:"to_user_id"`
}

// Validate checks the connection request
func (r *CreateConnectionRequest) Validate() []FieldError {
	var errors []FieldError
	if r.ToUserID == "" {
		errors = append(errors, FieldError{Field: "to_user_id", Message: "to_user_id is required"})
	} else if !IsUserRecordID(r.ToUserID) {
		errors = append(errors, FieldError{Field: "to_user_id", Message: "to_user_id must be a user record id"})
	}
	return errors
}

// ConnectionRequestView is a pending request addressed to the caller,
// annotated with the sender's card and how closely their answers agree
type ConnectionRequestView struct {
	ID           string    `json:"id"`
	FromUserID   string    `json:"from_user_id"`
	Bio          *string   `json:"bio,omitempty"`
	Interests    []string  `json:"interests"`
	MatchPercent int       `json:"match_percent"`
	CreatedOn    time.Time `json:"created_on"`
}
