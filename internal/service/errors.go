package service

import "errors"

// Centralized service layer errors.
// All errors returned by service methods are defined here for consistency
// and to make error handling in handlers predictable.

// ===== Dating Profile Errors =====
var (
	ErrProfileNotFound   = errors.New("dating profile not found")
	ErrProfileIncomplete = errors.New("answer every question before viewing matches")
)

// ===== Questionnaire Errors =====
var (
	ErrUnknownQuestion = errors.New("unknown question")
	ErrInvalidAnswer   = errors.New("answer is not one of the question's options")
)

// ===== Connection Errors =====
var (
	ErrCannotConnectSelf      = errors.New("cannot send a connection request to yourself")
	ErrTargetProfileNotFound  = errors.New("the requested user has no dating profile")
	ErrConnectionExists       = errors.New("connection request already sent")
	ErrConnectionNotFound     = errors.New("connection request not found")
	ErrNotConnectionRecipient = errors.New("only the recipient may respond to a connection request")
	ErrConnectionNotPending   = errors.New("connection request has already been answered")
	ErrInvalidConnectionState = errors.New("connection requests may only be accepted or rejected")
)
