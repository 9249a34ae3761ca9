package domain

import "errors"

// Expected, caller-recoverable outcomes. Services wrap these with %w and
// the HTTP boundary classifies them with errors.Is; anything outside this
// set is reported as an opaque internal error.
var (
	ErrValidation             = errors.New("validation failed")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrAuthenticationRequired = errors.New("authentication required")
	ErrAuthorizationDenied    = errors.New("authorization denied")
	ErrNotFound               = errors.New("not found")
	ErrExpired                = errors.New("expired")
	ErrConflict               = errors.New("conflict")
	ErrModerationRejected     = errors.New("content rejected by moderation")
)
