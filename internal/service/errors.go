// Package service implements the business logic: account management, the
// listing lifecycle and its field-routed update engine, the global amenity
// catalog, and best-effort audit logging.
package service

import "errors"

// Sentinel errors the API layer translates into HTTP status codes.
var (
	// ErrValidation indicates missing or malformed required input (400).
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an unknown key or an ownership mismatch (404).
	ErrNotFound = errors.New("not found")

	// ErrStore indicates an underlying persistence failure (500).
	ErrStore = errors.New("store failure")

	// ErrAuth indicates a password mismatch on change-password (401).
	ErrAuth = errors.New("unauthorized")

	// ErrInvalidCredentials is the generic login failure. It deliberately
	// reveals nothing about which part of the credentials was wrong, and is
	// reported as a failed result rather than an HTTP error.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateAccount indicates the username or email is already taken
	// for the requested role.
	ErrDuplicateAccount = errors.New("username or email already in use")
)
