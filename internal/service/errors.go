// Package service contains the application-specific use cases and business
// logic. It orchestrates domain objects and the store interfaces to
// implement signup/login, ownership enforcement, and cart aggregation.
package service

import "errors"

// Common service errors - sentinel errors used across service
// implementations. Callers check for them with errors.Is(); the API layer
// maps them to HTTP status codes.
var (
	// ErrNotLoggedIn indicates that an operation requiring authentication
	// was invoked without an authenticated account in the request context.
	ErrNotLoggedIn = errors.New("not logged in")

	// ErrNotAuthorized indicates the authenticated account does not own
	// the resource it is trying to modify.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrAccountNotFound indicates a login attempt for an email that
	// matches no account.
	ErrAccountNotFound = errors.New("account not found")

	// ErrInvalidCredentials indicates a login attempt with a password
	// that does not verify against the stored hash.
	ErrInvalidCredentials = errors.New("invalid credentials")
)
