package domain

import "errors"

var (
	// ErrCardNotFound is returned when the card does not exist, is not owned by
	// the caller, or is not published when read through its share URL.
	ErrCardNotFound = errors.New("business card not found")

	// ErrSocialAccountNotFound is returned when the social account does not exist
	// or belongs to another user's card.
	ErrSocialAccountNotFound = errors.New("social account not found")

	// ErrInvalidCardID is returned when an identifier is not a valid UUID.
	ErrInvalidCardID = errors.New("invalid card id")

	// ErrInvalidInput is returned when a request payload cannot be decoded.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthenticated is returned when no user identity accompanies a request.
	ErrUnauthenticated = errors.New("authentication required")

	// ErrRateLimited is returned when rate limit is exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrSnapshotUnavailable is returned when card snapshots are disabled.
	ErrSnapshotUnavailable = errors.New("card snapshots are not enabled")

	// ErrSnapshotFailed is returned when the browser could not render the card.
	ErrSnapshotFailed = errors.New("failed to render card snapshot")
)
