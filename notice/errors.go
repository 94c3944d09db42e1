package notice

import "errors"

var (
	// ErrPermissionDenied indicates the caller lacks the required role.
	ErrPermissionDenied = errors.New("notice: permission denied")

	// ErrAlreadyInitialized indicates the board was bootstrapped twice.
	ErrAlreadyInitialized = errors.New("notice: already initialized")

	// ErrInvalidRequest indicates a bad notice id or a stale expected id.
	ErrInvalidRequest = errors.New("notice: invalid request")

	// ErrNotInitialized indicates an operation before bootstrap.
	ErrNotInitialized = errors.New("notice: board not bootstrapped")

	// ErrInvalidState indicates a malformed state snapshot.
	ErrInvalidState = errors.New("notice: invalid state snapshot")

	// ErrStateNotFound indicates no snapshot has been saved yet.
	ErrStateNotFound = errors.New("notice: state snapshot not found")
)
