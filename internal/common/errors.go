package common

import "errors"

// Business logic errors
var (
	// General errors
	ErrNotFound  = errors.New("resource not found")
	ErrForbidden = errors.New("forbidden")

	// Auth errors
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailTaken         = errors.New("email already in use")

	// Connection errors
	ErrConnectionNotFound = errors.New("connection not found")
	ErrSelfConnection     = errors.New("cannot connect with yourself")
	ErrNotPending         = errors.New("connection is not pending")
	ErrNotAccepted        = errors.New("connection is not accepted")

	// Chat errors
	ErrEmptyMessage = errors.New("message text is empty")

	// Group errors
	ErrGroupNotFound  = errors.New("group not found")
	ErrAlreadyMember  = errors.New("already a member of this group")

	// Validation errors
	ErrInvalidInput = errors.New("invalid input")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)
