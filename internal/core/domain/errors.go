package domain

import "errors"

// Authentication failures.
var (
	ErrUnknownUser   = errors.New("unknown user")
	ErrWrongPassword = errors.New("wrong password")
)

// Authorization failures raised by the token gate.
var (
	ErrMissingAuthHeader = errors.New("missing authorization header")
	ErrInvalidToken      = errors.New("invalid or expired token")
	ErrRoleMismatch      = errors.New("role mismatch")
)

var (
	ErrInvalidCredentials = errors.New("username and password are required")
	ErrInvalidRole        = errors.New("invalid role")
	ErrAlreadyExists      = errors.New("account already exists")
	ErrHashing            = errors.New("password hashing failed")
	ErrCourseNotFound     = errors.New("course not found")
	ErrUserNotFound       = errors.New("user not found")
)
