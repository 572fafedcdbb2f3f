// Package common defines shared sentinel errors and small helpers used across
// lifeadmin layers. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Validation errors (missing or empty required field).
	ErrValidation = errors.New("validation error")

	// Name collisions: category names and account emails, case-insensitive.
	ErrDuplicateName = errors.New("already exists")

	// Operating on an unknown id.
	ErrNotFound = errors.New("not found")

	// Mutating a system-provided category.
	ErrLocked = errors.New("locked")

	// Bad credentials or no signed-in user.
	ErrUnauthorized = errors.New("unauthorized")

	// Session token lifecycle errors.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)
