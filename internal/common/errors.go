// Package common defines shared constants and sentinel errors used across
// the toursite server and admin client. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")

	// Ordering errors.
	ErrorSameItem = errors.New("cannot swap an item with itself")

	// Content-specific errors.
	ErrorSlugTaken = errors.New("slug already in use")
)
