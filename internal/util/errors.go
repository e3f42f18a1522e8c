// internal/util/errors.go
package util

import "errors"

// Common application-specific errors.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input provided")
	ErrDuplicateEntry     = errors.New("duplicate entry") // e.g. creating a user with an existing email
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidReference   = errors.New("referenced resource does not exist")
	ErrCategoryInUse      = errors.New("category is referenced by operations")
	ErrSessionExpired     = errors.New("session expired")
	ErrUnauthorized       = errors.New("unauthorized")
)

// IsError reports whether err wraps target.
func IsError(err, target error) bool {
	return errors.Is(err, target)
}
