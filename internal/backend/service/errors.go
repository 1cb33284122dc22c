package service

import (
	"errors"
	"fmt"
)

var (
	ErrMissingFields       = errors.New("missing required fields")
	ErrMissingCredentials  = errors.New("email and password required")
	ErrDuplicateIdentity   = errors.New("username or email already in use")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	ErrUserNotFound        = errors.New("user not found")
	ErrAvatarsDisabled     = errors.New("avatar uploads are not configured")
)

// ValidationError reports the first field that broke a rule.
type ValidationError struct {
	Field string
	Rule  string
	Param string
}

func (e *ValidationError) Error() string {
	switch e.Rule {
	case "min":
		return fmt.Sprintf("%s must be at least %s", e.Field, e.Param)
	case "max":
		return fmt.Sprintf("%s must be at most %s", e.Field, e.Param)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", e.Field, e.Param)
	case "image":
		return fmt.Sprintf("%s must be a GIF, JPEG or PNG image no larger than %s", e.Field, e.Param)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}
