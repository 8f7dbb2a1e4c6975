package errors

import "errors"

var (
	ErrUserNotFound          = errors.New("user not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrUnknownEvent          = errors.New("unknown event kind")
	ErrInvalidPayload        = errors.New("invalid event payload")
)
