package errors

import "errors"

var (
	// ErrNotFound is a generic sentinel for missing resources.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized is a generic sentinel for auth failures.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrWeekTaken signals a weekly entry already exists for (year, week_number).
	ErrWeekTaken = errors.New("weekly entry already exists for that week")
	// ErrForbidden signals the caller does not own the resource.
	ErrForbidden = errors.New("forbidden")
)
