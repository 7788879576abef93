package services

import "errors"

var (
	// ErrNotFound is returned when a row does not exist or is not visible to the caller
	ErrNotFound = errors.New("not found")
	// ErrInvalidTransition is returned for a disallowed liming request status change
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrValidation is wrapped by input validation failures
	ErrValidation = errors.New("validation failed")
	// ErrSelfDemotion is returned when an admin tries to drop their own admin role
	ErrSelfDemotion = errors.New("cannot remove own admin role")
)
