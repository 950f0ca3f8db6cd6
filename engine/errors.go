package engine

import "errors"

var (
	// ErrNotAuthorized marks an actor that is neither the owner of the
	// target entity nor a moderator.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrInvalidArgument marks a request that can never succeed as
	// given (empty content, self-follow).
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInvalidStateTransition marks a publication transition the
	// state machine forbids, such as publishing a chapter of an
	// unpublished story without the combined publish flag.
	ErrInvalidStateTransition = errors.New("invalid state transition")
)
