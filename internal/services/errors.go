package services

import "errors"

var (
	// ErrNotFound covers both a missing record and a record the caller
	// may not see or touch. The two outcomes are deliberately
	// indistinguishable so that unauthorized callers cannot probe for
	// existence.
	ErrNotFound = errors.New("not found")

	ErrDuplicateMember   = errors.New("user is already a member of this project")
	ErrRemoveCreator     = errors.New("the project creator cannot be removed")
	ErrInvalidStatus     = errors.New("invalid task status")
	ErrInvalidPriority   = errors.New("invalid task priority")
	ErrInvalidRole       = errors.New("invalid member role")
	ErrInvalidVisibility = errors.New("invalid project visibility")
	ErrBlankComment      = errors.New("comment text must not be blank")
	ErrCommentTooLong    = errors.New("comment text exceeds the maximum length")
	ErrNonPositiveHours  = errors.New("hours spent must be positive")
)
