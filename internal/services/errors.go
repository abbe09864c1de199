package services

import "errors"

var (
	// ErrInvalidRequest indicates malformed input: a turn with no messages
	// or a broken role/content pair, or a project ID that is not a UUID.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrProjectNotFound indicates the referenced project does not exist.
	ErrProjectNotFound = errors.New("project not found")

	// ErrNoFieldsToUpdate indicates a partial update carried nothing.
	ErrNoFieldsToUpdate = errors.New("no valid fields to update")
)
