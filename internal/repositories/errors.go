package repositories

import "errors"

// ErrNotFound is returned by writes that targeted a row that does not exist.
// Callers use it to tell a missing project apart from an infrastructure
// failure.
var ErrNotFound = errors.New("project not found")
