package llm

import "errors"

var (
	// ErrUnavailable indicates the inference endpoint could not be reached
	// or answered with a non-success status.
	ErrUnavailable = errors.New("inference endpoint unavailable")

	// ErrInvalidOutput indicates the model reply could not be parsed into
	// the expected structured format.
	ErrInvalidOutput = errors.New("invalid model output format")
)
