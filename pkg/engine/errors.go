package engine

import "errors"

// Request-level errors. These are the only failures the Analyze operation
// surfaces to callers; every internal detector fault is absorbed by
// graceful degradation in the fusion step.
var (
	// ErrEmptyInput is returned when the text is empty after trimming.
	ErrEmptyInput = errors.New("text content cannot be empty")

	// ErrInputTooLong is returned when the text exceeds the maximum length.
	// Checked before any detector runs.
	ErrInputTooLong = errors.New("text exceeds maximum length")
)

// Classifier adapter faults. Never surfaced as request failures: the adapter
// reports signal absence and fusion redistributes the classifier weight.
var (
	// ErrClassifierFault marks a backend that returned garbage (NaN or
	// out-of-range probability) or failed outright.
	ErrClassifierFault = errors.New("classifier returned invalid result")

	// ErrClassifierTimeout marks an inference call that exceeded the
	// configured deadline.
	ErrClassifierTimeout = errors.New("classifier inference timed out")
)
