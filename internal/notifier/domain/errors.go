package domain

import "errors"

var (
	// ErrInvalidNotice is returned when a notice is missing the fields
	// required for delivery. Not retryable.
	ErrInvalidNotice = errors.New("invalid notice")

	// ErrDuplicateNotice is returned when a notice id was already
	// delivered. The redelivery is acknowledged and dropped.
	ErrDuplicateNotice = errors.New("notice already delivered")
)

// RetryableError wraps transient errors that should trigger a requeue.
type RetryableError struct {
	Err error
}

func (e *RetryableError) Error() string {
	return "retryable error: " + e.Err.Error()
}

func (e *RetryableError) Unwrap() error {
	return e.Err
}

// NewRetryableError creates a new retryable error.
func NewRetryableError(err error) error {
	return &RetryableError{Err: err}
}
