package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrJobNotFound is returned when the referenced job does not exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrNotJobOwner is returned when the actor does not own the job.
	ErrNotJobOwner = errors.New("you do not have permission to manage this job")

	// ErrNotAssignee is returned when the actor holds no assignment on the job.
	ErrNotAssignee = errors.New("you are not assigned to this job")

	// ErrNoEligibleStaff is returned when auto-assignment finds no available staff.
	ErrNoEligibleStaff = errors.New("no eligible staff available for assignment")

	// ErrStatusConflict is returned when a conditional status update affected
	// no rows: the job's status changed between the guard check and the write.
	ErrStatusConflict = errors.New("job status changed concurrently")
)

// StateError reports a transition attempted from a status that does not
// permit it. It maps to a 400 at the HTTP boundary.
type StateError struct {
	Status JobStatus
	Op     string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("job is currently %s and cannot be %s", e.Status, e.Op)
}

// NewStateError creates a StateError for the given current status and
// operation verb (e.g. "assigned", "submitted").
func NewStateError(status JobStatus, op string) error {
	return &StateError{Status: status, Op: op}
}
