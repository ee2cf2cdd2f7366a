package domain

import (
	"fmt"
	"time"
)

// JobStatus is the lifecycle stage of a maintenance job.
type JobStatus string

const (
	// JobStatusQueued - created, waiting for an assignment.
	JobStatusQueued JobStatus = "QUEUED"
	// JobStatusPending - assigned, waiting for the staff member to accept.
	JobStatusPending JobStatus = "PENDING"
	// JobStatusInProgress - accepted, work underway.
	JobStatusInProgress JobStatus = "IN_PROGRESS"
	// JobStatusAwaitingReview - proof photos submitted, waiting for the owner's verdict.
	JobStatusAwaitingReview JobStatus = "AWAITING_REVIEW"
	// JobStatusCompleted - legacy terminal of the direct submit flow (no photo review).
	JobStatusCompleted JobStatus = "COMPLETED"
	// JobStatusApproved - owner accepted the work.
	JobStatusApproved JobStatus = "APPROVED"
	// JobStatusRejected - owner rejected the submission; staff may resubmit.
	JobStatusRejected JobStatus = "REJECTED"
)

// jobStatuses is the closed set of valid statuses. Adding a status here
// forces ParseJobStatus callers and the transition guards to be revisited.
var jobStatuses = map[JobStatus]struct{}{
	JobStatusQueued:         {},
	JobStatusPending:        {},
	JobStatusInProgress:     {},
	JobStatusAwaitingReview: {},
	JobStatusCompleted:      {},
	JobStatusApproved:       {},
	JobStatusRejected:       {},
}

// Valid reports whether s is a known job status.
func (s JobStatus) Valid() bool {
	_, ok := jobStatuses[s]
	return ok
}

// ParseJobStatus converts raw input into a JobStatus.
func ParseJobStatus(raw string) (JobStatus, error) {
	s := JobStatus(raw)
	if !s.Valid() {
		return "", fmt.Errorf("unknown job status %q", raw)
	}
	return s, nil
}

// Assigned reports whether the status implies a live assignment on the job.
func (s JobStatus) Assigned() bool {
	switch s {
	case JobStatusPending, JobStatusInProgress, JobStatusAwaitingReview, JobStatusRejected:
		return true
	}
	return false
}

// JobUrgency signals how quickly a job needs attention.
type JobUrgency string

const (
	JobUrgencyUrgent JobUrgency = "URGENT"
	JobUrgencyNormal JobUrgency = "NORMAL"
)

// Valid reports whether u is a known urgency.
func (u JobUrgency) Valid() bool {
	return u == JobUrgencyUrgent || u == JobUrgencyNormal
}

// Job is a maintenance job owned by a property or hotel manager.
type Job struct {
	ID              string
	Title           string
	Description     string
	Budget          *float64
	Urgency         JobUrgency
	Status          JobStatus
	OwnerID         string
	BeforeImage     *string
	AfterImage      *string
	RejectionReason *string
	PropertyID      *string
	HotelID         *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// JobAssignment links a job to the user applying for or executing it.
// While the job is QUEUED the rows are applications; once the job moves
// to PENDING the row created by the assign operation is the live assignment.
type JobAssignment struct {
	ID        string
	JobID     string
	ApplierID string
	CreatedAt time.Time
}
