package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stayhub/maintenance-be/internal/api/domain"
	"github.com/stayhub/maintenance-be/internal/api/model"
	"github.com/stayhub/maintenance-be/shared/postgresql"
)

const jobColumns = `
	id, title, description, budget, urgency, status, owner_id,
	before_image, after_image, rejection_reason, property_id, hotel_id,
	created_at, updated_at
`

// Storage handles all database operations for the API service.
type Storage struct {
	db *sqlx.DB
	pg *postgresql.Client
}

// NewStorage creates a new Storage instance.
func NewStorage(pg *postgresql.Client) *Storage {
	return &Storage{
		db: pg.GetDB(),
		pg: pg,
	}
}

// CreateJob inserts a new job row.
func (s *Storage) CreateJob(ctx context.Context, job *domain.Job) error {
	query := `
		INSERT INTO jobs (
			id, title, description, budget, urgency, status, owner_id,
			property_id, hotel_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11
		)
	`

	_, err := s.db.ExecContext(ctx, query,
		job.ID,
		job.Title,
		job.Description,
		model.NullFloat(job.Budget),
		string(job.Urgency),
		string(job.Status),
		job.OwnerID,
		model.NullString(job.PropertyID),
		model.NullString(job.HotelID),
		job.CreatedAt,
		job.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetJob retrieves a job by id.
func (s *Storage) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	var row model.Job
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE id = $1`

	err := s.db.GetContext(ctx, &row, query, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return row.ToDomain(), nil
}

// DeleteJob removes a job; assignments cascade at the schema level.
func (s *Storage) DeleteJob(ctx context.Context, jobID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM jobs WHERE id = $1`, jobID)
	if err != nil {
		return fmt.Errorf("failed to delete job: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrJobNotFound
	}
	return nil
}

// TransitionStatus flips a job from one status to another in a single
// conditional update. Zero rows affected means the status changed since
// the caller's guard check and surfaces as ErrStatusConflict.
func (s *Storage) TransitionStatus(ctx context.Context, jobID string, from, to domain.JobStatus) (*domain.Job, error) {
	query := `
		UPDATE jobs
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING ` + jobColumns

	var row model.Job
	err := s.db.GetContext(ctx, &row, query, string(to), jobID, string(from))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStatusConflict
		}
		return nil, fmt.Errorf("failed to transition job status: %w", err)
	}
	return row.ToDomain(), nil
}

// SubmitForReview moves a job to AWAITING_REVIEW, records the proof
// photos and clears any rejection reason. Only IN_PROGRESS and REJECTED
// jobs qualify; the guard is re-checked in the update itself.
func (s *Storage) SubmitForReview(ctx context.Context, jobID string, beforeImage, afterImage *string) (*domain.Job, error) {
	query := `
		UPDATE jobs
		SET status = $1,
		    before_image = $2,
		    after_image = $3,
		    rejection_reason = NULL,
		    updated_at = NOW()
		WHERE id = $4 AND status IN ($5, $6)
		RETURNING ` + jobColumns

	var row model.Job
	err := s.db.GetContext(ctx, &row, query,
		string(domain.JobStatusAwaitingReview),
		model.NullString(beforeImage),
		model.NullString(afterImage),
		jobID,
		string(domain.JobStatusInProgress),
		string(domain.JobStatusRejected),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStatusConflict
		}
		return nil, fmt.Errorf("failed to submit job for review: %w", err)
	}
	return row.ToDomain(), nil
}

// ReviewJob records the owner's verdict on a job awaiting review. The
// rejection reason is stored only for a REJECTED verdict.
func (s *Storage) ReviewJob(ctx context.Context, jobID string, verdict domain.JobStatus, reason *string) (*domain.Job, error) {
	if verdict != domain.JobStatusRejected {
		reason = nil
	}

	query := `
		UPDATE jobs
		SET status = $1, rejection_reason = $2, updated_at = NOW()
		WHERE id = $3 AND status = $4
		RETURNING ` + jobColumns

	var row model.Job
	err := s.db.GetContext(ctx, &row, query,
		string(verdict),
		model.NullString(reason),
		jobID,
		string(domain.JobStatusAwaitingReview),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStatusConflict
		}
		return nil, fmt.Errorf("failed to review job: %w", err)
	}
	return row.ToDomain(), nil
}

// AssignJob creates the assignment and flips the job from QUEUED to
// PENDING atomically. Either both writes land or neither does; a job
// that left QUEUED in the meantime rolls the assignment back.
func (s *Storage) AssignJob(ctx context.Context, assignment *domain.JobAssignment) (*domain.Job, error) {
	tx, err := s.pg.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO job_assignments (id, job_id, applier_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, assignment.ID, assignment.JobID, assignment.ApplierID, assignment.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create assignment: %w", err)
	}

	var row model.Job
	err = tx.GetContext(ctx, &row, `
		UPDATE jobs
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
		RETURNING `+jobColumns,
		string(domain.JobStatusPending),
		assignment.JobID,
		string(domain.JobStatusQueued),
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStatusConflict
		}
		return nil, fmt.Errorf("failed to mark job pending: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit assignment: %w", err)
	}
	return row.ToDomain(), nil
}

// ReleaseAssignment deletes the assignment and returns the job to the
// queue atomically, so a fresh assignment can be made. Any rejection
// reason left over from a review is cleared with it; the requeued job
// starts clean for the next assignee.
func (s *Storage) ReleaseAssignment(ctx context.Context, assignmentID, jobID string) (*domain.Job, error) {
	tx, err := s.pg.BeginTx(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM job_assignments WHERE id = $1`, assignmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete assignment: %w", err)
	}

	var row model.Job
	err = tx.GetContext(ctx, &row, `
		UPDATE jobs
		SET status = $1, rejection_reason = NULL, updated_at = NOW()
		WHERE id = $2
		RETURNING `+jobColumns,
		string(domain.JobStatusQueued),
		jobID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrJobNotFound
		}
		return nil, fmt.Errorf("failed to requeue job: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit assignment release: %w", err)
	}
	return row.ToDomain(), nil
}

// CreateApplication records a user's application to a job.
func (s *Storage) CreateApplication(ctx context.Context, assignment *domain.JobAssignment) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO job_assignments (id, job_id, applier_id, created_at)
		VALUES ($1, $2, $3, $4)
	`, assignment.ID, assignment.JobID, assignment.ApplierID, assignment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// ListAssignments returns all assignment rows for a job, oldest first.
func (s *Storage) ListAssignments(ctx context.Context, jobID string) ([]domain.JobAssignment, error) {
	var rows []model.JobAssignment
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, job_id, applier_id, created_at
		FROM job_assignments
		WHERE job_id = $1
		ORDER BY created_at ASC
	`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}

	assignments := make([]domain.JobAssignment, len(rows))
	for i := range rows {
		assignments[i] = *rows[i].ToDomain()
	}
	return assignments, nil
}

// FindAssignment returns the assignment held by a user on a job.
func (s *Storage) FindAssignment(ctx context.Context, jobID, applierID string) (*domain.JobAssignment, error) {
	var row model.JobAssignment
	err := s.db.GetContext(ctx, &row, `
		SELECT id, job_id, applier_id, created_at
		FROM job_assignments
		WHERE job_id = $1 AND applier_id = $2
		ORDER BY created_at ASC
		LIMIT 1
	`, jobID, applierID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotAssignee
		}
		return nil, fmt.Errorf("failed to find assignment: %w", err)
	}
	return row.ToDomain(), nil
}

// JobFilter narrows and paginates job listings.
type JobFilter struct {
	OwnerID  string
	Status   domain.JobStatus
	PageSize int
	Cursor   *JobCursor
}

// JobCursor marks a position in the (created_at DESC, id DESC) ordering.
type JobCursor struct {
	CreatedAt time.Time
	JobID     string
}

// ListJobs returns jobs matching the filter, newest first. One extra row
// beyond PageSize is fetched so callers can detect further pages.
func (s *Storage) ListJobs(ctx context.Context, filter JobFilter) ([]domain.Job, error) {
	query := `SELECT ` + jobColumns + ` FROM jobs WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.OwnerID != "" {
		query += fmt.Sprintf(" AND owner_id = $%d", argIdx)
		args = append(args, filter.OwnerID)
		argIdx++
	}

	if filter.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, string(filter.Status))
		argIdx++
	}

	if filter.Cursor != nil {
		query += fmt.Sprintf(" AND (created_at, id) < ($%d, $%d)", argIdx, argIdx+1)
		args = append(args, filter.Cursor.CreatedAt, filter.Cursor.JobID)
		argIdx += 2
	}

	query += " ORDER BY created_at DESC, id DESC"
	query += fmt.Sprintf(" LIMIT $%d", argIdx)
	args = append(args, filter.PageSize+1)

	var rows []model.Job
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}

	jobs := make([]domain.Job, len(rows))
	for i := range rows {
		jobs[i] = *rows[i].ToDomain()
	}
	return jobs, nil
}

// ListJobsByStatus returns all jobs in the given status, newest first.
func (s *Storage) ListJobsByStatus(ctx context.Context, status domain.JobStatus) ([]domain.Job, error) {
	var rows []model.Job
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+jobColumns+` FROM jobs WHERE status = $1 ORDER BY created_at DESC, id DESC`,
		string(status),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs by status: %w", err)
	}

	jobs := make([]domain.Job, len(rows))
	for i := range rows {
		jobs[i] = *rows[i].ToDomain()
	}
	return jobs, nil
}

// ListAssignedJobs returns the jobs a user holds an assignment on.
func (s *Storage) ListAssignedJobs(ctx context.Context, applierID string) ([]domain.Job, error) {
	var rows []model.Job
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE id IN (SELECT job_id FROM job_assignments WHERE applier_id = $1)
		ORDER BY created_at DESC, id DESC
	`, applierID)
	if err != nil {
		return nil, fmt.Errorf("failed to list assigned jobs: %w", err)
	}

	jobs := make([]domain.Job, len(rows))
	for i := range rows {
		jobs[i] = *rows[i].ToDomain()
	}
	return jobs, nil
}

// ListEarnedJobs returns the COMPLETED and APPROVED jobs a user worked,
// used for earnings totals.
func (s *Storage) ListEarnedJobs(ctx context.Context, applierID string) ([]domain.Job, error) {
	var rows []model.Job
	err := s.db.SelectContext(ctx, &rows, `
		SELECT `+jobColumns+`
		FROM jobs
		WHERE id IN (SELECT job_id FROM job_assignments WHERE applier_id = $1)
		  AND status IN ($2, $3)
		ORDER BY updated_at DESC
	`, applierID, string(domain.JobStatusCompleted), string(domain.JobStatusApproved))
	if err != nil {
		return nil, fmt.Errorf("failed to list earned jobs: %w", err)
	}

	jobs := make([]domain.Job, len(rows))
	for i := range rows {
		jobs[i] = *rows[i].ToDomain()
	}
	return jobs, nil
}
