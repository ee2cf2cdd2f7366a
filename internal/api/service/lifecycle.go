package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stayhub/maintenance-be/internal/api/domain"
	"github.com/stayhub/maintenance-be/internal/api/storage"
	"github.com/stayhub/maintenance-be/internal/notice"
)

// CreateJobInput carries the owner-supplied fields of a new job.
type CreateJobInput struct {
	Title       string
	Description string
	Urgency     domain.JobUrgency
	Budget      *float64
	PropertyID  *string
	HotelID     *string
}

// CreateJob creates a job in QUEUED owned by the given user.
func (s *Service) CreateJob(ctx context.Context, ownerID string, in CreateJobInput) (*domain.Job, error) {
	s.logger.Info("Creating job",
		slog.String("owner_id", ownerID),
		slog.String("title", in.Title),
	)

	urgency := in.Urgency
	if urgency == "" {
		urgency = domain.JobUrgencyNormal
	}

	now := time.Now()
	job := &domain.Job{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Budget:      in.Budget,
		Urgency:     urgency,
		Status:      domain.JobStatusQueued,
		OwnerID:     ownerID,
		PropertyID:  in.PropertyID,
		HotelID:     in.HotelID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateJob(ctx, job); err != nil {
		s.logger.Error("Failed to create job",
			slog.String("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return job, nil
}

// ApplyToJob records a user's application to an existing job.
func (s *Service) ApplyToJob(ctx context.Context, userID, jobID string) (*domain.JobAssignment, error) {
	s.logger.Info("User applying to job",
		slog.String("user_id", userID),
		slog.String("job_id", jobID),
	)

	if _, err := s.store.GetJob(ctx, jobID); err != nil {
		return nil, err
	}

	application := &domain.JobAssignment{
		ID:        uuid.New().String(),
		JobID:     jobID,
		ApplierID: userID,
		CreatedAt: time.Now(),
	}
	if err := s.store.CreateApplication(ctx, application); err != nil {
		s.logger.Error("Failed to apply to job",
			slog.String("user_id", userID),
			slog.String("job_id", jobID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return application, nil
}

// AssignJob assigns a QUEUED job to an applier. Only the owner may
// assign; the assignment insert and the QUEUED -> PENDING flip commit
// together or not at all.
func (s *Service) AssignJob(ctx context.Context, jobID, applierID, ownerID string) (*domain.Job, *domain.JobAssignment, error) {
	s.logger.Info("Assigning job",
		slog.String("job_id", jobID),
		slog.String("applier_id", applierID),
		slog.String("owner_id", ownerID),
	)

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if job.OwnerID != ownerID {
		return nil, nil, domain.ErrNotJobOwner
	}
	if job.Status != domain.JobStatusQueued {
		return nil, nil, domain.NewStateError(job.Status, "assigned")
	}

	assignment := &domain.JobAssignment{
		ID:        uuid.New().String(),
		JobID:     jobID,
		ApplierID: applierID,
		CreatedAt: time.Now(),
	}
	updated, err := s.store.AssignJob(ctx, assignment)
	if err != nil {
		s.logger.Error("Failed to assign job",
			slog.String("job_id", jobID),
			slog.String("applier_id", applierID),
			slog.Any("error", err),
		)
		return nil, nil, err
	}

	staffName := s.actorName(ctx, applierID)
	s.notifyOwner(ctx, updated, "Job Assigned",
		fmt.Sprintf("%s has been assigned to the job %q.", staffName, updated.Title),
		notice.TypeInfo,
	)
	return updated, assignment, nil
}

// AutoAssignJob assigns a QUEUED job to the first available staff member:
// role STAFF, no assignment on a PENDING or IN_PROGRESS job.
func (s *Service) AutoAssignJob(ctx context.Context, jobID, ownerID string) (*domain.Job, *domain.JobAssignment, error) {
	s.logger.Info("Auto-assigning job",
		slog.String("job_id", jobID),
		slog.String("owner_id", ownerID),
	)

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, nil, err
	}
	if job.OwnerID != ownerID {
		return nil, nil, domain.ErrNotJobOwner
	}
	if job.Status != domain.JobStatusQueued {
		return nil, nil, domain.NewStateError(job.Status, "assigned")
	}

	staff, err := s.directory.FirstAvailableStaff(ctx)
	if err != nil {
		return nil, nil, err
	}

	return s.AssignJob(ctx, jobID, staff.ID, ownerID)
}

// AcceptJob moves a PENDING job to IN_PROGRESS. Only a user holding an
// assignment on the job may accept it.
func (s *Service) AcceptJob(ctx context.Context, jobID, userID string) (*domain.Job, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.FindAssignment(ctx, jobID, userID); err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusPending {
		return nil, domain.NewStateError(job.Status, "accepted")
	}

	updated, err := s.store.TransitionStatus(ctx, jobID, domain.JobStatusPending, domain.JobStatusInProgress)
	if err != nil {
		s.logger.Error("Failed to accept job",
			slog.String("job_id", jobID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return nil, err
	}

	staffName := s.actorName(ctx, userID)
	s.notifyOwner(ctx, updated, "Job Accepted",
		fmt.Sprintf("%s has accepted the job %q.", staffName, updated.Title),
		notice.TypeInfo,
	)
	return updated, nil
}

// SubmitJob submits proof photos for review. IN_PROGRESS and REJECTED
// jobs qualify; resubmission after a review rejection clears the stored
// rejection reason.
func (s *Service) SubmitJob(ctx context.Context, jobID, userID string, beforeImage, afterImage *string) (*domain.Job, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.FindAssignment(ctx, jobID, userID); err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusInProgress && job.Status != domain.JobStatusRejected {
		return nil, domain.NewStateError(job.Status, "submitted")
	}

	updated, err := s.store.SubmitForReview(ctx, jobID, beforeImage, afterImage)
	if err != nil {
		s.logger.Error("Failed to submit job",
			slog.String("job_id", jobID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return nil, err
	}

	staffName := s.actorName(ctx, userID)
	s.notifyOwner(ctx, updated, "Photos Submitted",
		fmt.Sprintf("%s submitted photos for %q. Job is awaiting review.", staffName, updated.Title),
		notice.TypeSuccess,
	)
	return updated, nil
}

// SubmitJobLegacy is the older submit flow without photo review: a
// PENDING job moves straight to COMPLETED. Kept behind the
// jobs.legacy_submit flag.
func (s *Service) SubmitJobLegacy(ctx context.Context, jobID, applierID string) (*domain.Job, error) {
	s.logger.Info("Submitting job (legacy flow)",
		slog.String("job_id", jobID),
		slog.String("applier_id", applierID),
	)

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.Status != domain.JobStatusPending {
		return nil, domain.NewStateError(job.Status, "submitted")
	}
	if _, err := s.store.FindAssignment(ctx, jobID, applierID); err != nil {
		return nil, err
	}

	updated, err := s.store.TransitionStatus(ctx, jobID, domain.JobStatusPending, domain.JobStatusCompleted)
	if err != nil {
		s.logger.Error("Failed to submit job (legacy flow)",
			slog.String("job_id", jobID),
			slog.String("applier_id", applierID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return updated, nil
}

// ReviewJob records the owner's verdict on a submitted job. A REJECTED
// verdict stores the reason; APPROVED is terminal.
func (s *Service) ReviewJob(ctx context.Context, jobID, ownerID string, verdict domain.JobStatus, reason *string) (*domain.Job, error) {
	if verdict != domain.JobStatusApproved && verdict != domain.JobStatusRejected {
		return nil, fmt.Errorf("invalid review verdict %q", verdict)
	}

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.OwnerID != ownerID {
		return nil, domain.ErrNotJobOwner
	}
	if job.Status != domain.JobStatusAwaitingReview {
		return nil, domain.NewStateError(job.Status, "reviewed")
	}

	updated, err := s.store.ReviewJob(ctx, jobID, verdict, reason)
	if err != nil {
		s.logger.Error("Failed to review job",
			slog.String("job_id", jobID),
			slog.String("owner_id", ownerID),
			slog.String("verdict", string(verdict)),
			slog.Any("error", err),
		)
		return nil, err
	}
	return updated, nil
}

// ApproveJob approves a COMPLETED job (legacy flow terminal).
func (s *Service) ApproveJob(ctx context.Context, jobID, ownerID string) (*domain.Job, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job.OwnerID != ownerID {
		return nil, domain.ErrNotJobOwner
	}
	if job.Status != domain.JobStatusCompleted {
		return nil, domain.NewStateError(job.Status, "approved")
	}

	updated, err := s.store.TransitionStatus(ctx, jobID, domain.JobStatusCompleted, domain.JobStatusApproved)
	if err != nil {
		s.logger.Error("Failed to approve job",
			slog.String("job_id", jobID),
			slog.String("owner_id", ownerID),
			slog.Any("error", err),
		)
		return nil, err
	}
	return updated, nil
}

// RejectJob lets the assigned staff member give a job back: the
// assignment is deleted and the job returns to QUEUED so a fresh
// assignment can be made.
func (s *Service) RejectJob(ctx context.Context, jobID, userID string) (*domain.Job, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	assignment, err := s.store.FindAssignment(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}

	updated, err := s.store.ReleaseAssignment(ctx, assignment.ID, jobID)
	if err != nil {
		s.logger.Error("Failed to reject job",
			slog.String("job_id", jobID),
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return nil, err
	}

	staffName := s.actorName(ctx, userID)
	s.notifyOwner(ctx, job, "Job Rejected",
		fmt.Sprintf("%s has rejected the job %q. It is back in the queue.", staffName, job.Title),
		notice.TypeWarning,
	)
	return updated, nil
}

// DeleteJob removes a job and its assignments. Owner only, any status.
func (s *Service) DeleteJob(ctx context.Context, jobID, ownerID string) error {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return err
	}
	if job.OwnerID != ownerID {
		return domain.ErrNotJobOwner
	}

	if err := s.store.DeleteJob(ctx, jobID); err != nil {
		s.logger.Error("Failed to delete job",
			slog.String("job_id", jobID),
			slog.String("owner_id", ownerID),
			slog.Any("error", err),
		)
		return err
	}

	s.logger.Info("Job deleted",
		slog.String("job_id", jobID),
		slog.String("owner_id", ownerID),
	)
	return nil
}

// GetJob returns a single job.
func (s *Service) GetJob(ctx context.Context, jobID string) (*domain.Job, error) {
	return s.store.GetJob(ctx, jobID)
}

// ListJobs returns jobs matching the filter.
func (s *Service) ListJobs(ctx context.Context, filter storage.JobFilter) ([]domain.Job, error) {
	return s.store.ListJobs(ctx, filter)
}

// ListJobsByStatus returns every job currently in the given status.
func (s *Service) ListJobsByStatus(ctx context.Context, status domain.JobStatus) ([]domain.Job, error) {
	return s.store.ListJobsByStatus(ctx, status)
}

// ViewApplications lists the assignment rows of a job.
func (s *Service) ViewApplications(ctx context.Context, jobID string) ([]domain.JobAssignment, error) {
	if _, err := s.store.GetJob(ctx, jobID); err != nil {
		return nil, err
	}
	return s.store.ListAssignments(ctx, jobID)
}

// MyAssignedJobs lists the jobs a staff user holds assignments on.
func (s *Service) MyAssignedJobs(ctx context.Context, userID string) ([]domain.Job, error) {
	return s.store.ListAssignedJobs(ctx, userID)
}

// Earnings summarizes a staff user's completed work.
type Earnings struct {
	TotalEarnings float64
	JobsCount     int
	Jobs          []domain.Job
}

// MyEarnings totals the budgets of the COMPLETED and APPROVED jobs the
// user worked.
func (s *Service) MyEarnings(ctx context.Context, userID string) (*Earnings, error) {
	jobs, err := s.store.ListEarnedJobs(ctx, userID)
	if err != nil {
		return nil, err
	}

	var total float64
	for _, job := range jobs {
		if job.Budget != nil {
			total += *job.Budget
		}
	}
	return &Earnings{TotalEarnings: total, JobsCount: len(jobs), Jobs: jobs}, nil
}
