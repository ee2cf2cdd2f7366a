package service

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/stayhub/maintenance-be/internal/api/domain"
	"github.com/stayhub/maintenance-be/internal/api/storage"
	"github.com/stayhub/maintenance-be/internal/notice"
)

// Store is the persistence surface the lifecycle engine drives. It is
// implemented by the Postgres storage and by in-memory fakes in tests.
type Store interface {
	CreateJob(ctx context.Context, job *domain.Job) error
	GetJob(ctx context.Context, jobID string) (*domain.Job, error)
	DeleteJob(ctx context.Context, jobID string) error
	TransitionStatus(ctx context.Context, jobID string, from, to domain.JobStatus) (*domain.Job, error)
	SubmitForReview(ctx context.Context, jobID string, beforeImage, afterImage *string) (*domain.Job, error)
	ReviewJob(ctx context.Context, jobID string, verdict domain.JobStatus, reason *string) (*domain.Job, error)
	AssignJob(ctx context.Context, assignment *domain.JobAssignment) (*domain.Job, error)
	ReleaseAssignment(ctx context.Context, assignmentID, jobID string) (*domain.Job, error)
	CreateApplication(ctx context.Context, assignment *domain.JobAssignment) error
	ListAssignments(ctx context.Context, jobID string) ([]domain.JobAssignment, error)
	FindAssignment(ctx context.Context, jobID, applierID string) (*domain.JobAssignment, error)
	ListJobs(ctx context.Context, filter storage.JobFilter) ([]domain.Job, error)
	ListJobsByStatus(ctx context.Context, status domain.JobStatus) ([]domain.Job, error)
	ListAssignedJobs(ctx context.Context, applierID string) ([]domain.Job, error)
	ListEarnedJobs(ctx context.Context, applierID string) ([]domain.Job, error)
}

// Directory is the read-only user lookup the engine consumes.
type Directory interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	FirstAvailableStaff(ctx context.Context) (*domain.User, error)
}

// Notifier accepts fire-and-forget notices. Errors are logged by the
// engine and never change the outcome of a transition.
type Notifier interface {
	Notify(ctx context.Context, n notice.Notice) error
}

// Service is the job lifecycle engine: it validates and executes every
// state transition and orchestrates the notification side effects.
type Service struct {
	store        Store
	directory    Directory
	notifier     Notifier
	logger       *slog.Logger
	legacySubmit bool
}

// Config holds the engine's dependencies.
type Config struct {
	Store        Store
	Directory    Directory
	Notifier     Notifier
	Logger       *slog.Logger
	LegacySubmit bool
}

// New creates a lifecycle engine.
func New(cfg *Config) *Service {
	return &Service{
		store:        cfg.Store,
		directory:    cfg.Directory,
		notifier:     cfg.Notifier,
		logger:       cfg.Logger,
		legacySubmit: cfg.LegacySubmit,
	}
}

// LegacySubmitEnabled reports whether the direct PENDING -> COMPLETED
// submit flow is reachable.
func (s *Service) LegacySubmitEnabled() bool {
	return s.legacySubmit
}

// notifyOwner publishes a notice to the job's owner. Delivery is best
// effort: failures are logged and swallowed so the triggering transition
// never fails because of its notification.
func (s *Service) notifyOwner(ctx context.Context, job *domain.Job, title, message string, typ notice.Type) {
	n := notice.Notice{
		ID:          uuid.New().String(),
		UserID:      job.OwnerID,
		Title:       title,
		Message:     message,
		Type:        typ,
		RelatedID:   job.ID,
		RelatedType: notice.RelatedTypeJob,
	}

	if err := s.notifier.Notify(ctx, n); err != nil {
		s.logger.Warn("Failed to publish notification",
			slog.String("title", title),
			slog.String("user_id", job.OwnerID),
			slog.String("job_id", job.ID),
			slog.Any("error", err),
		)
	}
}

// actorName resolves a user's display name for notification messages,
// falling back to a generic label when the lookup fails.
func (s *Service) actorName(ctx context.Context, userID string) string {
	user, err := s.directory.GetUser(ctx, userID)
	if err != nil {
		s.logger.Debug("Failed to resolve actor name",
			slog.String("user_id", userID),
			slog.Any("error", err),
		)
		return "Staff"
	}
	return user.DisplayName()
}
