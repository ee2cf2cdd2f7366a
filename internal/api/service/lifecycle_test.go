package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/maintenance-be/internal/api/domain"
	"github.com/stayhub/maintenance-be/internal/api/storage"
	"github.com/stayhub/maintenance-be/internal/notice"
)

// memStore is an in-memory Store with the same conditional-update
// semantics as the Postgres storage.
type memStore struct {
	jobs        map[string]*domain.Job
	assignments map[string]*domain.JobAssignment

	// onAssign runs inside AssignJob before the status check, letting
	// tests interleave a concurrent writer.
	onAssign func()
}

func newMemStore() *memStore {
	return &memStore{
		jobs:        make(map[string]*domain.Job),
		assignments: make(map[string]*domain.JobAssignment),
	}
}

func (m *memStore) CreateJob(_ context.Context, job *domain.Job) error {
	cp := *job
	m.jobs[job.ID] = &cp
	return nil
}

func (m *memStore) GetJob(_ context.Context, jobID string) (*domain.Job, error) {
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	cp := *job
	return &cp, nil
}

func (m *memStore) DeleteJob(_ context.Context, jobID string) error {
	if _, ok := m.jobs[jobID]; !ok {
		return domain.ErrJobNotFound
	}
	delete(m.jobs, jobID)
	for id, a := range m.assignments {
		if a.JobID == jobID {
			delete(m.assignments, id)
		}
	}
	return nil
}

func (m *memStore) TransitionStatus(_ context.Context, jobID string, from, to domain.JobStatus) (*domain.Job, error) {
	job, ok := m.jobs[jobID]
	if !ok || job.Status != from {
		return nil, domain.ErrStatusConflict
	}
	job.Status = to
	job.UpdatedAt = time.Now()
	cp := *job
	return &cp, nil
}

func (m *memStore) SubmitForReview(_ context.Context, jobID string, beforeImage, afterImage *string) (*domain.Job, error) {
	job, ok := m.jobs[jobID]
	if !ok || (job.Status != domain.JobStatusInProgress && job.Status != domain.JobStatusRejected) {
		return nil, domain.ErrStatusConflict
	}
	job.Status = domain.JobStatusAwaitingReview
	job.BeforeImage = beforeImage
	job.AfterImage = afterImage
	job.RejectionReason = nil
	job.UpdatedAt = time.Now()
	cp := *job
	return &cp, nil
}

func (m *memStore) ReviewJob(_ context.Context, jobID string, verdict domain.JobStatus, reason *string) (*domain.Job, error) {
	job, ok := m.jobs[jobID]
	if !ok || job.Status != domain.JobStatusAwaitingReview {
		return nil, domain.ErrStatusConflict
	}
	job.Status = verdict
	if verdict == domain.JobStatusRejected {
		job.RejectionReason = reason
	}
	job.UpdatedAt = time.Now()
	cp := *job
	return &cp, nil
}

func (m *memStore) AssignJob(_ context.Context, assignment *domain.JobAssignment) (*domain.Job, error) {
	if m.onAssign != nil {
		m.onAssign()
	}
	job, ok := m.jobs[assignment.JobID]
	if !ok || job.Status != domain.JobStatusQueued {
		return nil, domain.ErrStatusConflict
	}
	cp := *assignment
	m.assignments[assignment.ID] = &cp
	job.Status = domain.JobStatusPending
	job.UpdatedAt = time.Now()
	jc := *job
	return &jc, nil
}

func (m *memStore) ReleaseAssignment(_ context.Context, assignmentID, jobID string) (*domain.Job, error) {
	delete(m.assignments, assignmentID)
	job, ok := m.jobs[jobID]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	job.Status = domain.JobStatusQueued
	job.RejectionReason = nil
	job.UpdatedAt = time.Now()
	cp := *job
	return &cp, nil
}

func (m *memStore) CreateApplication(_ context.Context, assignment *domain.JobAssignment) error {
	cp := *assignment
	m.assignments[assignment.ID] = &cp
	return nil
}

func (m *memStore) ListAssignments(_ context.Context, jobID string) ([]domain.JobAssignment, error) {
	var out []domain.JobAssignment
	for _, a := range m.assignments {
		if a.JobID == jobID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (m *memStore) FindAssignment(_ context.Context, jobID, applierID string) (*domain.JobAssignment, error) {
	for _, a := range m.assignments {
		if a.JobID == jobID && a.ApplierID == applierID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotAssignee
}

func (m *memStore) ListJobs(_ context.Context, filter storage.JobFilter) ([]domain.Job, error) {
	var out []domain.Job
	for _, j := range m.jobs {
		if filter.OwnerID != "" && j.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && j.Status != filter.Status {
			continue
		}
		out = append(out, *j)
	}
	return out, nil
}

func (m *memStore) ListJobsByStatus(_ context.Context, status domain.JobStatus) ([]domain.Job, error) {
	var out []domain.Job
	for _, j := range m.jobs {
		if j.Status == status {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (m *memStore) ListAssignedJobs(_ context.Context, applierID string) ([]domain.Job, error) {
	var out []domain.Job
	for _, a := range m.assignments {
		if a.ApplierID != applierID {
			continue
		}
		if j, ok := m.jobs[a.JobID]; ok {
			out = append(out, *j)
		}
	}
	return out, nil
}

func (m *memStore) ListEarnedJobs(_ context.Context, applierID string) ([]domain.Job, error) {
	var out []domain.Job
	for _, a := range m.assignments {
		if a.ApplierID != applierID {
			continue
		}
		j, ok := m.jobs[a.JobID]
		if !ok {
			continue
		}
		if j.Status == domain.JobStatusCompleted || j.Status == domain.JobStatusApproved {
			out = append(out, *j)
		}
	}
	return out, nil
}

type memDirectory struct {
	users []*domain.User
}

func (d *memDirectory) GetUser(_ context.Context, userID string) (*domain.User, error) {
	for _, u := range d.users {
		if u.ID == userID {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (d *memDirectory) FirstAvailableStaff(_ context.Context) (*domain.User, error) {
	for _, u := range d.users {
		if u.Role == domain.RoleStaff {
			return u, nil
		}
	}
	return nil, domain.ErrNoEligibleStaff
}

type captureNotifier struct {
	notices []notice.Notice
	err     error
}

func (n *captureNotifier) Notify(_ context.Context, msg notice.Notice) error {
	if n.err != nil {
		return n.err
	}
	n.notices = append(n.notices, msg)
	return nil
}

type fixture struct {
	svc      *Service
	store    *memStore
	dir      *memDirectory
	notifier *captureNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	dir := &memDirectory{}
	notifier := &captureNotifier{}
	svc := New(&Config{
		Store:     store,
		Directory: dir,
		Notifier:  notifier,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	})
	return &fixture{svc: svc, store: store, dir: dir, notifier: notifier}
}

func (f *fixture) seedJob(t *testing.T, ownerID string, status domain.JobStatus) *domain.Job {
	t.Helper()
	job := &domain.Job{
		ID:        uuid.New().String(),
		Title:     "Fix leaking faucet",
		Status:    status,
		Urgency:   domain.JobUrgencyNormal,
		OwnerID:   ownerID,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	f.store.jobs[job.ID] = job
	return job
}

func (f *fixture) seedAssignment(t *testing.T, jobID, applierID string) *domain.JobAssignment {
	t.Helper()
	a := &domain.JobAssignment{
		ID:        uuid.New().String(),
		JobID:     jobID,
		ApplierID: applierID,
		CreatedAt: time.Now(),
	}
	f.store.assignments[a.ID] = a
	return a
}

func TestService_CreateJob(t *testing.T) {
	f := newFixture(t)

	budget := 150.0
	job, err := f.svc.CreateJob(context.Background(), "owner-1", CreateJobInput{
		Title:       "Replace AC filter",
		Description: "Room 204",
		Budget:      &budget,
	})
	require.NoError(t, err)

	assert.Equal(t, domain.JobStatusQueued, job.Status)
	assert.Equal(t, domain.JobUrgencyNormal, job.Urgency, "urgency should default to NORMAL")
	assert.Equal(t, "owner-1", job.OwnerID)
	assert.NotEmpty(t, job.ID)

	stored, err := f.store.GetJob(context.Background(), job.ID)
	require.NoError(t, err)
	assert.Equal(t, job.ID, stored.ID)
}

func TestService_ApplyToJob(t *testing.T) {
	t.Run("job not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ApplyToJob(context.Background(), "staff-1", "missing")
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})

	t.Run("records application", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusQueued)

		application, err := f.svc.ApplyToJob(context.Background(), "staff-1", job.ID)
		require.NoError(t, err)
		assert.Equal(t, "staff-1", application.ApplierID)

		found, err := f.store.FindAssignment(context.Background(), job.ID, "staff-1")
		require.NoError(t, err)
		assert.Equal(t, application.ID, found.ID)
	})
}

func TestService_AssignJob(t *testing.T) {
	t.Run("job not found", func(t *testing.T) {
		f := newFixture(t)

		_, _, err := f.svc.AssignJob(context.Background(), "missing", "staff-1", "owner-1")
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusQueued)

		_, _, err := f.svc.AssignJob(context.Background(), job.ID, "staff-1", "intruder")
		assert.ErrorIs(t, err, domain.ErrNotJobOwner)
	})

	t.Run("only QUEUED jobs can be assigned", func(t *testing.T) {
		statuses := []domain.JobStatus{
			domain.JobStatusPending,
			domain.JobStatusInProgress,
			domain.JobStatusAwaitingReview,
			domain.JobStatusCompleted,
			domain.JobStatusApproved,
		}
		for _, status := range statuses {
			t.Run(string(status), func(t *testing.T) {
				f := newFixture(t)
				job := f.seedJob(t, "owner-1", status)

				_, _, err := f.svc.AssignJob(context.Background(), job.ID, "staff-1", "owner-1")

				var stateErr *domain.StateError
				require.ErrorAs(t, err, &stateErr)
				assert.Equal(t, status, stateErr.Status)
			})
		}
	})

	t.Run("assigns and notifies the owner", func(t *testing.T) {
		f := newFixture(t)
		f.dir.users = []*domain.User{{ID: "staff-1", FullName: "Dana Reed", Role: domain.RoleStaff}}
		job := f.seedJob(t, "owner-1", domain.JobStatusQueued)

		updated, assignment, err := f.svc.AssignJob(context.Background(), job.ID, "staff-1", "owner-1")
		require.NoError(t, err)

		assert.Equal(t, domain.JobStatusPending, updated.Status)
		assert.Equal(t, "staff-1", assignment.ApplierID)

		require.Len(t, f.notifier.notices, 1)
		n := f.notifier.notices[0]
		assert.Equal(t, "owner-1", n.UserID)
		assert.Equal(t, "Job Assigned", n.Title)
		assert.Equal(t, notice.TypeInfo, n.Type)
		assert.Contains(t, n.Message, "Dana Reed")
		assert.Equal(t, job.ID, n.RelatedID)
	})

	t.Run("concurrent assignment loses the conditional update", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusQueued)

		// A rival assignment lands between the guard check and the write.
		f.store.onAssign = func() {
			f.store.jobs[job.ID].Status = domain.JobStatusPending
			f.store.onAssign = nil
		}

		_, _, err := f.svc.AssignJob(context.Background(), job.ID, "staff-1", "owner-1")
		assert.ErrorIs(t, err, domain.ErrStatusConflict)
		assert.Empty(t, f.notifier.notices, "no notification on a failed assignment")
	})

	t.Run("notification failure does not fail the assignment", func(t *testing.T) {
		f := newFixture(t)
		f.notifier.err = errors.New("broker unavailable")
		job := f.seedJob(t, "owner-1", domain.JobStatusQueued)

		updated, _, err := f.svc.AssignJob(context.Background(), job.ID, "staff-1", "owner-1")
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusPending, updated.Status)
	})
}

func TestService_AutoAssignJob(t *testing.T) {
	t.Run("no eligible staff", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusQueued)

		_, _, err := f.svc.AutoAssignJob(context.Background(), job.ID, "owner-1")
		assert.ErrorIs(t, err, domain.ErrNoEligibleStaff)

		stored, _ := f.store.GetJob(context.Background(), job.ID)
		assert.Equal(t, domain.JobStatusQueued, stored.Status, "job stays QUEUED")
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusQueued)

		_, _, err := f.svc.AutoAssignJob(context.Background(), job.ID, "intruder")
		assert.ErrorIs(t, err, domain.ErrNotJobOwner)
	})

	t.Run("picks the first available staff member", func(t *testing.T) {
		f := newFixture(t)
		f.dir.users = []*domain.User{
			{ID: "staff-1", FullName: "Dana Reed", Role: domain.RoleStaff},
			{ID: "staff-2", FullName: "Kim Ly", Role: domain.RoleStaff},
		}
		job := f.seedJob(t, "owner-1", domain.JobStatusQueued)

		updated, assignment, err := f.svc.AutoAssignJob(context.Background(), job.ID, "owner-1")
		require.NoError(t, err)

		assert.Equal(t, "staff-1", assignment.ApplierID)
		assert.Equal(t, domain.JobStatusPending, updated.Status)
		require.Len(t, f.notifier.notices, 1)
		assert.Equal(t, "Job Assigned", f.notifier.notices[0].Title)
	})
}

func TestService_AcceptJob(t *testing.T) {
	t.Run("unassigned user is forbidden", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusPending)

		_, err := f.svc.AcceptJob(context.Background(), job.ID, "staff-1")
		assert.ErrorIs(t, err, domain.ErrNotAssignee)
	})

	t.Run("only PENDING jobs can be accepted", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusInProgress)
		f.seedAssignment(t, job.ID, "staff-1")

		_, err := f.svc.AcceptJob(context.Background(), job.ID, "staff-1")

		var stateErr *domain.StateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, domain.JobStatusInProgress, stateErr.Status)
	})

	t.Run("moves to IN_PROGRESS and notifies the owner", func(t *testing.T) {
		f := newFixture(t)
		f.dir.users = []*domain.User{{ID: "staff-1", FullName: "Dana Reed", Role: domain.RoleStaff}}
		job := f.seedJob(t, "owner-1", domain.JobStatusPending)
		f.seedAssignment(t, job.ID, "staff-1")

		updated, err := f.svc.AcceptJob(context.Background(), job.ID, "staff-1")
		require.NoError(t, err)

		assert.Equal(t, domain.JobStatusInProgress, updated.Status)
		require.Len(t, f.notifier.notices, 1)
		assert.Equal(t, "Job Accepted", f.notifier.notices[0].Title)
		assert.Equal(t, notice.TypeInfo, f.notifier.notices[0].Type)
	})
}

func TestService_SubmitJob(t *testing.T) {
	before := "https://cdn.example.com/before.jpg"
	after := "https://cdn.example.com/after.jpg"

	t.Run("unassigned user is forbidden", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusInProgress)

		_, err := f.svc.SubmitJob(context.Background(), job.ID, "staff-1", &before, &after)
		assert.ErrorIs(t, err, domain.ErrNotAssignee)
	})

	t.Run("rejects submission from PENDING", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusPending)
		f.seedAssignment(t, job.ID, "staff-1")

		_, err := f.svc.SubmitJob(context.Background(), job.ID, "staff-1", &before, &after)

		var stateErr *domain.StateError
		require.ErrorAs(t, err, &stateErr)
	})

	t.Run("submits from IN_PROGRESS", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusInProgress)
		f.seedAssignment(t, job.ID, "staff-1")

		updated, err := f.svc.SubmitJob(context.Background(), job.ID, "staff-1", &before, &after)
		require.NoError(t, err)

		assert.Equal(t, domain.JobStatusAwaitingReview, updated.Status)
		require.NotNil(t, updated.BeforeImage)
		assert.Equal(t, before, *updated.BeforeImage)

		require.Len(t, f.notifier.notices, 1)
		assert.Equal(t, "Photos Submitted", f.notifier.notices[0].Title)
		assert.Equal(t, notice.TypeSuccess, f.notifier.notices[0].Type)
	})

	t.Run("resubmission after rejection clears the reason", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusRejected)
		reason := "after photo is too dark"
		f.store.jobs[job.ID].RejectionReason = &reason
		f.seedAssignment(t, job.ID, "staff-1")

		updated, err := f.svc.SubmitJob(context.Background(), job.ID, "staff-1", &before, &after)
		require.NoError(t, err)

		assert.Equal(t, domain.JobStatusAwaitingReview, updated.Status)
		assert.Nil(t, updated.RejectionReason)
	})
}

func TestService_SubmitJobLegacy(t *testing.T) {
	t.Run("status is checked before the assignment", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusQueued)

		_, err := f.svc.SubmitJobLegacy(context.Background(), job.ID, "staff-1")

		var stateErr *domain.StateError
		require.ErrorAs(t, err, &stateErr)
		assert.Equal(t, domain.JobStatusQueued, stateErr.Status)
	})

	t.Run("unassigned applier is forbidden", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusPending)

		_, err := f.svc.SubmitJobLegacy(context.Background(), job.ID, "staff-1")
		assert.ErrorIs(t, err, domain.ErrNotAssignee)
	})

	t.Run("moves PENDING straight to COMPLETED", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusPending)
		f.seedAssignment(t, job.ID, "staff-1")

		updated, err := f.svc.SubmitJobLegacy(context.Background(), job.ID, "staff-1")
		require.NoError(t, err)

		assert.Equal(t, domain.JobStatusCompleted, updated.Status)
		assert.Empty(t, f.notifier.notices, "legacy submit sends no notification")
	})
}

func TestService_ReviewJob(t *testing.T) {
	t.Run("invalid verdict", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusAwaitingReview)

		_, err := f.svc.ReviewJob(context.Background(), job.ID, "owner-1", domain.JobStatusCompleted, nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid review verdict")
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusAwaitingReview)

		_, err := f.svc.ReviewJob(context.Background(), job.ID, "intruder", domain.JobStatusApproved, nil)
		assert.ErrorIs(t, err, domain.ErrNotJobOwner)
	})

	t.Run("only AWAITING_REVIEW jobs can be reviewed", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusInProgress)

		_, err := f.svc.ReviewJob(context.Background(), job.ID, "owner-1", domain.JobStatusApproved, nil)

		var stateErr *domain.StateError
		require.ErrorAs(t, err, &stateErr)
	})

	t.Run("approval is terminal", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusAwaitingReview)

		updated, err := f.svc.ReviewJob(context.Background(), job.ID, "owner-1", domain.JobStatusApproved, nil)
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusApproved, updated.Status)
	})

	t.Run("rejection stores the reason", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusAwaitingReview)

		reason := "faucet still drips"
		updated, err := f.svc.ReviewJob(context.Background(), job.ID, "owner-1", domain.JobStatusRejected, &reason)
		require.NoError(t, err)

		assert.Equal(t, domain.JobStatusRejected, updated.Status)
		require.NotNil(t, updated.RejectionReason)
		assert.Equal(t, reason, *updated.RejectionReason)
	})
}

func TestService_ApproveJob(t *testing.T) {
	t.Run("non-owner is forbidden", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusCompleted)

		_, err := f.svc.ApproveJob(context.Background(), job.ID, "intruder")
		assert.ErrorIs(t, err, domain.ErrNotJobOwner)
	})

	t.Run("only COMPLETED jobs can be approved", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusPending)

		_, err := f.svc.ApproveJob(context.Background(), job.ID, "owner-1")

		var stateErr *domain.StateError
		require.ErrorAs(t, err, &stateErr)
	})

	t.Run("approves a completed job", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusCompleted)

		updated, err := f.svc.ApproveJob(context.Background(), job.ID, "owner-1")
		require.NoError(t, err)
		assert.Equal(t, domain.JobStatusApproved, updated.Status)
	})
}

func TestService_RejectJob(t *testing.T) {
	t.Run("unassigned user is forbidden", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusPending)

		_, err := f.svc.RejectJob(context.Background(), job.ID, "staff-1")
		assert.ErrorIs(t, err, domain.ErrNotAssignee)
	})

	t.Run("releases the assignment and requeues the job", func(t *testing.T) {
		statuses := []domain.JobStatus{
			domain.JobStatusPending,
			domain.JobStatusInProgress,
			domain.JobStatusRejected,
		}
		for _, status := range statuses {
			t.Run(string(status), func(t *testing.T) {
				f := newFixture(t)
				f.dir.users = []*domain.User{{ID: "staff-1", FullName: "Dana Reed", Role: domain.RoleStaff}}
				job := f.seedJob(t, "owner-1", status)
				if status == domain.JobStatusRejected {
					reason := "photos blurry"
					f.store.jobs[job.ID].RejectionReason = &reason
				}
				assignment := f.seedAssignment(t, job.ID, "staff-1")

				updated, err := f.svc.RejectJob(context.Background(), job.ID, "staff-1")
				require.NoError(t, err)

				assert.Equal(t, domain.JobStatusQueued, updated.Status)
				assert.Nil(t, updated.RejectionReason, "a requeued job carries no rejection reason")
				_, err = f.store.FindAssignment(context.Background(), job.ID, "staff-1")
				assert.ErrorIs(t, err, domain.ErrNotAssignee, "assignment %s should be gone", assignment.ID)

				require.Len(t, f.notifier.notices, 1)
				n := f.notifier.notices[0]
				assert.Equal(t, "Job Rejected", n.Title)
				assert.Equal(t, notice.TypeWarning, n.Type)
				assert.Equal(t, "owner-1", n.UserID)
			})
		}
	})
}

func TestService_DeleteJob(t *testing.T) {
	t.Run("job not found", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.DeleteJob(context.Background(), "missing", "owner-1")
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})

	t.Run("non-owner is forbidden", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusQueued)

		err := f.svc.DeleteJob(context.Background(), job.ID, "intruder")
		assert.ErrorIs(t, err, domain.ErrNotJobOwner)
	})

	t.Run("owner deletes in any status", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusInProgress)
		f.seedAssignment(t, job.ID, "staff-1")

		err := f.svc.DeleteJob(context.Background(), job.ID, "owner-1")
		require.NoError(t, err)

		_, err = f.store.GetJob(context.Background(), job.ID)
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})
}

func TestService_ViewApplications(t *testing.T) {
	t.Run("job not found", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.ViewApplications(context.Background(), "missing")
		assert.ErrorIs(t, err, domain.ErrJobNotFound)
	})

	t.Run("lists applications", func(t *testing.T) {
		f := newFixture(t)
		job := f.seedJob(t, "owner-1", domain.JobStatusQueued)
		f.seedAssignment(t, job.ID, "staff-1")
		f.seedAssignment(t, job.ID, "staff-2")

		apps, err := f.svc.ViewApplications(context.Background(), job.ID)
		require.NoError(t, err)
		assert.Len(t, apps, 2)
	})
}

func TestService_MyEarnings(t *testing.T) {
	f := newFixture(t)

	budgets := []float64{120, 80, 45}
	statuses := []domain.JobStatus{
		domain.JobStatusApproved,
		domain.JobStatusCompleted,
		domain.JobStatusInProgress, // not yet earned
	}
	for i, b := range budgets {
		job := f.seedJob(t, "owner-1", statuses[i])
		budget := b
		f.store.jobs[job.ID].Budget = &budget
		f.seedAssignment(t, job.ID, "staff-1")
	}

	earnings, err := f.svc.MyEarnings(context.Background(), "staff-1")
	require.NoError(t, err)

	assert.Equal(t, 200.0, earnings.TotalEarnings)
	assert.Equal(t, 2, earnings.JobsCount)
	assert.Len(t, earnings.Jobs, 2)
}

func TestService_FullLifecycle(t *testing.T) {
	f := newFixture(t)
	f.dir.users = []*domain.User{{ID: "staff-1", FullName: "Dana Reed", Role: domain.RoleStaff}}
	ctx := context.Background()

	job, err := f.svc.CreateJob(ctx, "owner-1", CreateJobInput{Title: "Repaint lobby wall"})
	require.NoError(t, err)
	require.Equal(t, domain.JobStatusQueued, job.Status)

	_, err = f.svc.ApplyToJob(ctx, "staff-1", job.ID)
	require.NoError(t, err)

	updated, _, err := f.svc.AssignJob(ctx, job.ID, "staff-1", "owner-1")
	require.NoError(t, err)
	require.Equal(t, domain.JobStatusPending, updated.Status)

	updated, err = f.svc.AcceptJob(ctx, job.ID, "staff-1")
	require.NoError(t, err)
	require.Equal(t, domain.JobStatusInProgress, updated.Status)

	before, after := "before.jpg", "after.jpg"
	updated, err = f.svc.SubmitJob(ctx, job.ID, "staff-1", &before, &after)
	require.NoError(t, err)
	require.Equal(t, domain.JobStatusAwaitingReview, updated.Status)

	reason := "wrong shade of white"
	updated, err = f.svc.ReviewJob(ctx, job.ID, "owner-1", domain.JobStatusRejected, &reason)
	require.NoError(t, err)
	require.Equal(t, domain.JobStatusRejected, updated.Status)

	updated, err = f.svc.SubmitJob(ctx, job.ID, "staff-1", &before, &after)
	require.NoError(t, err)
	require.Equal(t, domain.JobStatusAwaitingReview, updated.Status)
	require.Nil(t, updated.RejectionReason)

	updated, err = f.svc.ReviewJob(ctx, job.ID, "owner-1", domain.JobStatusApproved, nil)
	require.NoError(t, err)
	require.Equal(t, domain.JobStatusApproved, updated.Status)

	titles := make([]string, 0, len(f.notifier.notices))
	for _, n := range f.notifier.notices {
		titles = append(titles, n.Title)
	}
	assert.Equal(t, []string{"Job Assigned", "Job Accepted", "Photos Submitted", "Photos Submitted"}, titles)
	for _, n := range f.notifier.notices {
		assert.Equal(t, "owner-1", n.UserID, fmt.Sprintf("notice %q goes to the owner", n.Title))
	}
}
