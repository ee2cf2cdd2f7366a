package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/stayhub/maintenance-be/internal/api/domain"
	"github.com/stayhub/maintenance-be/internal/api/model"
)

// GetUser looks up a user in the directory.
func (s *Storage) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var row model.User
	err := s.db.GetContext(ctx, &row, `
		SELECT id, full_name, role, created_at
		FROM users
		WHERE id = $1
	`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return row.ToDomain(), nil
}

// FirstAvailableStaff picks the first STAFF user with no assignment on a
// PENDING or IN_PROGRESS job. Insertion order keeps the selection stable;
// there is no load balancing.
func (s *Storage) FirstAvailableStaff(ctx context.Context) (*domain.User, error) {
	var row model.User
	err := s.db.GetContext(ctx, &row, `
		SELECT u.id, u.full_name, u.role, u.created_at
		FROM users u
		WHERE u.role = $1
		  AND NOT EXISTS (
			SELECT 1
			FROM job_assignments a
			JOIN jobs j ON j.id = a.job_id
			WHERE a.applier_id = u.id
			  AND j.status IN ($2, $3)
		  )
		ORDER BY u.created_at ASC, u.id ASC
		LIMIT 1
	`, string(domain.RoleStaff), string(domain.JobStatusPending), string(domain.JobStatusInProgress))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNoEligibleStaff
		}
		return nil, fmt.Errorf("failed to find available staff: %w", err)
	}
	return row.ToDomain(), nil
}
