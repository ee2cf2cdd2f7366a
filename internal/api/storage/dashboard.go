package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/stayhub/maintenance-be/internal/api/domain"
)

// CountJobsByStatus returns the number of jobs per status.
func (s *Storage) CountJobsByStatus(ctx context.Context) (map[domain.JobStatus]int, error) {
	rows, err := s.db.QueryxContext(ctx, `SELECT status, COUNT(*) FROM jobs GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("failed to count jobs by status: %w", err)
	}
	defer rows.Close()

	counts := make(map[domain.JobStatus]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[domain.JobStatus(status)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate status counts: %w", err)
	}
	return counts, nil
}

// ApprovedRevenueBetween sums the budgets of APPROVED jobs whose final
// update falls in [from, to).
func (s *Storage) ApprovedRevenueBetween(ctx context.Context, from, to time.Time) (float64, error) {
	var revenue float64
	err := s.db.GetContext(ctx, &revenue, `
		SELECT COALESCE(SUM(budget), 0)
		FROM jobs
		WHERE status = $1
		  AND updated_at >= $2
		  AND updated_at < $3
	`, string(domain.JobStatusApproved), from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to sum approved revenue: %w", err)
	}
	return revenue, nil
}

// AverageResolutionHours returns the mean time from creation to approval
// across APPROVED jobs, in hours. Zero when no job has been approved yet.
func (s *Storage) AverageResolutionHours(ctx context.Context) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.GetContext(ctx, &avg, `
		SELECT AVG(EXTRACT(EPOCH FROM (updated_at - created_at)) / 3600.0)
		FROM jobs
		WHERE status = $1
	`, string(domain.JobStatusApproved))
	if err != nil {
		return 0, fmt.Errorf("failed to average resolution time: %w", err)
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}
