package storage

import (
	"context"
	"fmt"

	"github.com/stayhub/maintenance-be/internal/api/model"
)

// ListNotifications returns a user's notifications, newest first.
func (s *Storage) ListNotifications(ctx context.Context, userID string) ([]model.Notification, error) {
	var rows []model.Notification
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, user_id, title, message, type, related_id, related_type, is_read, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return rows, nil
}

// MarkNotificationRead flags one notification as read.
func (s *Storage) MarkNotificationRead(ctx context.Context, notificationID string) error {
	_, err := s.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE id = $1
	`, notificationID)
	if err != nil {
		return fmt.Errorf("failed to mark notification read: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead flags every unread notification of a user as
// read and returns the number updated.
func (s *Storage) MarkAllNotificationsRead(ctx context.Context, userID string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = TRUE WHERE user_id = $1 AND is_read = FALSE
	`, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to mark notifications read: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return affected, nil
}
