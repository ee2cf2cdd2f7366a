package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stayhub/maintenance-be/internal/notice"
	"github.com/stayhub/maintenance-be/internal/notifier/domain"
)

// uniqueViolation is the Postgres error code for duplicate keys.
const uniqueViolation = "23505"

// Storage handles the notification writes of the notifier service.
type Storage struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStorage creates a new Storage instance.
func NewStorage(db *sqlx.DB, logger *slog.Logger) *Storage {
	return &Storage{db: db, logger: logger}
}

// InsertNotification persists a delivered notice. Redeliveries of an
// already-inserted notice id surface as ErrDuplicateNotice.
func (s *Storage) InsertNotification(ctx context.Context, n *notice.Notice) error {
	query := `
		INSERT INTO notifications (
			id, user_id, title, message, type,
			related_id, related_type, is_read, created_at
		) VALUES (
			$1, $2, $3, $4, $5,
			NULLIF($6, ''), NULLIF($7, ''), FALSE, $8
		)
	`

	_, err := s.db.ExecContext(ctx, query,
		n.ID,
		n.UserID,
		n.Title,
		n.Message,
		string(n.Type),
		n.RelatedID,
		n.RelatedType,
		time.Now(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			s.logger.Warn("Duplicate notice delivery",
				slog.String("notice_id", n.ID),
				slog.String("user_id", n.UserID),
			)
			return domain.ErrDuplicateNotice
		}
		return fmt.Errorf("failed to insert notification: %w", err)
	}

	s.logger.Info("Notification stored",
		slog.String("notice_id", n.ID),
		slog.String("user_id", n.UserID),
		slog.String("title", n.Title),
	)
	return nil
}
