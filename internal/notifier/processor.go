package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stayhub/maintenance-be/internal/notifier/domain"
)

// processNotice validates and persists a single notice. Duplicates are
// treated as already delivered and acknowledged.
func (n *Notifier) processNotice(ctx context.Context, nd *noticeDelivery) error {
	msg := &nd.notice

	if !msg.Valid() {
		return fmt.Errorf("%w: missing user, title or message", domain.ErrInvalidNotice)
	}

	if err := n.storage.InsertNotification(ctx, msg); err != nil {
		if errors.Is(err, domain.ErrDuplicateNotice) {
			return nil
		}
		// Storage failures are usually transient (connection loss,
		// failover); let the broker redeliver.
		return domain.NewRetryableError(err)
	}

	n.logger.Debug("Notice delivered",
		slog.String("notice_id", msg.ID),
		slog.String("user_id", msg.UserID),
	)
	return nil
}
