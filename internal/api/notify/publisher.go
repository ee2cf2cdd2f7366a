// Package notify publishes lifecycle notices to RabbitMQ for the
// notifier service to deliver.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/stayhub/maintenance-be/internal/notice"
	"github.com/stayhub/maintenance-be/shared/rabbitmq"
)

// Publisher sends notices over RabbitMQ.
type Publisher struct {
	client *rabbitmq.Client
	logger *slog.Logger
}

// NewPublisher creates a notice publisher.
func NewPublisher(client *rabbitmq.Client, logger *slog.Logger) *Publisher {
	return &Publisher{client: client, logger: logger}
}

// Notify publishes one notice. The caller treats failures as
// best-effort; this only reports them.
func (p *Publisher) Notify(ctx context.Context, n notice.Notice) error {
	body, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to marshal notice: %w", err)
	}

	if err := p.client.PublishWithRetry(ctx, body, "application/json"); err != nil {
		return fmt.Errorf("failed to publish notice: %w", err)
	}

	p.logger.Debug("Notice published",
		slog.String("notice_id", n.ID),
		slog.String("user_id", n.UserID),
		slog.String("title", n.Title),
	)
	return nil
}
