package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/stayhub/maintenance-be/internal/notice"
	amqp "github.com/rabbitmq/amqp091-go"
)

// setupConsumer configures QoS and starts consuming the notice queue.
func (n *Notifier) setupConsumer() (<-chan amqp.Delivery, error) {
	channel := n.rabbitClient.GetChannel()
	if channel == nil {
		return nil, fmt.Errorf("rabbitmq channel is nil")
	}

	// Per-consumer prefetch keeps one slow worker from hoarding messages.
	if err := channel.Qos(n.prefetchCount, 0, false); err != nil {
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	deliveries, err := n.rabbitClient.Consume(n.consumerID)
	if err != nil {
		return nil, fmt.Errorf("failed to start consuming: %w", err)
	}

	n.logger.Info("Notice consumer started",
		slog.String("consumer_id", n.consumerID),
		slog.Int("prefetch_count", n.prefetchCount),
	)
	return deliveries, nil
}

// dispatch reads deliveries and hands parsed notices to the worker pool.
// Malformed bodies are dropped without requeue.
func (n *Notifier) dispatch(ctx context.Context, deliveries <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			n.logger.Info("Dispatcher stopped - context canceled")
			return

		case delivery, ok := <-deliveries:
			if !ok {
				n.logger.Warn("RabbitMQ delivery channel closed")
				return
			}

			var msg notice.Notice
			if err := json.Unmarshal(delivery.Body, &msg); err != nil {
				n.logger.Error("Failed to parse notice JSON",
					slog.String("error", err.Error()),
					slog.String("body", string(delivery.Body)),
				)
				if nackErr := delivery.Nack(false, false); nackErr != nil {
					n.logger.Error("Failed to NACK malformed notice",
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			nd := &noticeDelivery{notice: msg, deliveryTag: delivery.DeliveryTag}

			select {
			case n.noticesChan <- nd:
				n.logger.Debug("Notice dispatched to worker pool",
					slog.String("notice_id", msg.ID),
					slog.Uint64("delivery_tag", delivery.DeliveryTag),
				)
			case <-ctx.Done():
				// Requeue so another consumer can pick it up after shutdown.
				if nackErr := delivery.Nack(false, true); nackErr != nil {
					n.logger.Error("Failed to NACK notice on shutdown",
						slog.String("error", nackErr.Error()),
					)
				}
				return
			}
		}
	}
}
