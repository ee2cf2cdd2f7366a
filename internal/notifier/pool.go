package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/stayhub/maintenance-be/internal/notifier/domain"
)

// spawnPool starts the delivery worker goroutines.
func (n *Notifier) spawnPool(ctx context.Context) {
	n.logger.Info("Spawning delivery pool",
		slog.Int("concurrency", n.concurrency),
	)

	for i := 0; i < n.concurrency; i++ {
		n.wg.Add(1)
		go n.workerLoop(ctx, i)
	}
}

// workerLoop processes notices and acks or nacks each delivery.
func (n *Notifier) workerLoop(ctx context.Context, workerNum int) {
	defer n.wg.Done()

	workerName := fmt.Sprintf("%s-%d", n.consumerID, workerNum)
	n.logger.Info("Delivery worker started", slog.String("worker", workerName))

	for {
		select {
		case <-n.stopChan:
			n.logger.Info("Delivery worker stopping", slog.String("worker", workerName))
			return

		case <-ctx.Done():
			n.logger.Info("Delivery worker stopping - context canceled",
				slog.String("worker", workerName),
			)
			return

		case nd, ok := <-n.noticesChan:
			if !ok {
				return
			}

			err := n.processNotice(ctx, nd)

			channel := n.rabbitClient.GetChannel()
			if channel == nil {
				n.logger.Error("No RabbitMQ channel for ack",
					slog.String("worker", workerName),
					slog.String("notice_id", nd.notice.ID),
				)
				continue
			}

			if err != nil {
				requeue := shouldRequeue(err)
				n.logger.Error("Notice delivery failed",
					slog.String("worker", workerName),
					slog.String("notice_id", nd.notice.ID),
					slog.Bool("requeue", requeue),
					slog.String("error", err.Error()),
				)
				if nackErr := channel.Nack(nd.deliveryTag, false, requeue); nackErr != nil {
					n.logger.Error("Failed to NACK notice",
						slog.String("worker", workerName),
						slog.String("error", nackErr.Error()),
					)
				}
				continue
			}

			if ackErr := channel.Ack(nd.deliveryTag, false); ackErr != nil {
				n.logger.Error("Failed to ACK notice",
					slog.String("worker", workerName),
					slog.String("notice_id", nd.notice.ID),
					slog.String("error", ackErr.Error()),
				)
			}
		}
	}
}

// shouldRequeue keeps invalid and duplicate notices out of the queue;
// only transient infrastructure failures come back.
func shouldRequeue(err error) bool {
	if errors.Is(err, domain.ErrInvalidNotice) || errors.Is(err, domain.ErrDuplicateNotice) {
		return false
	}

	var retryable *domain.RetryableError
	return errors.As(err, &retryable)
}
