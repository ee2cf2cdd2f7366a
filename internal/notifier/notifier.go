// Package notifier consumes lifecycle notices from RabbitMQ and
// persists them as notification rows. Delivery is asynchronous on
// purpose: the API's transitions never wait for it.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/stayhub/maintenance-be/internal/notice"
	"github.com/stayhub/maintenance-be/internal/notifier/storage"
	"github.com/stayhub/maintenance-be/shared/postgresql"
	"github.com/stayhub/maintenance-be/shared/rabbitmq"
)

// Config holds notifier configuration.
type Config struct {
	Logger        *slog.Logger
	DBClient      *postgresql.Client
	RabbitClient  *rabbitmq.Client
	Concurrency   int
	PrefetchCount int
}

// noticeDelivery pairs a parsed notice with its AMQP delivery tag.
type noticeDelivery struct {
	notice      notice.Notice
	deliveryTag uint64
}

// noticeStore persists delivered notices.
type noticeStore interface {
	InsertNotification(ctx context.Context, n *notice.Notice) error
}

// Notifier is the notification delivery worker.
type Notifier struct {
	logger        *slog.Logger
	rabbitClient  *rabbitmq.Client
	storage       noticeStore
	concurrency   int
	prefetchCount int
	consumerID    string
	noticesChan   chan *noticeDelivery
	stopChan      chan struct{}
	wg            sync.WaitGroup
}

// New creates a notifier instance.
func New(cfg *Config) *Notifier {
	return &Notifier{
		logger:        cfg.Logger,
		rabbitClient:  cfg.RabbitClient,
		storage:       storage.NewStorage(cfg.DBClient.GetDB(), cfg.Logger),
		concurrency:   cfg.Concurrency,
		prefetchCount: cfg.PrefetchCount,
		consumerID:    fmt.Sprintf("notifier-%s", uuid.New().String()[:8]),
		noticesChan:   make(chan *noticeDelivery),
		stopChan:      make(chan struct{}),
	}
}

// Start subscribes to the notice queue and launches the dispatcher and
// worker pool. Processing continues until the context is canceled or
// Stop is called.
func (n *Notifier) Start(ctx context.Context) error {
	n.logger.Info("Starting notifier",
		slog.String("consumer_id", n.consumerID),
		slog.Int("concurrency", n.concurrency),
		slog.Int("prefetch_count", n.prefetchCount),
	)

	deliveries, err := n.setupConsumer()
	if err != nil {
		return fmt.Errorf("failed to set up consumer: %w", err)
	}

	n.spawnPool(ctx)

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.dispatch(ctx, deliveries)
		n.logger.Info("Notifier dispatcher exited")
	}()

	return nil
}

// Stop drains the worker pool.
func (n *Notifier) Stop() {
	n.logger.Info("Stopping notifier")
	close(n.stopChan)
	n.wg.Wait()
	n.logger.Info("Notifier stopped")
}
