package notify

import (
	"context"
	"encoding/json"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/persistence"
)

// Worker drains the queue and pushes each record onto the Redis outbox
// list, where the external mailer picks it up. Without Redis it only logs.
type Worker struct {
	queue     *Queue
	redis     *persistence.Redis
	outboxKey string
	logger    *zap.Logger
	wg        sync.WaitGroup
}

// NewWorker constructs a worker bound to the queue.
func NewWorker(queue *Queue, redis *persistence.Redis, outboxKey string, logger *zap.Logger) *Worker {
	return &Worker{
		queue:     queue,
		redis:     redis,
		outboxKey: outboxKey,
		logger:    logger,
	}
}

// Start begins draining in a background goroutine.
func (w *Worker) Start(ctx context.Context) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for record := range w.queue.Records() {
			w.deliver(ctx, record)
		}
	}()
}

// Stop closes the queue and waits for remaining records to be handed off.
func (w *Worker) Stop() {
	w.queue.Close()
	w.wg.Wait()
}

func (w *Worker) deliver(ctx context.Context, record domain.NotificationRecord) {
	w.logger.Info("notification",
		zap.String("id", record.ID),
		zap.String("recipient", record.Recipient),
		zap.String("subject", record.Subject),
		zap.String("template", string(record.Template)),
	)

	if w.redis == nil || w.redis.Client == nil {
		return
	}

	payload, err := json.Marshal(record)
	if err != nil {
		w.logger.Error("marshal notification record", zap.Error(err))
		return
	}
	if err := w.redis.Client.LPush(ctx, w.outboxKey, payload).Err(); err != nil {
		// Delivery failures never propagate back to the update path.
		w.logger.Warn("push notification to outbox", zap.Error(err))
	}
}
