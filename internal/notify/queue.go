// Package notify carries notification records from the issue service to
// the external mailer. Enqueue is fire-and-forget; delivery and retries
// happen outside this process.
package notify

import (
	"go.uber.org/zap"

	"github.com/spec-kit/issue-tracker/internal/domain"
	"github.com/spec-kit/issue-tracker/internal/observability"
)

// Dispatcher accepts notification records for asynchronous delivery.
type Dispatcher interface {
	Enqueue(record domain.NotificationRecord)
}

// Queue is a buffered in-process dispatcher drained by a Worker.
type Queue struct {
	records chan domain.NotificationRecord
	logger  *zap.Logger
	metrics *observability.Metrics
}

// NewQueue creates a queue with the given buffer size.
func NewQueue(size int, logger *zap.Logger, metrics *observability.Metrics) *Queue {
	if size <= 0 {
		size = 256
	}
	return &Queue{
		records: make(chan domain.NotificationRecord, size),
		logger:  logger,
		metrics: metrics,
	}
}

// Enqueue hands a record to the worker without blocking the caller.
// A full buffer drops the record; the update that produced it has already
// been applied and must not fail or roll back on dispatch problems.
func (q *Queue) Enqueue(record domain.NotificationRecord) {
	select {
	case q.records <- record:
		q.metrics.RecordNotificationEnqueued()
	default:
		q.metrics.RecordNotificationDropped()
		q.logger.Warn("notification queue full, dropping record",
			zap.String("recipient", record.Recipient),
			zap.String("template", string(record.Template)),
		)
	}
}

// Records exposes the channel for the draining worker.
func (q *Queue) Records() <-chan domain.NotificationRecord {
	return q.records
}

// Close stops accepting records. Pending records remain drainable.
func (q *Queue) Close() {
	close(q.records)
}
