package notify

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sendRetries = 2

// QueueDispatcher buffers events in a bounded in-process queue consumed
// by background workers. Dispatch never blocks: when the queue is full
// the event is dropped with a log line. A nil transport simulates sends
// by logging the rendered message, mirroring the behaviour of running
// without an API key.
type QueueDispatcher struct {
	from      string
	transport Transport
	logger    *zap.Logger

	queue chan queued
	wg    sync.WaitGroup

	closeOnce sync.Once
}

type queued struct {
	id    string
	event Event
}

// NewQueueDispatcher starts workers consuming the queue. Close drains
// and stops them.
func NewQueueDispatcher(from string, transport Transport, logger *zap.Logger, queueSize, workers int) *QueueDispatcher {
	if queueSize <= 0 {
		queueSize = 64
	}
	if workers <= 0 {
		workers = 1
	}
	d := &QueueDispatcher{
		from:      from,
		transport: transport,
		logger:    logger,
		queue:     make(chan queued, queueSize),
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Dispatch queues one event for delivery.
func (d *QueueDispatcher) Dispatch(ctx context.Context, e Event) Outcome {
	q := queued{id: uuid.NewString(), event: e}
	select {
	case d.queue <- q:
		return Outcome{Accepted: true}
	default:
		d.logger.Warn("notification queue full, dropping event",
			zap.String("message_id", q.id),
			zap.String("type", string(e.Type)),
			zap.String("to", e.To))
		return Outcome{Accepted: false}
	}
}

// Close stops accepting events and waits for queued ones to be handled.
func (d *QueueDispatcher) Close() {
	d.closeOnce.Do(func() { close(d.queue) })
	d.wg.Wait()
}

func (d *QueueDispatcher) worker() {
	defer d.wg.Done()
	for q := range d.queue {
		d.deliver(q)
	}
}

func (d *QueueDispatcher) deliver(q queued) {
	msg, err := Render(q.event)
	if err != nil {
		d.logger.Error("render notification", zap.String("message_id", q.id), zap.Error(err))
		return
	}
	if d.transport == nil {
		d.logger.Info("email simulated (no transport configured)",
			zap.String("message_id", q.id),
			zap.String("type", string(q.event.Type)),
			zap.String("to", q.event.To),
			zap.String("subject", msg.Subject))
		return
	}

	var lastErr error
	for attempt := 0; attempt <= sendRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(time.Duration(attempt) * time.Second)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		providerID, err := d.transport.SendEmail(ctx, d.from, q.event.To, msg.Subject, msg.HTML, msg.Text)
		cancel()
		if err == nil {
			d.logger.Info("email sent",
				zap.String("message_id", q.id),
				zap.String("provider_id", providerID),
				zap.String("type", string(q.event.Type)),
				zap.String("to", q.event.To))
			return
		}
		lastErr = err
	}
	// Fall back to logging the content; the triggering operation has
	// already succeeded and must not be affected.
	d.logger.Warn("email delivery failed, content logged",
		zap.String("message_id", q.id),
		zap.String("type", string(q.event.Type)),
		zap.String("to", q.event.To),
		zap.String("subject", msg.Subject),
		zap.Error(lastErr))
}
