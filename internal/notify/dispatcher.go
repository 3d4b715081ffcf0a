package notify

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/SscSPs/expense_approvals/internal/core/domain"
	portssvc "github.com/SscSPs/expense_approvals/internal/core/ports/services"
	"github.com/SscSPs/expense_approvals/internal/middleware"
)

var (
	// ErrQueueFull is returned by Notify when the queue has no free slot.
	ErrQueueFull = errors.New("notification queue full")
	// ErrDispatcherClosed is returned by Notify after Stop.
	ErrDispatcherClosed = errors.New("notification dispatcher closed")
)

const (
	DefaultWorkers      = 4
	DefaultQueueSize    = 256
	DefaultDeliverLimit = 5 * time.Second
)

type job struct {
	ctx context.Context
	n   domain.Notification
}

// Dispatcher is a bounded worker pool that delivers notifications to its sinks.
type Dispatcher struct {
	sinks        []Sink
	queue        chan job
	deliverLimit time.Duration

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ portssvc.NotificationDispatcher = (*Dispatcher)(nil)

// NewDispatcher starts workers goroutines draining a queue of queueSize entries.
// Non-positive sizes fall back to the defaults.
func NewDispatcher(workers, queueSize int, sinks ...Sink) *Dispatcher {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	d := &Dispatcher{
		sinks:        sinks,
		queue:        make(chan job, queueSize),
		deliverLimit: DefaultDeliverLimit,
	}
	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}
	return d
}

// Notify enqueues n without blocking. The request context's values (logger) are kept
// but its cancellation is not, so delivery outlives the request.
func (d *Dispatcher) Notify(ctx context.Context, n domain.Notification) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrDispatcherClosed
	}
	select {
	case d.queue <- job{ctx: context.WithoutCancel(ctx), n: n}:
		return nil
	default:
		middleware.GetLoggerFromCtx(ctx).Warn("Notification dropped, queue full",
			slog.String("recipient_id", n.RecipientID),
			slog.String("kind", string(n.Kind())))
		return ErrQueueFull
	}
}

// Stop rejects new notifications and waits for queued ones to be delivered.
func (d *Dispatcher) Stop() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	d.wg.Wait()
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()
	for j := range d.queue {
		d.deliver(j)
	}
}

func (d *Dispatcher) deliver(j job) {
	for _, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(j.ctx, d.deliverLimit)
		err := sink.Deliver(ctx, j.n)
		cancel()
		if err != nil {
			middleware.GetLoggerFromCtx(j.ctx).Warn("Notification delivery failed",
				slog.String("recipient_id", j.n.RecipientID),
				slog.String("kind", string(j.n.Kind())),
				slog.String("error", err.Error()))
		}
	}
}
