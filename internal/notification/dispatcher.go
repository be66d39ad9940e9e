package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

const DefaultTimeout = 10 * time.Second

// FailureRecorder counts notifications that could not be delivered.
type FailureRecorder interface {
	NotificationFailed(kind string)
}

// Dispatcher runs every notification in its own goroutine under a bounded
// timeout detached from the request that triggered it.
type Dispatcher struct {
	notifier Notifier
	timeout  time.Duration
	log      *zap.Logger
	failures FailureRecorder
	wg       sync.WaitGroup
}

func NewDispatcher(notifier Notifier, timeout time.Duration, log *zap.Logger, failures FailureRecorder) *Dispatcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		notifier: notifier,
		timeout:  timeout,
		log:      log,
		failures: failures,
	}
}

func (d *Dispatcher) Publish(kind Kind, payload Payload) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.deliver(kind, payload); err != nil {
			d.log.Warn("notification failed",
				zap.String("kind", string(kind)),
				zap.String("booking_id", payload.BookingID),
				zap.Error(err),
			)
			if d.failures != nil {
				d.failures.NotificationFailed(string(kind))
			}
		}
	}()
}

// Wait blocks until every notification published so far has finished.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

func (d *Dispatcher) deliver(kind Kind, payload Payload) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier panicked: %v", r)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()
	return d.notifier.Notify(ctx, kind, payload)
}
