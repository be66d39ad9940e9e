package notification

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type notifyFunc func(ctx context.Context, kind Kind, p Payload) error

func (f notifyFunc) Notify(ctx context.Context, kind Kind, p Payload) error {
	return f(ctx, kind, p)
}

type failureCounter struct {
	mu     sync.Mutex
	counts map[string]int
}

func (f *failureCounter) NotificationFailed(kind string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.counts == nil {
		f.counts = map[string]int{}
	}
	f.counts[kind]++
}

func (f *failureCounter) get(kind string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counts[kind]
}

func TestDispatcher_Delivers(t *testing.T) {
	var (
		mu   sync.Mutex
		got  []Kind
		seen Payload
	)
	n := notifyFunc(func(_ context.Context, kind Kind, p Payload) error {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, kind)
		seen = p
		return nil
	})
	failures := &failureCounter{}
	d := NewDispatcher(n, time.Second, zap.NewNop(), failures)

	d.Publish(KindConfirmation, Payload{BookingID: "b1"})
	d.Wait()

	assert.Equal(t, []Kind{KindConfirmation}, got)
	assert.Equal(t, "b1", seen.BookingID)
	assert.Zero(t, failures.get(string(KindConfirmation)))
}

func TestDispatcher_FailureIsLoggedAndCounted(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	failures := &failureCounter{}
	n := notifyFunc(func(context.Context, Kind, Payload) error {
		return errors.New("smtp down")
	})
	d := NewDispatcher(n, time.Second, zap.New(core), failures)

	d.Publish(KindCancellation, Payload{BookingID: "b2"})
	d.Publish(KindCancellation, Payload{BookingID: "b3"})
	d.Wait()

	assert.Equal(t, 2, failures.get(string(KindCancellation)))
	entries := logs.FilterMessage("notification failed").All()
	require.Len(t, entries, 2)
	assert.Equal(t, string(KindCancellation), entries[0].ContextMap()["kind"])
}

func TestDispatcher_Timeout(t *testing.T) {
	failures := &failureCounter{}
	n := notifyFunc(func(ctx context.Context, _ Kind, _ Payload) error {
		<-ctx.Done()
		return ctx.Err()
	})
	d := NewDispatcher(n, 20*time.Millisecond, nil, failures)

	start := time.Now()
	d.Publish(KindTimeUpdated, Payload{})
	d.Wait()

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, 1, failures.get(string(KindTimeUpdated)))
}

func TestDispatcher_RecoversFromPanic(t *testing.T) {
	failures := &failureCounter{}
	n := notifyFunc(func(context.Context, Kind, Payload) error {
		panic("boom")
	})
	d := NewDispatcher(n, time.Second, nil, failures)

	d.Publish(KindStatusChanged, Payload{})
	d.Wait()

	assert.Equal(t, 1, failures.get(string(KindStatusChanged)))
}

func TestDispatcher_DetachedFromCaller(t *testing.T) {
	release := make(chan struct{})
	var ctxErr error
	n := notifyFunc(func(ctx context.Context, _ Kind, _ Payload) error {
		<-release
		ctxErr = ctx.Err()
		return nil
	})
	d := NewDispatcher(n, time.Second, nil, nil)

	d.Publish(KindConfirmation, Payload{})
	close(release)
	d.Wait()

	assert.NoError(t, ctxErr)
}
