package event_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/httpkernel/core/event"
)

type testEvent struct {
	event.Propagation
	calls []string
}

func record(name string) event.ListenerFunc[*testEvent] {
	return func(ctx context.Context, evt *testEvent) error {
		evt.calls = append(evt.calls, name)
		return nil
	}
}

func TestDispatchPriorityOrder(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	event.On(d, "test", record("low"), -10)
	event.On(d, "test", record("high-1"), 100)
	event.On(d, "test", record("zero"), 0)
	event.On(d, "test", record("high-2"), 100)

	evt := &testEvent{}
	require.NoError(t, d.Dispatch(context.Background(), "test", evt))
	assert.Equal(t, []string{"high-1", "high-2", "zero", "low"}, evt.calls)
}

func TestDispatchNoListeners(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	assert.False(t, d.HasListeners("missing"))
	assert.NoError(t, d.Dispatch(context.Background(), "missing", &testEvent{}))
}

func TestRemoveListener(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	h := event.On(d, "test", record("a"), 0)
	event.On(d, "test", record("b"), 0)
	assert.Equal(t, 2, d.ListenerCount("test"))
	assert.Equal(t, "test", h.EventName())
	assert.False(t, h.IsZero())

	assert.True(t, d.RemoveListener(h))
	assert.False(t, d.RemoveListener(h), "second removal is a no-op")

	evt := &testEvent{}
	require.NoError(t, d.Dispatch(context.Background(), "test", evt))
	assert.Equal(t, []string{"b"}, evt.calls)

	other := event.NewDispatcher()
	h2 := event.On(d, "test", record("c"), 0)
	assert.False(t, other.RemoveListener(h2), "handle of another dispatcher")
	assert.True(t, event.Handle{}.IsZero())
}

func TestListenerRemovesItself(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	var self event.Handle
	fired := 0
	self = event.On(d, "test", func(ctx context.Context, evt *testEvent) error {
		fired++
		d.RemoveListener(self)
		return nil
	}, 0)
	event.On(d, "test", record("after"), -1)

	for range 3 {
		evt := &testEvent{}
		require.NoError(t, d.Dispatch(context.Background(), "test", evt))
		assert.Equal(t, []string{"after"}, evt.calls)
	}
	assert.Equal(t, 1, fired)
	assert.Equal(t, 1, d.ListenerCount("test"))
}

func TestStopPropagation(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	event.On(d, "test", record("first"), 10)
	event.On(d, "test", func(ctx context.Context, evt *testEvent) error {
		evt.StopPropagation()
		return nil
	}, 5)
	event.On(d, "test", record("never"), 0)

	evt := &testEvent{}
	require.NoError(t, d.Dispatch(context.Background(), "test", evt))
	assert.Equal(t, []string{"first"}, evt.calls)
	assert.True(t, evt.IsPropagationStopped())
}

func TestDispatchErrorAborts(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	d := event.NewDispatcher()
	event.On(d, "test", func(ctx context.Context, evt *testEvent) error { return boom }, 10)
	event.On(d, "test", record("never"), 0)

	evt := &testEvent{}
	err := d.Dispatch(context.Background(), "test", evt)
	assert.Same(t, boom, err)
	assert.Empty(t, evt.calls)
}

func TestDispatchPanic(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	event.On(d, "test", func(ctx context.Context, evt *testEvent) error { panic("kaboom") }, 0)

	err := d.Dispatch(context.Background(), "test", &testEvent{})
	require.Error(t, err)
	assert.ErrorIs(t, err, event.ErrListenerPanic)
	assert.Contains(t, err.Error(), "kaboom")
}

func TestDispatchCancelledContext(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	event.On(d, "test", record("never"), 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	evt := &testEvent{}
	assert.ErrorIs(t, d.Dispatch(ctx, "test", evt), context.Canceled)
	assert.Empty(t, evt.calls)
}

func TestTypedMismatch(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	event.On(d, "test", record("typed"), 0)

	err := d.Dispatch(context.Background(), "test", "not an event")
	assert.ErrorIs(t, err, event.ErrUnexpectedEvent)
}

func TestLayeredDispatch(t *testing.T) {
	t.Parallel()

	global := event.NewDispatcher()
	scoped := event.NewDispatcher()

	event.On(global, "test", record("global-0"), 0)
	event.On(global, "test", record("global--200"), -200)
	event.On(scoped, "test", record("scoped-0"), 0)
	event.On(scoped, "test", record("scoped--128"), -128)
	event.On(scoped, "test", record("scoped-50"), 50)

	evt := &testEvent{}
	require.NoError(t, event.Dispatch(context.Background(), "test", evt, global, nil, scoped))
	assert.Equal(t, []string{"scoped-50", "global-0", "scoped-0", "scoped--128", "global--200"}, evt.calls)

	// scoped listeners never leak into the global dispatcher
	evt = &testEvent{}
	require.NoError(t, global.Dispatch(context.Background(), "test", evt))
	assert.Equal(t, []string{"global-0", "global--200"}, evt.calls)
}

type testSubscriber struct{}

func (testSubscriber) SubscribedEvents() map[string][]event.Binding {
	return map[string][]event.Binding{
		"a": {event.Bind(record("a-low"), -1), event.Bind(record("a-high"), 1)},
		"b": {event.Bind(record("b"), 0)},
	}
}

func TestAddSubscriber(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	handles := d.AddSubscriber(testSubscriber{})
	assert.Len(t, handles, 3)

	evt := &testEvent{}
	require.NoError(t, d.Dispatch(context.Background(), "a", evt))
	assert.Equal(t, []string{"a-high", "a-low"}, evt.calls)
	assert.Equal(t, 1, d.ListenerCount("b"))

	for _, h := range handles {
		assert.True(t, d.RemoveListener(h))
	}
	assert.False(t, d.HasListeners("a"))
}

func TestConcurrentRegistration(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			h := event.On(d, "test", record("x"), i)
			_ = d.Dispatch(context.Background(), "test", &testEvent{})
			d.RemoveListener(h)
		}()
	}
	wg.Wait()
	assert.False(t, d.HasListeners("test"))
}
