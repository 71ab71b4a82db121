package event

import (
	"context"
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
)

// Handle identifies a registered listener.
type Handle struct {
	name string
	id   uint64
	d    *Dispatcher
}

// EventName returns the event the listener is registered for.
func (h Handle) EventName() string {
	return h.name
}

// IsZero reports whether h was never returned by a registration.
func (h Handle) IsZero() bool {
	return h.d == nil
}

type entry struct {
	id       uint64
	priority int
	fn       Listener
}

// Dispatcher keeps listeners per event name. Safe for concurrent use.
// Listeners are invoked outside the lock, so they may add or remove listeners
// (including themselves) while being dispatched.
type Dispatcher struct {
	mu        sync.RWMutex
	seq       uint64
	listeners map[string][]entry
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{listeners: make(map[string][]entry)}
}

// AddListener registers fn for the event name.
func (d *Dispatcher) AddListener(name string, fn Listener, priority int) Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.listeners == nil {
		d.listeners = make(map[string][]entry)
	}

	d.seq++
	e := entry{id: d.seq, priority: priority, fn: fn}

	list := d.listeners[name]
	// keep the slice ordered: priority desc, then registration order
	i := sort.Search(len(list), func(i int) bool { return list[i].priority < priority })
	list = append(list, entry{})
	copy(list[i+1:], list[i:])
	list[i] = e
	d.listeners[name] = list

	return Handle{name: name, id: e.id, d: d}
}

// On registers a type-safe listener.
func On[T any](d *Dispatcher, name string, fn ListenerFunc[T], priority int) Handle {
	return d.AddListener(name, Typed(fn), priority)
}

// RemoveListener unregisters the listener identified by h.
// Returns false if it was already removed or belongs to another dispatcher.
func (d *Dispatcher) RemoveListener(h Handle) bool {
	if h.d != d {
		return false
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	list := d.listeners[h.name]
	for i := range list {
		if list[i].id == h.id {
			list = append(list[:i:i], list[i+1:]...)
			if len(list) == 0 {
				delete(d.listeners, h.name)
			} else {
				d.listeners[h.name] = list
			}
			return true
		}
	}
	return false
}

// AddSubscriber registers every binding of s and returns their handles.
func (d *Dispatcher) AddSubscriber(s Subscriber) []Handle {
	var handles []Handle
	for name, bindings := range s.SubscribedEvents() {
		for _, b := range bindings {
			handles = append(handles, d.AddListener(name, b.Listener, b.Priority))
		}
	}
	return handles
}

// HasListeners reports whether any listener is registered for name.
func (d *Dispatcher) HasListeners(name string) bool {
	return d.ListenerCount(name) > 0
}

// ListenerCount returns the number of listeners registered for name.
func (d *Dispatcher) ListenerCount(name string) int {
	if d == nil {
		return 0
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners[name])
}

// Dispatch invokes the listeners for name in priority order.
func (d *Dispatcher) Dispatch(ctx context.Context, name string, evt any) error {
	return Dispatch(ctx, name, evt, d)
}

func (d *Dispatcher) snapshot(name string) []entry {
	if d == nil {
		return nil
	}
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]entry(nil), d.listeners[name]...)
}

// Dispatch invokes the listeners of all given dispatchers for name, merged into a
// single priority order. Equal priorities keep dispatcher order, then registration
// order. Nil dispatchers are skipped.
//
// The first listener error aborts the dispatch and is returned unchanged.
// Panics are converted to errors wrapping ErrListenerPanic.
func Dispatch(ctx context.Context, name string, evt any, ds ...*Dispatcher) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var entries []entry
	for _, d := range ds {
		entries = append(entries, d.snapshot(name)...)
	}
	if len(ds) > 1 {
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].priority > entries[j].priority
		})
	}

	stoppable, _ := evt.(Stoppable)
	for _, e := range entries {
		if stoppable != nil && stoppable.IsPropagationStopped() {
			break
		}
		if err := safeCall(ctx, e.fn, evt); err != nil {
			return err
		}
	}
	return nil
}

func safeCall(ctx context.Context, fn Listener, evt any) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v\n%s", ErrListenerPanic, r, debug.Stack())
		}
	}()
	return fn(ctx, evt)
}
