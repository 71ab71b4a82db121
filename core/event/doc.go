// Package event provides a synchronous, priority-ordered event dispatcher.
//
// Listeners are registered for an event name with an integer priority. Higher
// priorities run first; listeners with equal priority run in registration order.
// Registration returns a Handle which is the only way to remove the listener again,
// so a listener can unregister itself by capturing its own handle.
//
// # Basic Usage
//
//	d := event.NewDispatcher()
//
//	h := event.On(d, "user.created", func(ctx context.Context, evt *UserCreated) error {
//		return sendWelcome(ctx, evt.Email)
//	}, 0)
//
//	if err := d.Dispatch(ctx, "user.created", &UserCreated{Email: "a@b.c"}); err != nil {
//		// the first listener error aborts the dispatch and is returned as-is
//	}
//
//	d.RemoveListener(h)
//
// # Stopping Propagation
//
// Events that embed Propagation (or otherwise implement Stoppable) can stop the
// remaining listeners from running:
//
//	type RequestEvent struct {
//		event.Propagation
//		// ...
//	}
//
// # Layered Dispatch
//
// Dispatch merges the listeners of several dispatchers into one priority order.
// This lets short-lived, per-request listeners live in their own Dispatcher while
// still interleaving with process-wide listeners:
//
//	err := event.Dispatch(ctx, "kernel.response", evt, global, requestScoped)
//
// # Subscribers
//
// A Subscriber declares a static table of bindings:
//
//	func (l *Listener) SubscribedEvents() map[string][]event.Binding {
//		return map[string][]event.Binding{
//			"kernel.exception": {
//				event.Bind(l.LogKernelException, 2048),
//				event.Bind(l.OnKernelException, -128),
//			},
//		}
//	}
//
//	d.AddSubscriber(listener)
package event
