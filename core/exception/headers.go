package exception

import (
	"context"
	"sync/atomic"

	"github.com/dmitrymomot/httpkernel/core/event"
	"github.com/dmitrymomot/httpkernel/core/kernel"
)

// RemoveHeaderOnce registers a response listener on d that deletes header from
// the next response dispatched through d and then unregisters itself.
// It fires at most once even if dispatches race.
func RemoveHeaderOnce(d *event.Dispatcher, header string, priority int) event.Handle {
	var (
		self  event.Handle
		fired atomic.Bool
	)
	self = event.On(d, kernel.EventResponse, func(_ context.Context, evt *kernel.ResponseEvent) error {
		if !fired.CompareAndSwap(false, true) {
			return nil
		}
		if resp := evt.Response(); resp != nil {
			resp.Header.Del(header)
		}
		d.RemoveListener(self)
		return nil
	}, priority)
	return self
}
