// Package kernel implements an event-driven HTTP request pipeline.
//
// A Kernel resolves a controller for each request (from the _controller
// attribute, or by matching the URL against gorilla/mux routes), calls it and
// passes the result through a sequence of events:
//
//	kernel.request         listeners may answer early
//	kernel.response        listeners filter the response
//	kernel.exception       listeners may turn an error into a response
//	kernel.finish_request  always, after the request is done
//
// Each event is dispatched to the kernel's process-wide dispatcher merged with
// the request's own scoped dispatcher (Request.Listeners), so per-request
// listeners never observe other requests.
//
// # Sub-requests
//
// Handle can be re-entered from a listener to render something else for the
// same client request:
//
//	sub := evt.Request().Duplicate(http.MethodGet, map[string]any{
//		kernel.AttrController: "error.show",
//	})
//	resp, err := evt.Kernel().Handle(ctx, sub, kernel.SubRequest, false)
//
// Passing catch=false makes errors of the nested call propagate to the caller
// instead of being handled by the kernel.exception listeners again.
//
// # Usage
//
//	k := kernel.New(kernel.WithLogger(log))
//	k.Register("user.show", showUser)
//	if err := k.Route("/users/{id}", "user.show", http.MethodGet); err != nil {
//		return err
//	}
//	http.ListenAndServe(":8080", k)
package kernel
