// Package alert emails uncaught kernel errors whose severity reaches a
// threshold.
//
// A Notifier subscribes to kernel.EventException between the exception
// logger and the fallback renderer. It classifies the error with the same
// rules as the exception listener, suppresses repeats of the same error for
// a cooldown window, and delivers the message in the background so that the
// failing request is not delayed by the mail transport:
//
//	n, err := alert.New(alert.Config{
//		Sender:  sender,
//		To:      "oncall@example.com",
//		AppName: "api",
//		Logger:  log,
//	})
//	k.Dispatcher().AddSubscriber(n)
//	defer n.Wait()
//
// Notifier never fails the exception event; delivery errors are logged.
package alert
