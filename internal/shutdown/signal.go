// Package shutdown turns SIGINT and SIGTERM into context cancellation so
// in-flight simulated tasks stop cleanly when the user interrupts a run.
package shutdown

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WithCallback returns a context that is canceled on SIGTERM or SIGINT, or
// when the returned stop function is called. A non-nil callback receives the
// signal before cancellation.
func WithCallback(parent context.Context, callback func(os.Signal)) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	go func() {
		defer signal.Stop(sigChan)
		select {
		case sig := <-sigChan:
			if callback != nil {
				callback(sig)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, cancel
}
