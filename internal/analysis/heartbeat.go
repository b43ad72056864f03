package analysis

import (
	"context"
	"time"
)

// HeartbeatInterval is how often long running requests report that they are still alive.
const HeartbeatInterval = 4 * time.Second

// Heartbeat calls ping every interval until the returned stop function is called or ctx ends.
// stop waits for the ticker goroutine to exit.
func Heartbeat(ctx context.Context, interval time.Duration, ping func()) (stop func()) {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				ping()
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}
