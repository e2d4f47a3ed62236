package services

import (
	"context"
	"time"

	"time-track-invoice/internal/domain"
)

// WatchElapsed emits the running session's elapsed time every interval
// until ctx is cancelled. The values are recomputed locally from the
// session's start time; nothing is written back to the store. The
// channel is closed on cancellation.
func WatchElapsed(ctx context.Context, session *domain.Session, interval time.Duration) <-chan time.Duration {
	out := make(chan time.Duration, 1)

	go func() {
		defer close(out)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				elapsed := timeNow().Sub(session.StartTime)
				select {
				case out <- elapsed:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	return out
}
