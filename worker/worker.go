package worker

import (
	"context"
	"log"
	"time"

	"filut/page"
)

// StartSessionSweeper removes page sessions that have been idle longer
// than ttl, checking every interval. It returns when ctx is cancelled.
func StartSessionSweeper(ctx context.Context, store *page.Store, interval, ttl time.Duration) error {
	log.Printf("Starting session sweeper (Interval: %v, TTL: %v)", interval, ttl)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Session sweeper stopped")
			return nil
		case <-ticker.C:
			sweep(store, ttl)
		}
	}
}

func sweep(store *page.Store, ttl time.Duration) {
	if removed := store.Sweep(ttl); removed > 0 {
		log.Printf("Expired %d page sessions, %d open", removed, store.Len())
	}
}
