package service

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// InvalidateWorker listens for PostgreSQL NOTIFY on the 'channel_changes'
// channel and batches cache invalidations. If one user uploads ten folders
// in quick succession, their cache entries are dropped once per window.
type InvalidateWorker struct {
	pool    *pgxpool.Pool
	cache   *CacheService
	batchMs time.Duration

	mu      sync.Mutex
	pending map[string]struct{} // user IDs waiting for invalidation
}

// NewInvalidateWorker creates a cache invalidation worker.
func NewInvalidateWorker(pool *pgxpool.Pool, cache *CacheService) *InvalidateWorker {
	return &InvalidateWorker{
		pool:    pool,
		cache:   cache,
		batchMs: 5 * time.Second,
		pending: make(map[string]struct{}),
	}
}

// Start begins listening for channel_changes notifications and processing batches.
func (w *InvalidateWorker) Start(ctx context.Context) {
	log.Printf("invalidate-worker: starting (batch window=%s)", w.batchMs)

	for {
		if err := w.listenLoop(ctx); err != nil {
			if ctx.Err() != nil {
				log.Println("invalidate-worker: stopping (context cancelled)")
				return
			}
			log.Printf("invalidate-worker: listen error, reconnecting in 5s: %v", err)
			select {
			case <-time.After(5 * time.Second):
			case <-ctx.Done():
				log.Println("invalidate-worker: stopping (context cancelled)")
				return
			}
		}
	}
}

// listenLoop acquires a dedicated connection, LISTENs on channel_changes,
// and processes notifications in batched windows.
func (w *InvalidateWorker) listenLoop(ctx context.Context) error {
	conn, err := w.pool.Acquire(ctx)
	if err != nil {
		return err
	}
	defer conn.Release()

	_, err = conn.Exec(ctx, "LISTEN channel_changes")
	if err != nil {
		return err
	}
	log.Println("invalidate-worker: listening on channel_changes")

	// Start the batch flush goroutine
	flushCtx, flushCancel := context.WithCancel(ctx)
	defer flushCancel()
	go w.flushLoop(flushCtx)

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}

		userID := notification.Payload
		if userID == "" {
			continue
		}

		w.mu.Lock()
		w.pending[userID] = struct{}{}
		w.mu.Unlock()
	}
}

// flushLoop periodically drains the pending set and invalidates caches.
func (w *InvalidateWorker) flushLoop(ctx context.Context) {
	ticker := time.NewTicker(w.batchMs)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.flush(ctx)
		case <-ctx.Done():
			// Final flush before exit
			w.flush(context.Background())
			return
		}
	}
}

// flush drains the pending set and drops each user's cached entries.
func (w *InvalidateWorker) flush(ctx context.Context) {
	w.mu.Lock()
	if len(w.pending) == 0 {
		w.mu.Unlock()
		return
	}

	// Swap out the pending map
	batch := w.pending
	w.pending = make(map[string]struct{})
	w.mu.Unlock()

	invalidated := 0
	for userID := range batch {
		if w.cache != nil {
			if err := w.cache.InvalidateUser(ctx, userID); err != nil {
				log.Printf("invalidate-worker: cache invalidate error for %s: %v", userID, err)
				continue
			}
		}
		invalidated++
	}

	if invalidated > 0 {
		log.Printf("invalidate-worker: batch complete, %d users invalidated (from %d notifications)",
			invalidated, len(batch))
	}
}
