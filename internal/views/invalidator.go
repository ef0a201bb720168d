// Package views owns the cache invalidation contract: after a successful
// mutation the owning workflow reports which cached views went stale, and
// a background worker evicts them. Invalidation is best-effort; it never
// blocks a response and never fails a committed mutation.
package views

import (
	"sync"

	"alumnihub/portal/internal/common"
	"alumnihub/portal/internal/constants"
	"alumnihub/portal/internal/logging"
)

// Invalidator fans view-key evictions out to the cache from a background
// goroutine.
type Invalidator struct {
	cache common.CacheInterface
	queue chan constants.ViewKey

	wg        sync.WaitGroup
	done      chan struct{}
	closeOnce sync.Once
}

// NewInvalidator starts the eviction worker. Buffer sizes the queue of
// pending evictions; notifications beyond a full buffer are dropped and
// logged rather than blocking the caller.
func NewInvalidator(cache common.CacheInterface, buffer int) *Invalidator {
	inv := &Invalidator{
		cache: cache,
		queue: make(chan constants.ViewKey, buffer),
		done:  make(chan struct{}),
	}
	go inv.run()
	return inv
}

// Invalidate queues evictions for the given views. Never blocks.
func (inv *Invalidator) Invalidate(keys ...constants.ViewKey) {
	for _, key := range keys {
		inv.wg.Add(1)
		select {
		case inv.queue <- key:
		default:
			inv.wg.Done()
			logging.Warn("view invalidation dropped, queue full", "view", key.String())
		}
	}
}

func (inv *Invalidator) run() {
	for key := range inv.queue {
		inv.cache.Delete(key.String())
		inv.wg.Done()
	}
	close(inv.done)
}

// Flush blocks until every queued eviction has been applied.
func (inv *Invalidator) Flush() {
	inv.wg.Wait()
}

// Close drains the queue and stops the worker. Shutdown only; Invalidate
// must not be called afterwards.
func (inv *Invalidator) Close() {
	inv.closeOnce.Do(func() {
		close(inv.queue)
		<-inv.done
	})
}
