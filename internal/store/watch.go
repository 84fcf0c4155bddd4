package store

import (
	"context"
	"sync"

	"github.com/shelfsync/shelfsync/models"
)

// watchHub fans out "something committed" signals to subscribers. Signals
// carry no payload; each subscriber re-reads the current snapshot, so a
// subscriber that misses intermediate states still converges on the latest
// committed set (at-least-once, commit order).
type watchHub struct {
	mu   sync.Mutex
	subs map[int]chan struct{}
	next int
}

func newWatchHub() *watchHub {
	return &watchHub{subs: make(map[int]chan struct{})}
}

func (h *watchHub) subscribe() (int, <-chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.next
	h.next++
	ch := make(chan struct{}, 1)
	h.subs[id] = ch
	return id, ch
}

func (h *watchHub) unsubscribe(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

func (h *watchHub) notify() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, ch := range h.subs {
		select {
		case ch <- struct{}{}:
		default:
			// a pending signal already guarantees a re-read
		}
	}
}

// Watch implements ProductRepository.
func (p *productRepository) Watch(ctx context.Context, includeDeleted bool) <-chan []models.Product {
	out := make(chan []models.Product)
	id, signal := p.hub.subscribe()

	go func() {
		defer close(out)
		defer p.hub.unsubscribe(id)

		emit := func() bool {
			snapshot, err := p.GetAll(ctx, includeDeleted)
			if err != nil {
				p.logger.Err(err).
					Str("func", "productRepository.Watch").
					Msg("failed to load snapshot for watch stream")
				return true
			}
			select {
			case out <- snapshot:
				return true
			case <-ctx.Done():
				return false
			}
		}

		// immediate emission of the current snapshot upon subscription
		if !emit() {
			return
		}

		for {
			select {
			case <-ctx.Done():
				return
			case <-signal:
				if !emit() {
					return
				}
			}
		}
	}()

	return out
}
