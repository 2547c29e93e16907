package suggest

import (
	"context"
	"errors"
	"sync"
)

// ErrSuperseded is returned for a request whose session started a newer one
// before it finished.
var ErrSuperseded = errors.New("suggestion superseded by a newer request")

// Coordinator keeps at most one live request per session key. Starting a new
// request cancels the previous one for the same key, and only the latest
// request's result may be applied.
type Coordinator struct {
	mu       sync.Mutex
	next     uint64
	inflight map[string]flight
}

type flight struct {
	gen    uint64
	cancel context.CancelFunc
}

// Ticket identifies one started request.
type Ticket struct {
	key    string
	gen    uint64
	cancel context.CancelFunc
}

func NewCoordinator() *Coordinator {
	return &Coordinator{inflight: make(map[string]flight)}
}

// Begin registers a request for key, cancelling any earlier one, and returns a
// context that is cancelled when a newer request for key begins.
func (c *Coordinator) Begin(ctx context.Context, key string) (context.Context, Ticket) {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if prev, ok := c.inflight[key]; ok {
		prev.cancel()
	}
	c.next++
	c.inflight[key] = flight{gen: c.next, cancel: cancel}
	return ctx, Ticket{key: key, gen: c.next, cancel: cancel}
}

// Finish releases t and reports whether it is still the latest request for its key.
func (c *Coordinator) Finish(t Ticket) bool {
	t.cancel()

	c.mu.Lock()
	defer c.mu.Unlock()

	cur, ok := c.inflight[t.key]
	if !ok || cur.gen != t.gen {
		return false
	}
	delete(c.inflight, t.key)
	return true
}

// InFlight is the number of session keys with a live request.
func (c *Coordinator) InFlight() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.inflight)
}
