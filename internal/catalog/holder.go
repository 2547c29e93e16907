package catalog

import "sync"

// Holder owns the current catalog. Readers get their own snapshot per
// computation; the catalog only changes through Replace.
type Holder struct {
	mu      sync.RWMutex
	current Catalog
	version uint64
}

// NewHolder returns a holder seeded with c.
func NewHolder(c Catalog) *Holder {
	return &Holder{current: c.Clone()}
}

// Snapshot returns a private copy of the current catalog.
func (h *Holder) Snapshot() Catalog {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.Clone()
}

// Version increases by one on every Replace.
func (h *Holder) Version() uint64 {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.version
}

// Replace swaps in c wholesale.
func (h *Holder) Replace(c Catalog) {
	next := c.Clone()
	h.mu.Lock()
	h.current = next
	h.version++
	h.mu.Unlock()
}
