package receipt

import (
	"sync"
)

// queryCache is a process-wide read cache keyed by (namespace, operation,
// argument). It has no TTL; writes and deletes invalidate the whole
// namespace. Single-instance deployment is assumed, so there is no
// cross-process coherency.
type queryCache struct {
	mu      sync.RWMutex
	entries map[string]map[string]any
}

func newQueryCache() *queryCache {
	return &queryCache{entries: make(map[string]map[string]any)}
}

func (c *queryCache) get(ns, op, arg string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	byNS, ok := c.entries[ns]
	if !ok {
		return nil, false
	}
	v, ok := byNS[op+"\x00"+arg]
	return v, ok
}

func (c *queryCache) set(ns, op, arg string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	byNS, ok := c.entries[ns]
	if !ok {
		byNS = make(map[string]any)
		c.entries[ns] = byNS
	}
	byNS[op+"\x00"+arg] = v
}

// invalidate drops every cached view for a namespace.
func (c *queryCache) invalidate(ns string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, ns)
}
