package xdi2

import (
	"sync"
	"time"
)

/*
cache.go offers a generic, thread-safe, in-memory resolution cache for
*ContextNode lookups. It exists for Graph implementations whose
FindContextNode is not a cheap in-memory map access -- a networked or
disk-backed Graph, for instance -- so that a dispatcher handling a burst
of operations against the same targets need not repeat an expensive
resolution on every operation.

MemoryGraph does not use this type internally; its own FindContextNode
is already an in-memory map walk and gains nothing from a second cache
in front of it.
*/

type cachedNode struct {
	value  *ContextNode
	expiry time.Time
}

/*
ResolutionCache is a thread-safe, memory-based cache associating a
canonical address string with a previously resolved *ContextNode.

Entries expire after their configured lifespan; requesting an expired
entry deletes it and returns a miss, mirroring ordinary cache semantics
rather than returning stale data. Freeze/Thaw impose a read-only policy
without discarding the cache's current contents.
*/
type ResolutionCache struct {
	cap    int
	lock   sync.Mutex
	frozen bool
	nodes  map[string]cachedNode
}

// NewResolutionCache returns an initialized *ResolutionCache. A cap of
// zero disables the entry-count ceiling.
func NewResolutionCache(cap int) *ResolutionCache {
	if cap < 0 {
		cap = 0
	}
	return &ResolutionCache{cap: cap, nodes: make(map[string]cachedNode, cap)}
}

// IsZero returns true if the receiver is nil.
func (c *ResolutionCache) IsZero() bool { return c == nil }

// Len returns the number of entries presently cached, expired or not.
func (c *ResolutionCache) Len() int {
	if c.IsZero() {
		return 0
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	return len(c.nodes)
}

// Get returns the cached node for addr, or nil on a miss or expiry. An
// expired entry is deleted as a side effect of the lookup.
func (c *ResolutionCache) Get(addr string) *ContextNode {
	if c.IsZero() {
		return nil
	}
	c.lock.Lock()
	defer c.lock.Unlock()

	item, ok := c.nodes[addr]
	if !ok {
		return nil
	}
	if time.Now().After(item.expiry) {
		if !c.frozen {
			delete(c.nodes, addr)
		}
		return nil
	}
	return item.value
}

// Add associates node with addr for the given lifespan. A lifespan <= 0
// is a no-op: the caller is declaring the entry uncacheable. Add is
// itself a no-op on a frozen or full cache (full meaning the receiver's
// cap has been reached and addr is not already present).
func (c *ResolutionCache) Add(addr string, node *ContextNode, lifespan time.Duration) {
	if c.IsZero() || c.frozen || node == nil || lifespan <= 0 {
		return
	}
	c.lock.Lock()
	defer c.lock.Unlock()

	if _, exists := c.nodes[addr]; !exists && c.cap > 0 && len(c.nodes) >= c.cap {
		return
	}
	c.nodes[addr] = cachedNode{value: node, expiry: time.Now().Add(lifespan)}
}

// Remove deletes the named entries regardless of expiry status.
func (c *ResolutionCache) Remove(addr ...string) {
	if c.IsZero() || c.frozen {
		return
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	for _, a := range addr {
		delete(c.nodes, a)
	}
}

// Tidy purges only expired entries.
func (c *ResolutionCache) Tidy() {
	if c.IsZero() || c.frozen {
		return
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	now := time.Now()
	for k, v := range c.nodes {
		if now.After(v.expiry) {
			delete(c.nodes, k)
		}
	}
}

// Flush purges every entry, expired or not.
func (c *ResolutionCache) Flush() {
	if c.IsZero() || c.frozen {
		return
	}
	c.lock.Lock()
	defer c.lock.Unlock()
	c.nodes = make(map[string]cachedNode, c.cap)
}

// Freeze prevents Add, Remove, Tidy and Flush from taking effect until
// Thaw is called. Reads via Get continue to work, and no longer delete
// expired entries as a side effect while frozen.
func (c *ResolutionCache) Freeze() {
	if !c.IsZero() {
		c.lock.Lock()
		defer c.lock.Unlock()
		c.frozen = true
	}
}

// Thaw reverses Freeze.
func (c *ResolutionCache) Thaw() {
	if !c.IsZero() {
		c.lock.Lock()
		defer c.lock.Unlock()
		c.frozen = false
	}
}

// Frozen reports the receiver's freeze state.
func (c *ResolutionCache) Frozen() bool {
	if c.IsZero() {
		return false
	}
	return c.frozen
}

// CachingGraph wraps a Graph with a ResolutionCache, fronting
// FindContextNode with a cache lookup before falling through to the
// wrapped Graph. Every other Graph method passes straight through.
type CachingGraph struct {
	Graph
	cache    *ResolutionCache
	lifespan time.Duration
}

// NewCachingGraph returns a CachingGraph wrapping g, caching resolved
// nodes for lifespan using a cache of the given capacity (0 = unbounded).
func NewCachingGraph(g Graph, capacity int, lifespan time.Duration) *CachingGraph {
	return &CachingGraph{Graph: g, cache: NewResolutionCache(capacity), lifespan: lifespan}
}

func (cg *CachingGraph) FindContextNode(path Segment, createIfMissing bool) (*ContextNode, error) {
	key := path.String()
	if n := cg.cache.Get(key); n != nil {
		return n, nil
	}
	n, err := cg.Graph.FindContextNode(path, createIfMissing)
	if err == nil && n != nil {
		cg.cache.Add(key, n, cg.lifespan)
	}
	return n, err
}
