package cache

import "sync"

// Key identifies one encoded frame.
type Key struct {
	Width  int
	Height int

	// Tick is the frame time in milliseconds.
	Tick int64
}

// FrameCache is a thread-safe LRU of encoded frames with a byte budget.
// When the cached bytes exceed the budget, least recently used frames are
// evicted.
type FrameCache struct {
	mu      sync.Mutex
	entries map[Key]*frameEntry
	lru     lruList[Key]
	budget  int

	hits      uint64
	misses    uint64
	evictions uint64
}

// frameEntry holds a cached frame with its position in the LRU list.
type frameEntry struct {
	data []byte
	node *lruNode[Key]
}

// New creates a cache holding at most budget bytes of frame data.
// A budget of 0 or less disables caching.
func New(budget int) *FrameCache {
	return &FrameCache{
		entries: make(map[Key]*frameEntry),
		budget:  max(budget, 0),
	}
}

// Get returns the frame stored under key and marks it recently used.
// Callers must not modify the returned slice.
func (c *FrameCache) Get(key Key) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		return nil, false
	}
	c.hits++
	c.lru.MoveToFront(e.node)
	return e.data, true
}

// Set stores data under key, replacing any previous frame. Frames larger
// than the whole budget are not stored.
func (c *FrameCache) Set(key Key, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(data) > c.budget {
		return
	}
	if e, ok := c.entries[key]; ok {
		e.data = data
		c.lru.Resize(e.node, len(data))
		c.lru.MoveToFront(e.node)
	} else {
		c.entries[key] = &frameEntry{data: data, node: c.lru.PushFront(key, len(data))}
	}
	c.evict()
}

// GetOrCreate returns the cached frame for key, calling create on a miss.
// create runs without the lock held, so concurrent misses on the same
// key may each call it; the last result is kept.
func (c *FrameCache) GetOrCreate(key Key, create func() ([]byte, error)) ([]byte, error) {
	if data, ok := c.Get(key); ok {
		return data, nil
	}
	data, err := create()
	if err != nil {
		return nil, err
	}
	c.Set(key, data)
	return data, nil
}

// Clear removes all frames. Statistics are kept.
func (c *FrameCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[Key]*frameEntry)
	c.lru.Clear()
}

// Len returns the number of cached frames.
func (c *FrameCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns cache statistics.
func (c *FrameCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	s := Stats{
		Len:       len(c.entries),
		Bytes:     c.lru.Bytes(),
		Budget:    c.budget,
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}
	if total := c.hits + c.misses; total > 0 {
		s.HitRate = float64(c.hits) / float64(total)
	}
	return s
}

// evict drops least recently used frames until within budget.
// Caller must hold c.mu.
func (c *FrameCache) evict() {
	for c.lru.Bytes() > c.budget {
		key, ok := c.lru.RemoveOldest()
		if !ok {
			return
		}
		delete(c.entries, key)
		c.evictions++
	}
}

// Stats contains cache statistics.
type Stats struct {
	Len       int     `json:"len"`
	Bytes     int     `json:"bytes"`
	Budget    int     `json:"budget"`
	Hits      uint64  `json:"hits"`
	Misses    uint64  `json:"misses"`
	Evictions uint64  `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}
