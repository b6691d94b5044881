// Package cache holds encoded frames keyed by size and frame time.
//
// FrameCache is an LRU bounded by the total size of the cached bytes
// rather than by entry count, since frame sizes vary with the requested
// resolution.
//
//	c := cache.New(64 << 20)
//	data, err := c.GetOrCreate(key, func() ([]byte, error) { return render(key) })
//
// FrameCache is safe for concurrent use and must not be copied after
// creation.
package cache
