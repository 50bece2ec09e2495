// Package cache provides a generic sharded LRU cache.
//
// It backs the stores that the compositing and synthesis engines keep warm
// between frames: generated impulse-response buffers, parsed filter chains,
// and gaussian blur kernels. The cache is safe for concurrent use; single
// threaded callers simply pay an uncontended lock.
package cache

// Stats holds a point-in-time snapshot of cache counters.
type Stats struct {
	// Len is the current number of entries across all shards.
	Len int

	// Capacity is the per-shard capacity.
	Capacity int

	// TotalCapacity is Capacity summed over all shards.
	TotalCapacity int

	// Hits is the number of lookups that found an entry.
	Hits uint64

	// Misses is the number of lookups that found nothing.
	Misses uint64

	// HitRate is Hits / (Hits + Misses), or 0 before any lookup.
	HitRate float64

	// Evictions is the number of entries removed by the LRU policy.
	Evictions uint64
}
