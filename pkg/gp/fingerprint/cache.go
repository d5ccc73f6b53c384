package fingerprint

// Entry is a single cache slot's payload: the full signature that claims
// it, plus the fitness vector computed for that signature.
type Entry struct {
	Signature Signature
	Fitness   []float64
	occupied  bool
}

// Cache is a bounded, direct-mapped hash table of 2^k slots keyed by the
// low-k bits of a Signature (spec.md §4.3). A slot stores the full
// signature alongside its fitness vector; a lookup compares the full
// signature, and a mismatch on an occupied slot replaces the older entry
// (no chaining, no eviction bookkeeping beyond that).
//
// Unlike the teacher's fitness_cache.go (a sync.Map, since deck
// optimization runs may share a cache across goroutines), this cache is
// a plain slice: spec.md §5 make the cache "exclusively owned by the
// evaluator for the run" within a single-threaded evolution loop, so no
// synchronization is needed here.
type Cache struct {
	slots  []Entry
	mask   uint64
	k      uint
	hits   uint64
	misses uint64
}

// NewCache returns a Cache sized to 2^k slots.
func NewCache(k uint) *Cache {
	size := uint64(1) << k
	return &Cache{
		slots: make([]Entry, size),
		mask:  size - 1,
		k:     k,
	}
}

func (c *Cache) index(sig Signature) uint64 {
	return sig.Lo & c.mask
}

// Get returns the cached fitness for sig, if present.
func (c *Cache) Get(sig Signature) ([]float64, bool) {
	slot := &c.slots[c.index(sig)]
	if slot.occupied && slot.Signature == sig {
		c.hits++
		return slot.Fitness, true
	}
	c.misses++
	return nil, false
}

// Insert stores fitness for sig, replacing whatever previously occupied
// that slot (even if it was a different signature).
func (c *Cache) Insert(sig Signature, fitness []float64) {
	c.slots[c.index(sig)] = Entry{Signature: sig, Fitness: fitness, occupied: true}
}

// Occupied returns the number of currently occupied slots. Never exceeds
// the table size (spec.md §8 invariant).
func (c *Cache) Occupied() int {
	n := 0
	for i := range c.slots {
		if c.slots[i].occupied {
			n++
		}
	}
	return n
}

// Size returns the total number of slots (2^k).
func (c *Cache) Size() int {
	return len(c.slots)
}

// Hits and Misses report cumulative lookup statistics for the run.
func (c *Cache) Hits() uint64   { return c.hits }
func (c *Cache) Misses() uint64 { return c.misses }

// Clear resets the cache to empty, keeping its size.
func (c *Cache) Clear() {
	for i := range c.slots {
		c.slots[i] = Entry{}
	}
	c.hits, c.misses = 0, 0
}
