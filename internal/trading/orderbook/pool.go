package orderbook

// initialPoolSize is the number of order records preallocated when a Book
// is constructed, sized for a modest replay session without forcing a grow
// on the first burst of adds. Mirrors the pre-fill idiom of the teacher's
// order pool, scaled down from a live multi-symbol gateway to a single
// replayed symbol.
const initialPoolSize = 1024

// Pool is a growable free list of *OrderRecord, used to eliminate
// per-message allocation on the Add path. It exclusively owns every
// record it has ever handed out (spec.md §5): a record is either resting
// on a Level, sitting in the free list, or invalid to touch.
type Pool struct {
	backing []*OrderRecord
	free    []*OrderRecord
}

// NewPool preallocates size records and returns a Pool with all of them
// on the free list.
func NewPool(size int) *Pool {
	if size <= 0 {
		size = initialPoolSize
	}
	p := &Pool{
		backing: make([]*OrderRecord, 0, size),
		free:    make([]*OrderRecord, 0, size),
	}
	for i := 0; i < size; i++ {
		r := &OrderRecord{}
		p.backing = append(p.backing, r)
		p.free = append(p.free, r)
	}
	return p
}

// Acquire pops a record off the free list, allocating and appending to the
// backing store if it's empty. The returned record's fields are whatever
// they were left as by the last Release; callers must fully initialise it
// before inserting it into the hash index or a level.
func (p *Pool) Acquire() *OrderRecord {
	n := len(p.free)
	if n == 0 {
		r := &OrderRecord{}
		p.backing = append(p.backing, r)
		return r
	}
	r := p.free[n-1]
	p.free = p.free[:n-1]
	return r
}

// Release returns r to the free list. The caller must have already
// unlinked r from its level and the hash index; Release does not clear or
// validate r's fields.
func (p *Pool) Release(r *OrderRecord) {
	p.free = append(p.free, r)
}

// Len reports the number of records ever allocated by this pool.
func (p *Pool) Len() int { return len(p.backing) }

// FreeLen reports the number of records currently available for Acquire.
func (p *Pool) FreeLen() int { return len(p.free) }
