package orderbook

import "hash/fnv"

// loadFactorThreshold triggers a grow once the table crosses it, per
// spec.md §4.1.
const loadFactorThreshold = 0.75

const defaultHashIndexCapacity = 64 // power of two

type slot struct {
	key      OrderID
	val      *OrderRecord
	probe    uint32
	occupied bool
}

// HashIndex is a Robin-Hood open-addressed map from OrderID to
// *OrderRecord. It holds non-owning references: the Pool owns the
// records, the HashIndex just makes them findable by id in amortised
// O(1). Capacity is always a power of two so probing can mask instead of
// mod.
type HashIndex struct {
	slots []slot
	mask  uint64
	size  int
}

// NewHashIndex returns an empty index sized to hold at least capacity
// entries without growing.
func NewHashIndex(capacity int) *HashIndex {
	n := defaultHashIndexCapacity
	for n < capacity*2 {
		n *= 2
	}
	return &HashIndex{
		slots: make([]slot, n),
		mask:  uint64(n - 1),
	}
}

func hashKey(id OrderID) uint64 {
	h := fnv.New64a()
	var b [8]byte
	v := uint64(id)
	for i := 0; i < 8; i++ {
		b[i] = byte(v >> (8 * i))
	}
	h.Write(b[:])
	return h.Sum64()
}

// Len reports the number of resting entries.
func (h *HashIndex) Len() int { return h.size }

func (h *HashIndex) loadFactor() float64 {
	return float64(h.size) / float64(len(h.slots))
}

// Insert is an idempotent upsert: inserting an id already present
// overwrites its value pointer instead of duplicating the key.
func (h *HashIndex) Insert(key OrderID, val *OrderRecord) {
	if h.loadFactor() >= loadFactorThreshold {
		h.grow()
	}
	idx := hashKey(key) & h.mask
	dist := uint32(0)
	for {
		s := &h.slots[idx]
		if !s.occupied {
			s.key, s.val, s.probe, s.occupied = key, val, dist, true
			h.size++
			return
		}
		if s.key == key {
			s.val = val
			return
		}
		if dist > s.probe {
			key, s.key = s.key, key
			val, s.val = s.val, val
			dist, s.probe = s.probe, dist
		}
		idx = (idx + 1) & h.mask
		dist++
	}
}

// Find returns the record for key, or (nil, false) on a miss. Probing
// stops as soon as a slot's own probe distance is smaller than the
// distance already walked — the Robin-Hood invariant guarantees no later
// slot could hold key at that point.
func (h *HashIndex) Find(key OrderID) (*OrderRecord, bool) {
	idx := hashKey(key) & h.mask
	dist := uint32(0)
	for {
		s := &h.slots[idx]
		if !s.occupied {
			return nil, false
		}
		if s.key == key {
			return s.val, true
		}
		if dist > s.probe {
			return nil, false
		}
		idx = (idx + 1) & h.mask
		dist++
	}
}

// Erase removes key via backward-shift deletion, which preserves the
// Robin-Hood invariant without tombstones. Returns false if key was not
// present.
func (h *HashIndex) Erase(key OrderID) bool {
	idx := hashKey(key) & h.mask
	dist := uint32(0)
	for {
		s := &h.slots[idx]
		if !s.occupied {
			return false
		}
		if s.key == key {
			h.backwardShift(idx)
			h.size--
			return true
		}
		if dist > s.probe {
			return false
		}
		idx = (idx + 1) & h.mask
		dist++
	}
}

func (h *HashIndex) backwardShift(hole uint64) {
	cur := hole
	for {
		next := (cur + 1) & h.mask
		ns := &h.slots[next]
		if !ns.occupied || ns.probe == 0 {
			h.slots[cur] = slot{}
			return
		}
		h.slots[cur] = slot{key: ns.key, val: ns.val, probe: ns.probe - 1, occupied: true}
		cur = next
	}
}

// grow doubles capacity and reinserts every occupied entry from scratch.
// No value pointers are invalidated; only slot positions move.
func (h *HashIndex) grow() {
	old := h.slots
	h.slots = make([]slot, len(old)*2)
	h.mask = uint64(len(h.slots) - 1)
	h.size = 0
	for _, s := range old {
		if s.occupied {
			h.Insert(s.key, s.val)
		}
	}
}
