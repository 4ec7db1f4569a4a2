package orderbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashIndex_InsertFindErase(t *testing.T) {
	idx := NewHashIndex(16)
	r1 := &OrderRecord{ID: 1}
	r2 := &OrderRecord{ID: 2}

	idx.Insert(1, r1)
	idx.Insert(2, r2)
	assert.Equal(t, 2, idx.Len())

	got, ok := idx.Find(1)
	require.True(t, ok)
	assert.Same(t, r1, got)

	got, ok = idx.Find(2)
	require.True(t, ok)
	assert.Same(t, r2, got)

	_, ok = idx.Find(3)
	assert.False(t, ok)

	assert.True(t, idx.Erase(1))
	_, ok = idx.Find(1)
	assert.False(t, ok)
	assert.Equal(t, 1, idx.Len())

	assert.False(t, idx.Erase(1))
}

func TestHashIndex_InsertIsIdempotentUpsert(t *testing.T) {
	idx := NewHashIndex(16)
	r1 := &OrderRecord{ID: 1}
	r2 := &OrderRecord{ID: 1}

	idx.Insert(1, r1)
	idx.Insert(1, r2)
	assert.Equal(t, 1, idx.Len())

	got, ok := idx.Find(1)
	require.True(t, ok)
	assert.Same(t, r2, got)
}

func TestHashIndex_GrowsAcrossLoadThreshold(t *testing.T) {
	idx := NewHashIndex(4)
	const n = 2000
	records := make([]*OrderRecord, n)
	for i := 0; i < n; i++ {
		records[i] = &OrderRecord{ID: OrderID(i)}
		idx.Insert(OrderID(i), records[i])
	}
	assert.Equal(t, n, idx.Len())
	assert.Less(t, idx.loadFactor(), loadFactorThreshold+0.01)

	for i := 0; i < n; i++ {
		got, ok := idx.Find(OrderID(i))
		require.True(t, ok, "id %d should still be found after grow", i)
		assert.Same(t, records[i], got)
	}
}

func TestHashIndex_EraseAllRestoresEmpty(t *testing.T) {
	idx := NewHashIndex(16)
	const n = 500
	for i := 0; i < n; i++ {
		idx.Insert(OrderID(i), &OrderRecord{ID: OrderID(i)})
	}
	for i := n - 1; i >= 0; i-- {
		assert.True(t, idx.Erase(OrderID(i)))
	}
	assert.Equal(t, 0, idx.Len())
	for i := 0; i < n; i++ {
		_, ok := idx.Find(OrderID(i))
		assert.False(t, ok)
	}
}

// TestHashIndex_RobinHoodInvariant checks: for every occupied slot
// holding key k at probe distance d, every slot walked between k's home
// slot and its resting slot is occupied (a Robin-Hood table never leaves
// a gap in an active probe sequence; find/erase both rely on that to
// terminate early on the first empty slot, spec.md §8 invariant 3).
func TestHashIndex_RobinHoodInvariant(t *testing.T) {
	idx := NewHashIndex(8)
	for i := 0; i < 100; i++ {
		idx.Insert(OrderID(i*97+1), &OrderRecord{ID: OrderID(i*97 + 1)})
	}
	for _, s := range idx.slots {
		if !s.occupied {
			continue
		}
		home := hashKey(s.key) & idx.mask
		for step := uint32(0); step < s.probe; step++ {
			pos := (home + uint64(step)) & idx.mask
			require.True(t, idx.slots[pos].occupied,
				"probe sequence for key %d must not contain a gap before its resting slot", s.key)
		}
	}
}
