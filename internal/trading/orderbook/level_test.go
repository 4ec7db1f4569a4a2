package orderbook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevel_AddAppendsInFIFOOrder(t *testing.T) {
	l := newLevel(100, Bid)
	r1 := &OrderRecord{ID: 1, Size: 5}
	r2 := &OrderRecord{ID: 2, Size: 7}
	r3 := &OrderRecord{ID: 3, Size: 3}

	l.Add(r1)
	l.Add(r2)
	l.Add(r3)

	assert.Equal(t, 3, l.Count)
	assert.EqualValues(t, 15, l.Volume)

	ids := make([]OrderID, 0, 3)
	for _, r := range l.Orders() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []OrderID{1, 2, 3}, ids)
}

func TestLevel_RemoveHeadMiddleTailAndSole(t *testing.T) {
	l := newLevel(100, Bid)
	r1 := &OrderRecord{ID: 1, Size: 1}
	r2 := &OrderRecord{ID: 2, Size: 1}
	r3 := &OrderRecord{ID: 3, Size: 1}
	l.Add(r1)
	l.Add(r2)
	l.Add(r3)

	l.Remove(r2) // middle
	assert.Equal(t, []OrderID{1, 3}, idsOf(l))
	assert.Nil(t, r2.prev)
	assert.Nil(t, r2.next)
	assert.Nil(t, r2.level)

	l.Remove(r1) // head
	assert.Equal(t, []OrderID{3}, idsOf(l))

	l.Remove(r3) // sole/tail
	assert.Equal(t, []OrderID{}, idsOf(l))
	assert.Nil(t, l.head)
	assert.Nil(t, l.tail)
	assert.Equal(t, 0, l.Count)
	assert.EqualValues(t, 0, l.Volume)
}

func idsOf(l *Level) []OrderID {
	out := []OrderID{}
	for _, r := range l.Orders() {
		out = append(out, r.ID)
	}
	return out
}
