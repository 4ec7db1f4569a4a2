package orderbook

import "github.com/tidwall/btree"

// sideDegree is the tidwall/btree node degree used for both book sides,
// matching the teacher's choice for its bids/asks maps.
const sideDegree = 32

// bookSide is the ordered collection of price levels on one side of the
// book (spec.md's BookSide). Bids iterate best-first descending, asks
// best-first ascending; both are backed by the same btree.Map keyed
// directly on the signed integer price, so no decimal-to-string
// coercion is needed the way the teacher's decimal-priced book required.
type bookSide struct {
	side   Side
	levels *btree.Map[int32, *Level]
}

func newBookSide(side Side) *bookSide {
	return &bookSide{
		side:   side,
		levels: btree.NewMap[int32, *Level](sideDegree),
	}
}

// locateOrCreate returns the existing level at price, inserting a fresh
// empty one at the correct sorted position if absent.
func (s *bookSide) locateOrCreate(price int32) *Level {
	if lvl, ok := s.levels.Get(price); ok {
		return lvl
	}
	lvl := newLevel(price, s.side)
	s.levels.Set(price, lvl)
	return lvl
}

// erase removes the level entry at price. The caller has already emptied
// the level; erase only drops it from the ordered index.
func (s *bookSide) erase(price int32) {
	s.levels.Delete(price)
}

// best returns the best level for this side (highest price for bids,
// lowest for asks) and whether one exists.
func (s *bookSide) best() (*Level, bool) {
	var found *Level
	visit := func(_ int32, lvl *Level) bool {
		found = lvl
		return false
	}
	if s.side == Bid {
		s.levels.Reverse(visit)
	} else {
		s.levels.Scan(visit)
	}
	return found, found != nil
}

// forEachBestFirst walks every level best-first, calling fn until it
// returns false or levels are exhausted.
func (s *bookSide) forEachBestFirst(fn func(*Level) bool) {
	visit := func(_ int32, lvl *Level) bool { return fn(lvl) }
	if s.side == Bid {
		s.levels.Reverse(visit)
	} else {
		s.levels.Scan(visit)
	}
}

func (s *bookSide) len() int { return s.levels.Len() }
