package orderbook

import "time"

// Book is the order-book state machine for one symbol: it composes a
// Pool, a HashIndex, and the two book sides, and dispatches every
// incoming Message to Add, Cancel, or Modify while holding the
// invariants in spec.md §3 between calls. A Book is not safe for
// concurrent use — spec.md §5 makes processing strictly single-threaded
// per instance; a host embedding several symbols runs one Book per
// symbol.
type Book struct {
	Symbol string

	pool  *Pool
	index *HashIndex
	bids  *bookSide
	asks  *bookSide
}

// NewBook returns an empty book for symbol, sized for a default replay
// session.
func NewBook(symbol string) *Book {
	return NewBookWithCapacity(symbol, initialPoolSize)
}

// NewBookWithCapacity returns an empty book preallocating its pool and
// hash index for approximately capacity resting orders.
func NewBookWithCapacity(symbol string, capacity int) *Book {
	return &Book{
		Symbol: symbol,
		pool:   NewPool(capacity),
		index:  NewHashIndex(capacity),
		bids:   newBookSide(Bid),
		asks:   newBookSide(Ask),
	}
}

func (b *Book) sideOf(s Side) *bookSide {
	if s == Bid {
		return b.bids
	}
	return b.asks
}

// Process dispatches msg to Add, Cancel, or Modify by msg.Action, and is
// the sole entry point a message producer calls (spec.md §6). Unknown
// action codes are ignored, matching permissive-replay semantics. It
// records processing latency and per-action counters for the caller's
// metrics scrape.
func (b *Book) Process(msg Message) error {
	start := time.Now()
	var err error
	switch msg.Action {
	case ActionAdd:
		b.Add(msg)
	case ActionCancel:
		err = b.Cancel(msg)
	case ActionModify:
		b.Modify(msg)
	default:
		// unknown action: ignored, per spec.md §4.6
	}
	ProcessLatency.Observe(time.Since(start).Seconds())
	MessagesProcessed.WithLabelValues(string(rune(msg.Action))).Inc()
	RestingOrders.WithLabelValues(b.Symbol).Set(float64(b.index.Len()))
	HashIndexLoadFactor.WithLabelValues(b.Symbol).Set(b.index.loadFactor())
	return err
}

// Add acquires a record from the pool, appends it to the (possibly newly
// created) level at msg.Price on msg.Side, and inserts it into the hash
// index (spec.md §4.6 Add).
func (b *Book) Add(msg Message) {
	r := b.pool.Acquire()
	r.ID = msg.ID
	r.Price = msg.Price
	r.Size = msg.Size
	r.Side = msg.Side
	r.Timestamp = msg.Timestamp
	r.Filled = false

	level := b.sideOf(msg.Side).locateOrCreate(msg.Price)
	level.Add(r)
	b.index.Insert(msg.ID, r)
}

// Cancel removes msg.ID from the book, returning ErrUnknownOrder if it is
// not resting. The record is unlinked from its level, the level is
// dropped from its side if it is now empty, and the record is returned
// to the pool (spec.md §4.6 Cancel).
//
// A resting order with a nil level back-pointer is record/back-pointer
// corruption, not a normal outcome (spec.md §7): Cancel panics with
// *IntegrityFault rather than returning it as an ordinary error, so it
// cannot be mistaken for ErrUnknownOrder by a caller that only checks
// for a non-nil error. The panic is meant to be recovered exactly once,
// at the embedding program's boundary (cmd/replay does this), and to
// terminate the session.
func (b *Book) Cancel(msg Message) error {
	r, ok := b.index.Find(msg.ID)
	if !ok {
		return ErrUnknownOrder
	}
	level := r.level
	if level == nil {
		panic(&IntegrityFault{Op: "cancel", ID: msg.ID, Msg: "resting order has no level"})
	}
	b.index.Erase(msg.ID)
	level.Remove(r)
	if level.Count == 0 {
		b.sideOf(r.Side).erase(level.Price)
	}
	b.pool.Release(r)
	return nil
}

// Modify applies a conditional mutation to an existing order, or
// promotes to Add if msg.ID is not currently resting (spec.md §4.6
// Modify). The side used to locate the order is always the resting
// order's own side, not msg.Side, since an id cannot change sides.
func (b *Book) Modify(msg Message) {
	r, ok := b.index.Find(msg.ID)
	if !ok {
		b.Add(msg)
		return
	}
	if r.level == nil {
		panic(&IntegrityFault{Op: "modify", ID: msg.ID, Msg: "resting order has no level"})
	}

	switch {
	case msg.Price != r.Price:
		b.reshape(r, msg)
	case msg.Size > r.Size:
		b.loseQueuePriority(r, msg)
	default:
		b.updateInPlace(r, msg)
	}
}

// reshape moves r to a new price level, erasing the old level if it's
// left empty. The order id and record pointer are preserved; only the
// hash index's value (still the same pointer) is untouched.
func (b *Book) reshape(r *OrderRecord, msg Message) {
	side := b.sideOf(r.Side)
	oldLevel := r.level
	oldLevel.Remove(r)
	if oldLevel.Count == 0 {
		side.erase(oldLevel.Price)
	}

	r.Price = msg.Price
	r.Size = msg.Size
	r.Timestamp = msg.Timestamp

	newLvl := side.locateOrCreate(msg.Price)
	newLvl.Add(r)
}

// loseQueuePriority implements canonical venue semantics for a
// size-increase at the same price: the order moves to the tail of its
// level's FIFO.
func (b *Book) loseQueuePriority(r *OrderRecord, msg Message) {
	level := r.level
	level.Remove(r)
	r.Size = msg.Size
	r.Timestamp = msg.Timestamp
	level.Add(r)
}

// updateInPlace handles a same-price, non-increasing size change:
// queue position is preserved, only the level's aggregate volume and the
// record's fields change.
func (b *Book) updateInPlace(r *OrderRecord, msg Message) {
	level := r.level
	level.Volume -= uint64(r.Size)
	r.Size = msg.Size
	r.Timestamp = msg.Timestamp
	level.Volume += uint64(r.Size)
}

// BestBidPrice returns the highest resting bid price, or false if the
// bid side is empty.
func (b *Book) BestBidPrice() (int32, bool) {
	lvl, ok := b.bids.best()
	if !ok {
		return 0, false
	}
	return lvl.Price, true
}

// BestAskPrice returns the lowest resting ask price, or false if the ask
// side is empty.
func (b *Book) BestAskPrice() (int32, bool) {
	lvl, ok := b.asks.best()
	if !ok {
		return 0, false
	}
	return lvl.Price, true
}

// MidPrice returns the integer midpoint of best bid and best ask, or
// (0, false) when either side is empty.
func (b *Book) MidPrice() (int32, bool) {
	bid, ok := b.BestBidPrice()
	if !ok {
		return 0, false
	}
	ask, ok := b.BestAskPrice()
	if !ok {
		return 0, false
	}
	return (bid + ask) / 2, true
}

// OrderCount returns the total number of resting orders across both
// sides.
func (b *Book) OrderCount() int { return b.index.Len() }

// ForEachBid walks the bid side best-first (highest price first), calling
// fn with each level's price, volume, and order count until fn returns
// false or levels are exhausted.
func (b *Book) ForEachBid(fn func(price int32, volume uint64, count int) bool) {
	b.bids.forEachBestFirst(func(l *Level) bool { return fn(l.Price, l.Volume, l.Count) })
}

// ForEachAsk walks the ask side best-first (lowest price first).
func (b *Book) ForEachAsk(fn func(price int32, volume uint64, count int) bool) {
	b.asks.forEachBestFirst(func(l *Level) bool { return fn(l.Price, l.Volume, l.Count) })
}

// BidLevelCount and AskLevelCount report the number of active price
// levels per side, mainly for tests and diagnostics.
func (b *Book) BidLevelCount() int { return b.bids.len() }
func (b *Book) AskLevelCount() int { return b.asks.len() }

// PoolLen and PoolFreeLen expose the underlying pool's bookkeeping for
// tests asserting the round-trip laws in spec.md §8.
func (b *Book) PoolLen() int     { return b.pool.Len() }
func (b *Book) PoolFreeLen() int { return b.pool.FreeLen() }
