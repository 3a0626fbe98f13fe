package orderbook

// Config controls the Book's memory layout. The zero Config is valid
// and resolves to DefaultSlabBlockSize / DefaultSlabInitialCapacity.
type Config struct {
	SlabBlockSize       uint32
	SlabInitialCapacity uint32
}

// DefaultConfig returns the Config a caller gets if they don't supply
// one of their own.
func DefaultConfig() Config {
	return Config{
		SlabBlockSize:       DefaultSlabBlockSize,
		SlabInitialCapacity: DefaultSlabInitialCapacity,
	}
}

// Book is the full in-memory limit order book: two price-indexed
// red-black trees (bids and asks), an O(1) order-ID index, and a
// shared SlabPool backing every resting Order. It is single-writer and
// single-threaded; callers serialize their own access.
type Book struct {
	bids *RBTree
	asks *RBTree

	orders map[OrderID]*Order
	pool   *SlabPool
}

// NewBook constructs an empty book using cfg for its allocator layout.
func NewBook(cfg Config) *Book {
	return &Book{
		bids:   NewRBTree(),
		asks:   NewRBTree(),
		orders: make(map[OrderID]*Order),
		pool:   NewSlabPool(cfg.SlabBlockSize, cfg.SlabInitialCapacity),
	}
}

func (b *Book) treeFor(side Side) *RBTree {
	if side == Buy {
		return b.bids
	}
	return b.asks
}

// GetOrCreateLevel returns the existing Level at price on side, or
// constructs and indexes a new one. Exposed for the reconciler, which
// needs to touch a Level directly while healing.
func (b *Book) GetOrCreateLevel(side Side, price Price) *Level {
	return b.treeFor(side).Upsert(price)
}

// getLevel looks up a Level without creating one.
func (b *Book) getLevel(side Side, price Price) *Level {
	return b.treeFor(side).Find(price)
}

// AddOrder inserts a new resting order at price on side, appending it
// to the tail of that price level's time-priority queue. LOBSTER type
// 1. If id is already resting, the call is a no-op: the parser assumes
// valid, non-duplicate input, so there is nothing to reconcile here
// beyond ignoring the repeat. Reports whether an order was actually
// added.
func (b *Book) AddOrder(id OrderID, side Side, price Price, size Quantity, timestamp int64) bool {
	if _, exists := b.orders[id]; exists {
		return false
	}
	lvl := b.GetOrCreateLevel(side, price)

	o := b.pool.Allocate()
	o.ID = id
	o.Price = price
	o.Size = size
	o.Side = side
	o.Timestamp = timestamp
	o.prev = nil
	o.next = nil
	o.parent = nil

	lvl.PushBack(o)
	b.orders[id] = o
	return true
}

// CancelOrder removes order id from the book entirely by ID alone,
// with no price/side fallback. Reports whether an order was found and
// removed.
func (b *Book) CancelOrder(id OrderID) bool {
	o, ok := b.orders[id]
	if !ok {
		return false
	}
	b.removeNamedOrder(id, o)
	return true
}

func (b *Book) removeNamedOrder(id OrderID, o *Order) {
	lvl := o.parent
	lvl.Unlink(o)
	delete(b.orders, id)
	b.evictIfEmpty(o.Side, lvl)
	b.pool.Release(o)
}

// DeleteOrder removes order id from the book. LOBSTER type 3. If id is
// resting, this behaves exactly like CancelOrder and the supplied
// price/size/side are ignored in favor of the order's own fields. If
// id is unknown (the message references an order submitted before the
// replay window began), it falls back to draining size from the Level
// at (side, price) directly, clamped at zero, silently dropping the
// message if no such Level exists.
func (b *Book) DeleteOrder(id OrderID, side Side, price Price, size Quantity) {
	if o, ok := b.orders[id]; ok {
		b.removeNamedOrder(id, o)
		return
	}
	b.drainLevelFallback(side, price, size)
}

// ReduceOrder shrinks order id's resting size by delta. LOBSTER type 2
// (partial cancel). If delta meets or exceeds the order's current
// size, the order is removed exactly as DeleteOrder would. If id is
// unknown, it falls back to draining delta from the Level at
// (side, price), exactly as DeleteOrder's fallback does.
func (b *Book) ReduceOrder(id OrderID, delta Quantity, side Side, price Price) {
	o, ok := b.orders[id]
	if !ok {
		b.drainLevelFallback(side, price, delta)
		return
	}
	if delta >= o.Size {
		b.removeNamedOrder(id, o)
		return
	}
	lvl := o.parent
	o.Size -= delta
	lvl.TotalVolume -= delta
}

// ExecuteOrder records a trade against order id. LOBSTER type 4. It is
// semantically identical to ReduceOrder: an execution removes visible
// liquidity by the executed quantity, and LOBSTER already emits the
// post-trade event against the resting ID rather than modeling the
// aggressor side.
func (b *Book) ExecuteOrder(id OrderID, size Quantity, side Side, price Price) {
	b.ReduceOrder(id, size, side, price)
}

func (b *Book) drainLevelFallback(side Side, price Price, size Quantity) {
	lvl := b.getLevel(side, price)
	if lvl == nil {
		return
	}
	if size > lvl.TotalVolume {
		lvl.TotalVolume = 0
	} else {
		lvl.TotalVolume -= size
	}
	b.evictIfEmpty(side, lvl)
}

// AddAnonymousVolume injects size units of untracked volume at price
// on side, without creating a named Order. It backs snapshot
// initialization (Reconciler.Init seeds the book from row 0 this way).
// The reconciler's healing path does not use it: healing adds
// synthetic orders under dummy IDs via AddOrder. Anonymous volume
// contributes to TotalVolume but never appears when walking the order
// queue via Head/Next.
func (b *Book) AddAnonymousVolume(side Side, price Price, size Quantity) {
	lvl := b.GetOrCreateLevel(side, price)
	lvl.TotalVolume += size
}

func (b *Book) evictIfEmpty(side Side, lvl *Level) {
	if lvl.Empty() {
		b.treeFor(side).Delete(lvl.Price)
	}
}

// BestBid returns the highest resting bid price, or InvalidPrice if
// the bid side is empty.
func (b *Book) BestBid() Price {
	lvl := b.bids.Max()
	if lvl == nil {
		return InvalidPrice
	}
	return lvl.Price
}

// BestAsk returns the lowest resting ask price, or InvalidPrice if the
// ask side is empty.
func (b *Book) BestAsk() Price {
	lvl := b.asks.Min()
	if lvl == nil {
		return InvalidPrice
	}
	return lvl.Price
}

// VolumeAt returns the resting volume at price, checking bids before
// asks. Prices are disjoint in a well-formed book; if the book is
// crossed, the bid side wins the lookup, which is acceptable because
// LOBSTER snapshots are never crossed.
func (b *Book) VolumeAt(price Price) Quantity {
	if lvl := b.bids.Find(price); lvl != nil {
		return lvl.TotalVolume
	}
	if lvl := b.asks.Find(price); lvl != nil {
		return lvl.TotalVolume
	}
	return 0
}

// LevelAt returns the Level at price on side, or nil if none is
// indexed there. The returned Level is live book state; callers must
// not mutate it directly.
func (b *Book) LevelAt(side Side, price Price) *Level {
	return b.treeFor(side).Find(price)
}

// OrderCount returns the number of named orders currently resting in
// the book, across both sides.
func (b *Book) OrderCount() int {
	return len(b.orders)
}

// Order looks up a resting order by ID. The second return value is
// false if no such order is resting.
func (b *Book) Order(id OrderID) (*Order, bool) {
	o, ok := b.orders[id]
	return o, ok
}

// Depth returns the number of distinct price levels resting on side.
func (b *Book) Depth(side Side) int {
	return b.treeFor(side).Size()
}

// OBI is the order book imbalance at the best level: letting
// b = volume_at(best_bid) and a = volume_at(best_ask), returns
// (b-a)/(b+a) in [-1, 1]. Returns 0 if either side is empty or
// b+a == 0.
func (b *Book) OBI() float64 {
	bidLvl := b.bids.Max()
	askLvl := b.asks.Min()
	if bidLvl == nil || askLvl == nil {
		return 0
	}
	bidVol := float64(bidLvl.TotalVolume)
	askVol := float64(askLvl.TotalVolume)
	if bidVol+askVol == 0 {
		return 0
	}
	return (bidVol - askVol) / (bidVol + askVol)
}

// Microprice is the volume-weighted top-of-book price:
// (bestBid*askSize + bestAsk*bidSize) / (bidSize + askSize), using the
// best level's resting volume on each side. Returns 0 under the same
// degenerate conditions as OBI.
func (b *Book) Microprice() float64 {
	bidLvl := b.bids.Max()
	askLvl := b.asks.Min()
	if bidLvl == nil || askLvl == nil {
		return 0
	}
	bidVol := float64(bidLvl.TotalVolume)
	askVol := float64(askLvl.TotalVolume)
	if bidVol+askVol == 0 {
		return 0
	}
	return (float64(bidLvl.Price)*askVol + float64(askLvl.Price)*bidVol) / (bidVol + askVol)
}

// TopLevels returns up to n Levels on side, ordered best-first, for
// multi-level microstructure queries. A non-positive n yields no
// Levels. Returned Levels are live book state.
func (b *Book) TopLevels(side Side, n int) []*Level {
	if n <= 0 {
		return nil
	}
	out := make([]*Level, 0, n)
	walk := b.asks.ForEachAscending
	if side == Buy {
		walk = b.bids.ForEachDescending
	}
	walk(func(l *Level) bool {
		out = append(out, l)
		return len(out) < n
	})
	return out
}
