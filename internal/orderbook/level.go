package orderbook

// Level is one price point on one side of the book: the aggregate
// volume resting there, the number of named orders, and the head/tail
// of the time-priority FIFO queue. TotalVolume may exceed the sum of
// the queue's order sizes when anonymous volume has been injected (see
// Book.AddAnonymousVolume and package reconcile). The two are equal in
// pure LOBSTER replay with no healing.
type Level struct {
	Price       Price
	TotalVolume Quantity
	OrderCount  int

	head, tail *Order
}

func newLevel(price Price) *Level {
	return &Level{Price: price}
}

// Head returns the order at the front of the time-priority queue, or
// nil if the level carries only anonymous volume.
func (l *Level) Head() *Order { return l.head }

// Tail returns the order at the back of the time-priority queue.
func (l *Level) Tail() *Order { return l.tail }

// Empty reports whether the level has neither named orders nor
// anonymous volume, and is therefore eligible for eviction from the
// book.
func (l *Level) Empty() bool {
	return l.OrderCount == 0 && l.TotalVolume == 0
}

// PushBack links order as the new tail of the queue. Appends always go
// to the tail; no reordering of resting orders is ever permitted.
func (l *Level) PushBack(o *Order) {
	o.parent = l
	o.prev = l.tail
	o.next = nil
	if l.tail == nil {
		l.head = o
	} else {
		l.tail.next = o
	}
	l.tail = o
	l.TotalVolume += o.Size
	l.OrderCount++
}

// Unlink splices order out of the queue, updating head/tail as needed.
// The caller owns the decision of whether to release the order back to
// its pool.
func (l *Level) Unlink(o *Order) {
	if o.prev != nil {
		o.prev.next = o.next
	} else {
		l.head = o.next
	}
	if o.next != nil {
		o.next.prev = o.prev
	} else {
		l.tail = o.prev
	}
	o.prev = nil
	o.next = nil
	l.TotalVolume -= o.Size
	l.OrderCount--
}
