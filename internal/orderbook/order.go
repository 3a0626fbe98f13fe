package orderbook

// Order is a single resting order: identity, size, time, and the
// intrusive siblings that thread it into its Level's FIFO queue. Storage
// for every Order is drawn from a SlabPool; off the queue, the next
// field doubles as the pool's free-list link (see pool.go).
type Order struct {
	ID        OrderID
	Price     Price
	Size      Quantity
	Side      Side
	Timestamp int64 // nanoseconds

	prev, next *Order
	parent     *Level
}

// Next returns the following order in time priority, or nil at the tail.
func (o *Order) Next() *Order { return o.next }

// Prev returns the preceding order in time priority, or nil at the head.
func (o *Order) Prev() *Order { return o.prev }

// Level returns the price level this order currently rests on.
func (o *Order) Level() *Level { return o.parent }
