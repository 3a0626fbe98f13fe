package orderbook

// DefaultSlabBlockSize is the number of Order records allocated per
// block when the free list runs dry.
const DefaultSlabBlockSize = 10000

// DefaultSlabInitialCapacity is the number of Order records the pool
// pre-allocates at construction, rounded up to a whole number of blocks,
// to eliminate runtime allocation jitter during replay.
const DefaultSlabInitialCapacity = 1000000

// SlabPool is a free-list arena for fixed-capacity batches of Order
// records. It hands out storage whose contents are unspecified; the
// caller must fully initialize the Order before use. Released records
// are recycled by threading them onto a free list through the record's
// own next pointer, exactly as Level's intrusive queue does when an
// order is linked.
type SlabPool struct {
	blockSize uint32
	blocks    [][]Order
	free      *Order
}

// NewSlabPool constructs a pool with the given block size and initial
// capacity, eagerly allocating ⌈capacity/blockSize⌉ blocks. A zero
// blockSize or capacity falls back to the package defaults.
func NewSlabPool(blockSize, capacity uint32) *SlabPool {
	if blockSize == 0 {
		blockSize = DefaultSlabBlockSize
	}
	if capacity == 0 {
		capacity = DefaultSlabInitialCapacity
	}
	p := &SlabPool{blockSize: blockSize}
	blocks := (capacity + blockSize - 1) / blockSize
	for i := uint32(0); i < blocks; i++ {
		p.allocateBlock()
	}
	return p
}

func (p *SlabPool) allocateBlock() {
	block := make([]Order, p.blockSize)
	for i := range block {
		if i+1 < len(block) {
			block[i].next = &block[i+1]
		} else {
			block[i].next = p.free
		}
	}
	p.blocks = append(p.blocks, block)
	p.free = &block[0]
}

// Allocate pops the free-list head, growing the pool by one block first
// if the list is empty. The returned Order's fields are unspecified.
func (p *SlabPool) Allocate() *Order {
	if p.free == nil {
		p.allocateBlock()
	}
	o := p.free
	p.free = o.next
	return o
}

// Release returns a record to the free list for reuse. The caller must
// not touch o again once released.
func (p *SlabPool) Release(o *Order) {
	o.prev = nil
	o.next = p.free
	p.free = o
}

// Cap reports the total number of Order slots currently backing the
// pool, allocated or free.
func (p *SlabPool) Cap() int {
	return len(p.blocks) * int(p.blockSize)
}
