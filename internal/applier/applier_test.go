package applier

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lukiod/LOB-Engine/internal/orderbook"
)

func newTestApplier() (*EventApplier, *orderbook.Book) {
	book := orderbook.NewBook(orderbook.DefaultConfig())
	return New(book, nil), book
}

func TestApply_Submission(t *testing.T) {
	a, book := newTestApplier()

	a.Apply(Message{Timestamp: 0, Type: TypeSubmission, OrderID: 1, Size: 10, Price: 100, Direction: DirectionBuy})

	assert.Equal(t, orderbook.Price(100), book.BestBid())
	assert.Equal(t, orderbook.Quantity(10), book.VolumeAt(100))
	assert.Equal(t, 1, book.OrderCount())
}

func TestApply_SubmissionSellDirection(t *testing.T) {
	a, book := newTestApplier()

	a.Apply(Message{Timestamp: 0, Type: TypeSubmission, OrderID: 1, Size: 10, Price: 100, Direction: DirectionSell})

	assert.Equal(t, orderbook.Price(100), book.BestAsk())
}

func TestApply_DuplicateSubmissionIsNoOp(t *testing.T) {
	a, book := newTestApplier()
	a.Apply(Message{Type: TypeSubmission, OrderID: 1, Size: 10, Price: 100, Direction: DirectionBuy})

	a.Apply(Message{Type: TypeSubmission, OrderID: 1, Size: 999, Price: 200, Direction: DirectionSell})

	assert.Equal(t, 1, book.OrderCount())
	o, ok := book.Order(1)
	require.True(t, ok)
	assert.Equal(t, orderbook.Quantity(10), o.Size)
}

func TestApply_CancellationIsPartialReduce(t *testing.T) {
	a, book := newTestApplier()
	a.Apply(Message{Type: TypeSubmission, OrderID: 1, Size: 10, Price: 100, Direction: DirectionBuy})

	a.Apply(Message{Type: TypeCancellation, OrderID: 1, Size: 4, Price: 100, Direction: DirectionBuy})

	o, ok := book.Order(1)
	require.True(t, ok)
	assert.Equal(t, orderbook.Quantity(6), o.Size)
}

func TestApply_DeletionRemovesOrder(t *testing.T) {
	a, book := newTestApplier()
	a.Apply(Message{Type: TypeSubmission, OrderID: 1, Size: 10, Price: 100, Direction: DirectionBuy})

	a.Apply(Message{Type: TypeDeletion, OrderID: 1, Size: 10, Price: 100, Direction: DirectionBuy})

	_, ok := book.Order(1)
	assert.False(t, ok)
}

func TestApply_VisibleExecutionReducesSize(t *testing.T) {
	a, book := newTestApplier()
	a.Apply(Message{Type: TypeSubmission, OrderID: 1, Size: 10, Price: 100, Direction: DirectionBuy})

	a.Apply(Message{Type: TypeVisibleExecution, OrderID: 1, Size: 4, Price: 100, Direction: DirectionBuy})

	o, ok := book.Order(1)
	require.True(t, ok)
	assert.Equal(t, orderbook.Quantity(6), o.Size)

	a.Apply(Message{Type: TypeVisibleExecution, OrderID: 1, Size: 6, Price: 100, Direction: DirectionBuy})
	_, ok = book.Order(1)
	assert.False(t, ok)
	assert.Equal(t, orderbook.Quantity(0), book.VolumeAt(100))
}

func TestApply_HiddenExecutionIsIgnored(t *testing.T) {
	a, book := newTestApplier()
	a.Apply(Message{Type: TypeSubmission, OrderID: 1, Size: 10, Price: 100, Direction: DirectionBuy})

	a.Apply(Message{Type: TypeHiddenExecution, OrderID: 1, Size: 10, Price: 100, Direction: DirectionBuy})

	o, ok := book.Order(1)
	require.True(t, ok)
	assert.Equal(t, orderbook.Quantity(10), o.Size)
}

func TestApply_HaltIndicatorsAreIgnored(t *testing.T) {
	a, book := newTestApplier()

	a.Apply(Message{Type: TypeHaltIndicatorA})
	a.Apply(Message{Type: TypeHaltIndicatorB})

	assert.Equal(t, 0, book.OrderCount())
	assert.Equal(t, orderbook.InvalidPrice, book.BestBid())
}

func TestApply_UnknownIDFallsBackToLevelDrain(t *testing.T) {
	a, book := newTestApplier()
	book.AddAnonymousVolume(orderbook.Buy, 100, 10)

	a.Apply(Message{Type: TypeDeletion, OrderID: 42, Size: 10, Price: 100, Direction: DirectionBuy})

	assert.Equal(t, orderbook.Quantity(0), book.VolumeAt(100))
}

func TestMessage_NanosConvertsSecondsToNanoseconds(t *testing.T) {
	m := Message{Timestamp: 1.5}
	assert.Equal(t, int64(1_500_000_000), m.nanos())
}
