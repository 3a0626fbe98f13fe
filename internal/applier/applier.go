// Package applier maps decoded LOBSTER messages onto Book mutations.
// It is a pure dispatcher: it owns no state beyond the Book it was
// constructed with and a logger for messages it chooses to ignore by
// design rather than by accident.
package applier

import (
	"go.uber.org/zap"

	"github.com/lukiod/LOB-Engine/internal/orderbook"
)

// MessageType is a LOBSTER event kind, as defined in the message file
// format's third column.
type MessageType int

const (
	TypeSubmission       MessageType = 1
	TypeCancellation     MessageType = 2 // partial
	TypeDeletion         MessageType = 3 // full
	TypeVisibleExecution MessageType = 4
	TypeHiddenExecution  MessageType = 5
	TypeHaltIndicatorA   MessageType = 6
	TypeHaltIndicatorB   MessageType = 7
)

// Direction is LOBSTER's raw sign convention for an order's side.
type Direction int8

const (
	DirectionBuy  Direction = 1
	DirectionSell Direction = -1
)

func (d Direction) side() orderbook.Side {
	if d == DirectionBuy {
		return orderbook.Buy
	}
	return orderbook.Sell
}

// Message is one decoded LOBSTER record. Timestamp is seconds since
// midnight as LOBSTER emits it; Apply converts it to nanoseconds at
// the moment it touches the book, so the external parser never has to
// know about the book's internal time unit.
type Message struct {
	Timestamp float64
	Type      MessageType
	OrderID   orderbook.OrderID
	Size      orderbook.Quantity
	Price     orderbook.Price
	Direction Direction
}

func (m Message) nanos() int64 {
	return int64(m.Timestamp * 1e9)
}

// EventApplier dispatches decoded messages onto a Book. It holds no
// state of its own beyond the Book and logger it was built with, so
// constructing a new one per Book is cheap and safe.
type EventApplier struct {
	book *orderbook.Book
	log  *zap.Logger
}

// New constructs an EventApplier over book. A nil logger is replaced
// with zap.NewNop(), matching the rest of this module's logging
// convention of never requiring a caller to plumb one through just to
// avoid a panic.
func New(book *orderbook.Book, log *zap.Logger) *EventApplier {
	if log == nil {
		log = zap.NewNop()
	}
	return &EventApplier{book: book, log: log}
}

// Apply dispatches msg onto the underlying Book according to its Type.
// Hidden executions and halt indicators are recognized but intentionally
// produce no book mutation.
func (a *EventApplier) Apply(msg Message) {
	side := msg.Direction.side()
	ts := msg.nanos()

	switch msg.Type {
	case TypeSubmission:
		added := a.book.AddOrder(msg.OrderID, side, msg.Price, msg.Size, ts)
		if !added {
			a.log.Debug("duplicate order id ignored",
				zap.Uint64("order_id", uint64(msg.OrderID)))
		}
	case TypeCancellation:
		a.book.ReduceOrder(msg.OrderID, msg.Size, side, msg.Price)
	case TypeDeletion:
		a.book.DeleteOrder(msg.OrderID, side, msg.Price, msg.Size)
	case TypeVisibleExecution:
		a.book.ExecuteOrder(msg.OrderID, msg.Size, side, msg.Price)
	case TypeHiddenExecution:
		// Hidden liquidity is invisible to the book by definition; no
		// resting state exists to update.
	case TypeHaltIndicatorA, TypeHaltIndicatorB:
		// Trading halts carry no price/size payload worth applying.
	default:
		a.log.Warn("unrecognized message type",
			zap.Int("type", int(msg.Type)),
			zap.Uint64("order_id", uint64(msg.OrderID)))
	}
}
